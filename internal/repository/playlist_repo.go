package repository

import (
	"clipstream/internal/model"

	"gorm.io/gorm"
)

type PlaylistRepository interface {
	Create(playlist *model.Playlist) error
	FindByID(playlistID uint64) (*model.Playlist, error)
	ListByOwner(ownerID uint64) ([]model.Playlist, error)
	Update(playlistID uint64, fields map[string]interface{}) (int64, error)
	Delete(playlistID uint64) (int64, error)

	ListVideos(playlistID uint64) ([]model.PlaylistVideo, error)
	HasVideo(playlistID, videoID uint64) (bool, error)
	AddVideo(playlistID, videoID uint64) error
	RemoveVideo(playlistID, videoID uint64) (int64, error)
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(playlist *model.Playlist) error {
	return r.db.Create(playlist).Error
}

func (r *playlistRepository) FindByID(playlistID uint64) (*model.Playlist, error) {
	var playlist model.Playlist
	err := r.db.Preload("Owner").First(&playlist, playlistID).Error
	if err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (r *playlistRepository) ListByOwner(ownerID uint64) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at desc").Find(&playlists).Error
	return playlists, err
}

func (r *playlistRepository) Update(playlistID uint64, fields map[string]interface{}) (int64, error) {
	res := r.db.Model(&model.Playlist{}).Where("id = ?", playlistID).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *playlistRepository) Delete(playlistID uint64) (int64, error) {
	res := r.db.Delete(&model.Playlist{}, playlistID)
	return res.RowsAffected, res.Error
}

// ListVideos returns membership rows in playlist order with the member video
// and its owner preloaded.
func (r *playlistRepository) ListVideos(playlistID uint64) ([]model.PlaylistVideo, error) {
	var entries []model.PlaylistVideo
	err := r.db.
		Preload("Video").
		Preload("Video.Owner").
		Where("playlist_id = ?", playlistID).
		Order("position asc, id asc").
		Find(&entries).Error
	return entries, err
}

func (r *playlistRepository) HasVideo(playlistID, videoID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&model.PlaylistVideo{}).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Count(&count).Error
	return count > 0, err
}

// AddVideo appends at the end of the playlist. The unique index on
// (playlist_id, video_id) rejects a racing duplicate insert.
func (r *playlistRepository) AddVideo(playlistID, videoID uint64) error {
	var maxPos int
	err := r.db.Model(&model.PlaylistVideo{}).
		Where("playlist_id = ?", playlistID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPos).Error
	if err != nil {
		return err
	}
	return r.db.Create(&model.PlaylistVideo{
		PlaylistID: playlistID,
		VideoID:    videoID,
		Position:   maxPos + 1,
	}).Error
}

// RemoveVideo deletes the membership row for real. A gorm soft delete keeps
// it inside idx_playlist_video and blocks the video from being re-added.
func (r *playlistRepository) RemoveVideo(playlistID, videoID uint64) (int64, error) {
	res := r.db.Exec("DELETE FROM playlist_videos WHERE playlist_id = ? AND video_id = ?", playlistID, videoID)
	return res.RowsAffected, res.Error
}
