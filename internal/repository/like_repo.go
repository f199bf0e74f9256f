package repository

import (
	"clipstream/internal/model"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(like *model.Like) error
	Find(likeByID uint64, targetKind string, targetID uint64) (*model.Like, error)
	DeleteByID(likeID uint64) (int64, error)
	CountFor(targetKind string, targetID uint64) (int64, error)
	Exists(likeByID uint64, targetKind string, targetID uint64) (bool, error)
	ListVideosLikedBy(userID uint64) ([]model.Video, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create relies on idx_like_target: a concurrent duplicate surfaces as a
// MySQL 1062 error instead of a second row.
func (r *likeRepository) Create(like *model.Like) error {
	return r.db.Create(like).Error
}

func (r *likeRepository) Find(likeByID uint64, targetKind string, targetID uint64) (*model.Like, error) {
	var like model.Like
	err := r.db.
		Where("like_by_id = ? AND target_kind = ? AND target_id = ?", likeByID, targetKind, targetID).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// DeleteByID removes the row for real. A gorm soft delete keeps it inside
// idx_like_target, and the tombstone then rejects the user's next like of the
// same target with a duplicate key.
func (r *likeRepository) DeleteByID(likeID uint64) (int64, error) {
	res := r.db.Exec("DELETE FROM likes WHERE id = ?", likeID)
	return res.RowsAffected, res.Error
}

func (r *likeRepository) CountFor(targetKind string, targetID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("target_kind = ? AND target_id = ?", targetKind, targetID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) Exists(likeByID uint64, targetKind string, targetID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("like_by_id = ? AND target_kind = ? AND target_id = ?", likeByID, targetKind, targetID).
		Count(&count).Error
	return count > 0, err
}

// ListVideosLikedBy joins likes to videos for the "liked videos" view.
func (r *likeRepository) ListVideosLikedBy(userID uint64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.
		Joins("JOIN likes ON likes.target_id = videos.id AND likes.target_kind = ? AND likes.like_by_id = ?",
			model.LikeTargetVideo, userID).
		Preload("Owner").
		Find(&videos).Error
	return videos, err
}
