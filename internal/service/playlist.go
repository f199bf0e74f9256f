package service

import (
	"fmt"
	"strings"

	"clipstream/internal/model"
	"clipstream/internal/repository"
)

type PlaylistService interface {
	Create(callerID uint64, name, description string) (*model.Playlist, error)
	GetUserPlaylists(userID uint64) ([]model.Playlist, error)
	GetDetail(playlistID uint64) (*model.Playlist, []model.PlaylistVideo, error)
	Update(playlistID, callerID uint64, name, description string) (*model.Playlist, error)
	Delete(playlistID, callerID uint64) (*model.Playlist, error)
	AddVideo(playlistID, videoID, callerID uint64) (*model.Playlist, []model.PlaylistVideo, error)
	RemoveVideo(playlistID, videoID, callerID uint64) (*model.Playlist, []model.PlaylistVideo, error)
}

type playlistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
	userRepo     repository.UserRepository
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository, userRepo repository.UserRepository) PlaylistService {
	return &playlistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
		userRepo:     userRepo,
	}
}

func (s *playlistService) Create(callerID uint64, name, description string) (*model.Playlist, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return nil, fmt.Errorf("%w: name and description are required", ErrInvalidArgument)
	}
	playlist := &model.Playlist{
		OwnerID:     callerID,
		Name:        name,
		Description: description,
	}
	if err := s.playlistRepo.Create(playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *playlistService) GetUserPlaylists(userID uint64) ([]model.Playlist, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
	}
	return s.playlistRepo.ListByOwner(userID)
}

func (s *playlistService) GetDetail(playlistID uint64) (*model.Playlist, []model.PlaylistVideo, error) {
	playlist, err := s.playlistRepo.FindByID(playlistID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: playlist does not exist", ErrNotFound)
	}
	videos, err := s.playlistRepo.ListVideos(playlistID)
	if err != nil {
		return nil, nil, err
	}
	return playlist, videos, nil
}

func (s *playlistService) Update(playlistID, callerID uint64, name, description string) (*model.Playlist, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" && description == "" {
		return nil, fmt.Errorf("%w: provide at least a name or a description", ErrInvalidArgument)
	}

	playlist, err := s.ownedPlaylist(playlistID, callerID)
	if err != nil {
		return nil, err
	}

	// Missing fields keep their current values.
	if name == "" {
		name = playlist.Name
	}
	if description == "" {
		description = playlist.Description
	}
	if _, err := s.playlistRepo.Update(playlistID, map[string]interface{}{
		"name":        name,
		"description": description,
	}); err != nil {
		return nil, err
	}
	return s.playlistRepo.FindByID(playlistID)
}

func (s *playlistService) Delete(playlistID, callerID uint64) (*model.Playlist, error) {
	playlist, err := s.ownedPlaylist(playlistID, callerID)
	if err != nil {
		return nil, err
	}
	rows, err := s.playlistRepo.Delete(playlistID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: delete had no effect", ErrInternal)
	}
	return playlist, nil
}

// AddVideo rejects duplicates before mutating; the unique index backs the
// check up under concurrency.
func (s *playlistService) AddVideo(playlistID, videoID, callerID uint64) (*model.Playlist, []model.PlaylistVideo, error) {
	playlist, err := s.ownedPlaylist(playlistID, callerID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		return nil, nil, fmt.Errorf("%w: video does not exist", ErrNotFound)
	}

	present, err := s.playlistRepo.HasVideo(playlistID, videoID)
	if err != nil {
		return nil, nil, err
	}
	if present {
		return nil, nil, ErrAlreadyInPlaylist
	}

	if err := s.playlistRepo.AddVideo(playlistID, videoID); err != nil {
		if isDuplicateKey(err) {
			return nil, nil, ErrAlreadyInPlaylist
		}
		return nil, nil, err
	}

	videos, err := s.playlistRepo.ListVideos(playlistID)
	if err != nil {
		return nil, nil, err
	}
	return playlist, videos, nil
}

func (s *playlistService) RemoveVideo(playlistID, videoID, callerID uint64) (*model.Playlist, []model.PlaylistVideo, error) {
	playlist, err := s.ownedPlaylist(playlistID, callerID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		return nil, nil, fmt.Errorf("%w: video does not exist", ErrNotFound)
	}

	present, err := s.playlistRepo.HasVideo(playlistID, videoID)
	if err != nil {
		return nil, nil, err
	}
	if !present {
		return nil, nil, ErrNotInPlaylist
	}

	rows, err := s.playlistRepo.RemoveVideo(playlistID, videoID)
	if err != nil {
		return nil, nil, err
	}
	if rows == 0 {
		return nil, nil, fmt.Errorf("%w: remove had no effect", ErrInternal)
	}

	videos, err := s.playlistRepo.ListVideos(playlistID)
	if err != nil {
		return nil, nil, err
	}
	return playlist, videos, nil
}

// ownedPlaylist loads the playlist and enforces the owner-only rule shared by
// every playlist mutation.
func (s *playlistService) ownedPlaylist(playlistID, callerID uint64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.FindByID(playlistID)
	if err != nil {
		return nil, fmt.Errorf("%w: playlist does not exist", ErrNotFound)
	}
	if playlist.OwnerID != callerID {
		return nil, fmt.Errorf("%w: not the playlist owner", ErrPermissionDenied)
	}
	return playlist, nil
}
