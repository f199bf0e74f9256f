package service

import (
	"errors"
	"fmt"

	"clipstream/internal/model"
	"clipstream/internal/repository"

	"gorm.io/gorm"
)

type LikeService interface {
	// Toggle creates the like if absent and deletes it if present, returning
	// whether the target is liked after the call.
	Toggle(callerID uint64, targetKind string, targetID uint64) (bool, error)
	ListLikedVideos(callerID uint64) ([]model.Video, error)
}

type likeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
}

func NewLikeService(likeRepo repository.LikeRepository, videoRepo repository.VideoRepository, commentRepo repository.CommentRepository, tweetRepo repository.TweetRepository) LikeService {
	return &likeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

// Toggle is find-then-act for the common case, but the unique index on
// (like_by_id, target_kind, target_id) is what actually guarantees one row
// per pair: a racing create loses with a duplicate-key error and the state
// is simply "liked".
func (s *likeService) Toggle(callerID uint64, targetKind string, targetID uint64) (bool, error) {
	if err := s.checkTarget(targetKind, targetID); err != nil {
		return false, err
	}

	existing, err := s.likeRepo.Find(callerID, targetKind, targetID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if existing != nil {
		rows, err := s.likeRepo.DeleteByID(existing.ID)
		if err != nil {
			return false, err
		}
		if rows == 0 {
			// Concurrent toggle already removed it; state is unliked either way.
			return false, nil
		}
		return false, nil
	}

	like := &model.Like{
		LikeByID:   callerID,
		TargetKind: targetKind,
		TargetID:   targetID,
	}
	if err := s.likeRepo.Create(like); err != nil {
		if isDuplicateKey(err) {
			// Lost the race against an identical toggle; the like exists.
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (s *likeService) ListLikedVideos(callerID uint64) ([]model.Video, error) {
	return s.likeRepo.ListVideosLikedBy(callerID)
}

func (s *likeService) checkTarget(targetKind string, targetID uint64) error {
	var err error
	switch targetKind {
	case model.LikeTargetVideo:
		_, err = s.videoRepo.FindByID(targetID)
	case model.LikeTargetComment:
		_, err = s.commentRepo.FindByID(targetID)
	case model.LikeTargetTweet:
		_, err = s.tweetRepo.FindByID(targetID)
	default:
		return fmt.Errorf("%w: unknown like target %q", ErrInvalidArgument, targetKind)
	}
	if err != nil {
		return fmt.Errorf("%w: %s does not exist", ErrNotFound, targetKind)
	}
	return nil
}
