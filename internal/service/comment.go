package service

import (
	"fmt"
	"strings"

	"clipstream/internal/model"
	"clipstream/internal/repository"
)

type CommentService interface {
	Create(callerID, videoID uint64, content string) (*model.Comment, error)
	List(videoID uint64, page, limit int) ([]model.Comment, int64, error)
	Update(commentID uint64, content string) (*model.Comment, error)
	Delete(commentID uint64) (*model.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
	}
}

func (s *commentService) Create(callerID, videoID uint64, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidArgument)
	}
	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		return nil, fmt.Errorf("%w: video does not exist", ErrNotFound)
	}

	comment := &model.Comment{
		VideoID: videoID,
		OwnerID: callerID,
		Content: content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	// Reload so the owner association is populated for the response.
	return s.commentRepo.FindByID(comment.ID)
}

// List pages a video's comments. Zero comments is an error by contract, not
// an empty page.
func (s *commentService) List(videoID uint64, page, limit int) ([]model.Comment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		return nil, 0, fmt.Errorf("%w: video does not exist", ErrNotFound)
	}

	comments, total, err := s.commentRepo.ListByVideo(videoID, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, fmt.Errorf("%w: video has zero comments", ErrNotFound)
	}
	return comments, total, nil
}

func (s *commentService) Update(commentID uint64, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidArgument)
	}
	rows, err := s.commentRepo.Update(commentID, content)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		if _, err := s.commentRepo.FindByID(commentID); err != nil {
			return nil, fmt.Errorf("%w: comment does not exist", ErrNotFound)
		}
	}
	return s.commentRepo.FindByID(commentID)
}

func (s *commentService) Delete(commentID uint64) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		return nil, fmt.Errorf("%w: comment does not exist", ErrNotFound)
	}
	rows, err := s.commentRepo.Delete(commentID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: delete had no effect", ErrInternal)
	}
	return comment, nil
}
