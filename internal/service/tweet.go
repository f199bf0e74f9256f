package service

import (
	"fmt"
	"strings"

	"clipstream/internal/model"
	"clipstream/internal/repository"
)

type TweetService interface {
	Create(callerID uint64, content string) (*model.Tweet, error)
	GetUserTweets(userID, callerID uint64) ([]model.Tweet, error)
	Update(tweetID, callerID uint64, content string) (*model.Tweet, error)
	Delete(tweetID, callerID uint64) (*model.Tweet, error)
}

type tweetService struct {
	tweetRepo repository.TweetRepository
}

func NewTweetService(tweetRepo repository.TweetRepository) TweetService {
	return &tweetService{tweetRepo: tweetRepo}
}

func (s *tweetService) Create(callerID uint64, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidArgument)
	}
	tweet := &model.Tweet{OwnerID: callerID, Content: content}
	if err := s.tweetRepo.Create(tweet); err != nil {
		return nil, err
	}
	return s.tweetRepo.FindByID(tweet.ID)
}

// GetUserTweets only serves the caller's own tweets; reading another user's
// tweet list is rejected.
func (s *tweetService) GetUserTweets(userID, callerID uint64) ([]model.Tweet, error) {
	if userID != callerID {
		return nil, fmt.Errorf("%w: access denied", ErrPermissionDenied)
	}
	return s.tweetRepo.ListByOwner(userID)
}

func (s *tweetService) Update(tweetID, callerID uint64, content string) (*model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidArgument)
	}
	tweet, err := s.tweetRepo.FindByID(tweetID)
	if err != nil {
		return nil, fmt.Errorf("%w: tweet does not exist", ErrNotFound)
	}
	if tweet.OwnerID != callerID {
		return nil, fmt.Errorf("%w: not the tweet owner", ErrPermissionDenied)
	}
	if _, err := s.tweetRepo.Update(tweetID, content); err != nil {
		return nil, err
	}
	return s.tweetRepo.FindByID(tweetID)
}

func (s *tweetService) Delete(tweetID, callerID uint64) (*model.Tweet, error) {
	tweet, err := s.tweetRepo.FindByID(tweetID)
	if err != nil {
		return nil, fmt.Errorf("%w: tweet does not exist", ErrNotFound)
	}
	if tweet.OwnerID != callerID {
		return nil, fmt.Errorf("%w: not the tweet owner", ErrPermissionDenied)
	}
	rows, err := s.tweetRepo.Delete(tweetID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: delete had no effect", ErrInternal)
	}
	return tweet, nil
}
