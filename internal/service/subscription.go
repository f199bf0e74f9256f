package service

import (
	"errors"
	"fmt"

	"clipstream/internal/model"
	"clipstream/internal/repository"

	"gorm.io/gorm"
)

type SubscriptionService interface {
	// Toggle subscribes if absent, unsubscribes if present, returning whether
	// the caller is subscribed after the call.
	Toggle(callerID, channelID uint64) (bool, error)
	ListSubscribers(channelID uint64) ([]model.Subscription, error)
	ListChannels(subscriberID uint64) ([]model.Subscription, error)
}

type subscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository) SubscriptionService {
	return &subscriptionService{
		subRepo:  subRepo,
		userRepo: userRepo,
	}
}

// Toggle mirrors the like toggle: the unique (subscriber, channel) index is
// the real guard, duplicate-key means a racing call already subscribed.
func (s *subscriptionService) Toggle(callerID, channelID uint64) (bool, error) {
	if _, err := s.userRepo.FindByID(channelID); err != nil {
		return false, fmt.Errorf("%w: channel does not exist", ErrNotFound)
	}

	existing, err := s.subRepo.Find(callerID, channelID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if existing != nil {
		rows, err := s.subRepo.DeleteByID(existing.ID)
		if err != nil {
			return false, err
		}
		if rows == 0 {
			// Concurrent toggle already removed it; state is unsubscribed either way.
			return false, nil
		}
		return false, nil
	}

	sub := &model.Subscription{SubscriberID: callerID, ChannelID: channelID}
	if err := s.subRepo.Create(sub); err != nil {
		if isDuplicateKey(err) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// ListSubscribers treats an empty subscriber list as NotFound by contract.
func (s *subscriptionService) ListSubscribers(channelID uint64) ([]model.Subscription, error) {
	if _, err := s.userRepo.FindByID(channelID); err != nil {
		return nil, fmt.Errorf("%w: channel does not exist", ErrNotFound)
	}
	subs, err := s.subRepo.ListSubscribers(channelID)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, fmt.Errorf("%w: this channel has no subscribers", ErrNotFound)
	}
	return subs, nil
}

func (s *subscriptionService) ListChannels(subscriberID uint64) ([]model.Subscription, error) {
	if _, err := s.userRepo.FindByID(subscriberID); err != nil {
		return nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
	}
	subs, err := s.subRepo.ListChannels(subscriberID)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, fmt.Errorf("%w: no subscribed channels", ErrNotFound)
	}
	return subs, nil
}
