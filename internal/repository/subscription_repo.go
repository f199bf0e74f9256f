package repository

import (
	"clipstream/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(sub *model.Subscription) error
	Find(subscriberID, channelID uint64) (*model.Subscription, error)
	DeleteByID(subID uint64) (int64, error)
	Exists(subscriberID, channelID uint64) (bool, error)
	CountByChannel(channelID uint64) (int64, error)
	CountBySubscriber(subscriberID uint64) (int64, error)
	ListSubscribers(channelID uint64) ([]model.Subscription, error)
	ListChannels(subscriberID uint64) ([]model.Subscription, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create relies on idx_sub_channel: a concurrent duplicate surfaces as a
// MySQL 1062 error instead of a second row.
func (r *subscriptionRepository) Create(sub *model.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *subscriptionRepository) Find(subscriberID, channelID uint64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// DeleteByID removes the row for real. A gorm soft delete keeps it inside
// idx_sub_channel and blocks the pair from ever resubscribing.
func (r *subscriptionRepository) DeleteByID(subID uint64) (int64, error) {
	res := r.db.Exec("DELETE FROM subscriptions WHERE id = ?", subID)
	return res.RowsAffected, res.Error
}

func (r *subscriptionRepository) Exists(subscriberID, channelID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

func (r *subscriptionRepository) CountByChannel(channelID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) CountBySubscriber(subscriberID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ?", subscriberID).
		Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) ListSubscribers(channelID uint64) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.db.
		Preload("Subscriber").
		Where("channel_id = ?", channelID).
		Find(&subs).Error
	return subs, err
}

func (r *subscriptionRepository) ListChannels(subscriberID uint64) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.db.
		Preload("Channel").
		Where("subscriber_id = ?", subscriberID).
		Find(&subs).Error
	return subs, err
}
