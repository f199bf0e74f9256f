package repository

import (
	"clipstream/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(userID uint64) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Update(userID uint64, fields map[string]interface{}) (int64, error)
	UpdateRefreshToken(userID uint64, token string) error

	AddWatchEntry(userID, videoID uint64) error
	GetWatchHistory(userID uint64) ([]model.WatchEntry, error)

	WithTx(tx *gorm.DB) UserRepository
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// WithTx returns a copy bound to the given transaction.
func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(userID uint64) (*model.User, error) {
	var result model.User
	err := r.db.First(&result, userID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	var result model.User
	err := r.db.Where("username = ?", username).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var result model.User
	err := r.db.Where("email = ?", email).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *userRepository) Update(userID uint64, fields map[string]interface{}) (int64, error) {
	res := r.db.Model(&model.User{}).Where("id = ?", userID).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *userRepository) UpdateRefreshToken(userID uint64, token string) error {
	return r.db.Model(&model.User{}).Where("id = ?", userID).Update("refresh_token", token).Error
}

func (r *userRepository) AddWatchEntry(userID, videoID uint64) error {
	return r.db.Create(&model.WatchEntry{UserID: userID, VideoID: videoID}).Error
}

// GetWatchHistory returns the caller's entries newest first, each with the
// video and its owner preloaded for the owner summary projection.
func (r *userRepository) GetWatchHistory(userID uint64) ([]model.WatchEntry, error) {
	var entries []model.WatchEntry
	err := r.db.
		Preload("Video").
		Preload("Video.Owner").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&entries).Error
	return entries, err
}
