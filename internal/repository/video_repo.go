package repository

import (
	"clipstream/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ListVideosParams are the resolved (already defaulted and whitelisted)
// listing arguments. SortBy is a column name, not a request parameter.
type ListVideosParams struct {
	Query    string
	OwnerID  uint64
	SortBy   string
	SortDesc bool
	Offset   int
	Limit    int
}

type VideoRepository interface {
	Create(video *model.Video) error
	FindByID(videoID uint64) (*model.Video, error)
	List(params ListVideosParams) ([]model.Video, int64, error)
	Update(videoID uint64, fields map[string]interface{}) (int64, error)
	Delete(videoID uint64) (int64, error)
	TogglePublish(videoID uint64) (int64, error)
	IncrementViews(videoID uint64) error

	GetVideoCache(videoID uint64) (*model.Video, error)
	SetVideoCache(video *model.Video) error
	InvalidateCache(videoID uint64) error

	WithTx(tx *gorm.DB) VideoRepository
}

type videoRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewVideoRepository(db *gorm.DB, rdb *redis.Client) VideoRepository {
	return &videoRepository{db: db, rdb: rdb}
}

// WithTx returns a copy bound to the transaction. The cache client is dropped
// on purpose: transactional work must not touch Redis.
func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{db: tx}
}

func (r *videoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

func (r *videoRepository) FindByID(videoID uint64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Owner").First(&video, videoID).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// List applies the substring filter over title OR description, the optional
// owner filter, sorting and offset/limit pagination, and returns the total
// match count alongside the page.
func (r *videoRepository) List(params ListVideosParams) ([]model.Video, int64, error) {
	q := r.db.Model(&model.Video{})
	if params.Query != "" {
		pattern := "%" + params.Query + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if params.OwnerID != 0 {
		q = q.Where("owner_id = ?", params.OwnerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	direction := "asc"
	if params.SortDesc {
		direction = "desc"
	}

	var videos []model.Video
	err := q.
		Preload("Owner").
		Order(fmt.Sprintf("%s %s", params.SortBy, direction)).
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}
	return videos, total, nil
}

func (r *videoRepository) Update(videoID uint64, fields map[string]interface{}) (int64, error) {
	res := r.db.Model(&model.Video{}).Where("id = ?", videoID).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *videoRepository) Delete(videoID uint64) (int64, error) {
	res := r.db.Delete(&model.Video{}, videoID)
	return res.RowsAffected, res.Error
}

func (r *videoRepository) TogglePublish(videoID uint64) (int64, error) {
	res := r.db.Model(&model.Video{}).Where("id = ?", videoID).
		UpdateColumn("is_published", gorm.Expr("NOT is_published"))
	return res.RowsAffected, res.Error
}

func (r *videoRepository) IncrementViews(videoID uint64) error {
	// Atomic in the database: UPDATE videos SET views = views + 1 WHERE id = ?
	return r.db.Model(&model.Video{}).Where("id = ?", videoID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *videoRepository) keyVideoInfo(videoID uint64) string {
	return fmt.Sprintf("video:info:%d", videoID)
}

// GetVideoCache returns (nil, nil) on a cache miss so callers can distinguish
// a miss from a Redis failure.
func (r *videoRepository) GetVideoCache(videoID uint64) (*model.Video, error) {
	if r.rdb == nil {
		return nil, nil
	}
	videoJSON, err := r.rdb.Get(context.Background(), r.keyVideoInfo(videoID)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	var video model.Video
	if err := json.Unmarshal([]byte(videoJSON), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) SetVideoCache(video *model.Video) error {
	if r.rdb == nil {
		return nil
	}
	videoJSON, err := json.Marshal(video)
	if err != nil {
		return err
	}
	// Jittered TTL so a batch of entries does not expire at once.
	expiration := time.Minute*5 + time.Duration(rand.Intn(60))*time.Second
	return r.rdb.Set(context.Background(), r.keyVideoInfo(video.ID), videoJSON, expiration).Err()
}

func (r *videoRepository) InvalidateCache(videoID uint64) error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Del(context.Background(), r.keyVideoInfo(videoID)).Err()
}
