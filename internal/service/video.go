package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"clipstream/internal/model"
	"clipstream/internal/repository"
	"clipstream/pkg/logger"
	"clipstream/pkg/storage"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Sort fields the list endpoint accepts, mapped to column names. Anything
// else falls back to createdAt so user input never reaches the ORDER BY raw.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}

// ListVideosInput is the unvalidated query surface of the list endpoint.
type ListVideosInput struct {
	Page     int
	Limit    int
	Query    string
	SortBy   string
	SortType string // "asc"/"1" ascending, anything else descending
	OwnerID  uint64
}

// VideoDetail is the denormalized single-video view: the row plus like and
// subscription aggregates relative to the caller.
type VideoDetail struct {
	Video            *model.Video
	TotalLikes       int64
	IsLiked          bool
	TotalSubscribers int64
	IsSubscribed     bool
}

type VideoService interface {
	List(input ListVideosInput) ([]model.Video, int64, error)
	Publish(ctx context.Context, ownerID uint64, title, description string, duration float64, videoFile, thumbnail *multipart.FileHeader) (*model.Video, error)
	GetDetail(videoID, callerID uint64) (*VideoDetail, error)
	Update(ctx context.Context, videoID uint64, title, description string, thumbnail *multipart.FileHeader) (*model.Video, error)
	Delete(videoID uint64) (*model.Video, error)
	TogglePublish(videoID uint64) (*model.Video, error)
}

type videoService struct {
	sf singleflight.Group

	videoRepo repository.VideoRepository
	likeRepo  repository.LikeRepository
	subRepo   repository.SubscriptionRepository
	assets    storage.AssetStore
	views     ViewPublisher
}

func NewVideoService(videoRepo repository.VideoRepository, likeRepo repository.LikeRepository, subRepo repository.SubscriptionRepository, assets storage.AssetStore, views ViewPublisher) VideoService {
	return &videoService{
		videoRepo: videoRepo,
		likeRepo:  likeRepo,
		subRepo:   subRepo,
		assets:    assets,
		views:     views,
	}
}

// List resolves defaults, whitelists the sort field and returns one page.
// An empty page is NotFound by contract.
func (s *videoService) List(input ListVideosInput) ([]model.Video, int64, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}

	column, ok := sortColumns[input.SortBy]
	if !ok {
		column = "created_at"
	}
	desc := input.SortType != "asc" && input.SortType != "1"

	videos, total, err := s.videoRepo.List(repository.ListVideosParams{
		Query:    input.Query,
		OwnerID:  input.OwnerID,
		SortBy:   column,
		SortDesc: desc,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	})
	if err != nil {
		return nil, 0, err
	}
	if len(videos) == 0 {
		return nil, 0, fmt.Errorf("%w: no video found", ErrNotFound)
	}
	return videos, total, nil
}

// Publish uploads both assets before touching the database; an upload failure
// aborts with nothing persisted.
func (s *videoService) Publish(ctx context.Context, ownerID uint64, title, description string, duration float64, videoFile, thumbnail *multipart.FileHeader) (*model.Video, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	if videoFile == nil {
		return nil, fmt.Errorf("%w: video file is required", ErrInvalidArgument)
	}
	if thumbnail == nil {
		return nil, fmt.Errorf("%w: thumbnail file is required", ErrInvalidArgument)
	}

	uploadedVideo, err := s.assets.Upload(ctx, videoFile)
	if err != nil {
		return nil, fmt.Errorf("%w: video file", ErrUploadFailed)
	}
	uploadedThumb, err := s.assets.Upload(ctx, thumbnail)
	if err != nil {
		return nil, fmt.Errorf("%w: thumbnail", ErrUploadFailed)
	}

	if uploadedVideo.Duration > 0 {
		duration = uploadedVideo.Duration
	}

	video := &model.Video{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		VideoURL:    uploadedVideo.URL,
		Thumbnail:   uploadedThumb.URL,
		Duration:    duration,
		IsPublished: true,
	}
	if err := s.videoRepo.Create(video); err != nil {
		return nil, err
	}
	return video, nil
}

// GetDetail loads the base row (cache first, singleflight on miss), computes
// the like/subscription aggregates and fires the asynchronous view event.
func (s *videoService) GetDetail(videoID, callerID uint64) (*VideoDetail, error) {
	video, err := s.loadVideo(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: video does not exist", ErrNotFound)
		}
		return nil, err
	}

	totalLikes, err := s.likeRepo.CountFor(model.LikeTargetVideo, videoID)
	if err != nil {
		return nil, err
	}
	isLiked := false
	if callerID != 0 {
		isLiked, err = s.likeRepo.Exists(callerID, model.LikeTargetVideo, videoID)
		if err != nil {
			return nil, err
		}
	}

	totalSubscribers, err := s.subRepo.CountByChannel(video.OwnerID)
	if err != nil {
		return nil, err
	}
	isSubscribed := false
	if callerID != 0 {
		isSubscribed, err = s.subRepo.Exists(callerID, video.OwnerID)
		if err != nil {
			return nil, err
		}
	}

	// Views and watch history are persisted out of band; a broker hiccup
	// must not fail the read.
	if s.views != nil && callerID != 0 {
		if err := s.views.PublishView(ViewMessage{UserID: callerID, VideoID: videoID}); err != nil {
			logger.Log.WithError(err).
				WithField("video_id", videoID).
				Warn("failed to publish view event")
		}
	}

	return &VideoDetail{
		Video:            video,
		TotalLikes:       totalLikes,
		IsLiked:          isLiked,
		TotalSubscribers: totalSubscribers,
		IsSubscribed:     isSubscribed,
	}, nil
}

// loadVideo is the cache-aside read with singleflight collapsing concurrent
// misses for the same video into one database query.
func (s *videoService) loadVideo(videoID uint64) (*model.Video, error) {
	cached, err := s.videoRepo.GetVideoCache(videoID)
	if err == nil && cached != nil {
		return cached, nil
	}
	if err != nil {
		logger.Log.WithError(err).Warn("video cache read failed")
	}

	key := fmt.Sprintf("get_video_%d", videoID)
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		dbVideo, dbErr := s.videoRepo.FindByID(videoID)
		if dbErr != nil {
			return nil, dbErr
		}
		_ = s.videoRepo.SetVideoCache(dbVideo)
		return dbVideo, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Video), nil
}

func (s *videoService) Update(ctx context.Context, videoID uint64, title, description string, thumbnail *multipart.FileHeader) (*model.Video, error) {
	if title == "" && description == "" && thumbnail == nil {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidArgument)
	}

	current, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		return nil, fmt.Errorf("%w: video does not exist", ErrNotFound)
	}

	fields := map[string]interface{}{}
	if title != "" {
		fields["title"] = title
	}
	if description != "" {
		fields["description"] = description
	}

	var oldThumbnail string
	if thumbnail != nil {
		uploaded, err := s.assets.Upload(ctx, thumbnail)
		if err != nil {
			return nil, fmt.Errorf("%w: thumbnail", ErrUploadFailed)
		}
		fields["thumbnail"] = uploaded.URL
		oldThumbnail = current.Thumbnail
	}

	if _, err := s.videoRepo.Update(videoID, fields); err != nil {
		return nil, err
	}
	_ = s.videoRepo.InvalidateCache(videoID)

	if oldThumbnail != "" {
		if err := s.assets.Delete(ctx, oldThumbnail); err != nil {
			logger.Log.WithError(err).WithField("url", oldThumbnail).Warn("failed to delete replaced thumbnail")
		}
	}

	return s.videoRepo.FindByID(videoID)
}

func (s *videoService) Delete(videoID uint64) (*model.Video, error) {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		return nil, fmt.Errorf("%w: video does not exist", ErrNotFound)
	}
	rows, err := s.videoRepo.Delete(videoID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: delete had no effect", ErrInternal)
	}
	_ = s.videoRepo.InvalidateCache(videoID)
	return video, nil
}

func (s *videoService) TogglePublish(videoID uint64) (*model.Video, error) {
	rows, err := s.videoRepo.TogglePublish(videoID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: video does not exist", ErrNotFound)
	}
	_ = s.videoRepo.InvalidateCache(videoID)
	return s.videoRepo.FindByID(videoID)
}
