package dto

import (
	"clipstream/internal/model"
	"time"
)

type VideoResponse struct {
	ID          uint64    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       uint64    `json:"views"`
	IsPublished bool      `json:"isPublished"`
	Owner       OwnerInfo `json:"owner"`
}

func ToVideoResponse(video *model.Video) VideoResponse {
	resp := VideoResponse{
		ID:          video.ID,
		CreatedAt:   video.CreatedAt,
		Title:       video.Title,
		Description: video.Description,
		VideoURL:    video.VideoURL,
		Thumbnail:   video.Thumbnail,
		Duration:    video.Duration,
		Views:       video.Views,
		IsPublished: video.IsPublished,
	}
	if video.Owner.ID != 0 {
		resp.Owner = ToOwnerInfo(&video.Owner)
	} else {
		resp.Owner.ID = video.OwnerID
	}
	return resp
}

func ToVideoResponses(videos []model.Video) []VideoResponse {
	out := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		out = append(out, ToVideoResponse(&videos[i]))
	}
	return out
}

// VideoPage carries the listing labels this endpoint historically used.
type VideoPage struct {
	TotalVideos int64           `json:"totalVideos"`
	Videos      []VideoResponse `json:"videos"`
	Page        int             `json:"page"`
	Limit       int             `json:"limit"`
	TotalPages  int64           `json:"totalPages"`
}

func ToVideoPage(videos []model.Video, total int64, page, limit int) VideoPage {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return VideoPage{
		TotalVideos: total,
		Videos:      ToVideoResponses(videos),
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
	}
}

// VideoDetailResponse is the denormalized single-video view. TotalLikes keeps
// its historical capitalisation.
type VideoDetailResponse struct {
	VideoResponse
	UploadedBy       OwnerInfo `json:"uploadedBy"`
	TotalLikes       int64     `json:"TotalLikes"`
	IsLiked          bool      `json:"isLiked"`
	TotalSubscribers int64     `json:"totalSubscribers"`
	IsSubscribed     bool      `json:"isSubscribed"`
}

func ToVideoDetailResponse(video *model.Video, totalLikes int64, isLiked bool, totalSubscribers int64, isSubscribed bool) VideoDetailResponse {
	return VideoDetailResponse{
		VideoResponse:    ToVideoResponse(video),
		UploadedBy:       ToOwnerInfo(&video.Owner),
		TotalLikes:       totalLikes,
		IsLiked:          isLiked,
		TotalSubscribers: totalSubscribers,
		IsSubscribed:     isSubscribed,
	}
}

// WatchHistoryResponse lists watched videos newest first.
func ToWatchHistoryResponse(entries []model.WatchEntry) []VideoResponse {
	out := make([]VideoResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToVideoResponse(&entries[i].Video))
	}
	return out
}
