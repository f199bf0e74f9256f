package dto

import (
	"clipstream/internal/model"
	"time"
)

// PlaylistVideoSummary is the member-video projection inside a playlist.
type PlaylistVideoSummary struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Thumbnail   string  `json:"thumbnail"`
	Duration    float64 `json:"duration"`
	Views       uint64  `json:"views"`
	IsPublished bool    `json:"isPublished"`
}

type PlaylistResponse struct {
	ID          uint64                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	CreatedAt   time.Time              `json:"created_at"`
	Owner       OwnerInfo              `json:"owner"`
	Videos      []PlaylistVideoSummary `json:"videos"`
}

func ToPlaylistResponse(playlist *model.Playlist, entries []model.PlaylistVideo) PlaylistResponse {
	resp := PlaylistResponse{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		CreatedAt:   playlist.CreatedAt,
		Videos:      make([]PlaylistVideoSummary, 0, len(entries)),
	}
	if playlist.Owner.ID != 0 {
		resp.Owner = ToOwnerInfo(&playlist.Owner)
	} else {
		resp.Owner.ID = playlist.OwnerID
	}
	for i := range entries {
		v := entries[i].Video
		resp.Videos = append(resp.Videos, PlaylistVideoSummary{
			ID:          v.ID,
			Title:       v.Title,
			Description: v.Description,
			Thumbnail:   v.Thumbnail,
			Duration:    v.Duration,
			Views:       v.Views,
			IsPublished: v.IsPublished,
		})
	}
	return resp
}

func ToPlaylistResponses(playlists []model.Playlist) []PlaylistResponse {
	out := make([]PlaylistResponse, 0, len(playlists))
	for i := range playlists {
		out = append(out, ToPlaylistResponse(&playlists[i], nil))
	}
	return out
}
