package dto

import (
	"clipstream/internal/model"
	"time"
)

type CommentResponse struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	VideoID   uint64    `json:"video_id"`
	Owner     OwnerInfo `json:"owner"`
}

func ToCommentResponse(comment *model.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		VideoID:   comment.VideoID,
	}
	if comment.Owner.ID != 0 {
		resp.Owner = ToOwnerInfo(&comment.Owner)
	} else {
		resp.Owner.ID = comment.OwnerID
	}
	return resp
}

// CommentPage uses the label pair this endpoint has always exposed
// (total_comments / Comments).
type CommentPage struct {
	TotalComments int64             `json:"total_comments"`
	Comments      []CommentResponse `json:"Comments"`
	Page          int               `json:"page"`
	Limit         int               `json:"limit"`
	TotalPages    int64             `json:"totalPages"`
}

func ToCommentPage(comments []model.Comment, total int64, page, limit int) CommentPage {
	list := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		list = append(list, ToCommentResponse(&comments[i]))
	}
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return CommentPage{
		TotalComments: total,
		Comments:      list,
		Page:          page,
		Limit:         limit,
		TotalPages:    totalPages,
	}
}
