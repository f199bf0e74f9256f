package dto

import (
	"clipstream/internal/model"
	"time"
)

type TweetResponse struct {
	ID        uint64    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Owner     OwnerInfo `json:"owner"`
}

func ToTweetResponse(tweet *model.Tweet) TweetResponse {
	resp := TweetResponse{
		ID:        tweet.ID,
		Content:   tweet.Content,
		CreatedAt: tweet.CreatedAt,
	}
	if tweet.Owner.ID != 0 {
		resp.Owner = ToOwnerInfo(&tweet.Owner)
	} else {
		resp.Owner.ID = tweet.OwnerID
	}
	return resp
}

func ToTweetResponses(tweets []model.Tweet) []TweetResponse {
	out := make([]TweetResponse, 0, len(tweets))
	for i := range tweets {
		out = append(out, ToTweetResponse(&tweets[i]))
	}
	return out
}
