package dto

import (
	"clipstream/internal/model"
	"time"
)

// OwnerInfo is the compact user projection embedded in joined responses.
type OwnerInfo struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Avatar   string `json:"avatar"`
}

func ToOwnerInfo(user *model.User) OwnerInfo {
	if user == nil || user.ID == 0 {
		return OwnerInfo{}
	}
	return OwnerInfo{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Avatar:   user.Avatar,
	}
}

// UserResponse is the full public projection. Password and refresh token
// never leave the service.
type UserResponse struct {
	ID         uint64    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Avatar:     user.Avatar,
		CoverImage: user.CoverImage,
		CreatedAt:  user.CreatedAt,
	}
}

// ChannelProfileResponse augments the public projection with subscription
// aggregates relative to the caller.
type ChannelProfileResponse struct {
	UserResponse
	SubscribersCount          int64 `json:"subscribersCount"`
	ChannelsSubscribedToCount int64 `json:"channelsSubscribedToCount"`
	IsSubscribed              bool  `json:"isSubscribed"`
}

func ToChannelProfileResponse(user *model.User, subscribers, subscribedTo int64, isSubscribed bool) ChannelProfileResponse {
	return ChannelProfileResponse{
		UserResponse:              ToUserResponse(user),
		SubscribersCount:          subscribers,
		ChannelsSubscribedToCount: subscribedTo,
		IsSubscribed:              isSubscribed,
	}
}
