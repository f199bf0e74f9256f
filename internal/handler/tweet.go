package handler

import (
	"net/http"
	"strconv"

	"clipstream/internal/dto"
	"clipstream/internal/service"
	"clipstream/pkg/logger"

	"github.com/gin-gonic/gin"
)

type TweetHandler interface {
	Create(c *gin.Context)
	GetUserTweets(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type tweetHandler struct {
	TweetService service.TweetService
}

func NewTweetHandler(tweetService service.TweetService) TweetHandler {
	return &tweetHandler{TweetService: tweetService}
}

type TweetRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *tweetHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "content is required")
		return
	}

	tweet, err := h.TweetService.Create(userID, req.Content)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("tweet creation failed")
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusCreated, dto.ToTweetResponse(tweet), "Tweet created successfully")
}

func (h *tweetHandler) GetUserTweets(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	tweets, err := h.TweetService.GetUserTweets(userID, callerID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToTweetResponses(tweets), "Tweets fetched successfully")
}

func (h *tweetHandler) Update(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	tweetID, err := strconv.ParseUint(c.Param("tweetId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid tweet id")
		return
	}
	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "content is required")
		return
	}

	tweet, err := h.TweetService.Update(tweetID, callerID, req.Content)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToTweetResponse(tweet), "Tweet updated successfully")
}

func (h *tweetHandler) Delete(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	tweetID, err := strconv.ParseUint(c.Param("tweetId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid tweet id")
		return
	}

	tweet, err := h.TweetService.Delete(tweetID, callerID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	logger.Log.WithField("tweet_id", tweetID).Info("tweet deleted")
	sendSuccess(c, http.StatusOK, dto.ToTweetResponse(tweet), "Tweet deleted successfully")
}
