package handler

import (
	"net/http"
	"strconv"

	"clipstream/internal/dto"
	"clipstream/internal/model"
	"clipstream/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler interface {
	ToggleVideoLike(c *gin.Context)
	ToggleCommentLike(c *gin.Context)
	ToggleTweetLike(c *gin.Context)
	ListLikedVideos(c *gin.Context)
}

type likeHandler struct {
	LikeService service.LikeService
}

func NewLikeHandler(likeService service.LikeService) LikeHandler {
	return &likeHandler{LikeService: likeService}
}

func (h *likeHandler) ToggleVideoLike(c *gin.Context) {
	h.toggle(c, model.LikeTargetVideo, "videoId")
}

func (h *likeHandler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, model.LikeTargetComment, "commentId")
}

func (h *likeHandler) ToggleTweetLike(c *gin.Context) {
	h.toggle(c, model.LikeTargetTweet, "tweetId")
}

// toggle is shared by the three like endpoints; only the target kind and the
// route parameter name differ.
func (h *likeHandler) toggle(c *gin.Context, targetKind, paramName string) {
	userID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	targetID, err := strconv.ParseUint(c.Param(paramName), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid "+targetKind+" id")
		return
	}

	liked, err := h.LikeService.Toggle(userID, targetKind, targetID)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	message := "Like removed successfully"
	if liked {
		message = "Liked successfully"
	}
	sendSuccess(c, http.StatusOK, gin.H{"isLiked": liked}, message)
}

func (h *likeHandler) ListLikedVideos(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	videos, err := h.LikeService.ListLikedVideos(userID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToVideoResponses(videos), "Liked videos fetched successfully")
}
