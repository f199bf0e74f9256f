package handler

import (
	"net/http"
	"strconv"

	"clipstream/internal/dto"
	"clipstream/internal/service"
	"clipstream/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CommentHandler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type commentHandler struct {
	CommentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) CommentHandler {
	return &commentHandler{CommentService: commentService}
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *commentHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	videoID, err := strconv.ParseUint(c.Param("videoId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid video id")
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "content is required")
		return
	}

	comment, err := h.CommentService.Create(userID, videoID, req.Content)
	if err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Error("comment creation failed")
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusCreated, dto.ToCommentResponse(comment), "Comment added successfully")
}

func (h *commentHandler) List(c *gin.Context) {
	videoID, err := strconv.ParseUint(c.Param("videoId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid video id")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	comments, total, err := h.CommentService.List(videoID, page, limit)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToCommentPage(comments, total, page, limit), "Comments fetched successfully")
}

func (h *commentHandler) Update(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("commentId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid comment id")
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "content is required")
		return
	}

	comment, err := h.CommentService.Update(commentID, req.Content)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToCommentResponse(comment), "Comment updated successfully")
}

func (h *commentHandler) Delete(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("commentId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid comment id")
		return
	}

	comment, err := h.CommentService.Delete(commentID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	logger.Log.WithField("comment_id", commentID).Info("comment deleted")
	sendSuccess(c, http.StatusOK, dto.ToCommentResponse(comment), "Comment deleted successfully")
}
