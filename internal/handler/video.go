package handler

import (
	"net/http"
	"strconv"

	"clipstream/internal/dto"
	"clipstream/internal/service"
	"clipstream/pkg/logger"

	"github.com/gin-gonic/gin"
)

type VideoHandler interface {
	List(c *gin.Context)
	Publish(c *gin.Context)
	GetByID(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	TogglePublish(c *gin.Context)
}

type videoHandler struct {
	VideoService service.VideoService
}

func NewVideoHandler(videoService service.VideoService) VideoHandler {
	return &videoHandler{VideoService: videoService}
}

func (h *videoHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	ownerID, _ := strconv.ParseUint(c.Query("userId"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	videos, total, err := h.VideoService.List(service.ListVideosInput{
		Page:     page,
		Limit:    limit,
		Query:    c.Query("query"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
		OwnerID:  ownerID,
	})
	if err != nil {
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToVideoPage(videos, total, page, limit), "Videos fetched successfully")
}

// Publish accepts a multipart form with the video file, thumbnail and
// metadata. The optional duration field is overridden when the store can
// probe it.
func (h *videoHandler) Publish(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	duration, _ := strconv.ParseFloat(c.PostForm("duration"), 64)

	videoFile, _ := c.FormFile("videoFile")
	thumbnail, _ := c.FormFile("thumbnail")

	logCtx := logger.Log.WithField("user_id", userID).WithField("title", title)
	logCtx.Info("handling video publish")

	video, err := h.VideoService.Publish(c.Request.Context(), userID, title, description, duration, videoFile, thumbnail)
	if err != nil {
		logCtx.WithError(err).Error("video publish failed")
		sendServiceError(c, err)
		return
	}

	logCtx.WithField("video_id", video.ID).Info("video published")
	sendSuccess(c, http.StatusCreated, dto.ToVideoResponse(video), "Video published successfully")
}

func (h *videoHandler) GetByID(c *gin.Context) {
	videoID, err := strconv.ParseUint(c.Param("videoId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid video id")
		return
	}
	callerID, _ := currentUserID(c)

	detail, err := h.VideoService.GetDetail(videoID, callerID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	resp := dto.ToVideoDetailResponse(
		detail.Video,
		detail.TotalLikes,
		detail.IsLiked,
		detail.TotalSubscribers,
		detail.IsSubscribed,
	)
	sendSuccess(c, http.StatusOK, resp, "Video fetched successfully")
}

func (h *videoHandler) Update(c *gin.Context) {
	videoID, err := strconv.ParseUint(c.Param("videoId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid video id")
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	thumbnail, _ := c.FormFile("thumbnail")

	video, err := h.VideoService.Update(c.Request.Context(), videoID, title, description, thumbnail)
	if err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Error("video update failed")
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToVideoResponse(video), "Video updated successfully")
}

func (h *videoHandler) Delete(c *gin.Context) {
	videoID, err := strconv.ParseUint(c.Param("videoId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid video id")
		return
	}

	video, err := h.VideoService.Delete(videoID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	logger.Log.WithField("video_id", videoID).Info("video deleted")
	sendSuccess(c, http.StatusOK, dto.ToVideoResponse(video), "Video deleted successfully")
}

func (h *videoHandler) TogglePublish(c *gin.Context) {
	videoID, err := strconv.ParseUint(c.Param("videoId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid video id")
		return
	}

	video, err := h.VideoService.TogglePublish(videoID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToVideoResponse(video), "Publish status toggled successfully")
}
