package handler

import (
	"net/http"
	"strconv"

	"clipstream/internal/dto"
	"clipstream/internal/service"
	"clipstream/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler interface {
	Create(c *gin.Context)
	GetUserPlaylists(c *gin.Context)
	GetByID(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	AddVideo(c *gin.Context)
	RemoveVideo(c *gin.Context)
}

type playlistHandler struct {
	PlaylistService service.PlaylistService
}

func NewPlaylistHandler(playlistService service.PlaylistService) PlaylistHandler {
	return &playlistHandler{PlaylistService: playlistService}
}

type CreatePlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func (h *playlistHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "name and description are required")
		return
	}

	playlist, err := h.PlaylistService.Create(userID, req.Name, req.Description)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("playlist creation failed")
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusCreated, dto.ToPlaylistResponse(playlist, nil), "Playlist created successfully")
}

func (h *playlistHandler) GetUserPlaylists(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	playlists, err := h.PlaylistService.GetUserPlaylists(userID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToPlaylistResponses(playlists), "Playlists fetched successfully")
}

func (h *playlistHandler) GetByID(c *gin.Context) {
	playlistID, err := strconv.ParseUint(c.Param("playlistId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid playlist id")
		return
	}

	playlist, videos, err := h.PlaylistService.GetDetail(playlistID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToPlaylistResponse(playlist, videos), "Playlist fetched successfully")
}

type UpdatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *playlistHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	playlistID, err := strconv.ParseUint(c.Param("playlistId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid playlist id")
		return
	}
	var req UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	playlist, err := h.PlaylistService.Update(playlistID, userID, req.Name, req.Description)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToPlaylistResponse(playlist, nil), "Playlist updated successfully")
}

func (h *playlistHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	playlistID, err := strconv.ParseUint(c.Param("playlistId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid playlist id")
		return
	}

	playlist, err := h.PlaylistService.Delete(playlistID, userID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	logger.Log.WithField("playlist_id", playlistID).Info("playlist deleted")
	sendSuccess(c, http.StatusOK, dto.ToPlaylistResponse(playlist, nil), "Playlist deleted successfully")
}

func (h *playlistHandler) AddVideo(c *gin.Context) {
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
	playlistID, err := strconv.ParseUint(c.Param("playlistId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid playlist id")
		return
	}

	playlist, videos, err := h.PlaylistService.AddVideo(playlistID, videoID, userID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToPlaylistResponse(playlist, videos), "Video added to playlist")
}

func (h *playlistHandler) RemoveVideo(c *gin.Context) {
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
	playlistID, err := strconv.ParseUint(c.Param("playlistId"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "invalid playlist id")
		return
	}

	playlist, videos, err := h.PlaylistService.RemoveVideo(playlistID, videoID, userID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToPlaylistResponse(playlist, videos), "Video removed from playlist")
}
