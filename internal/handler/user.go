package handler

import (
	"net/http"

	"clipstream/internal/dto"
	"clipstream/internal/service"
	"clipstream/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	RefreshToken(c *gin.Context)
	ChangePassword(c *gin.Context)
	GetCurrentUser(c *gin.Context)
	UpdateAccount(c *gin.Context)
	UpdateAvatar(c *gin.Context)
	UpdateCoverImage(c *gin.Context)
	GetChannelProfile(c *gin.Context)
	GetWatchHistory(c *gin.Context)
}

type userHandler struct {
	UserService service.UserService
}

func NewUserHandler(userService service.UserService) UserHandler {
	return &userHandler{UserService: userService}
}

// Register handles the multipart registration form: text fields plus the
// avatar (required) and coverImage (optional) files.
func (h *userHandler) Register(c *gin.Context) {
	input := service.RegisterInput{
		Username: c.PostForm("username"),
		Email:    c.PostForm("email"),
		FullName: c.PostForm("fullName"),
		Password: c.PostForm("password"),
	}
	if file, err := c.FormFile("avatar"); err == nil {
		input.Avatar = file
	}
	if file, err := c.FormFile("coverImage"); err == nil {
		input.CoverImage = file
	}

	logCtx := logger.Log.WithField("username", input.Username)
	logCtx.Info("handling user registration")

	user, err := h.UserService.Register(c.Request.Context(), input)
	if err != nil {
		logCtx.WithError(err).Error("user registration failed")
		sendServiceError(c, err)
		return
	}

	logCtx.WithField("user_id", user.ID).Info("user registered")
	sendSuccess(c, http.StatusCreated, dto.ToUserResponse(user), "User registered successfully")
}

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

func (h *userHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Error("login request binding failed")
		sendErrorResponse(c, http.StatusBadRequest, "identifier and password are required")
		return
	}

	logCtx := logger.Log.WithField("identifier", req.Identifier)

	user, pair, err := h.UserService.Login(req.Identifier, req.Password)
	if err != nil {
		logCtx.WithError(err).Warn("login failed")
		sendServiceError(c, err)
		return
	}

	// Cookies for browser clients; the body carries the same pair for others.
	c.SetCookie("accessToken", pair.AccessToken, 24*3600, "/", "", true, true)
	c.SetCookie("refreshToken", pair.RefreshToken, 10*24*3600, "/", "", true, true)

	logCtx.WithField("user_id", user.ID).Info("user logged in")
	sendSuccess(c, http.StatusOK, gin.H{
		"user":         dto.ToUserResponse(user),
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "User logged in successfully")
}

func (h *userHandler) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	if err := h.UserService.Logout(userID); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("logout failed")
		sendServiceError(c, err)
		return
	}

	c.SetCookie("accessToken", "", -1, "/", "", true, true)
	c.SetCookie("refreshToken", "", -1, "/", "", true, true)
	sendSuccess(c, http.StatusOK, gin.H{}, "User logged out successfully")
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken rotates the session pair. The token comes from the cookie or,
// failing that, the request body.
func (h *userHandler) RefreshToken(c *gin.Context) {
	incoming, _ := c.Cookie("refreshToken")
	if incoming == "" {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			incoming = req.RefreshToken
		}
	}
	if incoming == "" {
		sendErrorResponse(c, http.StatusUnauthorized, "refresh token is required")
		return
	}

	pair, err := h.UserService.RefreshTokens(incoming)
	if err != nil {
		logger.Log.WithError(err).Warn("refresh token rotation failed")
		sendServiceError(c, err)
		return
	}

	c.SetCookie("accessToken", pair.AccessToken, 24*3600, "/", "", true, true)
	c.SetCookie("refreshToken", pair.RefreshToken, 10*24*3600, "/", "", true, true)
	sendSuccess(c, http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "Access token refreshed")
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func (h *userHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "old and new password are required")
		return
	}

	if err := h.UserService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("password change failed")
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

func (h *userHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	user, err := h.UserService.GetByID(userID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToUserResponse(user), "Current user fetched successfully")
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

func (h *userHandler) UpdateAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "all fields are required")
		return
	}

	user, err := h.UserService.UpdateAccount(userID, req.FullName, req.Username, req.Email)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("account update failed")
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToUserResponse(user), "Account details updated")
}

func (h *userHandler) UpdateAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	file, err := c.FormFile("avatar")
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "avatar file is missing")
		return
	}

	user, err := h.UserService.UpdateAvatar(c.Request.Context(), userID, file)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("avatar update failed")
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToUserResponse(user), "Avatar updated")
}

func (h *userHandler) UpdateCoverImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	file, err := c.FormFile("coverImage")
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "cover image file is missing")
		return
	}

	user, err := h.UserService.UpdateCoverImage(c.Request.Context(), userID, file)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("cover image update failed")
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToUserResponse(user), "Cover image updated")
}

func (h *userHandler) GetChannelProfile(c *gin.Context) {
	username := c.Param("username")
	callerID, _ := currentUserID(c)

	profile, err := h.UserService.GetChannelProfile(username, callerID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	resp := dto.ToChannelProfileResponse(
		profile.User,
		profile.SubscribersCount,
		profile.ChannelsSubscribedToCount,
		profile.IsSubscribed,
	)
	sendSuccess(c, http.StatusOK, resp, "User channel fetched successfully")
}

func (h *userHandler) GetWatchHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return
	}
	entries, err := h.UserService.GetWatchHistory(userID)
	if err != nil {
		sendServiceError(c, err)
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToWatchHistoryResponse(entries), "Watch history fetched successfully")
}
