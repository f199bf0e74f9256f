package handler

import (
	"errors"
	"net/http"

	"clipstream/internal/service"

	"github.com/gin-gonic/gin"
)

// apiResponse is the uniform success envelope.
type apiResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// apiError is the uniform failure envelope.
type apiError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func sendSuccess(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, apiResponse{
		StatusCode: code,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

func sendErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, apiError{
		StatusCode: code,
		Message:    message,
		Success:    false,
		Errors:     []string{},
	})
}

// sendServiceError maps the service error taxonomy onto HTTP status codes.
func sendServiceError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrPermissionDenied):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrAlreadyInPlaylist),
		errors.Is(err, service.ErrNotInPlaylist):
		code = http.StatusConflict
	case errors.Is(err, service.ErrUploadFailed):
		code = http.StatusBadGateway
	case errors.Is(err, service.ErrUnauthorized):
		code = http.StatusUnauthorized
	}
	sendErrorResponse(c, code, err.Error())
}

// currentUserID pulls the authenticated caller from the gin context. JWT
// claim numbers arrive as float64, hence the double conversion.
func currentUserID(c *gin.Context) (uint64, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return uint64(f), true
}
