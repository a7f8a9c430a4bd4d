package api

import (
	"alcyxob/fitness-notes/internal/domain"
	"alcyxob/fitness-notes/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, detail string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Detail: detail})
}

// abortWithBindError reports a request body that failed to decode or bind.
func abortWithBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		abortWithError(c, http.StatusBadRequest, domain.NewValidationError(verrs).Error())
		return
	}
	abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
}

// abortWithServiceError maps service errors to HTTP status codes. Store
// failures are logged in full and answered with failureMessage only.
func abortWithServiceError(c *gin.Context, err error, failureMessage string) {
	switch {
	case errors.Is(err, service.ErrValidationFailed), errors.Is(err, service.ErrInvalidWorkoutID):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, "Workout not found")
	default:
		_ = c.Error(err)
		requestLogger(c).WithError(err).Error(failureMessage)
		abortWithError(c, http.StatusInternalServerError, failureMessage)
	}
}
