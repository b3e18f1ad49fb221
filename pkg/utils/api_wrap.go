package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service-layer sentinel errors onto HTTP status
// codes. Unknown errors become a generic 500 so internal details never reach
// the client.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTripNotFound),
		errors.Is(err, ErrActivityNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrProfileNotFound),
		errors.Is(err, ErrShareNotFound),
		errors.Is(err, ErrMediaNotFound),
		errors.Is(err, ErrFriendRequestNotFound),
		errors.Is(err, ErrFriendshipNotFound):
		RespondError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, err.Error())

	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidDateRange),
		errors.Is(err, ErrWeakPassword),
		errors.Is(err, ErrInvalidPermission),
		errors.Is(err, ErrInvalidMediaType),
		errors.Is(err, ErrSelfFriendRequest),
		errors.Is(err, ErrShareWithSelf),
		errors.Is(err, ErrShareWithOwner):
		RespondError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, ErrEmailAlreadyExists),
		errors.Is(err, ErrUsernameAlreadyExists),
		errors.Is(err, ErrFriendRequestExists),
		errors.Is(err, ErrTripAlreadyPublished):
		RespondError(c, http.StatusConflict, err.Error())

	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken):
		RespondError(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, ErrUpstreamUnavailable):
		RespondError(c, http.StatusBadGateway, err.Error())

	case errors.Is(err, ErrDatabaseError):
		log.Error().Err(err).Str("trace_id", traceID(c)).Msg("database error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")

	default:
		log.Error().Err(err).Str("trace_id", traceID(c)).Msg("unhandled service error")
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
