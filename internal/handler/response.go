// Package handler contains the gin HTTP handlers and the API router.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/streamhub/video-platform-go/internal/service"
	"github.com/streamhub/video-platform-go/pkg/logger"
)

// Response is the uniform API envelope, used for success and failure alike.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Response{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    status < http.StatusBadRequest,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		StatusCode: status,
		Data:       nil,
		Message:    message,
		Success:    false,
	})
}

// handleServiceError maps service error types onto the API taxonomy.
// Upstream failures are logged with their cause and answered with a generic
// message.
func handleServiceError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *service.ValidationError:
		respondError(c, http.StatusBadRequest, e.Error())
	case *service.NotFoundError:
		respondError(c, http.StatusNotFound, e.Error())
	case *service.ForbiddenError:
		respondError(c, http.StatusForbidden, e.Error())
	case *service.ProcessingError:
		logger.Log.Error("Upstream failure",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusInternalServerError, "internal server error")
	default:
		logger.Log.Error("Unexpected error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

// parseID parses a uuid path parameter. On failure it answers 400 and
// reports false.
func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid identifier: "+param)
		return uuid.Nil, false
	}
	return id, true
}
