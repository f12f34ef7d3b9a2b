package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/video-platform-go/internal/middleware"
	"github.com/streamhub/video-platform-go/internal/service"
)

// SubscriptionHandler handles channel subscriptions.
type SubscriptionHandler struct {
	subscriptions *service.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subscriptions *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

// Toggle serves POST /api/v1/subscriptions/toggle/:channelId.
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	channelID, ok := parseID(c, "channelId")
	if !ok {
		return
	}

	result, err := h.subscriptions.Toggle(c.Request.Context(), actor, channelID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, result, "subscription toggled")
}

// Subscribers serves GET /api/v1/subscriptions/channel/:channelId.
func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	channelID, ok := parseID(c, "channelId")
	if !ok {
		return
	}

	subscribers, err := h.subscriptions.Subscribers(c.Request.Context(), channelID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"subscribers": subscribers,
		"total":       len(subscribers),
	}, "subscribers fetched successfully")
}

// SubscribedChannels serves GET /api/v1/subscriptions/user/:userId.
func (h *SubscriptionHandler) SubscribedChannels(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	channels, err := h.subscriptions.SubscribedChannels(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"channels": channels,
		"total":    len(channels),
	}, "subscribed channels fetched successfully")
}
