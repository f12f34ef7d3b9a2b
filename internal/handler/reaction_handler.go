package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/video-platform-go/internal/db/models"
	"github.com/streamhub/video-platform-go/internal/middleware"
	"github.com/streamhub/video-platform-go/internal/service"
)

// ReactionHandler handles like/dislike toggles and the viewer's reacted
// content listings.
type ReactionHandler struct {
	reactions *service.ReactionService
	videos    *service.VideoService
	comments  *service.CommentService
	tweets    *service.TweetService
}

// NewReactionHandler creates a new ReactionHandler.
func NewReactionHandler(
	reactions *service.ReactionService,
	videos *service.VideoService,
	comments *service.CommentService,
	tweets *service.TweetService,
) *ReactionHandler {
	return &ReactionHandler{
		reactions: reactions,
		videos:    videos,
		comments:  comments,
		tweets:    tweets,
	}
}

type toggleReactionRequest struct {
	Liked *bool `json:"liked" binding:"required"`
}

// Toggle serves POST /api/v1/reactions/toggle/:kind/:id with body
// {"liked": bool}.
func (h *ReactionHandler) Toggle(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	kind, ok := models.ParseTargetKind(c.Param("kind"))
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid identifier: kind")
		return
	}

	targetID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req toggleReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "liked is required")
		return
	}

	result, err := h.reactions.Toggle(c.Request.Context(), actor, kind, targetID, *req.Liked)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, result, "reaction toggled")
}

// ListReacted serves GET /api/v1/reactions/{liked|disliked}/:kind: the
// viewer's liked or disliked videos, comments or tweets.
func (h *ReactionHandler) ListReacted(liked bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.ViewerFrom(c)

		kind, ok := models.ParseTargetKind(c.Param("kind"))
		if !ok {
			respondError(c, http.StatusBadRequest, "invalid identifier: kind")
			return
		}

		var (
			data interface{}
			err  error
		)
		switch kind {
		case models.TargetVideo:
			data, err = h.videos.ListReacted(c.Request.Context(), actor, liked)
		case models.TargetComment:
			data, err = h.comments.ListReacted(c.Request.Context(), actor, liked)
		case models.TargetTweet:
			data, err = h.tweets.ListReacted(c.Request.Context(), actor, liked)
		}
		if err != nil {
			handleServiceError(c, err)
			return
		}

		respond(c, http.StatusOK, data, "reacted content fetched successfully")
	}
}
