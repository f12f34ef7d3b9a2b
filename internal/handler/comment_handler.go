package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/video-platform-go/internal/middleware"
	"github.com/streamhub/video-platform-go/internal/service"
)

// CommentHandler handles comments under videos.
type CommentHandler struct {
	comments *service.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListByVideo serves GET /api/v1/videos/:id/comments.
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, ok := parseID(c, "id")
	if !ok {
		return
	}

	page, err := h.comments.ListByVideo(c.Request.Context(), videoID, middleware.ViewerPtr(c), pageRequest(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, page, "comments fetched successfully")
}

// Add serves POST /api/v1/videos/:id/comments.
func (h *CommentHandler) Add(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	videoID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "content is required")
		return
	}

	comment, err := h.comments.Add(c.Request.Context(), actor, videoID, req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusCreated, comment, "comment added successfully")
}

// Update serves PATCH /api/v1/comments/:id.
func (h *CommentHandler) Update(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "content is required")
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), actor, id, req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, comment, "comment updated successfully")
}

// Delete serves DELETE /api/v1/comments/:id.
func (h *CommentHandler) Delete(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), actor, id); err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "comment deleted successfully")
}
