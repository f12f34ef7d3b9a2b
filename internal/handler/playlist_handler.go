package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/video-platform-go/internal/middleware"
	"github.com/streamhub/video-platform-go/internal/service"
)

// PlaylistHandler handles playlists and their memberships.
type PlaylistHandler struct {
	playlists *service.PlaylistService
}

// NewPlaylistHandler creates a new PlaylistHandler.
func NewPlaylistHandler(playlists *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists}
}

type playlistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// Create serves POST /api/v1/playlists.
func (h *PlaylistHandler) Create(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	var req playlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}

	playlist, err := h.playlists.Create(c.Request.Context(), actor, req.Name, req.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusCreated, playlist, "playlist created successfully")
}

// Get serves GET /api/v1/playlists/:id.
func (h *PlaylistHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	playlist, err := h.playlists.Get(c.Request.Context(), id, middleware.ViewerPtr(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, playlist, "playlist fetched successfully")
}

// ListByUser serves GET /api/v1/playlists/user/:userId.
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	playlists, err := h.playlists.ListByUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, playlists, "playlists fetched successfully")
}

// Update serves PATCH /api/v1/playlists/:id.
func (h *PlaylistHandler) Update(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req playlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "name is required")
		return
	}

	playlist, err := h.playlists.Update(c.Request.Context(), actor, id, req.Name, req.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, playlist, "playlist updated successfully")
}

// Delete serves DELETE /api/v1/playlists/:id.
func (h *PlaylistHandler) Delete(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.playlists.Delete(c.Request.Context(), actor, id); err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "playlist deleted successfully")
}

// AddVideo serves POST /api/v1/playlists/:id/videos/:videoId.
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	videoID, ok := parseID(c, "videoId")
	if !ok {
		return
	}

	if err := h.playlists.AddVideo(c.Request.Context(), actor, id, videoID); err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "video added to playlist")
}

// RemoveVideo serves DELETE /api/v1/playlists/:id/videos/:videoId.
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	videoID, ok := parseID(c, "videoId")
	if !ok {
		return
	}

	if err := h.playlists.RemoveVideo(c.Request.Context(), actor, id, videoID); err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "video removed from playlist")
}
