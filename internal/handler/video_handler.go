package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/streamhub/video-platform-go/internal/middleware"
	"github.com/streamhub/video-platform-go/internal/service"
	"github.com/streamhub/video-platform-go/internal/validation"
)

// VideoHandler handles video publishing, the video feed and watch history.
type VideoHandler struct {
	videos    *service.VideoService
	validator *validation.Validator
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(videos *service.VideoService, validator *validation.Validator) *VideoHandler {
	return &VideoHandler{
		videos:    videos,
		validator: validator,
	}
}

// ListFeed serves GET /api/v1/videos.
func (h *VideoHandler) ListFeed(c *gin.Context) {
	query := &service.VideoFeedQuery{
		Query:  c.Query("query"),
		SortBy: c.Query("sortBy"),
		Order:  c.Query("order"),
		Viewer: middleware.ViewerPtr(c),
	}

	page := pageRequest(c)
	query.Page = page.Page
	query.Limit = page.Limit

	if raw := c.Query("userId"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid identifier: userId")
			return
		}
		query.UserID = &userID
	}

	result, err := h.videos.ListFeed(c.Request.Context(), query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, result, "videos fetched successfully")
}

// Get serves GET /api/v1/videos/:id.
func (h *VideoHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	video, err := h.videos.Get(c.Request.Context(), id, middleware.ViewerPtr(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, video, "video fetched successfully")
}

// Publish serves POST /api/v1/videos. Expects a multipart form with title,
// description, videoFile and thumbnail.
func (h *VideoHandler) Publish(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		respondError(c, http.StatusBadRequest, "videoFile is required")
		return
	}
	if err := h.validator.ValidateVideoUpload(videoFile); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	thumbnail, err := c.FormFile("thumbnail")
	if err != nil {
		respondError(c, http.StatusBadRequest, "thumbnail is required")
		return
	}
	if err := h.validator.ValidateImageUpload(thumbnail); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	videoPath, cleanupVideo, err := spoolUpload(c, videoFile)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to read upload")
		return
	}
	defer cleanupVideo()

	thumbPath, cleanupThumb, err := spoolUpload(c, thumbnail)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to read upload")
		return
	}
	defer cleanupThumb()

	video, err := h.videos.Publish(c.Request.Context(), actor, &service.PublishVideoInput{
		Title:            c.PostForm("title"),
		Description:      c.PostForm("description"),
		VideoPath:        videoPath,
		VideoSize:        videoFile.Size,
		VideoContentType: videoFile.Header.Get("Content-Type"),
		ThumbPath:        thumbPath,
		ThumbSize:        thumbnail.Size,
		ThumbContentType: thumbnail.Header.Get("Content-Type"),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusCreated, video, "video published successfully")
}

// Update serves PATCH /api/v1/videos/:id. Accepts a multipart form with any
// of title, description and thumbnail.
func (h *VideoHandler) Update(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	input := &service.UpdateVideoInput{}
	if title, present := c.GetPostForm("title"); present {
		input.Title = &title
	}
	if description, present := c.GetPostForm("description"); present {
		input.Description = &description
	}

	if thumbnail, err := c.FormFile("thumbnail"); err == nil {
		if err := h.validator.ValidateImageUpload(thumbnail); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		thumbPath, cleanup, err := spoolUpload(c, thumbnail)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "failed to read upload")
			return
		}
		defer cleanup()

		input.ThumbPath = thumbPath
		input.ThumbSize = thumbnail.Size
		input.ThumbContentType = thumbnail.Header.Get("Content-Type")
	}

	video, err := h.videos.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, video, "video updated successfully")
}

// Delete serves DELETE /api/v1/videos/:id.
func (h *VideoHandler) Delete(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.videos.Delete(c.Request.Context(), actor, id); err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "video deleted successfully")
}

// TogglePublish serves PATCH /api/v1/videos/:id/toggle-publish.
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	published, err := h.videos.TogglePublish(c.Request.Context(), actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"isPublished": published}, "publish state toggled")
}

// WatchHistory serves GET /api/v1/users/history.
func (h *VideoHandler) WatchHistory(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	videos, err := h.videos.WatchHistory(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, videos, "watch history fetched successfully")
}
