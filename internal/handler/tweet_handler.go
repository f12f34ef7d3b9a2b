package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/video-platform-go/internal/middleware"
	"github.com/streamhub/video-platform-go/internal/service"
	"github.com/streamhub/video-platform-go/internal/validation"
)

// TweetHandler handles tweet feeds and tweet CRUD.
type TweetHandler struct {
	tweets    *service.TweetService
	validator *validation.Validator
}

// NewTweetHandler creates a new TweetHandler.
func NewTweetHandler(tweets *service.TweetService, validator *validation.Validator) *TweetHandler {
	return &TweetHandler{
		tweets:    tweets,
		validator: validator,
	}
}

// ListFeed serves GET /api/v1/tweets.
func (h *TweetHandler) ListFeed(c *gin.Context) {
	page, err := h.tweets.ListFeed(c.Request.Context(), middleware.ViewerPtr(c), pageRequest(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, page, "tweets fetched successfully")
}

// ListByUser serves GET /api/v1/tweets/user/:userId. The user-scoped listing
// is returned whole, without pagination.
func (h *TweetHandler) ListByUser(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	tweets, err := h.tweets.ListByUser(c.Request.Context(), userID, middleware.ViewerPtr(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, tweets, "tweets fetched successfully")
}

// ListSubscribed serves GET /api/v1/tweets/feed: tweets from channels the
// viewer subscribes to.
func (h *TweetHandler) ListSubscribed(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	tweets, err := h.tweets.ListSubscribed(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, tweets, "tweets fetched successfully")
}

// Create serves POST /api/v1/tweets. Expects a multipart form with content
// and an optional photo.
func (h *TweetHandler) Create(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	input := &service.CreateTweetInput{Content: c.PostForm("content")}

	if photo, err := c.FormFile("photo"); err == nil {
		if err := h.validator.ValidateImageUpload(photo); err != nil {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		photoPath, cleanup, err := spoolUpload(c, photo)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "failed to read upload")
			return
		}
		defer cleanup()

		input.PhotoPath = photoPath
		input.PhotoSize = photo.Size
		input.PhotoContentType = photo.Header.Get("Content-Type")
	}

	tweet, err := h.tweets.Create(c.Request.Context(), actor, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusCreated, tweet, "tweet created successfully")
}

type tweetRequest struct {
	Content string `json:"content" binding:"required"`
}

// Update serves PATCH /api/v1/tweets/:id.
func (h *TweetHandler) Update(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req tweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "content is required")
		return
	}

	tweet, err := h.tweets.Update(c.Request.Context(), actor, id, req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, tweet, "tweet updated successfully")
}

// Delete serves DELETE /api/v1/tweets/:id.
func (h *TweetHandler) Delete(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.tweets.Delete(c.Request.Context(), actor, id); err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, nil, "tweet deleted successfully")
}
