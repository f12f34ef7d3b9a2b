package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamhub/video-platform-go/internal/middleware"
	"github.com/streamhub/video-platform-go/internal/service"
	"github.com/streamhub/video-platform-go/internal/validation"
)

// UserHandler serves public channel profiles, the viewer's own account and
// their profile images.
type UserHandler struct {
	users     *service.UserService
	validator *validation.Validator
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, validator *validation.Validator) *UserHandler {
	return &UserHandler{
		users:     users,
		validator: validator,
	}
}

// ChannelProfile serves GET /api/v1/users/c/:username.
func (h *UserHandler) ChannelProfile(c *gin.Context) {
	profile, err := h.users.ChannelProfile(c.Request.Context(), c.Param("username"), middleware.ViewerPtr(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, profile, "channel profile fetched successfully")
}

// Current serves GET /api/v1/users/me.
func (h *UserHandler) Current(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	user, err := h.users.Current(c.Request.Context(), actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, user, "user fetched successfully")
}

// UpdateAvatar serves PATCH /api/v1/users/avatar. Expects a multipart form
// with an avatar image file.
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	input, cleanup, ok := h.bindProfileImage(c, "avatar")
	if !ok {
		return
	}
	defer cleanup()

	user, err := h.users.UpdateAvatar(c.Request.Context(), actor, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, user, "avatar updated successfully")
}

// UpdateCover serves PATCH /api/v1/users/cover. Expects a multipart form
// with a coverImage file.
func (h *UserHandler) UpdateCover(c *gin.Context) {
	actor, _ := middleware.ViewerFrom(c)

	input, cleanup, ok := h.bindProfileImage(c, "coverImage")
	if !ok {
		return
	}
	defer cleanup()

	user, err := h.users.UpdateCover(c.Request.Context(), actor, input)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, user, "cover image updated successfully")
}

// bindProfileImage validates and spools the named multipart image field. On
// failure the response has already been written. The caller must defer the
// returned cleanup.
func (h *UserHandler) bindProfileImage(c *gin.Context, field string) (*service.ProfileImageInput, func(), bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		respondError(c, http.StatusBadRequest, field+" is required")
		return nil, nil, false
	}
	if err := h.validator.ValidateImageUpload(fh); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}

	path, cleanup, err := spoolUpload(c, fh)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to read upload")
		return nil, nil, false
	}

	return &service.ProfileImageInput{
		Path:        path,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
	}, cleanup, true
}
