package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/streamhub/video-platform-go/internal/db"
	"github.com/streamhub/video-platform-go/internal/db/models"
	"github.com/streamhub/video-platform-go/internal/db/repository"
)

// UserService serves public channel profiles and the viewer's profile
// images. Account lifecycle belongs to the external auth service.
type UserService struct {
	users repository.UserRepository
	store BlobStore
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository, store BlobStore) *UserService {
	return &UserService{
		users: users,
		store: store,
	}
}

// ChannelProfile retrieves the public channel page for a username, including
// subscriber counts and whether the viewer is subscribed.
func (s *UserService) ChannelProfile(ctx context.Context, username string, viewer *uuid.UUID) (*models.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, &ValidationError{Message: "username is required"}
	}

	profile, err := s.users.GetChannelProfile(ctx, username, viewer)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, &NotFoundError{Resource: "channel"}
		}
		return nil, &ProcessingError{Message: "failed to load channel profile", Cause: err}
	}

	return profile, nil
}

// Current retrieves the authenticated user's own account record.
func (s *UserService) Current(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, &NotFoundError{Resource: "user"}
		}
		return nil, &ProcessingError{Message: "failed to load user", Cause: err}
	}

	return user, nil
}

// ProfileImageInput describes a spooled profile image upload.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ProfileImageInput struct {
	Path        string
	Size        int64
	ContentType string
}

// UpdateAvatar replaces the viewer's avatar. The previous avatar blob is
// removed best effort once the new one is persisted.
func (s *UserService) UpdateAvatar(ctx context.Context, actor uuid.UUID, input *ProfileImageInput) (*models.User, error) {
	user, err := s.Current(ctx, actor)
	if err != nil {
		return nil, err
	}

	avatarURL, err := uploadLocalFile(ctx, s.store, "avatars", input.Path, input.Size, input.ContentType)
	if err != nil {
		return nil, &ProcessingError{Message: "failed to store avatar", Cause: err}
	}

	if err := s.users.UpdateAvatar(ctx, actor, avatarURL); err != nil {
		removeBlob(ctx, s.store, avatarURL)
		return nil, &ProcessingError{Message: "failed to update avatar", Cause: err}
	}

	if user.AvatarURL != "" {
		removeBlob(ctx, s.store, user.AvatarURL)
	}
	user.AvatarURL = avatarURL

	return user, nil
}

// UpdateCover replaces the viewer's channel cover image. The previous cover
// blob is removed best effort once the new one is persisted.
func (s *UserService) UpdateCover(ctx context.Context, actor uuid.UUID, input *ProfileImageInput) (*models.User, error) {
	user, err := s.Current(ctx, actor)
	if err != nil {
		return nil, err
	}

	coverURL, err := uploadLocalFile(ctx, s.store, "covers", input.Path, input.Size, input.ContentType)
	if err != nil {
		return nil, &ProcessingError{Message: "failed to store cover image", Cause: err}
	}

	if err := s.users.UpdateCover(ctx, actor, coverURL); err != nil {
		removeBlob(ctx, s.store, coverURL)
		return nil, &ProcessingError{Message: "failed to update cover image", Cause: err}
	}

	if user.CoverURL != "" {
		removeBlob(ctx, s.store, user.CoverURL)
	}
	user.CoverURL = coverURL

	return user, nil
}
