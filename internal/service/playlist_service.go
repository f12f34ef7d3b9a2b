package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/streamhub/video-platform-go/internal/db"
	"github.com/streamhub/video-platform-go/internal/db/models"
	"github.com/streamhub/video-platform-go/internal/db/repository"
	"github.com/streamhub/video-platform-go/internal/validation"
)

// PlaylistService handles playlists and their video memberships.
type PlaylistService struct {
	playlists repository.PlaylistRepository
	videos    repository.VideoRepository
	validator *validation.Validator
}

// NewPlaylistService creates a new PlaylistService.
func NewPlaylistService(
	playlists repository.PlaylistRepository,
	videos repository.VideoRepository,
	validator *validation.Validator,
) *PlaylistService {
	return &PlaylistService{
		playlists: playlists,
		videos:    videos,
		validator: validator,
	}
}

// Create makes a new empty playlist. Names are unique per owner.
func (s *PlaylistService) Create(ctx context.Context, actor uuid.UUID, name, description string) (*models.Playlist, error) {
	if err := s.validator.ValidatePlaylistName(name); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := s.validator.ValidateDescription(description); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	playlist := models.NewPlaylist(actor, name, description)
	if err := s.playlists.Create(ctx, playlist); err != nil {
		if db.IsDuplicateKey(err) {
			return nil, &ValidationError{Message: "a playlist with this name already exists"}
		}
		return nil, &ProcessingError{Message: "failed to persist playlist", Cause: err}
	}

	return playlist, nil
}

// Get retrieves a playlist with its published videos in insertion order,
// enriched for the viewer.
func (s *PlaylistService) Get(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.playlists.GetWithVideos(ctx, id, viewer)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, &NotFoundError{Resource: "playlist"}
		}
		return nil, &ProcessingError{Message: "failed to load playlist", Cause: err}
	}

	playlist.Videos = projectVideos(playlist.Videos, viewer)

	return playlist, nil
}

// ListByUser retrieves a user's playlists without their videos, newest
// first.
func (s *PlaylistService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Playlist, error) {
	playlists, err := s.playlists.ListByOwner(ctx, userID)
	if err != nil {
		return nil, &ProcessingError{Message: "failed to load playlists", Cause: err}
	}

	if playlists == nil {
		playlists = []*models.Playlist{}
	}
	return playlists, nil
}

// Update renames the actor's own playlist.
func (s *PlaylistService) Update(ctx context.Context, actor, id uuid.UUID, name, description string) (*models.Playlist, error) {
	if err := s.validator.ValidatePlaylistName(name); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := s.validator.ValidateDescription(description); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	playlist, err := s.ownedPlaylist(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	playlist.Name = name
	playlist.Description = description
	if err := s.playlists.Update(ctx, playlist); err != nil {
		if db.IsDuplicateKey(err) {
			return nil, &ValidationError{Message: "a playlist with this name already exists"}
		}
		return nil, &ProcessingError{Message: "failed to update playlist", Cause: err}
	}

	return playlist, nil
}

// Delete removes the actor's own playlist. Memberships cascade; the videos
// themselves are untouched.
func (s *PlaylistService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	if _, err := s.ownedPlaylist(ctx, actor, id); err != nil {
		return err
	}

	if err := s.playlists.Delete(ctx, id); err != nil {
		return &ProcessingError{Message: "failed to delete playlist", Cause: err}
	}

	return nil
}

// AddVideo adds a video to the actor's own playlist. Adding a video twice is
// a no-op.
func (s *PlaylistService) AddVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) error {
	if _, err := s.ownedPlaylist(ctx, actor, playlistID); err != nil {
		return err
	}

	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		if db.IsNotFound(err) {
			return &NotFoundError{Resource: "video"}
		}
		return &ProcessingError{Message: "failed to load video", Cause: err}
	}
	if !video.IsPublished && video.OwnerID != actor {
		return &NotFoundError{Resource: "video"}
	}

	if _, err := s.playlists.AddVideo(ctx, playlistID, videoID); err != nil {
		if db.IsForeignKeyViolation(err) {
			return &NotFoundError{Resource: "video"}
		}
		return &ProcessingError{Message: "failed to add playlist video", Cause: err}
	}

	return nil
}

// RemoveVideo removes a video from the actor's own playlist.
func (s *PlaylistService) RemoveVideo(ctx context.Context, actor, playlistID, videoID uuid.UUID) error {
	if _, err := s.ownedPlaylist(ctx, actor, playlistID); err != nil {
		return err
	}

	removed, err := s.playlists.RemoveVideo(ctx, playlistID, videoID)
	if err != nil {
		return &ProcessingError{Message: "failed to remove playlist video", Cause: err}
	}
	if !removed {
		return &NotFoundError{Resource: "video"}
	}

	return nil
}

func (s *PlaylistService) ownedPlaylist(ctx context.Context, actor, id uuid.UUID) (*models.Playlist, error) {
	playlist, err := s.playlists.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, &NotFoundError{Resource: "playlist"}
		}
		return nil, &ProcessingError{Message: "failed to load playlist", Cause: err}
	}

	if playlist.OwnerID != actor {
		return nil, &ForbiddenError{Message: "only the owner can modify this playlist"}
	}

	return playlist, nil
}
