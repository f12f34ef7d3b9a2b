package models

import (
	"time"

	"github.com/google/uuid"
)

// Video represents an uploaded video.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Video struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"ownerId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	VideoURL        string    `json:"videoFile"`
	ThumbnailURL    string    `json:"thumbnail"`
	DurationSeconds float64   `json:"duration"`
	Views           int64     `json:"views"`
	IsPublished     bool      `json:"isPublished"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// NewVideo creates a new Video. Videos are published on creation.
func NewVideo(ownerID uuid.UUID, title, description, videoURL, thumbnailURL string, duration float64) *Video {
	now := time.Now()
	return &Video{
		ID:              uuid.New(),
		OwnerID:         ownerID,
		Title:           title,
		Description:     description,
		VideoURL:        videoURL,
		ThumbnailURL:    thumbnailURL,
		DurationSeconds: duration,
		IsPublished:     true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// VideoFeedItem is a video enriched with its owner, reaction aggregates and
// viewer-relative flags. Viewer-relative fields are false for anonymous
// viewers, never null.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type VideoFeedItem struct {
	ID              uuid.UUID          `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	VideoURL        string             `json:"videoFile"`
	ThumbnailURL    string             `json:"thumbnail"`
	DurationSeconds float64            `json:"duration"`
	Views           int64              `json:"views"`
	IsPublished     bool               `json:"isPublished"`
	CreatedAt       time.Time          `json:"createdAt"`
	Owner           Owner              `json:"owner"`
	TotalLikes      int                `json:"totalLikes"`
	TotalDislikes   int                `json:"totalDislikes"`
	IsLiked         bool               `json:"isLiked"`
	IsDisliked      bool               `json:"isDisliked"`
	IsOwner         bool               `json:"isOwner"`
	TotalComments   int                `json:"totalComments"`
	Comments        []*CommentFeedItem `json:"comments,omitempty"`
}
