package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a comment on a video.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Comment struct {
	ID        uuid.UUID `json:"id"`
	VideoID   uuid.UUID `json:"videoId"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewComment creates a new Comment on the given video.
func NewComment(videoID, ownerID uuid.UUID, content string) *Comment {
	now := time.Now()
	return &Comment{
		ID:        uuid.New(),
		VideoID:   videoID,
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CommentFeedItem is a comment enriched with its owner, reaction aggregates
// and viewer-relative flags. IsLikedByOwner reports whether the owner of the
// parent video liked the comment.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type CommentFeedItem struct {
	ID             uuid.UUID `json:"id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	Owner          Owner     `json:"owner"`
	TotalLikes     int       `json:"totalLikes"`
	TotalDislikes  int       `json:"totalDislikes"`
	IsLiked        bool      `json:"isLiked"`
	IsDisliked     bool      `json:"isDisliked"`
	IsLikedByOwner bool      `json:"isLikedByVideoOwner"`
	IsOwner        bool      `json:"isOwner"`
}
