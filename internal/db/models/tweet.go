package models

import (
	"time"

	"github.com/google/uuid"
)

// Tweet represents a short text post, optionally with an attached photo.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Tweet struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Content   string    `json:"content"`
	PhotoURL  *string   `json:"photo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTweet creates a new Tweet.
func NewTweet(ownerID uuid.UUID, content string, photoURL *string) *Tweet {
	now := time.Now()
	return &Tweet{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Content:   content,
		PhotoURL:  photoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TweetFeedItem is a tweet enriched with its owner, reaction aggregates and
// viewer-relative flags.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type TweetFeedItem struct {
	ID            uuid.UUID `json:"id"`
	Content       string    `json:"content"`
	PhotoURL      *string   `json:"photo"`
	CreatedAt     time.Time `json:"createdAt"`
	Owner         Owner     `json:"owner"`
	TotalLikes    int       `json:"totalLikes"`
	TotalDislikes int       `json:"totalDislikes"`
	IsLiked       bool      `json:"isLiked"`
	IsDisliked    bool      `json:"isDisliked"`
	IsOwner       bool      `json:"isOwner"`
}
