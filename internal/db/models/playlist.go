package models

import (
	"time"

	"github.com/google/uuid"
)

// Playlist represents a named, ordered collection of videos. Membership has
// set semantics: adding an already-present video is a no-op.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Playlist struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Videos is populated on detail reads, in insertion order.
	Videos []*VideoFeedItem `json:"videos,omitempty"`
}

// NewPlaylist creates a new empty Playlist.
func NewPlaylist(ownerID uuid.UUID, name, description string) *Playlist {
	now := time.Now()
	return &Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
