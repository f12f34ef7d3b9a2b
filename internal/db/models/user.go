// Package models contains the persistent entities and the enriched feed
// item types returned by the query layer.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a platform account. Credentials are managed by the
// external auth service; this service treats users as read-only.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatar"`
	CoverURL  string    `json:"coverImage"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Owner is the reduced owner document embedded in feed items. Only public
// profile fields are exposed.
type Owner struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatar"`
}

// ChannelProfile is the public channel page for a user.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ChannelProfile struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	FullName        string    `json:"fullName"`
	AvatarURL       string    `json:"avatar"`
	CoverURL        string    `json:"coverImage"`
	SubscriberCount int       `json:"subscribersCount"`
	SubscribedCount int       `json:"channelsSubscribedToCount"`
	IsSubscribed    bool      `json:"isSubscribed"`
}
