package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription represents a subscriber following a channel (another user).
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Subscription struct {
	ID           uuid.UUID `json:"id"`
	SubscriberID uuid.UUID `json:"subscriberId"`
	ChannelID    uuid.UUID `json:"channelId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewSubscription creates a subscription of subscriber to channel.
func NewSubscription(subscriberID, channelID uuid.UUID) *Subscription {
	return &Subscription{
		ID:           uuid.New(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
		CreatedAt:    time.Now(),
	}
}
