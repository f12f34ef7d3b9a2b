package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/streamhub/video-platform-go/internal/db"
	"github.com/streamhub/video-platform-go/internal/db/models"
	"github.com/streamhub/video-platform-go/internal/db/repository"
)

// SubscriptionService handles channel subscriptions.
type SubscriptionService struct {
	subscriptions repository.SubscriptionRepository
	users         repository.UserRepository
	events        DomainEventPublisher
}

// NewSubscriptionService creates a new SubscriptionService. events may be
// nil when no broker is configured.
func NewSubscriptionService(
	subscriptions repository.SubscriptionRepository,
	users repository.UserRepository,
	events DomainEventPublisher,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptions: subscriptions,
		users:         users,
		events:        events,
	}
}

// SubscriptionToggleResult reports the subscription state after a toggle.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type SubscriptionToggleResult struct {
	ChannelID  uuid.UUID `json:"channelId"`
	Subscribed bool      `json:"subscribed"`
}

// Toggle flips the actor's subscription to a channel: subscribed becomes
// unsubscribed and vice versa. Subscribing to yourself is rejected.
func (s *SubscriptionService) Toggle(ctx context.Context, actor, channelID uuid.UUID) (*SubscriptionToggleResult, error) {
	if actor == channelID {
		return nil, &ValidationError{Message: "cannot subscribe to your own channel"}
	}

	result := &SubscriptionToggleResult{ChannelID: channelID}

	existing, err := s.subscriptions.Find(ctx, actor, channelID)
	switch {
	case err == nil:
		if err := s.subscriptions.Delete(ctx, existing.ID); err != nil && !db.IsNotFound(err) {
			return nil, &ProcessingError{Message: "failed to remove subscription", Cause: err}
		}
		result.Subscribed = false

	case db.IsNotFound(err):
		sub := models.NewSubscription(actor, channelID)
		if err := s.subscriptions.Create(ctx, sub); err != nil {
			switch {
			case db.IsForeignKeyViolation(err):
				return nil, &NotFoundError{Resource: "channel"}
			case db.IsCheckViolation(err):
				return nil, &ValidationError{Message: "cannot subscribe to your own channel"}
			case db.IsDuplicateKey(err):
				// A concurrent toggle won the race; the subscription exists.
			default:
				return nil, &ProcessingError{Message: "failed to persist subscription", Cause: err}
			}
		}
		result.Subscribed = true

	default:
		return nil, &ProcessingError{Message: "failed to look up subscription", Cause: err}
	}

	publishEvent(ctx, s.events, EventSubscriptionToggle, result)

	return result, nil
}

// Subscribers retrieves the public profiles of a channel's subscribers,
// newest first.
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID uuid.UUID) ([]*models.Owner, error) {
	if err := s.requireUser(ctx, channelID); err != nil {
		return nil, err
	}

	subscribers, err := s.subscriptions.ListSubscribers(ctx, channelID)
	if err != nil {
		return nil, &ProcessingError{Message: "failed to load subscribers", Cause: err}
	}

	if subscribers == nil {
		subscribers = []*models.Owner{}
	}
	return subscribers, nil
}

// SubscribedChannels retrieves the public profiles of the channels a user
// subscribes to, newest first.
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*models.Owner, error) {
	if err := s.requireUser(ctx, subscriberID); err != nil {
		return nil, err
	}

	channels, err := s.subscriptions.ListSubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, &ProcessingError{Message: "failed to load subscribed channels", Cause: err}
	}

	if channels == nil {
		channels = []*models.Owner{}
	}
	return channels, nil
}

func (s *SubscriptionService) requireUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if db.IsNotFound(err) {
			return &NotFoundError{Resource: "channel"}
		}
		return &ProcessingError{Message: "failed to load channel", Cause: err}
	}
	return nil
}
