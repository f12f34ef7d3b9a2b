package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamhub/video-platform-go/internal/db"
	"github.com/streamhub/video-platform-go/internal/db/models"
)

// SubscriptionRepository defines operations for managing channel
// subscriptions.
type SubscriptionRepository interface {
	// Find retrieves the subscription of subscriber to channel, or
	// ErrNotFound.
	Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*models.Subscription, error)

	// Create persists a new subscription. Self-subscription is rejected by
	// a CHECK constraint and surfaces as ErrCheckViolation.
	Create(ctx context.Context, sub *models.Subscription) error

	// Delete removes a subscription by ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListSubscribers retrieves the public profiles of a channel's
	// subscribers, newest first.
	ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*models.Owner, error)

	// ListSubscribedChannels retrieves the public profiles of the channels
	// a user is subscribed to, newest first.
	ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*models.Owner, error)
}

type subscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository creates a new SubscriptionRepository.
func NewSubscriptionRepository(pool *pgxpool.Pool) SubscriptionRepository {
	return &subscriptionRepository{pool: pool}
}

func (r *subscriptionRepository) Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*models.Subscription, error) {
	query := `
		SELECT id, subscriber_id, channel_id, created_at
		FROM subscriptions
		WHERE subscriber_id = $1 AND channel_id = $2
	`

	sub := &models.Subscription{}
	err := r.pool.QueryRow(ctx, query, subscriberID, channelID).Scan(
		&sub.ID,
		&sub.SubscriberID,
		&sub.ChannelID,
		&sub.CreatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "find subscription")
	}

	return sub, nil
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, subscriber_id, channel_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, sub.ID, sub.SubscriberID, sub.ChannelID, sub.CreatedAt)
	if err != nil {
		return db.WrapError(err, "create subscription")
	}

	return nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subscriptions WHERE id = $1`, id)
	if err != nil {
		return db.WrapError(err, "delete subscription")
	}
	if tag.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "delete subscription")
	}

	return nil
}

func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*models.Owner, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar_url
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, channelID)
	if err != nil {
		return nil, db.WrapError(err, "list subscribers")
	}
	defer rows.Close()

	return scanOwners(rows)
}

func (r *subscriptionRepository) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*models.Owner, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar_url
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, subscriberID)
	if err != nil {
		return nil, db.WrapError(err, "list subscribed channels")
	}
	defer rows.Close()

	return scanOwners(rows)
}

// Helper function to scan reduced user profiles from query results
func scanOwners(rows pgx.Rows) ([]*models.Owner, error) {
	var owners []*models.Owner

	for rows.Next() {
		owner := &models.Owner{}
		err := rows.Scan(
			&owner.ID,
			&owner.Username,
			&owner.FullName,
			&owner.AvatarURL,
		)
		if err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		owners = append(owners, owner)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owners: %w", err)
	}

	return owners, nil
}
