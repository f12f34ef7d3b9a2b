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

// TweetRepository defines operations for managing tweets.
type TweetRepository interface {
	// Create persists a new tweet.
	Create(ctx context.Context, tweet *models.Tweet) error

	// GetByID retrieves a single tweet by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error)

	// Update persists a tweet's content and photo.
	Update(ctx context.Context, tweet *models.Tweet) error

	// Delete removes a tweet. Its reactions cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListFeed retrieves all enriched tweets, newest first.
	ListFeed(ctx context.Context, viewer *uuid.UUID) ([]*models.TweetFeedItem, error)

	// ListByOwner retrieves the enriched tweets of one user, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, viewer *uuid.UUID) ([]*models.TweetFeedItem, error)

	// ListSubscribed retrieves enriched tweets from channels the viewer is
	// subscribed to, newest first.
	ListSubscribed(ctx context.Context, viewer uuid.UUID) ([]*models.TweetFeedItem, error)

	// ListReactedBy retrieves tweets the user liked (liked=true) or
	// disliked (liked=false).
	ListReactedBy(ctx context.Context, userID uuid.UUID, liked bool) ([]*models.TweetFeedItem, error)
}

type tweetRepository struct {
	pool *pgxpool.Pool
}

// NewTweetRepository creates a new TweetRepository.
func NewTweetRepository(pool *pgxpool.Pool) TweetRepository {
	return &tweetRepository{pool: pool}
}

// tweetFeedColumns selects the enriched tweet row. $1 is the viewer id
// (nullable).
const tweetFeedColumns = `
	t.id, t.content, t.photo_url, t.created_at,
	u.id, u.username, u.full_name, u.avatar_url,
	(SELECT COUNT(*) FROM reactions r WHERE r.tweet_id = t.id AND r.liked) AS total_likes,
	(SELECT COUNT(*) FROM reactions r WHERE r.tweet_id = t.id AND NOT r.liked) AS total_dislikes,
	EXISTS (SELECT 1 FROM reactions r WHERE r.tweet_id = t.id AND r.liked AND r.reactor_id = $1) AS is_liked,
	EXISTS (SELECT 1 FROM reactions r WHERE r.tweet_id = t.id AND NOT r.liked AND r.reactor_id = $1) AS is_disliked`

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	query := `
		INSERT INTO tweets (id, owner_id, content, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		tweet.ID,
		tweet.OwnerID,
		tweet.Content,
		tweet.PhotoURL,
		tweet.CreatedAt,
		tweet.UpdatedAt,
	)
	if err != nil {
		return db.WrapError(err, "create tweet")
	}

	return nil
}

func (r *tweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	query := `
		SELECT id, owner_id, content, photo_url, created_at, updated_at
		FROM tweets
		WHERE id = $1
	`

	tweet := &models.Tweet{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&tweet.ID,
		&tweet.OwnerID,
		&tweet.Content,
		&tweet.PhotoURL,
		&tweet.CreatedAt,
		&tweet.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "get tweet by id")
	}

	return tweet, nil
}

func (r *tweetRepository) Update(ctx context.Context, tweet *models.Tweet) error {
	query := `
		UPDATE tweets
		SET content = $2, photo_url = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query, tweet.ID, tweet.Content, tweet.PhotoURL).Scan(&tweet.UpdatedAt); err != nil {
		return db.WrapError(err, "update tweet")
	}

	return nil
}

func (r *tweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err != nil {
		return db.WrapError(err, "delete tweet")
	}
	if tag.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "delete tweet")
	}

	return nil
}

func (r *tweetRepository) ListFeed(ctx context.Context, viewer *uuid.UUID) ([]*models.TweetFeedItem, error) {
	query := `
		SELECT ` + tweetFeedColumns + `
		FROM tweets t
		JOIN users u ON u.id = t.owner_id
		ORDER BY t.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, viewer)
	if err != nil {
		return nil, db.WrapError(err, "list tweet feed")
	}
	defer rows.Close()

	return scanTweetFeedItems(rows)
}

func (r *tweetRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, viewer *uuid.UUID) ([]*models.TweetFeedItem, error) {
	query := `
		SELECT ` + tweetFeedColumns + `
		FROM tweets t
		JOIN users u ON u.id = t.owner_id
		WHERE t.owner_id = $2
		ORDER BY t.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, viewer, ownerID)
	if err != nil {
		return nil, db.WrapError(err, "list tweets by owner")
	}
	defer rows.Close()

	return scanTweetFeedItems(rows)
}

func (r *tweetRepository) ListSubscribed(ctx context.Context, viewer uuid.UUID) ([]*models.TweetFeedItem, error) {
	query := `
		SELECT ` + tweetFeedColumns + `
		FROM tweets t
		JOIN users u ON u.id = t.owner_id
		JOIN subscriptions s ON s.channel_id = t.owner_id
		WHERE s.subscriber_id = $1
		ORDER BY t.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, viewer)
	if err != nil {
		return nil, db.WrapError(err, "list subscribed tweets")
	}
	defer rows.Close()

	return scanTweetFeedItems(rows)
}

func (r *tweetRepository) ListReactedBy(ctx context.Context, userID uuid.UUID, liked bool) ([]*models.TweetFeedItem, error) {
	query := `
		SELECT ` + tweetFeedColumns + `
		FROM reactions rx
		JOIN tweets t ON t.id = rx.tweet_id
		JOIN users u ON u.id = t.owner_id
		WHERE rx.reactor_id = $1 AND rx.liked = $2
		ORDER BY rx.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID, liked)
	if err != nil {
		return nil, db.WrapError(err, "list reacted tweets")
	}
	defer rows.Close()

	return scanTweetFeedItems(rows)
}

func tweetFeedDests(item *models.TweetFeedItem) []interface{} {
	return []interface{}{
		&item.ID,
		&item.Content,
		&item.PhotoURL,
		&item.CreatedAt,
		&item.Owner.ID,
		&item.Owner.Username,
		&item.Owner.FullName,
		&item.Owner.AvatarURL,
		&item.TotalLikes,
		&item.TotalDislikes,
		&item.IsLiked,
		&item.IsDisliked,
	}
}

// Helper function to scan multiple feed items from query results
func scanTweetFeedItems(rows pgx.Rows) ([]*models.TweetFeedItem, error) {
	var items []*models.TweetFeedItem

	for rows.Next() {
		item := &models.TweetFeedItem{}
		if err := rows.Scan(tweetFeedDests(item)...); err != nil {
			return nil, fmt.Errorf("scan tweet feed item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tweet feed items: %w", err)
	}

	return items, nil
}
