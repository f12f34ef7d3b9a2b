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

// ReactionRepository defines operations for managing like/dislike records.
// Toggle semantics live in the service layer; the repository only finds,
// creates and deletes individual reactions.
type ReactionRepository interface {
	// Find retrieves the reactor's reaction of the given polarity on the
	// target, or ErrNotFound.
	Find(ctx context.Context, kind models.TargetKind, targetID, reactorID uuid.UUID, liked bool) (*models.Reaction, error)

	// Create persists a new reaction.
	Create(ctx context.Context, reaction *models.Reaction) error

	// Delete removes a reaction by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

type reactionRepository struct {
	pool *pgxpool.Pool
}

// NewReactionRepository creates a new ReactionRepository.
func NewReactionRepository(pool *pgxpool.Pool) ReactionRepository {
	return &reactionRepository{pool: pool}
}

// targetColumn maps a kind to its reactions column. Kinds are a closed set,
// so interpolating the column name is safe.
func targetColumn(kind models.TargetKind) (string, error) {
	switch kind {
	case models.TargetVideo:
		return "video_id", nil
	case models.TargetComment:
		return "comment_id", nil
	case models.TargetTweet:
		return "tweet_id", nil
	default:
		return "", fmt.Errorf("unknown target kind: %s", kind)
	}
}

func (r *reactionRepository) Find(ctx context.Context, kind models.TargetKind, targetID, reactorID uuid.UUID, liked bool) (*models.Reaction, error) {
	column, err := targetColumn(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, reactor_id, liked, video_id, comment_id, tweet_id, created_at
		FROM reactions
		WHERE %s = $1 AND reactor_id = $2 AND liked = $3
	`, column)

	reaction := &models.Reaction{}
	err = r.pool.QueryRow(ctx, query, targetID, reactorID, liked).Scan(
		&reaction.ID,
		&reaction.ReactorID,
		&reaction.Liked,
		&reaction.VideoID,
		&reaction.CommentID,
		&reaction.TweetID,
		&reaction.CreatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "find reaction")
	}

	return reaction, nil
}

func (r *reactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	query := `
		INSERT INTO reactions (id, reactor_id, liked, video_id, comment_id, tweet_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		reaction.ID,
		reaction.ReactorID,
		reaction.Liked,
		reaction.VideoID,
		reaction.CommentID,
		reaction.TweetID,
		reaction.CreatedAt,
	)
	if err != nil {
		return db.WrapError(err, "create reaction")
	}

	return nil
}

func (r *reactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reactions WHERE id = $1`, id)
	if err != nil {
		return db.WrapError(err, "delete reaction")
	}
	if tag.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "delete reaction")
	}

	return nil
}
