package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamhub/video-platform-go/internal/db"
	"github.com/streamhub/video-platform-go/internal/db/models"
)

// UserRepository defines operations over user accounts. Account creation and
// credentials belong to the external auth service; only the public profile
// images are written here.
type UserRepository interface {
	// GetByID retrieves a single user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByUsername retrieves a single user by username.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetChannelProfile retrieves the public channel page for a username,
	// including subscriber counts and the viewer's subscription state.
	GetChannelProfile(ctx context.Context, username string, viewer *uuid.UUID) (*models.ChannelProfile, error)

	// UpdateAvatar replaces the user's avatar URL.
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error

	// UpdateCover replaces the user's cover image URL.
	UpdateCover(ctx context.Context, id uuid.UUID, coverURL string) error
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, username, email, full_name, avatar_url, cover_url, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user := &models.User{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.AvatarURL,
		&user.CoverURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "get user by id")
	}

	return user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user := &models.User{}
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.AvatarURL,
		&user.CoverURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "get user by username")
	}

	return user, nil
}

func (r *userRepository) GetChannelProfile(ctx context.Context, username string, viewer *uuid.UUID) (*models.ChannelProfile, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar_url, u.cover_url,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscriber_count,
		       (SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS subscribed_count,
		       EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = $2) AS is_subscribed
		FROM users u
		WHERE u.username = $1
	`

	profile := &models.ChannelProfile{}
	err := r.pool.QueryRow(ctx, query, username, viewer).Scan(
		&profile.ID,
		&profile.Username,
		&profile.FullName,
		&profile.AvatarURL,
		&profile.CoverURL,
		&profile.SubscriberCount,
		&profile.SubscribedCount,
		&profile.IsSubscribed,
	)
	if err != nil {
		return nil, db.WrapError(err, "get channel profile")
	}

	return profile, nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	return r.updateImage(ctx, "avatar_url", "update avatar", id, avatarURL)
}

func (r *userRepository) UpdateCover(ctx context.Context, id uuid.UUID, coverURL string) error {
	return r.updateImage(ctx, "cover_url", "update cover image", id, coverURL)
}

// updateImage writes one of the two profile image columns. The column name
// comes from a closed set, never from input.
func (r *userRepository) updateImage(ctx context.Context, column, operation string, id uuid.UUID, imageURL string) error {
	query := `UPDATE users SET ` + column + ` = $2, updated_at = NOW() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, imageURL)
	if err != nil {
		return db.WrapError(err, operation)
	}
	if tag.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, operation)
	}

	return nil
}
