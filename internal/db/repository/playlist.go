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

// PlaylistRepository defines operations for managing playlists. Membership
// has set semantics: adding a video twice is a no-op.
type PlaylistRepository interface {
	// Create persists a new playlist. A duplicate (owner, name) pair
	// surfaces as ErrDuplicateKey.
	Create(ctx context.Context, playlist *models.Playlist) error

	// GetByID retrieves a playlist without its videos.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error)

	// GetWithVideos retrieves a playlist and its published videos in
	// insertion order, enriched for the viewer.
	GetWithVideos(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*models.Playlist, error)

	// ListByOwner retrieves a user's playlists, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Playlist, error)

	// Update persists a playlist's name and description.
	Update(ctx context.Context, playlist *models.Playlist) error

	// Delete removes a playlist and its memberships.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddVideo adds a video to a playlist. Returns false when the video was
	// already a member.
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error)

	// RemoveVideo removes a video from a playlist. Returns false when the
	// video was not a member.
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error)
}

type playlistRepository struct {
	pool *pgxpool.Pool
}

// NewPlaylistRepository creates a new PlaylistRepository.
func NewPlaylistRepository(pool *pgxpool.Pool) PlaylistRepository {
	return &playlistRepository{pool: pool}
}

const playlistColumns = `id, owner_id, name, description, created_at, updated_at`

func (r *playlistRepository) Create(ctx context.Context, playlist *models.Playlist) error {
	query := `
		INSERT INTO playlists (id, owner_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		playlist.ID,
		playlist.OwnerID,
		playlist.Name,
		playlist.Description,
		playlist.CreatedAt,
		playlist.UpdatedAt,
	)
	if err != nil {
		return db.WrapError(err, "create playlist")
	}

	return nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	query := `SELECT ` + playlistColumns + ` FROM playlists WHERE id = $1`

	playlist := &models.Playlist{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&playlist.ID,
		&playlist.OwnerID,
		&playlist.Name,
		&playlist.Description,
		&playlist.CreatedAt,
		&playlist.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "get playlist by id")
	}

	return playlist, nil
}

func (r *playlistRepository) GetWithVideos(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*models.Playlist, error) {
	playlist, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ` + videoFeedColumns + `
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE pv.playlist_id = $2 AND v.is_published
		ORDER BY pv.position
	`

	rows, err := r.pool.Query(ctx, query, viewer, id)
	if err != nil {
		return nil, db.WrapError(err, "get playlist videos")
	}
	defer rows.Close()

	videos, err := scanVideoFeedItems(rows)
	if err != nil {
		return nil, err
	}
	playlist.Videos = videos

	return playlist, nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Playlist, error) {
	query := `
		SELECT ` + playlistColumns + `
		FROM playlists
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, db.WrapError(err, "list playlists by owner")
	}
	defer rows.Close()

	var playlists []*models.Playlist
	for rows.Next() {
		playlist := &models.Playlist{}
		err := rows.Scan(
			&playlist.ID,
			&playlist.OwnerID,
			&playlist.Name,
			&playlist.Description,
			&playlist.CreatedAt,
			&playlist.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}

	return playlists, nil
}

func (r *playlistRepository) Update(ctx context.Context, playlist *models.Playlist) error {
	query := `
		UPDATE playlists
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query, playlist.ID, playlist.Name, playlist.Description).Scan(&playlist.UpdatedAt); err != nil {
		return db.WrapError(err, "update playlist")
	}

	return nil
}

func (r *playlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return db.WrapError(err, "delete playlist")
	}
	if tag.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "delete playlist")
	}

	return nil
}

func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO playlist_videos (playlist_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (playlist_id, video_id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query, playlistID, videoID)
	if err != nil {
		return false, db.WrapError(err, "add playlist video")
	}

	return tag.RowsAffected() == 1, nil
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	query := `DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`

	tag, err := r.pool.Exec(ctx, query, playlistID, videoID)
	if err != nil {
		return false, db.WrapError(err, "remove playlist video")
	}

	return tag.RowsAffected() == 1, nil
}
