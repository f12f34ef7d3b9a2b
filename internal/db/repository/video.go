// Package repository contains the raw-SQL data access layer. Each aggregate
// gets an interface plus a pgx-backed implementation; feed reads return
// items already enriched with owner and reaction aggregates.
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

// VideoFeedFilters narrows the candidate set fetched for the video feed.
// Terms is a coarse SQL prefilter; whole-word relevance scoring happens
// upstream in the feed pipeline, so the prefilter only needs to be a
// superset of the final matches.
type VideoFeedFilters struct {
	Viewer  *uuid.UUID
	OwnerID *uuid.UUID
	Terms   []string
}

// VideoRepository defines operations for managing videos.
type VideoRepository interface {
	// Create persists a new video.
	Create(ctx context.Context, video *models.Video) error

	// GetByID retrieves a video regardless of publish state. Used on
	// owner-scoped mutation paths.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error)

	// GetFeedItem retrieves a published video enriched with owner and
	// reaction aggregates. Unpublished videos yield ErrNotFound.
	GetFeedItem(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*models.VideoFeedItem, error)

	// ListFeed retrieves enriched published videos matching the filters.
	ListFeed(ctx context.Context, filters *VideoFeedFilters) ([]*models.VideoFeedItem, error)

	// Update persists title, description, thumbnail and publish state.
	Update(ctx context.Context, video *models.Video) error

	// Delete removes a video. Comments and reactions cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// TogglePublish flips the publish flag of the owner's video and returns
	// the new state.
	TogglePublish(ctx context.Context, id, ownerID uuid.UUID) (bool, error)

	// RecordView appends to the viewer's watch history and increments the
	// view counter on first watch. Returns whether a view was counted.
	RecordView(ctx context.Context, viewerID, videoID uuid.UUID) (bool, error)

	// ListWatchHistory retrieves the user's watched videos, most recent
	// watch first. Only published videos are returned.
	ListWatchHistory(ctx context.Context, userID uuid.UUID) ([]*models.VideoFeedItem, error)

	// ListReactedBy retrieves published videos the user liked (liked=true)
	// or disliked (liked=false).
	ListReactedBy(ctx context.Context, userID uuid.UUID, liked bool) ([]*models.VideoFeedItem, error)
}

type videoRepository struct {
	pool *pgxpool.Pool
}

// NewVideoRepository creates a new VideoRepository.
func NewVideoRepository(pool *pgxpool.Pool) VideoRepository {
	return &videoRepository{pool: pool}
}

// videoFeedColumns selects the enriched video row. $1 is always the viewer
// id (nullable); EXISTS against a NULL reactor is false, so anonymous
// viewers get false flags rather than nulls.
const videoFeedColumns = `
	v.id, v.title, v.description, v.video_url, v.thumbnail_url,
	v.duration_seconds, v.views, v.is_published, v.created_at,
	u.id, u.username, u.full_name, u.avatar_url,
	(SELECT COUNT(*) FROM reactions r WHERE r.video_id = v.id AND r.liked) AS total_likes,
	(SELECT COUNT(*) FROM reactions r WHERE r.video_id = v.id AND NOT r.liked) AS total_dislikes,
	EXISTS (SELECT 1 FROM reactions r WHERE r.video_id = v.id AND r.liked AND r.reactor_id = $1) AS is_liked,
	EXISTS (SELECT 1 FROM reactions r WHERE r.video_id = v.id AND NOT r.liked AND r.reactor_id = $1) AS is_disliked`

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	query := `
		INSERT INTO videos (id, owner_id, title, description, video_url, thumbnail_url, duration_seconds, views, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		video.ID,
		video.OwnerID,
		video.Title,
		video.Description,
		video.VideoURL,
		video.ThumbnailURL,
		video.DurationSeconds,
		video.Views,
		video.IsPublished,
		video.CreatedAt,
		video.UpdatedAt,
	)
	if err != nil {
		return db.WrapError(err, "create video")
	}

	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	query := `
		SELECT id, owner_id, title, description, video_url, thumbnail_url, duration_seconds, views, is_published, created_at, updated_at
		FROM videos
		WHERE id = $1
	`

	video := &models.Video{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&video.ID,
		&video.OwnerID,
		&video.Title,
		&video.Description,
		&video.VideoURL,
		&video.ThumbnailURL,
		&video.DurationSeconds,
		&video.Views,
		&video.IsPublished,
		&video.CreatedAt,
		&video.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "get video by id")
	}

	return video, nil
}

func (r *videoRepository) GetFeedItem(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*models.VideoFeedItem, error) {
	query := `
		SELECT ` + videoFeedColumns + `
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE v.id = $2 AND v.is_published
	`

	item := &models.VideoFeedItem{}
	err := r.pool.QueryRow(ctx, query, viewer, id).Scan(videoFeedDests(item)...)
	if err != nil {
		return nil, db.WrapError(err, "get video feed item")
	}

	return item, nil
}

func (r *videoRepository) ListFeed(ctx context.Context, filters *VideoFeedFilters) ([]*models.VideoFeedItem, error) {
	var viewer *uuid.UUID
	if filters != nil {
		viewer = filters.Viewer
	}

	query := `
		SELECT ` + videoFeedColumns + `
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE v.is_published
	`
	args := []interface{}{viewer}

	if filters != nil && filters.OwnerID != nil {
		args = append(args, *filters.OwnerID)
		query += fmt.Sprintf(" AND v.owner_id = $%d", len(args))
	}

	if filters != nil && len(filters.Terms) > 0 {
		patterns := make([]string, len(filters.Terms))
		for i, term := range filters.Terms {
			patterns[i] = "%" + term + "%"
		}
		args = append(args, patterns)
		query += fmt.Sprintf(" AND (v.title ILIKE ANY($%d) OR v.description ILIKE ANY($%d))", len(args), len(args))
	}

	query += " ORDER BY v.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, db.WrapError(err, "list video feed")
	}
	defer rows.Close()

	return scanVideoFeedItems(rows)
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	query := `
		UPDATE videos
		SET title = $2, description = $3, thumbnail_url = $4, is_published = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		video.ThumbnailURL,
		video.IsPublished,
	).Scan(&video.UpdatedAt)
	if err != nil {
		return db.WrapError(err, "update video")
	}

	return nil
}

func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return db.WrapError(err, "delete video")
	}
	if tag.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "delete video")
	}

	return nil
}

func (r *videoRepository) TogglePublish(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	query := `
		UPDATE videos
		SET is_published = NOT is_published, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
		RETURNING is_published
	`

	var published bool
	if err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(&published); err != nil {
		return false, db.WrapError(err, "toggle publish")
	}

	return published, nil
}

func (r *videoRepository) RecordView(ctx context.Context, viewerID, videoID uuid.UUID) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, db.WrapError(err, "record view")
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	tag, err := tx.Exec(ctx, `
		INSERT INTO watch_history (user_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, video_id) DO NOTHING
	`, viewerID, videoID)
	if err != nil {
		return false, db.WrapError(err, "record view")
	}

	// Views count each (user, video) pair at most once.
	counted := tag.RowsAffected() == 1
	if counted {
		if _, err := tx.Exec(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, videoID); err != nil {
			return false, db.WrapError(err, "increment views")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, db.WrapError(err, "record view")
	}

	return counted, nil
}

func (r *videoRepository) ListWatchHistory(ctx context.Context, userID uuid.UUID) ([]*models.VideoFeedItem, error) {
	query := `
		SELECT ` + videoFeedColumns + `
		FROM watch_history wh
		JOIN videos v ON v.id = wh.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE wh.user_id = $1 AND v.is_published
		ORDER BY wh.watched_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, db.WrapError(err, "list watch history")
	}
	defer rows.Close()

	return scanVideoFeedItems(rows)
}

func (r *videoRepository) ListReactedBy(ctx context.Context, userID uuid.UUID, liked bool) ([]*models.VideoFeedItem, error) {
	query := `
		SELECT ` + videoFeedColumns + `
		FROM reactions rx
		JOIN videos v ON v.id = rx.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE rx.reactor_id = $1 AND rx.liked = $2 AND v.is_published
		ORDER BY rx.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID, liked)
	if err != nil {
		return nil, db.WrapError(err, "list reacted videos")
	}
	defer rows.Close()

	return scanVideoFeedItems(rows)
}

func videoFeedDests(item *models.VideoFeedItem) []interface{} {
	return []interface{}{
		&item.ID,
		&item.Title,
		&item.Description,
		&item.VideoURL,
		&item.ThumbnailURL,
		&item.DurationSeconds,
		&item.Views,
		&item.IsPublished,
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
func scanVideoFeedItems(rows pgx.Rows) ([]*models.VideoFeedItem, error) {
	var items []*models.VideoFeedItem

	for rows.Next() {
		item := &models.VideoFeedItem{}
		if err := rows.Scan(videoFeedDests(item)...); err != nil {
			return nil, fmt.Errorf("scan video feed item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate video feed items: %w", err)
	}

	return items, nil
}
