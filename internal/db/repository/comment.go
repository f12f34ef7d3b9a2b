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

// CommentRepository defines operations for managing comments.
type CommentRepository interface {
	// Create persists a new comment.
	Create(ctx context.Context, comment *models.Comment) error

	// GetByID retrieves a single comment by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)

	// Update persists a comment's content.
	Update(ctx context.Context, comment *models.Comment) error

	// Delete removes a comment. Its reactions cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByVideo retrieves all enriched comments of a video, newest first.
	ListByVideo(ctx context.Context, videoID uuid.UUID, viewer *uuid.UUID) ([]*models.CommentFeedItem, error)

	// FirstPageByVideos retrieves the newest perVideo comments for each of
	// the given videos plus the total comment count per video.
	FirstPageByVideos(ctx context.Context, videoIDs []uuid.UUID, viewer *uuid.UUID, perVideo int) (map[uuid.UUID][]*models.CommentFeedItem, map[uuid.UUID]int, error)

	// ListReactedBy retrieves comments the user liked (liked=true) or
	// disliked (liked=false).
	ListReactedBy(ctx context.Context, userID uuid.UUID, liked bool) ([]*models.CommentFeedItem, error)
}

type commentRepository struct {
	pool *pgxpool.Pool
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &commentRepository{pool: pool}
}

// commentFeedColumns selects the enriched comment row. $1 is the viewer id
// (nullable). is_liked_by_owner reports whether the parent video's owner
// liked the comment.
const commentFeedColumns = `
	c.id, c.content, c.created_at,
	u.id, u.username, u.full_name, u.avatar_url,
	(SELECT COUNT(*) FROM reactions r WHERE r.comment_id = c.id AND r.liked) AS total_likes,
	(SELECT COUNT(*) FROM reactions r WHERE r.comment_id = c.id AND NOT r.liked) AS total_dislikes,
	EXISTS (SELECT 1 FROM reactions r WHERE r.comment_id = c.id AND r.liked AND r.reactor_id = $1) AS is_liked,
	EXISTS (SELECT 1 FROM reactions r WHERE r.comment_id = c.id AND NOT r.liked AND r.reactor_id = $1) AS is_disliked,
	EXISTS (SELECT 1 FROM reactions r WHERE r.comment_id = c.id AND r.liked AND r.reactor_id = v.owner_id) AS is_liked_by_owner`

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, video_id, owner_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		comment.ID,
		comment.VideoID,
		comment.OwnerID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return db.WrapError(err, "create comment")
	}

	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	query := `
		SELECT id, video_id, owner_id, content, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	comment := &models.Comment{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.VideoID,
		&comment.OwnerID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		return nil, db.WrapError(err, "get comment by id")
	}

	return comment, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	query := `
		UPDATE comments
		SET content = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	if err := r.pool.QueryRow(ctx, query, comment.ID, comment.Content).Scan(&comment.UpdatedAt); err != nil {
		return db.WrapError(err, "update comment")
	}

	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return db.WrapError(err, "delete comment")
	}
	if tag.RowsAffected() == 0 {
		return db.WrapError(pgx.ErrNoRows, "delete comment")
	}

	return nil
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID uuid.UUID, viewer *uuid.UUID) ([]*models.CommentFeedItem, error) {
	query := `
		SELECT ` + commentFeedColumns + `
		FROM comments c
		JOIN users u ON u.id = c.owner_id
		JOIN videos v ON v.id = c.video_id
		WHERE c.video_id = $2
		ORDER BY c.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, viewer, videoID)
	if err != nil {
		return nil, db.WrapError(err, "list comments by video")
	}
	defer rows.Close()

	return scanCommentFeedItems(rows)
}

func (r *commentRepository) FirstPageByVideos(ctx context.Context, videoIDs []uuid.UUID, viewer *uuid.UUID, perVideo int) (map[uuid.UUID][]*models.CommentFeedItem, map[uuid.UUID]int, error) {
	if len(videoIDs) == 0 {
		return map[uuid.UUID][]*models.CommentFeedItem{}, map[uuid.UUID]int{}, nil
	}

	// The subquery needs distinct aliases so the outer select is not
	// ambiguous between c.id and u.id.
	query := `
		SELECT video_id, total,
		       comment_id, content, created_at,
		       owner_user_id, username, full_name, avatar_url,
		       total_likes, total_dislikes, is_liked, is_disliked, is_liked_by_owner
		FROM (
			SELECT c.video_id,
			       ROW_NUMBER() OVER (PARTITION BY c.video_id ORDER BY c.created_at DESC) AS rn,
			       COUNT(*) OVER (PARTITION BY c.video_id) AS total,
			       c.id AS comment_id, c.content, c.created_at,
			       u.id AS owner_user_id, u.username, u.full_name, u.avatar_url,
			       (SELECT COUNT(*) FROM reactions r WHERE r.comment_id = c.id AND r.liked) AS total_likes,
			       (SELECT COUNT(*) FROM reactions r WHERE r.comment_id = c.id AND NOT r.liked) AS total_dislikes,
			       EXISTS (SELECT 1 FROM reactions r WHERE r.comment_id = c.id AND r.liked AND r.reactor_id = $1) AS is_liked,
			       EXISTS (SELECT 1 FROM reactions r WHERE r.comment_id = c.id AND NOT r.liked AND r.reactor_id = $1) AS is_disliked,
			       EXISTS (SELECT 1 FROM reactions r WHERE r.comment_id = c.id AND r.liked AND r.reactor_id = v.owner_id) AS is_liked_by_owner
			FROM comments c
			JOIN users u ON u.id = c.owner_id
			JOIN videos v ON v.id = c.video_id
			WHERE c.video_id = ANY($2)
		) ranked
		WHERE rn <= $3
		ORDER BY video_id, rn
	`

	rows, err := r.pool.Query(ctx, query, viewer, videoIDs, perVideo)
	if err != nil {
		return nil, nil, db.WrapError(err, "first page comments by videos")
	}
	defer rows.Close()

	pages := make(map[uuid.UUID][]*models.CommentFeedItem)
	totals := make(map[uuid.UUID]int)

	for rows.Next() {
		var videoID uuid.UUID
		var total int
		item := &models.CommentFeedItem{}

		dests := append([]interface{}{&videoID, &total}, commentFeedDests(item)...)
		if err := rows.Scan(dests...); err != nil {
			return nil, nil, fmt.Errorf("scan comment page row: %w", err)
		}

		pages[videoID] = append(pages[videoID], item)
		totals[videoID] = total
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate comment page rows: %w", err)
	}

	return pages, totals, nil
}

func (r *commentRepository) ListReactedBy(ctx context.Context, userID uuid.UUID, liked bool) ([]*models.CommentFeedItem, error) {
	query := `
		SELECT ` + commentFeedColumns + `
		FROM reactions rx
		JOIN comments c ON c.id = rx.comment_id
		JOIN users u ON u.id = c.owner_id
		JOIN videos v ON v.id = c.video_id
		WHERE rx.reactor_id = $1 AND rx.liked = $2
		ORDER BY rx.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID, liked)
	if err != nil {
		return nil, db.WrapError(err, "list reacted comments")
	}
	defer rows.Close()

	return scanCommentFeedItems(rows)
}

func commentFeedDests(item *models.CommentFeedItem) []interface{} {
	return []interface{}{
		&item.ID,
		&item.Content,
		&item.CreatedAt,
		&item.Owner.ID,
		&item.Owner.Username,
		&item.Owner.FullName,
		&item.Owner.AvatarURL,
		&item.TotalLikes,
		&item.TotalDislikes,
		&item.IsLiked,
		&item.IsDisliked,
		&item.IsLikedByOwner,
	}
}

// Helper function to scan multiple feed items from query results
func scanCommentFeedItems(rows pgx.Rows) ([]*models.CommentFeedItem, error) {
	var items []*models.CommentFeedItem

	for rows.Next() {
		item := &models.CommentFeedItem{}
		if err := rows.Scan(commentFeedDests(item)...); err != nil {
			return nil, fmt.Errorf("scan comment feed item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment feed items: %w", err)
	}

	return items, nil
}
