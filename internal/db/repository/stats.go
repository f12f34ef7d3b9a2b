package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamhub/video-platform-go/internal/db"
	"github.com/streamhub/video-platform-go/internal/db/models"
)

// StatsRepository computes owner-facing dashboard aggregates.
type StatsRepository interface {
	// ChannelStats aggregates a channel's totals: views, content counts,
	// subscribers and reactions received per content kind.
	ChannelStats(ctx context.Context, ownerID uuid.UUID) (*models.ChannelStats, error)

	// ChannelVideos retrieves the owner's videos, including unpublished
	// ones, with reaction and comment counts.
	ChannelVideos(ctx context.Context, ownerID uuid.UUID) ([]*models.DashboardVideo, error)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository creates a new StatsRepository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) ChannelStats(ctx context.Context, ownerID uuid.UUID) (*models.ChannelStats, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(views) FROM videos WHERE owner_id = $1), 0) AS total_views,
			(SELECT COUNT(*) FROM videos WHERE owner_id = $1) AS total_videos,
			(SELECT COUNT(*) FROM comments c JOIN videos v ON v.id = c.video_id WHERE v.owner_id = $1) AS total_comments,
			(SELECT COUNT(*) FROM tweets WHERE owner_id = $1) AS total_tweets,
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1) AS total_subscribers,
			(SELECT COUNT(*) FROM reactions r JOIN videos v ON v.id = r.video_id WHERE v.owner_id = $1 AND r.liked) AS total_video_likes,
			(SELECT COUNT(*) FROM reactions r JOIN videos v ON v.id = r.video_id WHERE v.owner_id = $1 AND NOT r.liked) AS total_video_dislikes,
			(SELECT COUNT(*) FROM reactions r JOIN comments c ON c.id = r.comment_id WHERE c.owner_id = $1 AND r.liked) AS total_comment_likes,
			(SELECT COUNT(*) FROM reactions r JOIN comments c ON c.id = r.comment_id WHERE c.owner_id = $1 AND NOT r.liked) AS total_comment_dislikes,
			(SELECT COUNT(*) FROM reactions r JOIN tweets t ON t.id = r.tweet_id WHERE t.owner_id = $1 AND r.liked) AS total_tweet_likes,
			(SELECT COUNT(*) FROM reactions r JOIN tweets t ON t.id = r.tweet_id WHERE t.owner_id = $1 AND NOT r.liked) AS total_tweet_dislikes
	`

	stats := &models.ChannelStats{}
	err := r.pool.QueryRow(ctx, query, ownerID).Scan(
		&stats.TotalViews,
		&stats.TotalVideos,
		&stats.TotalComments,
		&stats.TotalTweets,
		&stats.TotalSubscribers,
		&stats.TotalVideoLikes,
		&stats.TotalVideoDislikes,
		&stats.TotalCommentLikes,
		&stats.TotalCommentDislikes,
		&stats.TotalTweetLikes,
		&stats.TotalTweetDislikes,
	)
	if err != nil {
		return nil, db.WrapError(err, "channel stats")
	}

	return stats, nil
}

func (r *statsRepository) ChannelVideos(ctx context.Context, ownerID uuid.UUID) ([]*models.DashboardVideo, error) {
	query := `
		SELECT v.id, v.title, v.thumbnail_url, v.views, v.is_published, v.created_at,
		       (SELECT COUNT(*) FROM reactions r WHERE r.video_id = v.id AND r.liked) AS total_likes,
		       (SELECT COUNT(*) FROM reactions r WHERE r.video_id = v.id AND NOT r.liked) AS total_dislikes,
		       (SELECT COUNT(*) FROM comments c WHERE c.video_id = v.id) AS total_comments
		FROM videos v
		WHERE v.owner_id = $1
		ORDER BY v.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, db.WrapError(err, "channel videos")
	}
	defer rows.Close()

	var videos []*models.DashboardVideo
	for rows.Next() {
		video := &models.DashboardVideo{}
		err := rows.Scan(
			&video.ID,
			&video.Title,
			&video.ThumbnailURL,
			&video.Views,
			&video.IsPublished,
			&video.CreatedAt,
			&video.TotalLikes,
			&video.TotalDislikes,
			&video.TotalComments,
		)
		if err != nil {
			return nil, fmt.Errorf("scan dashboard video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dashboard videos: %w", err)
	}

	return videos, nil
}
