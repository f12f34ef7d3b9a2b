package models

import (
	"time"

	"github.com/google/uuid"
)

// ChannelStats aggregates a channel's dashboard counters.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type ChannelStats struct {
	TotalViews           int64 `json:"totalViews"`
	TotalVideos          int   `json:"totalVideos"`
	TotalComments        int   `json:"totalComments"`
	TotalTweets          int   `json:"totalTweets"`
	TotalSubscribers     int   `json:"totalSubscribers"`
	TotalVideoLikes      int   `json:"totalVideoLikes"`
	TotalVideoDislikes   int   `json:"totalVideoDislikes"`
	TotalCommentLikes    int   `json:"totalCommentLikes"`
	TotalCommentDislikes int   `json:"totalCommentDislikes"`
	TotalTweetLikes      int   `json:"totalTweetLikes"`
	TotalTweetDislikes   int   `json:"totalTweetDislikes"`
}

// DashboardVideo is an owner-facing video row including unpublished videos.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type DashboardVideo struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	ThumbnailURL  string    `json:"thumbnail"`
	Views         int64     `json:"views"`
	IsPublished   bool      `json:"isPublished"`
	CreatedAt     time.Time `json:"createdAt"`
	TotalLikes    int       `json:"totalLikes"`
	TotalDislikes int       `json:"totalDislikes"`
	TotalComments int       `json:"totalComments"`
}
