// Package service contains the business logic composing repositories, the
// feed pipeline, object storage and the event publisher.
package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/streamhub/video-platform-go/internal/db"
	"github.com/streamhub/video-platform-go/internal/db/models"
	"github.com/streamhub/video-platform-go/internal/db/repository"
	"github.com/streamhub/video-platform-go/internal/feed"
	"github.com/streamhub/video-platform-go/internal/validation"
	"github.com/streamhub/video-platform-go/pkg/logger"
)

// BlobStore stores media objects and returns public URLs.
type BlobStore interface {
	ObjectKey(prefix, filename string) string
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectURL string) error
}

// DurationProber returns the duration in seconds of a local media file.
type DurationProber func(path string) (float64, error)

// commentPreviewLimit is the fixed first page of comments attached to each
// video in the feed.
const commentPreviewLimit = 10

// VideoService handles video publishing and the video feed.
type VideoService struct {
	videos    repository.VideoRepository
	comments  repository.CommentRepository
	store     BlobStore
	validator *validation.Validator
	probe     DurationProber
	events    DomainEventPublisher
}

// NewVideoService creates a new VideoService. events may be nil when no
// broker is configured.
func NewVideoService(
	videos repository.VideoRepository,
	comments repository.CommentRepository,
	store BlobStore,
	validator *validation.Validator,
	probe DurationProber,
	events DomainEventPublisher,
) *VideoService {
	return &VideoService{
		videos:    videos,
		comments:  comments,
		store:     store,
		validator: validator,
		probe:     probe,
		events:    events,
	}
}

// VideoFeedQuery parameterizes the video listing/search endpoint.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type VideoFeedQuery struct {
	Query  string
	SortBy string // views, duration or createdAt
	Order  string // asc or desc
	Page   int
	Limit  int
	UserID *uuid.UUID
	Viewer *uuid.UUID
}

// ListFeed runs the video feed pipeline: fetch published candidates, score
// against the query, sort, paginate, project, then attach the first page of
// comments to each windowed video.
func (s *VideoService) ListFeed(ctx context.Context, q *VideoFeedQuery) (*feed.Page[*models.VideoFeedItem], error) {
	tokens := feed.Tokenize(q.Query)

	candidates, err := s.videos.ListFeed(ctx, &repository.VideoFeedFilters{
		Viewer:  q.Viewer,
		OwnerID: q.UserID,
		Terms:   tokens,
	})
	if err != nil {
		return nil, &ProcessingError{Message: "failed to load video feed", Cause: err}
	}

	p := feed.New[*models.VideoFeedItem]()

	// A query that is all stop words carries no signal: skip scoring and
	// fall through to recency ordering.
	scores := make(map[uuid.UUID]feed.Score, len(candidates))
	if len(tokens) > 0 {
		for _, v := range candidates {
			scores[v.ID] = feed.ScoreFields(tokens, v.Title, v.Description)
		}
		p.Match(func(v *models.VideoFeedItem) bool { return !scores[v.ID].Zero() })
	}

	p.Sort(videoLess(len(tokens) > 0, scores, q.SortBy, q.Order)).
		Paginate(feed.NormalizePage(q.Page, q.Limit)).
		Project(projectVideoFor(q.Viewer))

	items, meta := p.Run(candidates)

	if err := s.attachComments(ctx, items, q.Viewer); err != nil {
		return nil, err
	}

	if items == nil {
		items = []*models.VideoFeedItem{}
	}
	return &feed.Page[*models.VideoFeedItem]{Docs: items, Meta: meta}, nil
}

// videoLess orders by relevance first, then the explicit sort key, with
// recency as the final tiebreaker.
func videoLess(scored bool, scores map[uuid.UUID]feed.Score, sortBy, order string) func(a, b *models.VideoFeedItem) bool {
	desc := order != "asc"
	return func(a, b *models.VideoFeedItem) bool {
		if scored {
			sa, sb := scores[a.ID], scores[b.ID]
			if sa != sb {
				return sb.Less(sa)
			}
		}

		switch sortBy {
		case "views":
			if a.Views != b.Views {
				if desc {
					return a.Views > b.Views
				}
				return a.Views < b.Views
			}
		case "duration":
			if a.DurationSeconds != b.DurationSeconds {
				if desc {
					return a.DurationSeconds > b.DurationSeconds
				}
				return a.DurationSeconds < b.DurationSeconds
			}
		case "createdAt":
			if !a.CreatedAt.Equal(b.CreatedAt) {
				if desc {
					return a.CreatedAt.After(b.CreatedAt)
				}
				return a.CreatedAt.Before(b.CreatedAt)
			}
		}

		return a.CreatedAt.After(b.CreatedAt)
	}
}

func projectVideoFor(viewer *uuid.UUID) func(*models.VideoFeedItem) *models.VideoFeedItem {
	return func(v *models.VideoFeedItem) *models.VideoFeedItem {
		v.IsOwner = viewer != nil && *viewer == v.Owner.ID
		return v
	}
}

func (s *VideoService) attachComments(ctx context.Context, items []*models.VideoFeedItem, viewer *uuid.UUID) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(items))
	for i, v := range items {
		ids[i] = v.ID
	}

	pages, totals, err := s.comments.FirstPageByVideos(ctx, ids, viewer, commentPreviewLimit)
	if err != nil {
		return &ProcessingError{Message: "failed to load feed comments", Cause: err}
	}

	for _, v := range items {
		v.Comments = pages[v.ID]
		v.TotalComments = totals[v.ID]
		for _, c := range v.Comments {
			c.IsOwner = viewer != nil && *viewer == c.Owner.ID
		}
	}

	return nil
}

// Get retrieves a published video for the viewer, recording the view in the
// viewer's watch history. A video's view count moves at most once per
// (viewer, video) pair.
func (s *VideoService) Get(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*models.VideoFeedItem, error) {
	item, err := s.videos.GetFeedItem(ctx, id, viewer)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, &NotFoundError{Resource: "video"}
		}
		return nil, &ProcessingError{Message: "failed to load video", Cause: err}
	}

	item.IsOwner = viewer != nil && *viewer == item.Owner.ID

	if viewer != nil {
		counted, err := s.videos.RecordView(ctx, *viewer, id)
		if err != nil {
			// A lost view is not worth failing the read.
			logger.Log.Warn("Failed to record view",
				zap.Error(err),
				zap.String("videoId", id.String()),
			)
		} else if counted {
			item.Views++
		}
	}

	return item, nil
}

// PublishVideoInput carries the upload already spooled to local disk by the
// transport layer.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type PublishVideoInput struct {
	Title            string
	Description      string
	VideoPath        string
	VideoSize        int64
	VideoContentType string
	ThumbPath        string
	ThumbSize        int64
	ThumbContentType string
}

// Publish probes, uploads and persists a new video. Videos are published
// immediately; the owner can unlist them afterwards via TogglePublish.
func (s *VideoService) Publish(ctx context.Context, owner uuid.UUID, in *PublishVideoInput) (*models.Video, error) {
	if err := s.validator.ValidateTitle(in.Title); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := s.validator.ValidateDescription(in.Description); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	duration, err := s.probe(in.VideoPath)
	if err != nil {
		return nil, &ValidationError{Message: "could not read video file duration"}
	}

	videoURL, err := uploadLocalFile(ctx, s.store, "videos", in.VideoPath, in.VideoSize, in.VideoContentType)
	if err != nil {
		return nil, &ProcessingError{Message: "failed to store video file", Cause: err}
	}

	thumbURL, err := uploadLocalFile(ctx, s.store, "thumbnails", in.ThumbPath, in.ThumbSize, in.ThumbContentType)
	if err != nil {
		removeBlob(ctx, s.store, videoURL)
		return nil, &ProcessingError{Message: "failed to store thumbnail", Cause: err}
	}

	video := models.NewVideo(owner, in.Title, in.Description, videoURL, thumbURL, duration)
	if err := s.videos.Create(ctx, video); err != nil {
		removeBlob(ctx, s.store, videoURL)
		removeBlob(ctx, s.store, thumbURL)
		return nil, &ProcessingError{Message: "failed to persist video", Cause: err}
	}

	publishEvent(ctx, s.events, EventVideoPublished, video)

	logger.Log.Info("Video published",
		zap.String("videoId", video.ID.String()),
		zap.String("ownerId", owner.String()),
	)

	return video, nil
}

// UpdateVideoInput carries a partial video update. Nil fields are left
// unchanged.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type UpdateVideoInput struct {
	Title            *string
	Description      *string
	ThumbPath        string
	ThumbSize        int64
	ThumbContentType string
}

// Update edits the owner's video. A replaced thumbnail's old blob is removed
// best effort.
func (s *VideoService) Update(ctx context.Context, actor, id uuid.UUID, in *UpdateVideoInput) (*models.Video, error) {
	video, err := s.ownedVideo(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if err := s.validator.ValidateTitle(*in.Title); err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
		video.Title = *in.Title
	}
	if in.Description != nil {
		if err := s.validator.ValidateDescription(*in.Description); err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
		video.Description = *in.Description
	}

	oldThumb := ""
	if in.ThumbPath != "" {
		thumbURL, err := uploadLocalFile(ctx, s.store, "thumbnails", in.ThumbPath, in.ThumbSize, in.ThumbContentType)
		if err != nil {
			return nil, &ProcessingError{Message: "failed to store thumbnail", Cause: err}
		}
		oldThumb = video.ThumbnailURL
		video.ThumbnailURL = thumbURL
	}

	if err := s.videos.Update(ctx, video); err != nil {
		return nil, &ProcessingError{Message: "failed to update video", Cause: err}
	}

	if oldThumb != "" {
		removeBlob(ctx, s.store, oldThumb)
	}

	return video, nil
}

// Delete removes the owner's video. Comments and reactions cascade in the
// database; blobs are removed best effort.
func (s *VideoService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	video, err := s.ownedVideo(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.videos.Delete(ctx, id); err != nil {
		return &ProcessingError{Message: "failed to delete video", Cause: err}
	}

	removeBlob(ctx, s.store, video.VideoURL)
	removeBlob(ctx, s.store, video.ThumbnailURL)
	publishEvent(ctx, s.events, EventVideoDeleted, video)

	return nil
}

// TogglePublish flips the owner's video publish flag and returns the new
// state.
func (s *VideoService) TogglePublish(ctx context.Context, actor, id uuid.UUID) (bool, error) {
	if _, err := s.ownedVideo(ctx, actor, id); err != nil {
		return false, err
	}

	published, err := s.videos.TogglePublish(ctx, id, actor)
	if err != nil {
		if db.IsNotFound(err) {
			return false, &NotFoundError{Resource: "video"}
		}
		return false, &ProcessingError{Message: "failed to toggle publish state", Cause: err}
	}

	return published, nil
}

// WatchHistory retrieves the user's watched videos, most recent first.
func (s *VideoService) WatchHistory(ctx context.Context, userID uuid.UUID) ([]*models.VideoFeedItem, error) {
	items, err := s.videos.ListWatchHistory(ctx, userID)
	if err != nil {
		return nil, &ProcessingError{Message: "failed to load watch history", Cause: err}
	}

	return projectVideos(items, &userID), nil
}

// ListReacted retrieves published videos the user liked or disliked.
func (s *VideoService) ListReacted(ctx context.Context, userID uuid.UUID, liked bool) ([]*models.VideoFeedItem, error) {
	items, err := s.videos.ListReactedBy(ctx, userID, liked)
	if err != nil {
		return nil, &ProcessingError{Message: "failed to load reacted videos", Cause: err}
	}

	return projectVideos(items, &userID), nil
}

func projectVideos(items []*models.VideoFeedItem, viewer *uuid.UUID) []*models.VideoFeedItem {
	project := projectVideoFor(viewer)
	for i := range items {
		items[i] = project(items[i])
	}
	if items == nil {
		items = []*models.VideoFeedItem{}
	}
	return items
}

// ownedVideo loads a video regardless of publish state and asserts the
// actor owns it.
func (s *VideoService) ownedVideo(ctx context.Context, actor, id uuid.UUID) (*models.Video, error) {
	video, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, &NotFoundError{Resource: "video"}
		}
		return nil, &ProcessingError{Message: "failed to load video", Cause: err}
	}

	if video.OwnerID != actor {
		return nil, &ForbiddenError{Message: "only the owner can modify this video"}
	}

	return video, nil
}
