package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/streamhub/video-platform-go/internal/db"
	"github.com/streamhub/video-platform-go/internal/db/models"
	"github.com/streamhub/video-platform-go/internal/db/repository"
	"github.com/streamhub/video-platform-go/internal/feed"
	"github.com/streamhub/video-platform-go/internal/validation"
)

// CommentService handles comments under videos.
type CommentService struct {
	comments  repository.CommentRepository
	videos    repository.VideoRepository
	validator *validation.Validator
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	comments repository.CommentRepository,
	videos repository.VideoRepository,
	validator *validation.Validator,
) *CommentService {
	return &CommentService{
		comments:  comments,
		videos:    videos,
		validator: validator,
	}
}

// ListByVideo retrieves one page of a published video's comments, newest
// first. A missing or unpublished video yields NotFoundError before any
// comment is read.
func (s *CommentService) ListByVideo(ctx context.Context, videoID uuid.UUID, viewer *uuid.UUID, page feed.PageRequest) (*feed.Page[*models.CommentFeedItem], error) {
	if err := s.requirePublished(ctx, videoID); err != nil {
		return nil, err
	}

	candidates, err := s.comments.ListByVideo(ctx, videoID, viewer)
	if err != nil {
		return nil, &ProcessingError{Message: "failed to load comments", Cause: err}
	}

	items, meta := feed.New[*models.CommentFeedItem]().
		Paginate(feed.NormalizePage(page.Page, page.Limit)).
		Project(projectCommentFor(viewer)).
		Run(candidates)

	if items == nil {
		items = []*models.CommentFeedItem{}
	}
	return &feed.Page[*models.CommentFeedItem]{Docs: items, Meta: meta}, nil
}

// Add posts a comment under a published video.
func (s *CommentService) Add(ctx context.Context, actor, videoID uuid.UUID, content string) (*models.Comment, error) {
	if err := s.validator.ValidateComment(content); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	if err := s.requirePublished(ctx, videoID); err != nil {
		return nil, err
	}

	comment := models.NewComment(videoID, actor, content)
	if err := s.comments.Create(ctx, comment); err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, &NotFoundError{Resource: "video"}
		}
		return nil, &ProcessingError{Message: "failed to persist comment", Cause: err}
	}

	return comment, nil
}

// Update edits the actor's own comment.
func (s *CommentService) Update(ctx context.Context, actor, id uuid.UUID, content string) (*models.Comment, error) {
	if err := s.validator.ValidateComment(content); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	comment, err := s.ownedComment(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, &ProcessingError{Message: "failed to update comment", Cause: err}
	}

	return comment, nil
}

// Delete removes the actor's own comment. Its reactions cascade in the
// database.
func (s *CommentService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	if _, err := s.ownedComment(ctx, actor, id); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return &ProcessingError{Message: "failed to delete comment", Cause: err}
	}

	return nil
}

// ListReacted retrieves comments the user liked or disliked.
func (s *CommentService) ListReacted(ctx context.Context, userID uuid.UUID, liked bool) ([]*models.CommentFeedItem, error) {
	items, err := s.comments.ListReactedBy(ctx, userID, liked)
	if err != nil {
		return nil, &ProcessingError{Message: "failed to load reacted comments", Cause: err}
	}

	project := projectCommentFor(&userID)
	for i := range items {
		items[i] = project(items[i])
	}
	if items == nil {
		items = []*models.CommentFeedItem{}
	}
	return items, nil
}

func projectCommentFor(viewer *uuid.UUID) func(*models.CommentFeedItem) *models.CommentFeedItem {
	return func(c *models.CommentFeedItem) *models.CommentFeedItem {
		c.IsOwner = viewer != nil && *viewer == c.Owner.ID
		return c
	}
}

func (s *CommentService) requirePublished(ctx context.Context, videoID uuid.UUID) error {
	video, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		if db.IsNotFound(err) {
			return &NotFoundError{Resource: "video"}
		}
		return &ProcessingError{Message: "failed to load video", Cause: err}
	}
	if !video.IsPublished {
		return &NotFoundError{Resource: "video"}
	}
	return nil
}

func (s *CommentService) ownedComment(ctx context.Context, actor, id uuid.UUID) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, &NotFoundError{Resource: "comment"}
		}
		return nil, &ProcessingError{Message: "failed to load comment", Cause: err}
	}

	if comment.OwnerID != actor {
		return nil, &ForbiddenError{Message: "only the owner can modify this comment"}
	}

	return comment, nil
}
