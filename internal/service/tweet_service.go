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

// TweetService handles short text posts with optional photos.
type TweetService struct {
	tweets    repository.TweetRepository
	validator *validation.Validator
	store     BlobStore
}

// NewTweetService creates a new TweetService.
func NewTweetService(
	tweets repository.TweetRepository,
	validator *validation.Validator,
	store BlobStore,
) *TweetService {
	return &TweetService{
		tweets:    tweets,
		validator: validator,
		store:     store,
	}
}

// ListFeed retrieves one page of the public tweet feed, newest first.
func (s *TweetService) ListFeed(ctx context.Context, viewer *uuid.UUID, page feed.PageRequest) (*feed.Page[*models.TweetFeedItem], error) {
	candidates, err := s.tweets.ListFeed(ctx, viewer)
	if err != nil {
		return nil, &ProcessingError{Message: "failed to load tweet feed", Cause: err}
	}

	items, meta := feed.New[*models.TweetFeedItem]().
		Paginate(feed.NormalizePage(page.Page, page.Limit)).
		Project(projectTweetFor(viewer)).
		Run(candidates)

	if items == nil {
		items = []*models.TweetFeedItem{}
	}
	return &feed.Page[*models.TweetFeedItem]{Docs: items, Meta: meta}, nil
}

// ListByUser retrieves every tweet of one user, newest first. The user-scoped
// feed is not paginated.
func (s *TweetService) ListByUser(ctx context.Context, userID uuid.UUID, viewer *uuid.UUID) ([]*models.TweetFeedItem, error) {
	items, err := s.tweets.ListByOwner(ctx, userID, viewer)
	if err != nil {
		return nil, &ProcessingError{Message: "failed to load user tweets", Cause: err}
	}

	return projectTweets(items, viewer), nil
}

// ListSubscribed retrieves every tweet from channels the viewer subscribes
// to, newest first. Not paginated.
func (s *TweetService) ListSubscribed(ctx context.Context, viewer uuid.UUID) ([]*models.TweetFeedItem, error) {
	items, err := s.tweets.ListSubscribed(ctx, viewer)
	if err != nil {
		return nil, &ProcessingError{Message: "failed to load subscribed tweets", Cause: err}
	}

	return projectTweets(items, &viewer), nil
}

// CreateTweetInput carries a new tweet. The photo is optional and already
// spooled to local disk.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type CreateTweetInput struct {
	Content          string
	PhotoPath        string
	PhotoSize        int64
	PhotoContentType string
}

// Create posts a new tweet, uploading the photo first when one is attached.
func (s *TweetService) Create(ctx context.Context, actor uuid.UUID, in *CreateTweetInput) (*models.Tweet, error) {
	if err := s.validator.ValidateTweet(in.Content); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	var photoURL *string
	if in.PhotoPath != "" {
		uploaded, err := uploadLocalFile(ctx, s.store, "tweets", in.PhotoPath, in.PhotoSize, in.PhotoContentType)
		if err != nil {
			return nil, &ProcessingError{Message: "failed to store tweet photo", Cause: err}
		}
		photoURL = &uploaded
	}

	tweet := models.NewTweet(actor, in.Content, photoURL)
	if err := s.tweets.Create(ctx, tweet); err != nil {
		if photoURL != nil {
			removeBlob(ctx, s.store, *photoURL)
		}
		return nil, &ProcessingError{Message: "failed to persist tweet", Cause: err}
	}

	return tweet, nil
}

// Update edits the actor's own tweet content.
func (s *TweetService) Update(ctx context.Context, actor, id uuid.UUID, content string) (*models.Tweet, error) {
	if err := s.validator.ValidateTweet(content); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	tweet, err := s.ownedTweet(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	tweet.Content = content
	if err := s.tweets.Update(ctx, tweet); err != nil {
		return nil, &ProcessingError{Message: "failed to update tweet", Cause: err}
	}

	return tweet, nil
}

// Delete removes the actor's own tweet and its photo, if any. Reactions
// cascade in the database.
func (s *TweetService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	tweet, err := s.ownedTweet(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.tweets.Delete(ctx, id); err != nil {
		return &ProcessingError{Message: "failed to delete tweet", Cause: err}
	}

	if tweet.PhotoURL != nil {
		removeBlob(ctx, s.store, *tweet.PhotoURL)
	}

	return nil
}

// ListReacted retrieves tweets the user liked or disliked.
func (s *TweetService) ListReacted(ctx context.Context, userID uuid.UUID, liked bool) ([]*models.TweetFeedItem, error) {
	items, err := s.tweets.ListReactedBy(ctx, userID, liked)
	if err != nil {
		return nil, &ProcessingError{Message: "failed to load reacted tweets", Cause: err}
	}

	return projectTweets(items, &userID), nil
}

func projectTweetFor(viewer *uuid.UUID) func(*models.TweetFeedItem) *models.TweetFeedItem {
	return func(t *models.TweetFeedItem) *models.TweetFeedItem {
		t.IsOwner = viewer != nil && *viewer == t.Owner.ID
		return t
	}
}

func projectTweets(items []*models.TweetFeedItem, viewer *uuid.UUID) []*models.TweetFeedItem {
	project := projectTweetFor(viewer)
	for i := range items {
		items[i] = project(items[i])
	}
	if items == nil {
		items = []*models.TweetFeedItem{}
	}
	return items
}

func (s *TweetService) ownedTweet(ctx context.Context, actor, id uuid.UUID) (*models.Tweet, error) {
	tweet, err := s.tweets.GetByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, &NotFoundError{Resource: "tweet"}
		}
		return nil, &ProcessingError{Message: "failed to load tweet", Cause: err}
	}

	if tweet.OwnerID != actor {
		return nil, &ForbiddenError{Message: "only the owner can modify this tweet"}
	}

	return tweet, nil
}
