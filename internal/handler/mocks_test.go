package handler

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/streamhub/video-platform-go/internal/db/models"
	"github.com/streamhub/video-platform-go/internal/db/repository"
)

// Mock repositories

type mockVideoRepo struct {
	mock.Mock
}

func (m *mockVideoRepo) Create(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *mockVideoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Video), args.Error(1)
}

func (m *mockVideoRepo) GetFeedItem(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*models.VideoFeedItem, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VideoFeedItem), args.Error(1)
}

func (m *mockVideoRepo) ListFeed(ctx context.Context, filters *repository.VideoFeedFilters) ([]*models.VideoFeedItem, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.VideoFeedItem), args.Error(1)
}

func (m *mockVideoRepo) Update(ctx context.Context, video *models.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *mockVideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockVideoRepo) TogglePublish(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Bool(0), args.Error(1)
}

func (m *mockVideoRepo) RecordView(ctx context.Context, viewerID, videoID uuid.UUID) (bool, error) {
	args := m.Called(ctx, viewerID, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *mockVideoRepo) ListWatchHistory(ctx context.Context, userID uuid.UUID) ([]*models.VideoFeedItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.VideoFeedItem), args.Error(1)
}

func (m *mockVideoRepo) ListReactedBy(ctx context.Context, userID uuid.UUID, liked bool) ([]*models.VideoFeedItem, error) {
	args := m.Called(ctx, userID, liked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.VideoFeedItem), args.Error(1)
}

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *mockCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *mockCommentRepo) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *mockCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCommentRepo) ListByVideo(ctx context.Context, videoID uuid.UUID, viewer *uuid.UUID) ([]*models.CommentFeedItem, error) {
	args := m.Called(ctx, videoID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CommentFeedItem), args.Error(1)
}

func (m *mockCommentRepo) FirstPageByVideos(ctx context.Context, videoIDs []uuid.UUID, viewer *uuid.UUID, perVideo int) (map[uuid.UUID][]*models.CommentFeedItem, map[uuid.UUID]int, error) {
	args := m.Called(ctx, videoIDs, viewer, perVideo)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(map[uuid.UUID][]*models.CommentFeedItem), args.Get(1).(map[uuid.UUID]int), args.Error(2)
}

func (m *mockCommentRepo) ListReactedBy(ctx context.Context, userID uuid.UUID, liked bool) ([]*models.CommentFeedItem, error) {
	args := m.Called(ctx, userID, liked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CommentFeedItem), args.Error(1)
}

type mockTweetRepo struct {
	mock.Mock
}

func (m *mockTweetRepo) Create(ctx context.Context, tweet *models.Tweet) error {
	args := m.Called(ctx, tweet)
	return args.Error(0)
}

func (m *mockTweetRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tweet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tweet), args.Error(1)
}

func (m *mockTweetRepo) Update(ctx context.Context, tweet *models.Tweet) error {
	args := m.Called(ctx, tweet)
	return args.Error(0)
}

func (m *mockTweetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockTweetRepo) ListFeed(ctx context.Context, viewer *uuid.UUID) ([]*models.TweetFeedItem, error) {
	args := m.Called(ctx, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TweetFeedItem), args.Error(1)
}

func (m *mockTweetRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, viewer *uuid.UUID) ([]*models.TweetFeedItem, error) {
	args := m.Called(ctx, ownerID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TweetFeedItem), args.Error(1)
}

func (m *mockTweetRepo) ListSubscribed(ctx context.Context, viewer uuid.UUID) ([]*models.TweetFeedItem, error) {
	args := m.Called(ctx, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TweetFeedItem), args.Error(1)
}

func (m *mockTweetRepo) ListReactedBy(ctx context.Context, userID uuid.UUID, liked bool) ([]*models.TweetFeedItem, error) {
	args := m.Called(ctx, userID, liked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.TweetFeedItem), args.Error(1)
}

type mockReactionRepo struct {
	mock.Mock
}

func (m *mockReactionRepo) Find(ctx context.Context, kind models.TargetKind, targetID, reactorID uuid.UUID, liked bool) (*models.Reaction, error) {
	args := m.Called(ctx, kind, targetID, reactorID, liked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reaction), args.Error(1)
}

func (m *mockReactionRepo) Create(ctx context.Context, reaction *models.Reaction) error {
	args := m.Called(ctx, reaction)
	return args.Error(0)
}

func (m *mockReactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockSubscriptionRepo struct {
	mock.Mock
}

func (m *mockSubscriptionRepo) Find(ctx context.Context, subscriberID, channelID uuid.UUID) (*models.Subscription, error) {
	args := m.Called(ctx, subscriberID, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepo) Create(ctx context.Context, sub *models.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *mockSubscriptionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSubscriptionRepo) ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]*models.Owner, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Owner), args.Error(1)
}

func (m *mockSubscriptionRepo) ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]*models.Owner, error) {
	args := m.Called(ctx, subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Owner), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetChannelProfile(ctx context.Context, username string, viewer *uuid.UUID) (*models.ChannelProfile, error) {
	args := m.Called(ctx, username, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChannelProfile), args.Error(1)
}

func (m *mockUserRepo) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	args := m.Called(ctx, id, avatarURL)
	return args.Error(0)
}

func (m *mockUserRepo) UpdateCover(ctx context.Context, id uuid.UUID, coverURL string) error {
	args := m.Called(ctx, id, coverURL)
	return args.Error(0)
}

type mockPlaylistRepo struct {
	mock.Mock
}

func (m *mockPlaylistRepo) Create(ctx context.Context, playlist *models.Playlist) error {
	args := m.Called(ctx, playlist)
	return args.Error(0)
}

func (m *mockPlaylistRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Playlist), args.Error(1)
}

func (m *mockPlaylistRepo) GetWithVideos(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*models.Playlist, error) {
	args := m.Called(ctx, id, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Playlist), args.Error(1)
}

func (m *mockPlaylistRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Playlist, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Playlist), args.Error(1)
}

func (m *mockPlaylistRepo) Update(ctx context.Context, playlist *models.Playlist) error {
	args := m.Called(ctx, playlist)
	return args.Error(0)
}

func (m *mockPlaylistRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPlaylistRepo) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	args := m.Called(ctx, playlistID, videoID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPlaylistRepo) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) (bool, error) {
	args := m.Called(ctx, playlistID, videoID)
	return args.Bool(0), args.Error(1)
}

type mockStatsRepo struct {
	mock.Mock
}

func (m *mockStatsRepo) ChannelStats(ctx context.Context, ownerID uuid.UUID) (*models.ChannelStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChannelStats), args.Error(1)
}

func (m *mockStatsRepo) ChannelVideos(ctx context.Context, ownerID uuid.UUID) ([]*models.DashboardVideo, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DashboardVideo), args.Error(1)
}

// mockBlobStore records uploads and removals without touching storage.
type mockBlobStore struct {
	mock.Mock
}

func (m *mockBlobStore) ObjectKey(prefix, filename string) string {
	return prefix + "/" + filepath.Base(filename)
}

func (m *mockBlobStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockBlobStore) Remove(ctx context.Context, objectURL string) error {
	args := m.Called(ctx, objectURL)
	return args.Error(0)
}
