package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/streamhub/video-platform-go/internal/db"
	"github.com/streamhub/video-platform-go/internal/db/models"
	"github.com/streamhub/video-platform-go/internal/service"
	"github.com/streamhub/video-platform-go/internal/validation"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// testRepos collects the mocks behind one test router.
type testRepos struct {
	videos        *mockVideoRepo
	comments      *mockCommentRepo
	tweets        *mockTweetRepo
	reactions     *mockReactionRepo
	subscriptions *mockSubscriptionRepo
	users         *mockUserRepo
	playlists     *mockPlaylistRepo
	stats         *mockStatsRepo
}

func newTestRouter() (*gin.Engine, *testRepos) {
	repos := &testRepos{
		videos:        new(mockVideoRepo),
		comments:      new(mockCommentRepo),
		tweets:        new(mockTweetRepo),
		reactions:     new(mockReactionRepo),
		subscriptions: new(mockSubscriptionRepo),
		users:         new(mockUserRepo),
		playlists:     new(mockPlaylistRepo),
		stats:         new(mockStatsRepo),
	}

	validator := validation.New(1 << 20)
	store := new(mockBlobStore)

	videoSvc := service.NewVideoService(repos.videos, repos.comments, store, validator, nil, nil)
	commentSvc := service.NewCommentService(repos.comments, repos.videos, validator)
	tweetSvc := service.NewTweetService(repos.tweets, validator, store)
	reactionSvc := service.NewReactionService(repos.reactions, nil)
	subscriptionSvc := service.NewSubscriptionService(repos.subscriptions, repos.users, nil)
	playlistSvc := service.NewPlaylistService(repos.playlists, repos.videos, validator)
	dashboardSvc := service.NewDashboardService(repos.stats)
	userSvc := service.NewUserService(repos.users, store)

	handlers := &Handlers{
		Videos:        NewVideoHandler(videoSvc, validator),
		Comments:      NewCommentHandler(commentSvc),
		Tweets:        NewTweetHandler(tweetSvc, validator),
		Reactions:     NewReactionHandler(reactionSvc, videoSvc, commentSvc, tweetSvc),
		Subscriptions: NewSubscriptionHandler(subscriptionSvc),
		Playlists:     NewPlaylistHandler(playlistSvc),
		Dashboard:     NewDashboardHandler(dashboardSvc),
		Users:         NewUserHandler(userSvc, validator),
		Health:        NewHealthHandler(nil, nil),
	}

	return NewRouter(handlers, testSecret), repos
}

func authHeader(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) *Response {
	t.Helper()
	resp := &Response{}
	require.NoError(t, json.Unmarshal(body.Bytes(), resp))
	return resp
}

func TestRouter_VideoFeed_Anonymous(t *testing.T) {
	router, repos := newTestRouter()

	repos.videos.On("ListFeed", mock.Anything, mock.Anything).
		Return([]*models.VideoFeedItem{
			{ID: uuid.New(), Title: "clip", Owner: models.Owner{ID: uuid.New()}},
		}, nil)
	repos.comments.On("FirstPageByVideos", mock.Anything, mock.Anything, mock.Anything, 10).
		Return(map[uuid.UUID][]*models.CommentFeedItem{}, map[uuid.UUID]int{}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.True(t, resp.Success)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	page := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), page["totalDocs"])
	assert.Len(t, page["docs"], 1)
}

func TestRouter_VideoGet_InvalidID(t *testing.T) {
	router, _ := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/videos/not-a-uuid", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "invalid identifier")
}

func TestRouter_VideoGet_NotFound(t *testing.T) {
	router, repos := newTestRouter()

	repos.videos.On("GetFeedItem", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, db.ErrNotFound)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/videos/"+uuid.NewString(), nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_VideoPublish_RequiresAuth(t *testing.T) {
	router, _ := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/videos", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_ReactionToggle(t *testing.T) {
	router, repos := newTestRouter()

	actor := uuid.New()
	videoID := uuid.New()

	repos.reactions.On("Find", mock.Anything, models.TargetVideo, videoID, actor, true).
		Return(nil, db.ErrNotFound)
	repos.reactions.On("Create", mock.Anything, mock.Anything).Return(nil)

	body := bytes.NewBufferString(`{"liked": true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reactions/toggle/video/"+videoID.String(), body)
	req.Header.Set("Authorization", authHeader(t, actor))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.True(t, resp.Success)

	result := resp.Data.(map[string]interface{})
	assert.Equal(t, true, result["active"])
	assert.Equal(t, true, result["liked"])
}

func TestRouter_ReactionToggle_InvalidKind(t *testing.T) {
	router, _ := newTestRouter()

	body := bytes.NewBufferString(`{"liked": true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reactions/toggle/channel/"+uuid.NewString(), body)
	req.Header.Set("Authorization", authHeader(t, uuid.New()))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_CommentAdd(t *testing.T) {
	router, repos := newTestRouter()

	actor := uuid.New()
	video := models.NewVideo(uuid.New(), "clip", "", "v", "t", 10)

	repos.videos.On("GetByID", mock.Anything, video.ID).Return(video, nil)
	repos.comments.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
		return c.OwnerID == actor && c.Content == "nice"
	})).Return(nil)

	body := bytes.NewBufferString(`{"content": "nice"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/videos/"+video.ID.String()+"/comments", body)
	req.Header.Set("Authorization", authHeader(t, actor))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.True(t, resp.Success)
}

func TestRouter_CommentFeed_UnpublishedVideo(t *testing.T) {
	router, repos := newTestRouter()

	video := models.NewVideo(uuid.New(), "hidden", "", "v", "t", 10)
	video.IsPublished = false

	repos.videos.On("GetByID", mock.Anything, video.ID).Return(video, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/videos/"+video.ID.String()+"/comments", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.False(t, resp.Success)
}

func TestRouter_SubscriptionToggle_Self(t *testing.T) {
	router, _ := newTestRouter()

	actor := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions/toggle/"+actor.String(), nil)
	req.Header.Set("Authorization", authHeader(t, actor))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.Contains(t, resp.Message, "own channel")
}

func TestRouter_DashboardStats(t *testing.T) {
	router, repos := newTestRouter()

	actor := uuid.New()
	repos.stats.On("ChannelStats", mock.Anything, actor).
		Return(&models.ChannelStats{TotalViews: 100, TotalVideos: 3}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil)
	req.Header.Set("Authorization", authHeader(t, actor))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w.Body)
	stats := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(100), stats["totalViews"])
}

func TestRouter_AvatarUpdate_RequiresAuth(t *testing.T) {
	router, _ := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/api/v1/users/avatar", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AvatarUpdate_MissingFile(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/avatar", nil)
	req.Header.Set("Authorization", authHeader(t, uuid.New()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.Contains(t, resp.Message, "avatar is required")
}

func TestRouter_ChannelProfile(t *testing.T) {
	router, repos := newTestRouter()

	repos.users.On("GetChannelProfile", mock.Anything, "creator", (*uuid.UUID)(nil)).
		Return(&models.ChannelProfile{
			ID:              uuid.New(),
			Username:        "creator",
			SubscriberCount: 7,
		}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/c/creator", nil))

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w.Body)
	profile := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(7), profile["subscribersCount"])
}
