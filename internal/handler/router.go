package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/streamhub/video-platform-go/internal/middleware"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Videos        *VideoHandler
	Comments      *CommentHandler
	Tweets        *TweetHandler
	Reactions     *ReactionHandler
	Subscriptions *SubscriptionHandler
	Playlists     *PlaylistHandler
	Dashboard     *DashboardHandler
	Users         *UserHandler
	Health        *HealthHandler
}

// NewRouter builds the gin engine with all routes and middleware mounted.
// Every request resolves the optional viewer identity; mutation routes stack
// RequireViewer on top.
func NewRouter(h *Handlers, jwtSecret string) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.ViewerIdentity(jwtSecret),
	)

	router.GET("/health", h.Health.ReadinessProbe)
	router.GET("/health/live", h.Health.LivenessProbe)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")

	videos := api.Group("/videos")
	{
		videos.GET("", h.Videos.ListFeed)
		videos.POST("", middleware.RequireViewer(), h.Videos.Publish)
		videos.GET("/:id", h.Videos.Get)
		videos.PATCH("/:id", middleware.RequireViewer(), h.Videos.Update)
		videos.DELETE("/:id", middleware.RequireViewer(), h.Videos.Delete)
		videos.PATCH("/:id/toggle-publish", middleware.RequireViewer(), h.Videos.TogglePublish)
		videos.GET("/:id/comments", h.Comments.ListByVideo)
		videos.POST("/:id/comments", middleware.RequireViewer(), h.Comments.Add)
	}

	comments := api.Group("/comments", middleware.RequireViewer())
	{
		comments.PATCH("/:id", h.Comments.Update)
		comments.DELETE("/:id", h.Comments.Delete)
	}

	tweets := api.Group("/tweets")
	{
		tweets.GET("", h.Tweets.ListFeed)
		tweets.POST("", middleware.RequireViewer(), h.Tweets.Create)
		tweets.GET("/feed", middleware.RequireViewer(), h.Tweets.ListSubscribed)
		tweets.GET("/user/:userId", h.Tweets.ListByUser)
		tweets.PATCH("/:id", middleware.RequireViewer(), h.Tweets.Update)
		tweets.DELETE("/:id", middleware.RequireViewer(), h.Tweets.Delete)
	}

	reactions := api.Group("/reactions", middleware.RequireViewer())
	{
		reactions.POST("/toggle/:kind/:id", h.Reactions.Toggle)
		reactions.GET("/liked/:kind", h.Reactions.ListReacted(true))
		reactions.GET("/disliked/:kind", h.Reactions.ListReacted(false))
	}

	subscriptions := api.Group("/subscriptions")
	{
		subscriptions.POST("/toggle/:channelId", middleware.RequireViewer(), h.Subscriptions.Toggle)
		subscriptions.GET("/channel/:channelId", h.Subscriptions.Subscribers)
		subscriptions.GET("/user/:userId", h.Subscriptions.SubscribedChannels)
	}

	playlists := api.Group("/playlists")
	{
		playlists.POST("", middleware.RequireViewer(), h.Playlists.Create)
		playlists.GET("/:id", h.Playlists.Get)
		playlists.GET("/user/:userId", h.Playlists.ListByUser)
		playlists.PATCH("/:id", middleware.RequireViewer(), h.Playlists.Update)
		playlists.DELETE("/:id", middleware.RequireViewer(), h.Playlists.Delete)
		playlists.POST("/:id/videos/:videoId", middleware.RequireViewer(), h.Playlists.AddVideo)
		playlists.DELETE("/:id/videos/:videoId", middleware.RequireViewer(), h.Playlists.RemoveVideo)
	}

	dashboard := api.Group("/dashboard", middleware.RequireViewer())
	{
		dashboard.GET("/stats", h.Dashboard.Stats)
		dashboard.GET("/videos", h.Dashboard.Videos)
	}

	users := api.Group("/users")
	{
		users.GET("/c/:username", h.Users.ChannelProfile)
		users.GET("/me", middleware.RequireViewer(), h.Users.Current)
		users.GET("/history", middleware.RequireViewer(), h.Videos.WatchHistory)
		users.PATCH("/avatar", middleware.RequireViewer(), h.Users.UpdateAvatar)
		users.PATCH("/cover", middleware.RequireViewer(), h.Users.UpdateCover)
	}

	return router
}
