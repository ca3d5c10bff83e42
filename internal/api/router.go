package api

import (
	"github.com/gin-gonic/gin"
	"github.com/lalith-99/vidstream/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	User      *UserHandler
	Comment   *CommentHandler
	Tweet     *TweetHandler
	Playlist  *PlaylistHandler
	Dashboard *DashboardHandler
	Live      *LiveHandler
}

// NewRouter registers every route. RequireAuth guards mutations and
// owner-only reads; OptionalAuth lets listings compute isLiked for a
// signed-in caller while staying public.
func NewRouter(h Handlers, jwtSecret string, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.Metrics())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	required := middleware.RequireAuth(jwtSecret)
	optional := middleware.OptionalAuth(jwtSecret)

	v1 := r.Group("/api/v1")
	v1.GET("/healthcheck", h.Health.Check)

	users := v1.Group("/users")
	users.POST("/register", h.Auth.Register)
	users.POST("/login", h.Auth.Login)
	users.GET("/me", required, h.User.GetMe)

	comments := v1.Group("/comments")
	comments.GET("/:videoId", optional, h.Comment.List)
	comments.POST("/:videoId", required, h.Comment.Create)
	comments.PATCH("/c/:commentId", required, h.Comment.Update)
	comments.DELETE("/c/:commentId", required, h.Comment.Delete)

	tweets := v1.Group("/tweets")
	tweets.POST("", required, h.Tweet.Create)
	tweets.GET("/user/:userId", optional, h.Tweet.ListByUser)
	tweets.PATCH("/:tweetId", required, h.Tweet.Update)
	tweets.DELETE("/:tweetId", required, h.Tweet.Delete)

	playlists := v1.Group("/playlist")
	playlists.POST("", required, h.Playlist.Create)
	playlists.GET("/user/:userId", optional, h.Playlist.ListByUser)
	playlists.GET("/:playlistId", optional, h.Playlist.Get)
	playlists.PATCH("/:playlistId", required, h.Playlist.Update)
	playlists.DELETE("/:playlistId", required, h.Playlist.Delete)
	playlists.PATCH("/add/:videoId/:playlistId", required, h.Playlist.AddVideo)
	playlists.PATCH("/remove/:videoId/:playlistId", required, h.Playlist.RemoveVideo)

	dashboard := v1.Group("/dashboard", required)
	dashboard.GET("/stats", h.Dashboard.Stats)
	dashboard.GET("/videos", h.Dashboard.Videos)

	if h.Live != nil {
		v1.GET("/live", optional, h.Live.Stream)
	}

	return r
}
