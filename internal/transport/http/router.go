package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"vidtube/internal/handler"
	"vidtube/internal/repository"
	"vidtube/internal/service"
	authmw "vidtube/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	UserHandler         *handler.UserHandler
	VideoHandler        *handler.VideoHandler
	CommentHandler      *handler.CommentHandler
	TweetHandler        *handler.TweetHandler
	LikeHandler         *handler.LikeHandler
	SubscriptionHandler *handler.SubscriptionHandler
	PlaylistHandler     *handler.PlaylistHandler
	DashboardHandler    *handler.DashboardHandler

	AuthService *service.AuthService
	UserRepo    repository.UserRepository
	CORSOrigin  string
}

// NewRouter creates and configures a new Chi router with all route groups
// mounted under /api/v1.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	requireAuth := authmw.RequireAuth(cfg.AuthService, cfg.UserRepo)
	loginLimit := authmw.RateLimit(10, time.Minute, 5)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", handler.Healthcheck)

		r.Route("/users", func(r chi.Router) {
			r.With(loginLimit).Post("/register", cfg.UserHandler.Register)
			r.With(loginLimit).Post("/login", cfg.UserHandler.Login)
			r.Post("/refresh-token", cfg.UserHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/c/{username}", cfg.UserHandler.ChannelProfile)
				r.Post("/logout", cfg.UserHandler.Logout)
				r.Post("/change-password", cfg.UserHandler.ChangePassword)
				r.Get("/current-user", cfg.UserHandler.CurrentUser)
				r.Patch("/update-account", cfg.UserHandler.UpdateAccount)
				r.Patch("/avatar", cfg.UserHandler.UpdateAvatar)
				r.Patch("/cover-image", cfg.UserHandler.UpdateCoverImage)
				r.Get("/history", cfg.UserHandler.WatchHistory)
			})
		})

		r.Route("/videos", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", cfg.VideoHandler.List)
			r.Get("/{videoId}", cfg.VideoHandler.Get)
			r.Post("/", cfg.VideoHandler.Publish)
			r.Patch("/{videoId}", cfg.VideoHandler.Update)
			r.Patch("/{videoId}/thumbnail", cfg.VideoHandler.UpdateThumbnail)
			r.Delete("/{videoId}", cfg.VideoHandler.Delete)
			r.Patch("/toggle/publish/{videoId}", cfg.VideoHandler.TogglePublish)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/{videoId}", cfg.CommentHandler.List)
			r.Post("/{videoId}", cfg.CommentHandler.Add)
			r.Patch("/c/{commentId}", cfg.CommentHandler.Update)
			r.Delete("/c/{commentId}", cfg.CommentHandler.Delete)
		})

		r.Route("/tweets", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/user/{userId}", cfg.TweetHandler.ListByUser)
			r.Post("/", cfg.TweetHandler.Create)
			r.Patch("/{tweetId}", cfg.TweetHandler.Update)
			r.Delete("/{tweetId}", cfg.TweetHandler.Delete)
		})

		r.Route("/likes", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/toggle/v/{videoId}", cfg.LikeHandler.ToggleVideo)
			r.Post("/toggle/c/{commentId}", cfg.LikeHandler.ToggleComment)
			r.Post("/toggle/t/{tweetId}", cfg.LikeHandler.ToggleTweet)
			r.Get("/videos", cfg.LikeHandler.LikedVideos)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/c/{channelId}", cfg.SubscriptionHandler.Subscribers)
			r.Get("/u/{subscriberId}", cfg.SubscriptionHandler.SubscribedChannels)
			r.Post("/c/{channelId}", cfg.SubscriptionHandler.Toggle)
		})

		r.Route("/playlist", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/{playlistId}", cfg.PlaylistHandler.Get)
			r.Get("/user/{userId}", cfg.PlaylistHandler.ListByUser)
			r.Post("/", cfg.PlaylistHandler.Create)
			r.Patch("/{playlistId}", cfg.PlaylistHandler.Update)
			r.Delete("/{playlistId}", cfg.PlaylistHandler.Delete)
			r.Patch("/add/{videoId}/{playlistId}", cfg.PlaylistHandler.AddVideo)
			r.Patch("/remove/{videoId}/{playlistId}", cfg.PlaylistHandler.RemoveVideo)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/stats", cfg.DashboardHandler.Stats)
			r.Get("/videos", cfg.DashboardHandler.Videos)
		})
	})

	return r
}
