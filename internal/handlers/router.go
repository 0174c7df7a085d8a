package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daybook-api/internal/constants"
	"github.com/yukikurage/daybook-api/internal/middleware"
	"github.com/yukikurage/daybook-api/internal/services"
	"github.com/yukikurage/daybook-api/internal/streaming"
)

// Services bundles what the HTTP layer exposes
type Services struct {
	Tokens        *services.TokenService
	Auth          *services.AuthService
	Todos         *services.TodoService
	Tags          *services.TagService
	Students      *services.StudentService
	Fees          *services.FeeService
	Songs         *services.SongService
	Playlists     *services.PlaylistService
	Notifications *services.NotificationService
	Library       *streaming.Library
}

// NewRouter builds the gin engine with every route registered
func NewRouter(svc Services, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(cors.New(corsConfig(allowedOrigins)))

	authHandler := NewAuthHandler(svc.Auth, svc.Tokens)
	todoHandler := NewTodoHandler(svc.Todos)
	tagHandler := NewTagHandler(svc.Tags)
	studentHandler := NewStudentHandler(svc.Students)
	feeHandler := NewFeeHandler(svc.Fees)
	songHandler := NewSongHandler(svc.Songs, svc.Library)
	playlistHandler := NewPlaylistHandler(svc.Playlists)
	notificationHandler := NewNotificationHandler(svc.Notifications)

	requireAuth := middleware.RequireAuth(svc.Tokens)
	requireTodoOwner := middleware.RequireTodoOwner(svc.Todos)
	requirePlaylistOwner := middleware.RequirePlaylistOwner(svc.Playlists)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		respond(c, http.StatusOK, "Daybook API is running", gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		// Auth routes (public except /me)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		todos := api.Group("/todos")
		todos.Use(requireAuth)
		{
			todos.GET("", todoHandler.ListTodos)
			todos.POST("", todoHandler.CreateTodo)
			todos.GET("/board", todoHandler.Board)
			todos.GET("/search", todoHandler.SearchTodos)
			todos.GET("/:id", requireTodoOwner, todoHandler.GetTodo)
			todos.PUT("/:id", requireTodoOwner, todoHandler.UpdateTodo)
			todos.PATCH("/:id/status", requireTodoOwner, todoHandler.UpdateTodoStatus)
			todos.DELETE("/:id", requireTodoOwner, todoHandler.DeleteTodo)
		}

		tags := api.Group("/tags")
		tags.Use(requireAuth)
		{
			tags.GET("", tagHandler.ListTags)
			tags.POST("", tagHandler.CreateTag)
			tags.POST("/suggest", tagHandler.SuggestTags)
			tags.DELETE("/:id", tagHandler.DeleteTag)
		}

		students := api.Group("/students")
		students.Use(requireAuth)
		{
			students.GET("", studentHandler.ListStudents)
			students.POST("", studentHandler.CreateStudent)
			students.GET("/search", studentHandler.SearchStudents)
			students.GET("/:id", studentHandler.GetStudent)
			students.PUT("/:id", studentHandler.UpdateStudent)
			students.DELETE("/:id", studentHandler.DeleteStudent)
			students.POST("/:id/restore", studentHandler.RestoreStudent)
			students.GET("/:id/fees", feeHandler.StudentFees)
		}

		fees := api.Group("/fees")
		fees.Use(requireAuth)
		{
			fees.GET("", feeHandler.ListFees)
			fees.POST("", feeHandler.CreateFee)
			fees.GET("/:id", feeHandler.GetFee)
			fees.DELETE("/:id", feeHandler.DeleteFee)
		}

		// Audio elements cannot set headers, so the stream also takes ?token=
		api.GET("/songs/stream/:filename", middleware.RequireMediaAuth(svc.Tokens), songHandler.Stream)
		api.HEAD("/songs/stream/:filename", middleware.RequireMediaAuth(svc.Tokens), songHandler.Stream)

		songs := api.Group("/songs")
		songs.Use(requireAuth)
		{
			songs.GET("", songHandler.ListSongs)
			songs.POST("", songHandler.CreateSong)
			songs.GET("/search", songHandler.SearchSongs)
			songs.GET("/history", songHandler.History)
			songs.GET("/recommended", songHandler.Recommended)
			songs.GET("/trending", songHandler.Trending)
			songs.GET("/favorites", songHandler.ListFavorites)
			songs.POST("/favorites/:songId", songHandler.AddFavorite)
			songs.DELETE("/favorites/:songId", songHandler.RemoveFavorite)
			songs.GET("/:id", songHandler.GetSong)
			songs.POST("/:id/play", songHandler.PlaySong)
		}

		playlists := api.Group("/playlists")
		playlists.Use(requireAuth)
		{
			playlists.GET("", playlistHandler.ListPlaylists)
			playlists.POST("", playlistHandler.CreatePlaylist)
			playlists.GET("/:id", requirePlaylistOwner, playlistHandler.GetPlaylist)
			playlists.DELETE("/:id", requirePlaylistOwner, playlistHandler.DeletePlaylist)
			playlists.POST("/:id/songs/:songId", requirePlaylistOwner, playlistHandler.AddSong)
			playlists.DELETE("/:id/songs/:songId", requirePlaylistOwner, playlistHandler.RemoveSong)
		}

		notifications := api.Group("/notification")
		notifications.Use(requireAuth)
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.POST("/subscribe", notificationHandler.Subscribe)
			notifications.DELETE("/subscribe", notificationHandler.Unsubscribe)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
		}
	}

	return r
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Range", constants.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Range", "Accept-Ranges", constants.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range allowedOrigins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = allowedOrigins
	return cfg
}
