package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mohi-devhub/genie/internal/config"
	"github.com/mohi-devhub/genie/internal/database"
	"github.com/mohi-devhub/genie/internal/handlers"
	"github.com/mohi-devhub/genie/internal/middleware"
	"github.com/mohi-devhub/genie/internal/ratelimit"
)

type Server struct {
	db      database.Service
	auth    *middleware.Auth
	limits  *ratelimit.Set
	handler *handlers.Handler
}

// NewServer wires the handlers and returns a configured HTTP server.
func NewServer(cfg *config.Config, db database.Service, limits *ratelimit.Set) *http.Server {
	auth := middleware.NewAuth(cfg)

	s := &Server{
		db:      db,
		auth:    auth,
		limits:  limits,
		handler: handlers.NewHandler(db.GetDB(), auth),
	}

	router := s.RegisterRoutes(cfg)

	return &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes(cfg *config.Config) *gin.Engine {
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Liveness/readiness probe: verifies store connectivity and reports counts
	r.GET("/health", func(c *gin.Context) {
		stats := s.db.Health()
		code := http.StatusOK
		if stats["status"] != "up" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, stats)
	})

	// API routes
	api := r.Group("/api")
	api.Use(middleware.RateLimit(s.limits.API))
	{
		// Auth routes (public, tighter limiter)
		authRoutes := api.Group("")
		authRoutes.Use(middleware.RateLimit(s.limits.Auth))
		{
			authRoutes.POST("/register", s.handler.Auth.Register)
			authRoutes.POST("/login", s.handler.Auth.Login)
			authRoutes.POST("/auth/google", s.handler.Auth.GoogleLogin)
		}

		// Reference data (public)
		api.GET("/categories", s.handler.Taxonomy.GetCategories)
		api.GET("/models", s.handler.Taxonomy.GetModels)

		// Public reads; viewer annotation populated when a session is present
		reads := api.Group("")
		reads.Use(s.auth.OptionalAuth())
		{
			reads.GET("/prompts", s.handler.Prompt.GetPrompts)
			reads.GET("/prompts/:id", s.handler.Prompt.GetPrompt)
			reads.GET("/users/:id", s.handler.User.GetUserProfile)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(s.auth.RequireAuth())
		{
			protected.GET("/me", s.handler.Auth.GetMe)
			protected.POST("/prompts", middleware.RateLimit(s.limits.Submit), s.handler.Prompt.CreatePrompt)
			protected.POST("/prompts/:id/vote", middleware.RateLimit(s.limits.Vote), s.handler.Vote.CastVote)
		}
	}

	return r
}
