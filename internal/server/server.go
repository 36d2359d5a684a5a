// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"agora/internal/cache"
	"agora/internal/config"
	"agora/internal/database"
	"agora/internal/memstore"
	"agora/internal/middleware"
	"agora/internal/models"
	"agora/internal/repository"
	"agora/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB         // set when DB_DRIVER=postgres
	engine         *memstore.Engine // set when DB_DRIVER=memory
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	threadRepo  repository.ThreadRepository
	commentRepo repository.CommentRepository
	replyRepo   repository.ReplyRepository

	threadService  *service.ThreadService
	commentService *service.CommentService
	replyService   *service.ReplyService

	threadsLimiter *middleware.FixedWindowLimiter
}

// NewServer creates a new server instance with all dependencies. The storage
// backend follows DB_DRIVER: "postgres" connects through gorm, "memory" runs
// against the in-process table store.
func NewServer(cfg *config.Config) (*Server, error) {
	server := &Server{config: cfg}

	switch cfg.DBDriver {
	case "memory":
		server.engine = memstore.NewEngine(memstore.NewTableStore())
	default:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		server.db = db
	}

	cache.InitRedis(cfg.RedisURL)
	server.redis = cache.GetClient()

	server.wireDependencies()
	return server, nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis first.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	server := &Server{config: cfg, db: db, redis: redisClient}
	server.wireDependencies()
	return server, nil
}

// NewMemoryServer creates a Server backed entirely by the in-process store.
// Handler tests use this to exercise the full HTTP surface without Postgres.
func NewMemoryServer(cfg *config.Config, engine *memstore.Engine, redisClient *redis.Client) *Server {
	server := &Server{config: cfg, engine: engine, redis: redisClient}
	server.wireDependencies()
	return server
}

func (s *Server) wireDependencies() {
	if s.engine != nil {
		s.userRepo = repository.NewMemUserRepository(s.engine)
		s.threadRepo = repository.NewMemThreadRepository(s.engine, nil)
		s.commentRepo = repository.NewMemCommentRepository(s.engine, nil)
		s.replyRepo = repository.NewMemReplyRepository(s.engine, nil)
	} else {
		s.userRepo = repository.NewUserRepository(s.db)
		s.threadRepo = repository.NewThreadRepository(s.db, nil)
		s.commentRepo = repository.NewCommentRepository(s.db, nil)
		s.replyRepo = repository.NewReplyRepository(s.db, nil)
	}

	s.threadService = service.NewThreadService(s.threadRepo, s.commentRepo, s.replyRepo)
	s.commentService = service.NewCommentService(s.commentRepo, s.threadRepo)
	s.replyService = service.NewReplyService(s.replyRepo, s.commentRepo, s.threadRepo)

	s.threadsLimiter = middleware.NewFixedWindowLimiter(
		"/threads",
		s.config.ThreadsRateLimit,
		time.Duration(s.config.ThreadsRateWindowMs)*time.Millisecond,
	)

	s.promMiddleware = metricsMiddleware()
	middleware.InitMiddleware(s.config)
}

// fiberprometheus registers its collectors with the default registry, so the
// handler is created once per process even when tests build many servers.
var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

func metricsMiddleware() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New("agora-api")
	})
	return prom
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for correlation
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health", s.HealthCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", s.Signup)
	auth.Post("/login", s.Login)
	auth.Post("/refresh", s.Refresh)
	auth.Post("/logout", s.Logout)

	// The whole /threads family sits behind the fixed-window limiter.
	threads := api.Group("/threads", s.threadsLimiter.Handler())
	threads.Post("/", middleware.AuthRequired, s.CreateThread)
	threads.Get("/:id", s.GetThreadDetail)
	threads.Post("/:id/comments", middleware.AuthRequired, s.CreateComment)
	threads.Delete("/:id/comments/:commentId", middleware.AuthRequired, s.DeleteComment)
	threads.Put("/:id/comments/:commentId/likes", middleware.AuthRequired, s.ToggleCommentLike)
	threads.Post("/:id/comments/:commentId/replies", middleware.AuthRequired, s.CreateReply)
	threads.Delete("/:id/comments/:commentId/replies/:replyId", middleware.AuthRequired, s.DeleteReply)
}

// HealthCheck handles readiness probe requests.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			dbStatus = "unhealthy"
		} else if err := sqlDB.PingContext(ctx); err != nil {
			dbStatus = "unhealthy"
		}
	} else if s.engine != nil {
		dbStatus = "memory"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Agora Forum API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				log.Printf("error closing sql DB: %v", cerr)
			}
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
