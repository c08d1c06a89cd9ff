package container

import (
	"context"
	"fmt"
	"time"

	"books-api/internal/config"
	bookHandler "books-api/internal/domains/book/handler"
	bookRepo "books-api/internal/domains/book/repository"
	bookService "books-api/internal/domains/book/service"
	"books-api/internal/infrastructure/cache"
	"books-api/internal/infrastructure/database"
	"books-api/pkg/logger"

	"github.com/rs/zerolog/log"
)

// Container chứa dependencies của application.
// Init order: config, infrastructure, unit of work, services, handlers.
type Container struct {
	Config *config.Config

	// Infrastructure
	DB          *database.PostgresDB
	Redis       *cache.RedisClient // nil when rate limiting is disabled
	RateLimiter *cache.RedisRateLimiter

	// Book domain
	BookService *bookService.BookService
	BookHandler *bookHandler.Handler

	monitorCancel context.CancelFunc
}

// NewContainer loads config, connects to PostgreSQL (and Redis when the rate
// limiter is on) and wires the book domain.
func NewContainer(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	c := &Container{Config: cfg}
	log.Info().Str("env", cfg.App.Environment).Msg("config loaded")

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db := database.NewPostgresDB(cfg.Database)
	if err := db.Connect(connectCtx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if cfg.RateLimit.Enabled {
		redisClient := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisClient.Connect(connectCtx); err != nil {
			c.Cleanup()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.Redis = redisClient
		c.RateLimiter = cache.NewRedisRateLimiter(redisClient.Client, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	c.initBookDomain(bookRepo.NewPostgresUnitOfWork(db.Pool))

	monitorCtx, monitorCancel := context.WithCancel(context.Background())
	c.monitorCancel = monitorCancel
	go db.MonitorPoolHealth(monitorCtx, time.Minute)

	log.Info().Msg("container initialized")
	return c, nil
}

// NewWithUnitOfWork builds a container around an existing unit of work.
// No infrastructure is connected; used by tests and tools.
func NewWithUnitOfWork(cfg *config.Config, uow bookRepo.UnitOfWork) *Container {
	c := &Container{Config: cfg}
	c.initBookDomain(uow)
	return c
}

func (c *Container) initBookDomain(uow bookRepo.UnitOfWork) {
	c.BookService = bookService.NewBookService(uow)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
}

// Cleanup closes everything NewContainer opened. Safe on a partial container.
func (c *Container) Cleanup() {
	if c.monitorCancel != nil {
		c.monitorCancel()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Warn("failed to close redis", map[string]interface{}{"error": err.Error()})
		}
	}
	c.DB.Close()
}
