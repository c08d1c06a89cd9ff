package main

import (
	"context"
	"net/http"
	"time"

	"books-api/internal/shared/middleware"
	"books-api/internal/shared/response"
	"books-api/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.GET("/health", healthCheckHandler(c))
	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	books := router.Group("/books")
	if c.RateLimiter != nil {
		books.Use(middleware.RateLimit(c.RateLimiter))
	}
	setupBookRoutes(books, c)

	return router
}

func setupBookRoutes(books *gin.RouterGroup, c *container.Container) {
	h := c.BookHandler

	books.GET("", h.ListBooks)
	books.POST("", h.CreateBook)
	books.GET("/date/*pubdate", h.GetBooksByDate)
	books.GET("/:id", h.GetBook)
	books.GET("/:id/details", h.GetBookDetail)
	books.PUT("/:id", h.UpdateBook)
	books.DELETE("/:id", h.DeleteBook)
}

// healthCheckHandler answers 503 when the database is unreachable. Redis only
// degrades the status since the rate limiter fails open.
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		status := "ok"
		statusCode := http.StatusOK
		health := gin.H{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		if err := appCtx.DB.Ping(ctx); err != nil {
			health["database"] = "error: " + err.Error()
			status = "unavailable"
			statusCode = http.StatusServiceUnavailable
		} else {
			health["database"] = "ok"
			if stats, err := appCtx.DB.Stats(); err == nil {
				health["pool"] = stats
			}
			if n, err := appCtx.BookService.CountBooks(ctx); err == nil {
				health["books"] = n
			}
		}

		switch {
		case appCtx.Redis == nil:
			health["cache"] = "disabled"
		default:
			if err := appCtx.Redis.HealthCheck(ctx); err != nil {
				health["cache"] = "error: " + err.Error()
				if status == "ok" {
					status = "degraded"
				}
			} else {
				health["cache"] = "ok"
			}
		}

		health["status"] = status
		if statusCode != http.StatusOK {
			response.ErrorWithDetails(c, statusCode, "SERVICE_UNAVAILABLE", "Database is unreachable", health)
			return
		}
		response.Success(c, statusCode, health)
	}
}
