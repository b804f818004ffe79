package main

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"scrapemyuni.backend/internal/interfaces/http/middleware"
)

const (
	serviceName    = "scrapemyuni-backend"
	serviceVersion = "0.1.0"
)

var corsAllowedHeaders = []string{
	"Content-Type",
	"Authorization",
	"X-Request-ID",
	"X-User-ID",
	"Idempotency-Key",
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = "*"
		} else {
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", strings.Join(corsAllowedHeaders, ", "))
		c.Header("Access-Control-Expose-Headers", "X-Request-ID, X-Idempotency-Hit")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

// registerHealthRoute serves /health. Each check gets a short deadline; a
// failing check turns the response into 503.
func registerHealthRoute(r *gin.Engine, checks ...func(context.Context) error) {
	r.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		}
		if len(checks) > 0 {
			body["store"] = "ok"
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		for _, check := range checks {
			if err := check(ctx); err != nil {
				body["status"] = "degraded"
				body["store"] = "unavailable"
				c.JSON(http.StatusServiceUnavailable, body)
				return
			}
		}
		c.JSON(http.StatusOK, body)
	})
}

func registerMetricsRoute(r *gin.Engine, reg *prometheus.Registry) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
}

// idempotencyMiddlewareFor returns nil when Redis is not configured.
func idempotencyMiddlewareFor(redisURL string) gin.HandlerFunc {
	if redisURL == "" {
		return nil
	}
	return middleware.IdempotencyMiddleware()
}
