package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scrapemyuni.backend/internal/interfaces/http/response"
	"scrapemyuni.backend/pkg/logger"
	"scrapemyuni.backend/pkg/redis"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	processingMarker        = "processing"
	idempotencyConflictCode = "IDEMPOTENCY_CONFLICT"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
	redisIsNil = redis.IsNil
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// cachedResponse is what we keep in Redis for a completed request
type cachedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// IdempotencyMiddleware replays the stored response for a repeated
// Idempotency-Key from the same caller. Keys are scoped per user. When Redis
// is unreachable requests are processed normally.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		storageKey := fmt.Sprintf("idempotency:%s:%s", GetUserID(c), key)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil:
			if val == processingMarker {
				response.ErrorWithError(c, http.StatusConflict, idempotencyConflictCode, "Request already in progress")
				c.Abort()
				return
			}
			replay(c, val)
			return
		case !redisIsNil(err):
			logger.Warn(ctx, "Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}

		ok, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			logger.Warn(ctx, "Idempotency lock unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			response.ErrorWithError(c, http.StatusConflict, idempotencyConflictCode, "Request in progress")
			c.Abort()
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			// let the client retry
			_ = redisDel(ctx, storageKey)
			return
		}

		raw, err := json.Marshal(cachedResponse{Status: status, Body: w.body.String()})
		if err == nil {
			err = redisSet(ctx, storageKey, string(raw), RetentionDuration)
		}
		if err != nil {
			logger.Warn(ctx, "Failed to store idempotent response", zap.Error(err))
			_ = redisDel(ctx, storageKey)
		}
	}
}

func replay(c *gin.Context, val string) {
	var cached cachedResponse
	if err := json.Unmarshal([]byte(val), &cached); err != nil || cached.Status == 0 {
		cached = cachedResponse{Status: http.StatusOK, Body: val}
	}
	c.Header("X-Idempotency-Hit", "true")
	c.Data(cached.Status, "application/json; charset=utf-8", []byte(cached.Body))
	c.Abort()
}
