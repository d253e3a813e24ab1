package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"rentdesk-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Redis keys for request counters. Exported for use by health handlers
// (reset, collectHealth).
const (
	KeyReqTotal  = "health:global:req_total"
	KeyReqErrors = "health:global:req_errors"
	KeyResTime   = "health:global:res_time_total"
	KeyResCount  = "health:global:res_count"
	KeyStartTime = "health:global:start_time"
	KeyLastReq   = "health:global:last_request"
	KeyErrorLog  = "health:global:error_log"
)

// ErrorLogSize caps the recent-errors list.
const ErrorLogSize = 50

// HealthMarker records request stats in Redis (skip /health*, favicon). With
// no Redis client it is a pass-through.
func HealthMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if rdb == nil || strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/favicon") || path == "/reset" {
			return c.Next()
		}

		start := time.Now()
		lastReq := map[string]interface{}{
			"time":   start,
			"ip":     c.IP(),
			"path":   c.OriginalURL(),
			"method": c.Method(),
		}
		b, _ := json.Marshal(lastReq)
		ctx := context.Background()
		_, _ = rdb.Set(ctx, KeyLastReq, b, 0).Result()
		_, _ = rdb.Incr(ctx, KeyReqTotal).Result()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// The app error handler has not run yet; count by the mapped status.
			status, _, _ = response.Classify(err)
		}
		ms := time.Since(start).Milliseconds()
		_, _ = rdb.Incr(ctx, KeyResCount).Result()
		_, _ = rdb.IncrByFloat(ctx, KeyResTime, float64(ms)).Result()
		if status >= 500 {
			_, _ = rdb.Incr(ctx, KeyReqErrors).Result()
			entry, _ := json.Marshal(map[string]interface{}{
				"time":   time.Now(),
				"path":   c.OriginalURL(),
				"method": c.Method(),
				"status": status,
			})
			_, _ = rdb.LPush(ctx, KeyErrorLog, entry).Result()
			_, _ = rdb.LTrim(ctx, KeyErrorLog, 0, ErrorLogSize-1).Result()
		}
		return err
	}
}
