// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// checkTimeout は1つの依存先チェックに許す最大時間です。
const checkTimeout = 2 * time.Second

// Checker は依存先（DB, Redisなど）の疎通を確認します。
type Checker func(ctx context.Context) error

// Health は /healthz エンドポイントのハンドラーを返します。
// checks のいずれかが失敗した場合は503と "degraded" を返します。
func Health(checks map[string]Checker) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		status := http.StatusOK
		results := make(map[string]string, len(names))
		for _, name := range names {
			ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
			err := checks[name](ctx)
			cancel()
			if err != nil {
				status = http.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}

		if c.Request.Method == http.MethodHead {
			c.Status(status)
			return
		}

		body := gin.H{"status": "ok"}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(results) > 0 {
			body["checks"] = results
		}
		c.JSON(status, body)
	}
}
