// Package middleware は全ルートで共有するginミドルウェアを提供します。
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader はリクエストIDを受け渡すヘッダー名です。
const RequestIDHeader = "X-Request-ID"

// RequestLogger は各リクエストにIDを付与し、1リクエストにつき1行のslogを出力します。
// クライアントが有効なUUIDを送った場合はそれを使用します。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		c.Next()

		attrs := []any{
			"request_id", id,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		switch {
		case c.Writer.Status() >= 500:
			slog.Error("request", attrs...)
		case c.Writer.Status() >= 400:
			slog.Warn("request", attrs...)
		default:
			slog.Info("request", attrs...)
		}
	}
}
