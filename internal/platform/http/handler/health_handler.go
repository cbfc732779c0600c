// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Probe は依存先（DB、Redisなど）の疎通を確認します。
type Probe func(ctx context.Context) error

// HealthHandler は /healthz を処理し、登録されたプローブを実行します。
type HealthHandler struct {
	probes  map[string]Probe
	timeout time.Duration
}

// NewHealthHandler はHealthHandlerの新しいインスタンスを生成します。nil のチェック関数は無視されます。
func NewHealthHandler(probes map[string]Probe) *HealthHandler {
	p := make(map[string]Probe, len(probes))
	for name, probe := range probes {
		if probe != nil {
			p[name] = probe
		}
	}
	return &HealthHandler{probes: p, timeout: 2 * time.Second}
}

// Health はサービスヘルスチェック用の /healthz エンドポイントを処理します。
// いずれかのプローブが失敗した場合は503を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusNoContent)
		return
	}

	checks, ok := h.run(c.Request.Context())
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}

	if c.Request.Method == http.MethodHead {
		c.Status(status)
		return
	}

	body := gin.H{"status": "ok"}
	if !ok {
		body["status"] = "degraded"
	}
	if len(checks) > 0 {
		body["checks"] = checks
	}
	c.JSON(status, body)
}

func (h *HealthHandler) run(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.probes))
	for name := range h.probes {
		names = append(names, name)
	}
	sort.Strings(names)

	ok := true
	checks := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.probes[name](ctx); err != nil {
			checks[name] = err.Error()
			ok = false
			continue
		}
		checks[name] = "ok"
	}
	return checks, ok
}
