// Package handler はdashboardフィーチャーのHTTPハンドラーを提供します。
//
// どの操作も新しいビューを200で返します。失敗はビューの search_error と
// message に含めるため、クライアントは再描画するだけで済みます。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_watch/internal/feature/dashboard/domain/entity"
	"stock_watch/internal/feature/dashboard/transport/http/dto"
)

// DashboardUsecase はハンドラーが利用するビュー状態のユースケースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type DashboardUsecase interface {
	State() entity.View
	Reload(ctx context.Context) entity.View
	SubmitSearch(ctx context.Context, symbol string) entity.View
	SelectWatchlistItem(ctx context.Context, symbol string) entity.View
	ToggleWatchlist(ctx context.Context, symbol string) entity.View
	RemoveWatchlistItem(ctx context.Context, symbol string) entity.View
	TogglePanel() entity.View
}

// DashboardHandler はダッシュボード画面の状態とユーザー操作を処理します。
type DashboardHandler struct {
	uc DashboardUsecase
}

// NewDashboardHandler は新しい DashboardHandler を作成します。
func NewDashboardHandler(uc DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// State GET /dashboard
func (h *DashboardHandler) State(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromView(h.uc.State()))
}

// Reload POST /dashboard/reload
func (h *DashboardHandler) Reload(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromView(h.uc.Reload(c.Request.Context())))
}

// Search POST /dashboard/search {"symbol": "AAPL"}
func (h *DashboardHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	c.JSON(http.StatusOK, dto.FromView(h.uc.SubmitSearch(c.Request.Context(), req.Symbol)))
}

// Select POST /dashboard/watchlist/:symbol/select
func (h *DashboardHandler) Select(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromView(h.uc.SelectWatchlistItem(c.Request.Context(), c.Param("symbol"))))
}

// ToggleWatchlist POST /dashboard/watchlist/:symbol/toggle
func (h *DashboardHandler) ToggleWatchlist(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromView(h.uc.ToggleWatchlist(c.Request.Context(), c.Param("symbol"))))
}

// Remove DELETE /dashboard/watchlist/:symbol
func (h *DashboardHandler) Remove(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromView(h.uc.RemoveWatchlistItem(c.Request.Context(), c.Param("symbol"))))
}

// TogglePanel POST /dashboard/panel/toggle
func (h *DashboardHandler) TogglePanel(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromView(h.uc.TogglePanel()))
}
