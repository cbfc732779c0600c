// Package handler はwatchlistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	marketentity "stock_watch/internal/feature/market/domain/entity"
	"stock_watch/internal/feature/watchlist/domain/entity"
	"stock_watch/internal/feature/watchlist/transport/http/dto"
	"stock_watch/internal/platform/http/apierror"
)

// WatchlistUsecase はハンドラーが利用するウォッチリストのユースケースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type WatchlistUsecase interface {
	Load(ctx context.Context) ([]entity.Entry, error)
	RefreshQuotes(ctx context.Context) []entity.Entry
	Add(ctx context.Context, symbol string) (entity.Entry, error)
	Remove(ctx context.Context, symbol string) error
	Toggle(ctx context.Context, symbol string) (bool, error)
	Contains(symbol string) bool
	Entries() []entity.Entry
}

// WatchlistHandler はウォッチリストに関するHTTPリクエストを処理します。
type WatchlistHandler struct {
	uc WatchlistUsecase
}

// NewWatchlistHandler は新しい WatchlistHandler を作成します。
func NewWatchlistHandler(uc WatchlistUsecase) *WatchlistHandler {
	return &WatchlistHandler{uc: uc}
}

// List はストアにアクセスせず、メモリ上のウォッチリストを返します。
//
// GET /watchlist
func (h *WatchlistHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromEntries(h.uc.Entries()))
}

// Load はストアからウォッチリストを再読込し、全銘柄のクォートを更新します。
//
// POST /watchlist/load
func (h *WatchlistHandler) Load(c *gin.Context) {
	entries, err := h.uc.Load(c.Request.Context())
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromEntries(entries))
}

// Refresh は現在のエントリのクォートを取得し直します。
//
// POST /watchlist/refresh
func (h *WatchlistHandler) Refresh(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromEntries(h.uc.RefreshQuotes(c.Request.Context())))
}

// Add は銘柄を永続化し、追加したエントリを返します。
//
// POST /watchlist {"symbol": "AAPL"}
func (h *WatchlistHandler) Add(c *gin.Context) {
	var req dto.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	e, err := h.uc.Add(c.Request.Context(), req.Symbol)
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromEntry(e))
}

// Remove は銘柄を削除します。登録されていない銘柄でも204を返します。
//
// DELETE /watchlist/:symbol
func (h *WatchlistHandler) Remove(c *gin.Context) {
	if err := h.uc.Remove(c.Request.Context(), c.Param("symbol")); err != nil {
		apierror.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Toggle は銘柄が未登録なら追加し、登録済みなら削除します。
//
// POST /watchlist/:symbol/toggle
func (h *WatchlistHandler) Toggle(c *gin.Context) {
	symbol, err := marketentity.NormalizeSymbol(c.Param("symbol"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	added, err := h.uc.Toggle(c.Request.Context(), symbol)
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToggleResponse{Symbol: symbol, Added: added})
}

// Contains は銘柄がウォッチリストに含まれるかを返します。
//
// GET /watchlist/:symbol
func (h *WatchlistHandler) Contains(c *gin.Context) {
	symbol, err := marketentity.NormalizeSymbol(c.Param("symbol"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ContainsResponse{Symbol: symbol, Watched: h.uc.Contains(symbol)})
}
