// Package handler はsearchフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_watch/internal/feature/search/domain/entity"
	"stock_watch/internal/feature/search/transport/http/dto"
	"stock_watch/internal/platform/http/apierror"
)

// SearchUsecase はハンドラーが利用する検索処理のインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SearchUsecase interface {
	Search(ctx context.Context, symbol string) (entity.Result, error)
	Current() (entity.Result, bool)
}

// SearchHandler はティッカー検索のHTTPハンドラーです。
type SearchHandler struct {
	uc SearchUsecase
}

// NewSearchHandler はSearchHandlerの新しいインスタンスを生成します。
func NewSearchHandler(uc SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Search はティッカーのクォートと30日分の履歴を取得します。
//
// GET /search/:symbol
func (h *SearchHandler) Search(c *gin.Context) {
	res, err := h.uc.Search(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromResult(res))
}

// Current は最後に確定した検索結果を返します。結果がない場合は204を返します。
//
// GET /search
func (h *SearchHandler) Current(c *gin.Context) {
	res, ok := h.uc.Current()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.FromResult(res))
}
