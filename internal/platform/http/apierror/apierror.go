// Package apierror はドメインエラーをHTTPレスポンスに変換します。
package apierror

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	marketdomain "stock_watch/internal/feature/market/domain"
	watchlistdomain "stock_watch/internal/feature/watchlist/domain"
)

// ErrorResponse はエラー応答のJSONボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// Status は err に対応するHTTPステータスを返します。
func Status(err error) int {
	var (
		fe *marketdomain.FetchError
		se *watchlistdomain.StoreError
	)
	switch {
	case errors.Is(err, marketdomain.ErrInvalidSymbol):
		return http.StatusBadRequest
	case errors.Is(err, watchlistdomain.ErrAlreadyWatched):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &fe):
		return http.StatusBadGateway
	case errors.As(err, &se):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Abort は err を対応するステータスで書き込み、処理を中断します。
func Abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(Status(err), ErrorResponse{Error: err.Error()})
}
