// Package dto defines data transfer objects for the search HTTP API.
package dto

import (
	"time"

	marketdto "stock_watch/internal/feature/market/transport/http/dto"
	"stock_watch/internal/feature/search/domain/entity"
)

// SearchResponse は検索成功時のレスポンスボディです。
type SearchResponse struct {
	Symbol    string                     `json:"symbol"`
	Quote     marketdto.QuoteItem        `json:"quote"`
	History   []marketdto.PricePointItem `json:"history"`
	FetchedAt time.Time                  `json:"fetched_at"`
}

// FromResult は検索結果をレスポンスに変換します。
func FromResult(r entity.Result) SearchResponse {
	return SearchResponse{
		Symbol:    r.Symbol,
		Quote:     marketdto.FromQuote(r.Quote),
		History:   marketdto.FromHistory(r.History),
		FetchedAt: r.FetchedAt,
	}
}
