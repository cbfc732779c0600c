// Package dto defines data transfer objects for the watchlist HTTP API.
package dto

import (
	marketdto "stock_watch/internal/feature/market/transport/http/dto"
	"stock_watch/internal/feature/watchlist/domain/entity"
)

// AddRequest は POST /watchlist のリクエストボディです。
type AddRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// EntryItem はウォッチリストの1行です。直近の取得に失敗した場合 Quote は null です。
type EntryItem struct {
	ID         uint                 `json:"id"`
	Symbol     string               `json:"symbol"`
	Quote      *marketdto.QuoteItem `json:"quote"`
	QuoteError string               `json:"quote_error,omitempty"`
}

// ToggleResponse はトグル操作の結果です。
type ToggleResponse struct {
	Symbol string `json:"symbol"`
	Added  bool   `json:"added"`
}

// ContainsResponse は銘柄がウォッチリストに含まれるかを表します。
type ContainsResponse struct {
	Symbol  string `json:"symbol"`
	Watched bool   `json:"watched"`
}

// FromEntry はドメインのエントリを変換します。
func FromEntry(e entity.Entry) EntryItem {
	item := EntryItem{ID: e.ID, Symbol: e.Symbol}
	if e.Quote != nil {
		q := marketdto.FromQuote(*e.Quote)
		item.Quote = &q
	}
	if e.QuoteErr != nil {
		item.QuoteError = e.QuoteErr.Error()
	}
	return item
}

// FromEntries はウォッチリストを変換します。戻り値は nil になりません。
func FromEntries(entries []entity.Entry) []EntryItem {
	out := make([]EntryItem, 0, len(entries))
	for _, e := range entries {
		out = append(out, FromEntry(e))
	}
	return out
}
