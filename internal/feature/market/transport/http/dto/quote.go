// Package dto defines the JSON shapes for market data shared by the HTTP handlers.
package dto

import "stock_watch/internal/feature/market/domain/entity"

// QuoteItem はAPIレスポンス内のクォートです。
type QuoteItem struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percent_change"`
}

// PricePointItem はチャートの1点です。Date は YYYY-MM-DD 形式です。
type PricePointItem struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// FromQuote はドメインのクォートを変換します。
func FromQuote(q entity.Quote) QuoteItem {
	return QuoteItem{Symbol: q.Symbol, Price: q.Price, Change: q.Change, PercentChange: q.PercentChange}
}

// FromHistory は系列を変換します。[] としてエンコードされるよう nil は返しません。
func FromHistory(points []entity.PricePoint) []PricePointItem {
	out := make([]PricePointItem, 0, len(points))
	for _, p := range points {
		out = append(out, PricePointItem{Date: p.Date.UTC().Format("2006-01-02"), Price: p.Price})
	}
	return out
}
