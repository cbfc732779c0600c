// Package entity defines the domain models for the search feature.
package entity

import (
	"time"

	marketentity "stock_watch/internal/feature/market/domain/entity"
)

// Result はメインビューに表示する単一銘柄の検索結果です。
// History は日付の昇順で、チャートが取得できない場合は nil ではなく空です。
type Result struct {
	Symbol    string
	Quote     marketentity.Quote
	History   []marketentity.PricePoint
	FetchedAt time.Time
}

// Clone はディープコピーを返します。
func (r Result) Clone() Result {
	out := r
	out.History = append(make([]marketentity.PricePoint, 0, len(r.History)), r.History...)
	return out
}
