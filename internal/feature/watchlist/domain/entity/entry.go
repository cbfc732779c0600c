// Package entity defines the domain models for the watchlist feature.
package entity

import (
	"time"

	marketentity "stock_watch/internal/feature/market/domain/entity"
)

// Record は永続化されたウォッチリストの行です。ID はストアが採番します。
type Record struct {
	ID        uint
	Symbol    string
	CreatedAt time.Time
}

// Entry はウォッチリストの行と最新クォートを組み合わせたものです。
// クォート取得後は Quote と QuoteErr のどちらか一方だけが設定されます。
type Entry struct {
	ID       uint
	Symbol   string
	Quote    *marketentity.Quote
	QuoteErr error
}

// HasQuote は直近のクォート取得が成功したかを返します。
func (e Entry) HasQuote() bool { return e.Quote != nil }

// Clone は呼び出し側がユースケース内部のクォートを変更できないようにエントリをコピーします。
func (e Entry) Clone() Entry {
	if e.Quote != nil {
		q := *e.Quote
		e.Quote = &q
	}
	return e
}

// CloneEntries はエントリのスライスをコピーします。戻り値は nil になりません。
func CloneEntries(in []Entry) []Entry {
	out := make([]Entry, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}
