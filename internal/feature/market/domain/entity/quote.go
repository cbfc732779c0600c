// Package entity defines the domain models for the market feature.
package entity

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"stock_watch/internal/feature/market/domain"
)

const (
	// HistoryWindow はチャートに表示する日次終値の期間です。
	HistoryWindow = 30 * 24 * time.Hour
	// MaxHistoryPoints はチャート系列の最大点数です。
	MaxHistoryPoints = 30
)

// Quote はある時点の価格と前日終値からの変化を表します。永続化はされません。
type Quote struct {
	Symbol        string
	Price         float64
	Change        float64
	PercentChange float64
}

// PricePoint は1日分の終値です。
type PricePoint struct {
	Date  time.Time
	Price float64
}

// NormalizeSymbol はティッカーの前後の空白を除去して大文字にします。
// 空、または途中に空白を含む場合は ErrInvalidSymbol を返します。
func NormalizeSymbol(raw string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return "", domain.ErrInvalidSymbol
	}
	return s, nil
}

// TrimHistory は [from, to] の範囲内の点を日付の昇順で並べ、最新の max 件までを残します。
func TrimHistory(points []PricePoint, from, to time.Time, max int) []PricePoint {
	out := make([]PricePoint, 0, len(points))
	for _, p := range points {
		if p.Date.Before(from) || p.Date.After(to) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	if max > 0 && len(out) > max {
		out = out[len(out)-max:]
	}
	return out
}
