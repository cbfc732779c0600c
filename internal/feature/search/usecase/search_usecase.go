// Package usecase はsearchフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	marketentity "stock_watch/internal/feature/market/domain/entity"
	"stock_watch/internal/feature/search/domain/entity"
)

const (
	HistoryWindow    = marketentity.HistoryWindow
	MaxHistoryPoints = marketentity.MaxHistoryPoints
)

// QuoteFetcher は銘柄の最新クォートを取得します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type QuoteFetcher interface {
	Quote(ctx context.Context, symbol string) (marketentity.Quote, error)
}

// HistoryFetcher は from から to までの銘柄の日次終値を取得します。
type HistoryFetcher interface {
	History(ctx context.Context, symbol string, from, to time.Time) ([]marketentity.PricePoint, error)
}

// SearchUsecase は現在表示中の検索結果を保持します。
//
// Search は呼び出しごとに単調増加するトークンを受け取ります。
// 後から開始した検索がまだ確定していない場合にのみ結果を確定するため、
// 遅い応答が新しい結果を上書きすることはありません。
type SearchUsecase struct {
	quotes  QuoteFetcher
	history HistoryFetcher
	now     func() time.Time

	mu        sync.Mutex
	issued    uint64
	committed uint64
	current   *entity.Result
}

// NewSearchUsecase はSearchUsecaseの新しいインスタンスを生成します。now が nil の場合は time.Now を使用します。
func NewSearchUsecase(quotes QuoteFetcher, history HistoryFetcher, now func() time.Time) *SearchUsecase {
	if now == nil {
		now = time.Now
	}
	return &SearchUsecase{quotes: quotes, history: history, now: now}
}

// Search は銘柄のクォートを取得し、続けて直近の履歴を取得します。
// クォートの取得に失敗した場合は検索全体が失敗し、現在の結果をクリアします。履歴の取得は行いません。
// 履歴の取得に失敗した場合は空のチャートになります。
func (u *SearchUsecase) Search(ctx context.Context, raw string) (entity.Result, error) {
	symbol, err := marketentity.NormalizeSymbol(raw)
	if err != nil {
		return entity.Result{}, err
	}
	token := u.nextToken()

	q, err := u.quotes.Quote(ctx, symbol)
	if err != nil {
		slog.Warn("search quote fetch failed", "symbol", symbol, "error", err)
		u.commit(token, nil)
		return entity.Result{}, err
	}

	to := u.now()
	from := to.Add(-HistoryWindow)
	points, err := u.history.History(ctx, symbol, from, to)
	if err != nil {
		slog.Warn("search history fetch failed, showing quote only", "symbol", symbol, "error", err)
		points = nil
	}

	res := entity.Result{
		Symbol:    symbol,
		Quote:     q,
		History:   marketentity.TrimHistory(points, from, to, MaxHistoryPoints),
		FetchedAt: to,
	}
	if !u.commit(token, &res) {
		slog.Debug("search result superseded", "symbol", symbol, "token", token)
	}
	return res.Clone(), nil
}

// Current は確定済みの検索結果があれば返します。
func (u *SearchUsecase) Current() (entity.Result, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.current == nil {
		return entity.Result{}, false
	}
	return u.current.Clone(), true
}

func (u *SearchUsecase) nextToken() uint64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.issued++
	return u.issued
}

// commit はより新しい検索が確定していなければ res を保存します。nil の場合はクリアします。
func (u *SearchUsecase) commit(token uint64, res *entity.Result) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if token <= u.committed {
		return false
	}
	u.committed = token
	u.current = res
	return true
}
