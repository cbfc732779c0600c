// Package usecase は株価データのバッチ処理を実装します。
package usecase

import (
	"context"
	"log/slog"
	"time"

	"stock_watch/internal/feature/market/domain/entity"
)

// HistoryFetcher は日足の終値を取得するインターフェイスです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type HistoryFetcher interface {
	History(ctx context.Context, symbol string, from, to time.Time) ([]entity.PricePoint, error)
}

// PrefetchUsecase は銘柄ごとの30日分の履歴を取得し、キャッシュを温めます。
type PrefetchUsecase struct {
	history HistoryFetcher
	now     func() time.Time
}

// NewPrefetchUsecase は新しい PrefetchUsecase を作成します。now が nil の場合は time.Now を使います。
func NewPrefetchUsecase(history HistoryFetcher, now func() time.Time) *PrefetchUsecase {
	if now == nil {
		now = time.Now
	}
	return &PrefetchUsecase{history: history, now: now}
}

// PrefetchAll は指定された全銘柄の履歴を順に取得し、成功した件数を返します。
// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の銘柄へ進みます。
// コンテキストがキャンセルされた場合はその時点で終了します。
func (u *PrefetchUsecase) PrefetchAll(ctx context.Context, symbols []string) (int, error) {
	seen := make(map[string]struct{}, len(symbols))
	ok := 0
	for _, raw := range symbols {
		if err := ctx.Err(); err != nil {
			return ok, err
		}
		symbol, err := entity.NormalizeSymbol(raw)
		if err != nil {
			slog.Warn("skipping invalid symbol", "symbol", raw)
			continue
		}
		if _, dup := seen[symbol]; dup {
			continue
		}
		seen[symbol] = struct{}{}

		to := u.now()
		points, err := u.history.History(ctx, symbol, to.Add(-entity.HistoryWindow), to)
		if err != nil {
			slog.Error("failed to prefetch history", "symbol", symbol, "error", err)
			continue
		}
		slog.Debug("history prefetched", "symbol", symbol, "points", len(points))
		ok++
	}
	return ok, nil
}
