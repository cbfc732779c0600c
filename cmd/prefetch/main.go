// Command prefetch はウォッチリストの全銘柄について株価履歴のRedisキャッシュを温めます。
// 日次のキャッシュリセット後にcronなどから一度実行します。
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"stock_watch/internal/app/di"
	marketusecase "stock_watch/internal/feature/market/usecase"
	watchlistadapters "stock_watch/internal/feature/watchlist/adapters"
	"stock_watch/internal/platform/config"
	infradb "stock_watch/internal/platform/db"
	"stock_watch/internal/platform/logger"
	infraredis "stock_watch/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(cfg.Log.Level, cfg.Log.Format))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		slog.Error("prefetch failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := infradb.Open(cfg.DB, &watchlistadapters.WatchlistModel{})
	if err != nil {
		return err
	}
	// キャッシュ先がなければ温める意味がない
	rdb, err := infraredis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	market, err := di.NewMarket(cfg.Market)
	if err != nil {
		return err
	}
	history, err := di.NewHistoryFetcher(rdb, market, cfg.Market)
	if err != nil {
		return err
	}

	records, err := watchlistadapters.NewWatchlistRepository(db).List(ctx)
	if err != nil {
		return err
	}
	symbols := make([]string, 0, len(records))
	for _, r := range records {
		symbols = append(symbols, r.Symbol)
	}

	n, err := marketusecase.NewPrefetchUsecase(history, nil).PrefetchAll(ctx, symbols)
	if err != nil {
		return err
	}
	slog.Info("prefetch ok", "symbols", len(symbols), "cached", n)
	return nil
}
