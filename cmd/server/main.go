package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"stock_watch/internal/app/di"
	"stock_watch/internal/app/router"
	dashboardhandler "stock_watch/internal/feature/dashboard/transport/handler"
	dashboardusecase "stock_watch/internal/feature/dashboard/usecase"
	searchhandler "stock_watch/internal/feature/search/transport/handler"
	searchusecase "stock_watch/internal/feature/search/usecase"
	watchlistadapters "stock_watch/internal/feature/watchlist/adapters"
	watchlisthandler "stock_watch/internal/feature/watchlist/transport/handler"
	watchlistusecase "stock_watch/internal/feature/watchlist/usecase"
	"stock_watch/internal/platform/config"
	infradb "stock_watch/internal/platform/db"
	"stock_watch/internal/platform/http/handler"
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

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// db
	db, err := infradb.Open(cfg.DB, &watchlistadapters.WatchlistModel{})
	if err != nil {
		return err
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// 株価データ
	market, err := di.NewMarket(cfg.Market)
	if err != nil {
		return err
	}
	history, err := di.NewHistoryFetcher(rdb, market, cfg.Market)
	if err != nil {
		return err
	}

	// Usecase
	watchlistUC := watchlistusecase.NewWatchlistUsecase(
		watchlistadapters.NewWatchlistRepository(db), market, cfg.Watchlist.QuoteConcurrency)
	searchUC := searchusecase.NewSearchUsecase(market, history, nil)
	dashboardUC := dashboardusecase.NewDashboardUsecase(watchlistUC, searchUC)

	// 起動時にウォッチリストを読み込む（失敗してもサーバーは起動する）
	if v := dashboardUC.Reload(ctx); v.Message != "" {
		slog.Warn("initial watchlist load failed", "message", v.Message)
	}

	// Handler
	probes := map[string]handler.Probe{
		"db": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		probes["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	gin.SetMode(cfg.Server.GinMode)
	engine := router.NewRouter(cfg.Server, router.Handlers{
		Health:    handler.NewHealthHandler(probes),
		Watchlist: watchlisthandler.NewWatchlistHandler(watchlistUC),
		Search:    searchhandler.NewSearchHandler(searchUC),
		Dashboard: dashboardhandler.NewDashboardHandler(dashboardUC),
	})

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", httpServer.Addr, "provider", cfg.Market.Provider, "db", cfg.DB.Driver)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return httpServer.Shutdown(shutdownCtx)
}
