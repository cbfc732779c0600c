// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	searchusecase "stock_watch/internal/feature/search/usecase"
	"stock_watch/internal/platform/cache"
	"stock_watch/internal/platform/config"
	"stock_watch/internal/platform/externalapi/finnhub"
	"stock_watch/internal/platform/externalapi/twelvedata"
	infrahttp "stock_watch/internal/platform/http"
	"stock_watch/internal/shared/ratelimiter"
)

// Market は1つのプロバイダーからクォートと日次履歴の両方を取得します。
type Market interface {
	searchusecase.QuoteFetcher
	searchusecase.HistoryFetcher
}

// NewMarket は cfg.Provider で選択された株価データクライアントを生成します。
// クォートと履歴の呼び出しでHTTPクライアントとレートリミッターを共有します。
func NewMarket(cfg config.Market) (Market, error) {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout, 0)
	limiter := ratelimiter.NewRateLimiter(cfg.RateLimit, cfg.RateInterval)

	switch strings.ToLower(cfg.Provider) {
	case "finnhub":
		if cfg.FinnhubAPIKey == "" {
			return nil, fmt.Errorf("FINNHUB_API_KEY is required for provider finnhub")
		}
		return finnhub.NewClient(finnhub.Config{APIKey: cfg.FinnhubAPIKey, BaseURL: cfg.FinnhubBaseURL}, httpClient, limiter), nil
	case "twelvedata":
		if cfg.TwelveDataAPIKey == "" {
			return nil, fmt.Errorf("TWELVE_DATA_API_KEY is required for provider twelvedata")
		}
		return twelvedata.NewTwelveDataMarket(twelvedata.Config{APIKey: cfg.TwelveDataAPIKey, BaseURL: cfg.TwelveDataURL}, httpClient, limiter), nil
	default:
		return nil, fmt.Errorf("unknown market provider %q", cfg.Provider)
	}
}

// NewHistoryFetcher は inner をRedisの履歴キャッシュで包みます。
// rdb が nil の場合はキャッシュを使用しません。
func NewHistoryFetcher(rdb *redis.Client, inner searchusecase.HistoryFetcher, cfg config.Market) (searchusecase.HistoryFetcher, error) {
	loc, err := time.LoadLocation(cfg.HistoryCacheZone)
	if err != nil {
		return nil, fmt.Errorf("history cache timezone: %w", err)
	}
	return cache.NewCachingHistoryFetcher(rdb, inner, cfg.HistoryCacheHour, loc), nil
}
