// Package cache は株価データ取得処理のキャッシュ実装を提供します。
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_watch/internal/feature/market/domain/entity"
	"stock_watch/internal/feature/search/usecase"
)

// CachingHistoryFetcher は HistoryFetcher をRedisキャッシュで装飾します。
// 銘柄と日付ごとに1エントリを保持し、loc における次のリセット時刻まで有効です。
type CachingHistoryFetcher struct {
	inner     usecase.HistoryFetcher
	rdb       *redis.Client
	resetHour int
	loc       *time.Location
	namespace string
	now       func() time.Time
}

var _ usecase.HistoryFetcher = (*CachingHistoryFetcher)(nil)

// NewCachingHistoryFetcher は inner を装飾した CachingHistoryFetcher を生成します。
// rdb が nil の場合はキャッシュを無効にします。loc が nil なら UTC、resetHour が 0-23 の範囲外なら 6 を使用します。
func NewCachingHistoryFetcher(rdb *redis.Client, inner usecase.HistoryFetcher, resetHour int, loc *time.Location) *CachingHistoryFetcher {
	if loc == nil {
		loc = time.UTC
	}
	if resetHour < 0 || resetHour > 23 {
		resetHour = 6
	}
	return &CachingHistoryFetcher{
		inner:     inner,
		rdb:       rdb,
		resetHour: resetHour,
		loc:       loc,
		namespace: "history",
		now:       time.Now,
	}
}

// History は銘柄と to の日付に対応するキャッシュ済みの系列を返し、なければプロバイダーから取得します。
// キャッシュのエラーは呼び出し側に返しません。
func (c *CachingHistoryFetcher) History(ctx context.Context, symbol string, from, to time.Time) ([]entity.PricePoint, error) {
	// Redisが未設定の場合はキャッシュをバイパス
	if c.rdb == nil {
		return c.inner.History(ctx, symbol, from, to)
	}

	key := c.cacheKey(symbol, to)

	// 1) キャッシュを確認
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.PricePoint
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// 壊れたキャッシュエントリを削除
		_ = c.rdb.Del(ctx, key).Err()
	} else if err != nil && err != redis.Nil {
		slog.Debug("history cache read failed", "key", key, "error", err)
	}

	// 2) プロバイダーから取得
	out, err := c.inner.History(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}

	// 3) キャッシュに保存（ベストエフォート）
	// 空の系列はキャッシュしない
	if len(out) == 0 {
		return out, nil
	}
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, TimeUntilNext(c.now(), c.resetHour, c.loc)).Err()
	}

	return out, nil
}

// cacheKey は history:<SYMBOL>:<YYYY-MM-DD> 形式のキーを生成します。
func (c *CachingHistoryFetcher) cacheKey(symbol string, to time.Time) string {
	return fmt.Sprintf("%s:%s:%s",
		c.namespace,
		safe(symbol),
		to.In(c.loc).Format("2006-01-02"),
	)
}

// safe はRedisキーで問題となる文字を置き換えます。
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
