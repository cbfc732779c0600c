// Package redis は任意のRedisキャッシュへの接続を提供します。
package redis

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"stock_watch/internal/platform/config"
)

// ErrNotConfigured はRedisホストが設定されていない場合に返されます。
var ErrNotConfigured = errors.New("redis not configured")

// NewRedisClient はRedisに接続してPINGを送ります。
// 呼び出し側はエラー時にキャッシュなしで動作します。
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.Addr(), "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.Addr())
	return rdb, nil
}
