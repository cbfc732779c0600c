// Package db はウォッチリストのストアが利用するgorm接続を提供します。
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stock_watch/internal/platform/config"
)

const retryInterval = 3 * time.Second

// Opener はDSNからgorm接続を開きます。テストでは差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN はPostgreSQLのkey/value形式のDSNを組み立てます（Supabaseのプーラーにも対応）。
func BuildDSN(cfg config.DB) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// ConnectWithRetry は成功するかタイムアウトするまで open を繰り返し呼び出します。
// docker compose ではDBコンテナがサービスより後に起動することがあるためです。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open は設定されたドライバーで接続し、有効であればモデルのマイグレーションを行います。
func Open(cfg config.DB, models ...any) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "postgres":
		db, err = ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		})
	case "sqlite", "":
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	slog.Info("database connected", "driver", cfg.Driver)

	if cfg.RunMigrations && len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return db, nil
}
