// Package adapters はwatchlistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"stock_watch/internal/feature/watchlist/domain"
	"stock_watch/internal/feature/watchlist/domain/entity"
	"stock_watch/internal/feature/watchlist/usecase"
)

// watchlistGorm はStoreインターフェースのgorm実装です。
// Postgres (Supabase) とSQLiteのどちらでも動作します。
type watchlistGorm struct {
	db *gorm.DB
}

var _ usecase.Store = (*watchlistGorm)(nil)

// NewWatchlistRepository は指定されたDB接続でwatchlistGormの新しいインスタンスを生成します。
func NewWatchlistRepository(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db}
}

// List はid順（挿入順）にすべての行を返します。
func (r *watchlistGorm) List(ctx context.Context) ([]entity.Record, error) {
	var rows []WatchlistModel
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, &domain.StoreError{Op: "list", Err: err}
	}
	out := make([]entity.Record, 0, len(rows))
	for _, m := range rows {
		out = append(out, toRecord(m))
	}
	return out, nil
}

// Insert は行を追加し、採番されたIDを含むRecordを返します。
func (r *watchlistGorm) Insert(ctx context.Context, symbol string) (entity.Record, error) {
	m := WatchlistModel{Symbol: symbol}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entity.Record{}, &domain.StoreError{Op: "insert", Symbol: symbol, Err: err}
	}
	return toRecord(m), nil
}

// DeleteBySymbol は大文字化・前後空白除去した値がsymbolに一致するすべての行を削除します。
// 小文字で保存された古い行も対象になります。該当行がなくてもエラーにはなりません。
func (r *watchlistGorm) DeleteBySymbol(ctx context.Context, symbol string) error {
	if err := r.db.WithContext(ctx).
		Where("UPPER(TRIM(symbol)) = ?", symbol).
		Delete(&WatchlistModel{}).Error; err != nil {
		return &domain.StoreError{Op: "delete", Symbol: symbol, Err: err}
	}
	return nil
}

func toRecord(m WatchlistModel) entity.Record {
	return entity.Record{ID: m.ID, Symbol: m.Symbol, CreatedAt: m.CreatedAt}
}
