// Package usecase はウォッチリストのビジネスロジックを実装します。
// メモリ上のウォッチリストをストアおよび銘柄ごとの最新クォートと整合させます。
package usecase

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	marketentity "stock_watch/internal/feature/market/domain/entity"
	"stock_watch/internal/feature/watchlist/domain"
	"stock_watch/internal/feature/watchlist/domain/entity"
)

// Store はウォッチリスト銘柄の永続化レイヤーを抽象化します。実装は *domain.StoreError を返します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Store interface {
	// List は全行を挿入順で返します。
	List(ctx context.Context) ([]entity.Record, error)
	// Insert は行を追加し、採番されたIDを含めて返します。
	Insert(ctx context.Context, symbol string) (entity.Record, error)
	// DeleteBySymbol は正規化後に symbol と一致する全行を削除します。該当行がなくてもエラーにはしません。
	DeleteBySymbol(ctx context.Context, symbol string) error
}

// QuoteFetcher は銘柄の最新クォートを取得します。
type QuoteFetcher interface {
	Quote(ctx context.Context, symbol string) (marketentity.Quote, error)
}

// WatchlistUsecase はメモリ上のウォッチリストを保持します。
//
// 更新系の操作（Load, Add, Remove, Toggle, RefreshQuotes）は opMu で直列化され、
// Toggle のような確認してから更新する処理は常に直前の更新結果を参照します。
// 参照系（Entries, Contains）は viewMu のみを取得し、ネットワークI/Oを待ちません。
type WatchlistUsecase struct {
	store       Store
	quotes      QuoteFetcher
	concurrency int

	opMu    sync.Mutex
	viewMu  sync.RWMutex
	entries []entity.Entry
}

// NewWatchlistUsecase は空のウォッチリストを持つ WatchlistUsecase を生成します。
// concurrency はクォート取得の同時実行数の上限です。0 以下は無制限を意味します。
func NewWatchlistUsecase(store Store, quotes QuoteFetcher, concurrency int) *WatchlistUsecase {
	return &WatchlistUsecase{
		store:       store,
		quotes:      quotes,
		concurrency: concurrency,
		entries:     []entity.Entry{},
	}
}

// Load はストアの行でウォッチリストを置き換え、全銘柄のクォートを並行して取得します。
// クォート取得の失敗はそのエントリをクォートなしにするだけでロード自体は失敗しません。
// ストアの失敗時のみエラーを返し、その場合ウォッチリストは変更しません。
func (u *WatchlistUsecase) Load(ctx context.Context) ([]entity.Entry, error) {
	u.opMu.Lock()
	defer u.opMu.Unlock()

	records, err := u.store.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := u.fetchQuotes(ctx, dedupe(records))
	u.setEntries(entries)
	return entity.CloneEntries(entries), nil
}

// RefreshQuotes はストアを再読込せず、現在のエントリのクォートを取得し直します。
func (u *WatchlistUsecase) RefreshQuotes(ctx context.Context) []entity.Entry {
	u.opMu.Lock()
	defer u.opMu.Unlock()

	u.viewMu.RLock()
	records := make([]entity.Record, len(u.entries))
	for i, e := range u.entries {
		records[i] = entity.Record{ID: e.ID, Symbol: e.Symbol}
	}
	u.viewMu.RUnlock()

	entries := u.fetchQuotes(ctx, records)
	u.setEntries(entries)
	return entity.CloneEntries(entries)
}

// Add は銘柄を永続化してからクォートを取得し、エントリを末尾に追加します。
// 挿入成功後にクォート取得が失敗してもエントリは追加されます。
func (u *WatchlistUsecase) Add(ctx context.Context, raw string) (entity.Entry, error) {
	symbol, err := marketentity.NormalizeSymbol(raw)
	if err != nil {
		return entity.Entry{}, err
	}

	u.opMu.Lock()
	defer u.opMu.Unlock()
	return u.add(ctx, symbol)
}

// Remove は銘柄に一致するストアの全行を削除し、ウォッチリストからも取り除きます。
// メモリ上にない銘柄でもストアの削除は必ず実行し、該当行がなければ何もしません。
func (u *WatchlistUsecase) Remove(ctx context.Context, raw string) error {
	symbol, err := marketentity.NormalizeSymbol(raw)
	if err != nil {
		return err
	}

	u.opMu.Lock()
	defer u.opMu.Unlock()
	return u.remove(ctx, symbol)
}

// Toggle は銘柄が登録済みなら削除し、未登録なら追加します。
// 確認と更新は同じロック内で行うため、このユースケースに対して不可分です。
// 戻り値は銘柄が追加されたかどうかを表します。
func (u *WatchlistUsecase) Toggle(ctx context.Context, raw string) (bool, error) {
	symbol, err := marketentity.NormalizeSymbol(raw)
	if err != nil {
		return false, err
	}

	u.opMu.Lock()
	defer u.opMu.Unlock()

	if u.contains(symbol) {
		return false, u.remove(ctx, symbol)
	}
	if _, err := u.add(ctx, symbol); err != nil {
		return false, err
	}
	return true, nil
}

// Contains は銘柄がメモリ上のウォッチリストに含まれるかを返します。I/Oは行いません。
func (u *WatchlistUsecase) Contains(raw string) bool {
	symbol, err := marketentity.NormalizeSymbol(raw)
	if err != nil {
		return false
	}
	return u.contains(symbol)
}

// Entries はウォッチリストのコピーをストア順で返します。
func (u *WatchlistUsecase) Entries() []entity.Entry {
	u.viewMu.RLock()
	defer u.viewMu.RUnlock()
	return entity.CloneEntries(u.entries)
}

func (u *WatchlistUsecase) add(ctx context.Context, symbol string) (entity.Entry, error) {
	if u.contains(symbol) {
		return entity.Entry{}, domain.ErrAlreadyWatched
	}

	rec, err := u.store.Insert(ctx, symbol)
	if err != nil {
		return entity.Entry{}, err
	}
	e := u.quoteEntry(ctx, rec)

	u.viewMu.Lock()
	u.entries = append(u.entries, e)
	u.viewMu.Unlock()
	return e.Clone(), nil
}

func (u *WatchlistUsecase) remove(ctx context.Context, symbol string) error {
	if err := u.store.DeleteBySymbol(ctx, symbol); err != nil {
		return err
	}

	u.viewMu.Lock()
	kept := make([]entity.Entry, 0, len(u.entries))
	for _, e := range u.entries {
		if e.Symbol != symbol {
			kept = append(kept, e)
		}
	}
	u.entries = kept
	u.viewMu.Unlock()
	return nil
}

func (u *WatchlistUsecase) contains(symbol string) bool {
	u.viewMu.RLock()
	defer u.viewMu.RUnlock()
	for _, e := range u.entries {
		if e.Symbol == symbol {
			return true
		}
	}
	return false
}

func (u *WatchlistUsecase) setEntries(entries []entity.Entry) {
	u.viewMu.Lock()
	u.entries = entries
	u.viewMu.Unlock()
}

// fetchQuotes はレコードごとにクォート取得を起動し、結果をインデックスで結合します。
// 出力順は完了順に関係なくレコード順になります。
func (u *WatchlistUsecase) fetchQuotes(ctx context.Context, records []entity.Record) []entity.Entry {
	entries := make([]entity.Entry, len(records))
	var g errgroup.Group
	if u.concurrency > 0 {
		g.SetLimit(u.concurrency)
	}
	for i, rec := range records {
		i, rec := i, rec
		g.Go(func() error {
			entries[i] = u.quoteEntry(ctx, rec)
			return nil
		})
	}
	_ = g.Wait() // 失敗はエントリごとに記録済み
	return entries
}

func (u *WatchlistUsecase) quoteEntry(ctx context.Context, rec entity.Record) entity.Entry {
	e := entity.Entry{ID: rec.ID, Symbol: rec.Symbol}
	q, err := u.quotes.Quote(ctx, rec.Symbol)
	if err != nil {
		slog.Warn("watchlist quote fetch failed", "symbol", rec.Symbol, "id", rec.ID, "error", err)
		e.QuoteErr = err
		return e
	}
	e.Quote = &q
	return e
}

// dedupe は正規化した銘柄ごとに最初の行だけを残します。
// 過去の書き込みによりストアには小文字や重複した行が残っている場合があります。
func dedupe(records []entity.Record) []entity.Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]entity.Record, 0, len(records))
	for _, r := range records {
		symbol, err := marketentity.NormalizeSymbol(r.Symbol)
		if err != nil {
			slog.Warn("invalid watchlist row ignored", "symbol", r.Symbol, "id", r.ID)
			continue
		}
		r.Symbol = symbol
		if _, ok := seen[r.Symbol]; ok {
			slog.Warn("duplicate watchlist row ignored", "symbol", r.Symbol, "id", r.ID)
			continue
		}
		seen[r.Symbol] = struct{}{}
		out = append(out, r)
	}
	return out
}
