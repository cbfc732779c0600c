// Package usecase はdashboardフィーチャーのビジネスロジックを実装します。
// ビュー状態を保持し、ユーザー操作を検索とウォッチリストのユースケース呼び出しに変換します。
package usecase

import (
	"context"
	"log/slog"
	"sync"

	"stock_watch/internal/feature/dashboard/domain/entity"
	marketentity "stock_watch/internal/feature/market/domain/entity"
	searchentity "stock_watch/internal/feature/search/domain/entity"
	watchlistentity "stock_watch/internal/feature/watchlist/domain/entity"
)

// WatchlistController はダッシュボードが利用するウォッチリスト操作のインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type WatchlistController interface {
	Load(ctx context.Context) ([]watchlistentity.Entry, error)
	Toggle(ctx context.Context, symbol string) (bool, error)
	Remove(ctx context.Context, symbol string) error
	Contains(symbol string) bool
	Entries() []watchlistentity.Entry
}

// SearchController はダッシュボードが利用する検索操作のインターフェースです。
type SearchController interface {
	Search(ctx context.Context, symbol string) (searchentity.Result, error)
	Current() (searchentity.Result, bool)
}

// DashboardUsecase は選択中の銘柄、パネル表示、メッセージなど表示専用の状態を保持します。
// ウォッチリストと検索の状態は各ユースケースが持ち、State で読み出します。
type DashboardUsecase struct {
	watchlist WatchlistController
	search    SearchController

	mu           sync.Mutex
	searchSeq    uint64
	searchErr    string
	selected     string
	panelVisible bool
	message      string
}

// NewDashboardUsecase はウォッチリストパネルを表示した状態で DashboardUsecase を生成します。
func NewDashboardUsecase(watchlist WatchlistController, search SearchController) *DashboardUsecase {
	return &DashboardUsecase{watchlist: watchlist, search: search, panelVisible: true}
}

// State はビューのスナップショットを返します。
func (u *DashboardUsecase) State() entity.View {
	u.mu.Lock()
	v := entity.View{
		SearchError:  u.searchErr,
		Selected:     u.selected,
		PanelVisible: u.panelVisible,
		Message:      u.message,
	}
	u.mu.Unlock()

	v.Watchlist = u.watchlist.Entries()
	if res, ok := u.search.Current(); ok {
		v.Search = &res
		v.InWatchlist = u.watchlist.Contains(res.Symbol)
	}
	return v
}

// Reload はストアからウォッチリストパネルを読み込みます。
func (u *DashboardUsecase) Reload(ctx context.Context) entity.View {
	_, err := u.watchlist.Load(ctx)
	if err != nil {
		slog.Error("watchlist load failed", "error", err)
		u.setMessage("Could not load your watchlist. Try again.")
	} else {
		u.setMessage("")
	}
	return u.State()
}

// SubmitSearch は銘柄を検索します。検索エラーを設定・解除できるのは最後に送信された検索だけです。
func (u *DashboardUsecase) SubmitSearch(ctx context.Context, symbol string) entity.View {
	u.mu.Lock()
	u.selected = ""
	u.mu.Unlock()
	u.runSearch(ctx, symbol)
	return u.State()
}

// SelectWatchlistItem は銘柄を選択状態にし、その検索結果を表示します。
func (u *DashboardUsecase) SelectWatchlistItem(ctx context.Context, symbol string) entity.View {
	normalized, err := marketentity.NormalizeSymbol(symbol)
	if err != nil {
		u.setMessage(userMessage("select", symbol, err))
		return u.State()
	}
	u.mu.Lock()
	u.selected = normalized
	u.mu.Unlock()
	u.runSearch(ctx, normalized)
	return u.State()
}

// ToggleWatchlist は銘柄をウォッチリストに追加または削除します。
func (u *DashboardUsecase) ToggleWatchlist(ctx context.Context, symbol string) entity.View {
	added, err := u.watchlist.Toggle(ctx, symbol)
	if err != nil {
		slog.Warn("watchlist toggle failed", "symbol", symbol, "error", err)
		u.setMessage(userMessage("update", symbol, err))
		return u.State()
	}
	if !added {
		u.clearSelection(symbol)
	}
	u.setMessage("")
	return u.State()
}

// RemoveWatchlistItem は銘柄を削除し、選択中であれば選択も解除します。
func (u *DashboardUsecase) RemoveWatchlistItem(ctx context.Context, symbol string) entity.View {
	if err := u.watchlist.Remove(ctx, symbol); err != nil {
		slog.Warn("watchlist remove failed", "symbol", symbol, "error", err)
		u.setMessage(userMessage("remove", symbol, err))
		return u.State()
	}
	u.clearSelection(symbol)
	u.setMessage("")
	return u.State()
}

// TogglePanel はウォッチリストパネルの表示・非表示を切り替えます。
func (u *DashboardUsecase) TogglePanel() entity.View {
	u.mu.Lock()
	u.panelVisible = !u.panelVisible
	u.mu.Unlock()
	return u.State()
}

func (u *DashboardUsecase) runSearch(ctx context.Context, symbol string) {
	u.mu.Lock()
	u.searchSeq++
	seq := u.searchSeq
	u.mu.Unlock()

	_, err := u.search.Search(ctx, symbol)

	u.mu.Lock()
	defer u.mu.Unlock()
	if seq != u.searchSeq {
		return
	}
	if err != nil {
		u.searchErr = userMessage("search", symbol, err)
		return
	}
	u.searchErr = ""
}

func (u *DashboardUsecase) clearSelection(symbol string) {
	normalized, err := marketentity.NormalizeSymbol(symbol)
	if err != nil {
		return
	}
	u.mu.Lock()
	if u.selected == normalized {
		u.selected = ""
	}
	u.mu.Unlock()
}

func (u *DashboardUsecase) setMessage(msg string) {
	u.mu.Lock()
	u.message = msg
	u.mu.Unlock()
}
