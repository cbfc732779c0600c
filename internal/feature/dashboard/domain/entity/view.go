// Package entity defines the dashboard view state.
package entity

import (
	searchentity "stock_watch/internal/feature/search/domain/entity"
	watchlistentity "stock_watch/internal/feature/watchlist/domain/entity"
)

// View はブラウザがダッシュボードを描画するために必要な状態です。
type View struct {
	// Search は確定した検索結果です。最初の検索が成功するまでは nil です。
	Search *searchentity.Result
	// SearchError は最新の検索が失敗した理由を表示用の文言で保持します。
	SearchError string
	Watchlist   []watchlistentity.Entry
	// InWatchlist は検索中の銘柄がウォッチリストに含まれるかを表します（スターボタン用）。
	InWatchlist  bool
	Selected     string
	PanelVisible bool
	// Message は直前のウォッチリスト操作の結果を表示用の文言で保持します。成功時は空です。
	Message string
}
