// Package dto defines data transfer objects for the dashboard HTTP API.
package dto

import (
	"stock_watch/internal/feature/dashboard/domain/entity"
	searchdto "stock_watch/internal/feature/search/transport/http/dto"
	watchlistdto "stock_watch/internal/feature/watchlist/transport/http/dto"
)

// SearchRequest は POST /dashboard/search のリクエストボディです。
type SearchRequest struct {
	Symbol string `json:"symbol"`
}

// ViewResponse は描画用のダッシュボード状態です。
type ViewResponse struct {
	Search       *searchdto.SearchResponse `json:"search"`
	SearchError  string                    `json:"search_error,omitempty"`
	Watchlist    []watchlistdto.EntryItem  `json:"watchlist"`
	InWatchlist  bool                      `json:"in_watchlist"`
	Selected     string                    `json:"selected,omitempty"`
	PanelVisible bool                      `json:"panel_visible"`
	Message      string                    `json:"message,omitempty"`
}

// FromView はビュー状態をレスポンスに変換します。
func FromView(v entity.View) ViewResponse {
	out := ViewResponse{
		SearchError:  v.SearchError,
		Watchlist:    watchlistdto.FromEntries(v.Watchlist),
		InWatchlist:  v.InWatchlist,
		Selected:     v.Selected,
		PanelVisible: v.PanelVisible,
		Message:      v.Message,
	}
	if v.Search != nil {
		s := searchdto.FromResult(*v.Search)
		out.Search = &s
	}
	return out
}
