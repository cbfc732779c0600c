package usecase

import (
	"errors"
	"fmt"

	marketdomain "stock_watch/internal/feature/market/domain"
	marketentity "stock_watch/internal/feature/market/domain/entity"
	watchlistdomain "stock_watch/internal/feature/watchlist/domain"
)

// userMessage はユースケースのエラーをダッシュボード表示用の文言に変換します。
func userMessage(action, symbol string, err error) string {
	if normalized, nerr := marketentity.NormalizeSymbol(symbol); nerr == nil {
		symbol = normalized
	}
	var (
		fe *marketdomain.FetchError
		se *watchlistdomain.StoreError
	)
	switch {
	case errors.Is(err, marketdomain.ErrInvalidSymbol):
		return "Enter a valid ticker symbol."
	case errors.Is(err, watchlistdomain.ErrAlreadyWatched):
		return fmt.Sprintf("%s is already in your watchlist.", symbol)
	case errors.As(err, &fe):
		return fmt.Sprintf("Could not fetch market data for %s.", symbol)
	case errors.As(err, &se):
		return fmt.Sprintf("Could not %s %s: the watchlist is unavailable. Try again.", action, symbol)
	default:
		return fmt.Sprintf("Could not %s %s.", action, symbol)
	}
}
