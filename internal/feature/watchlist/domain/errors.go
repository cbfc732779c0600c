// Package domain defines domain-level errors for the watchlist feature.
package domain

import (
	"errors"
	"fmt"
)

// ErrAlreadyWatched は銘柄がすでにメモリ上のウォッチリストにある場合に Add が返します。
var ErrAlreadyWatched = errors.New("symbol already in watchlist")

// StoreError は永続化レイヤーの呼び出し失敗を表します。
type StoreError struct {
	Op     string // "list", "insert", "delete"
	Symbol string // list の場合は空
	Err    error
}

func (e *StoreError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("watchlist store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("watchlist store %s %s: %v", e.Op, e.Symbol, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
