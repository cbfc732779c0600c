// Package domain defines domain-level errors for the market feature.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSymbol は前後の空白除去後に空、または空白を含むティッカーに対して返されます。
	ErrInvalidSymbol = errors.New("invalid ticker symbol")

	// ErrMalformedPayload はプロバイダーが2xxで解釈できない本文を返した場合に FetchError に包まれます。
	ErrMalformedPayload = errors.New("malformed provider payload")
)

// FetchError は株価データプロバイダーへのクォートまたは履歴リクエストの失敗を表します。
type FetchError struct {
	Provider string // "finnhub", "twelvedata"
	Op       string // "quote" or "history"
	Symbol   string
	Status   int // プロバイダーが応答した場合のHTTPステータス。それ以外は 0
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s %s: http %d: %v", e.Provider, e.Op, e.Symbol, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Provider, e.Op, e.Symbol, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
