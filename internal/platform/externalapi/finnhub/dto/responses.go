// Package dto defines data transfer objects for the Finnhub API responses.
package dto

// QuoteResponse は /quote のJSONボディです。
// 存在しない銘柄には 0 と null が返るため、変化量のフィールドはポインタです。
type QuoteResponse struct {
	Current       *float64 `json:"c"`
	Change        *float64 `json:"d"`
	PercentChange *float64 `json:"dp"`
	High          float64  `json:"h"`
	Low           float64  `json:"l"`
	Open          float64  `json:"o"`
	PreviousClose float64  `json:"pc"`
	Timestamp     int64    `json:"t"`
}

// CandleResponse は /stock/candle のJSONボディです。Status は "ok" または "no_data" です。
// Timestamps と Closes は同じ長さの並列配列です。
type CandleResponse struct {
	Status     string    `json:"s"`
	Timestamps []int64   `json:"t"`
	Closes     []float64 `json:"c"`
}

// ErrorResponse は4xx応答のボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}
