// Package dto defines data transfer objects for the Twelve Data API responses.
package dto

// QuoteResponse は /quote エンドポイントのJSONボディです。数値は文字列で返されます。
type QuoteResponse struct {
	Status        string `json:"status,omitempty"`
	Code          int    `json:"code,omitempty"`
	Message       string `json:"message,omitempty"`
	Symbol        string `json:"symbol"`
	Close         string `json:"close"`
	Change        string `json:"change"`
	PercentChange string `json:"percent_change"`
}

// TimeSeriesResponse は /time_series エンドポイントのJSONボディです。
type TimeSeriesResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Values  []struct {
		Datetime string `json:"datetime"`
		Close    string `json:"close"`
	} `json:"values"`
}
