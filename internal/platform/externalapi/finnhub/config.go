// Package finnhub はFinnhub APIのクォートと日足を取得するクライアントを提供します。
package finnhub

// Config はFinnhub APIクライアントの設定を保持します。
type Config struct {
	APIKey  string // X-Finnhub-Token ヘッダーで送信
	BaseURL string // e.g. "https://finnhub.io/api/v1"
}
