// Package twelvedata はTwelve Data APIのクォートと日次履歴を取得するクライアントを提供します。
package twelvedata

// Config はTwelve Data APIクライアントの設定を保持します。
type Config struct {
	APIKey  string // 認証用のAPIキー
	BaseURL string // e.g. "https://api.twelvedata.com"
}
