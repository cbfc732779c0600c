// Package http は株価データのアダプターが共有する外部向けHTTPクライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は外部API呼び出し用のクライアントを返します。
//
// http.DefaultClient にはタイムアウトがないため、アダプターでは使用しません。
// ウォッチリストのロードは同一ホストへ銘柄ごとに同時にリクエストするため、ホスト単位のアイドル接続を保持します。
func NewHTTPClient(timeout time.Duration, maxConnsPerHost int) *http.Client {
	if maxConnsPerHost <= 0 {
		maxConnsPerHost = 8
	}
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: maxConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
