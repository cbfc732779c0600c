// Package ratelimiter は株価データプロバイダーへの呼び出し頻度を制限します。
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Limiter は次の呼び出しが許可されるか ctx が終了するまでブロックします。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter は interval ごとに最大 limit 回の呼び出しを許可します（固定ウィンドウ）。
// 並行利用に対して安全で、ウォッチリストのクォート取得で1つのインスタンスを共有します。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int
	interval  time.Duration
	count     int
	lastReset time.Time
	now       func() time.Time
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter はRateLimiterを生成します。limit が 0 以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
	}
}

// Wait は現在のウィンドウで枠を確保します。枠を使い切っている場合は次のウィンドウまで待機します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl.limit <= 0 {
		return ctx.Err()
	}
	for {
		sleep := rl.reserve()
		if sleep <= 0 {
			return nil
		}
		slog.Debug("rate limit reached, waiting", "limit", rl.limit, "sleep", sleep)
		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// reserve は枠を確保できれば 0 を、できなければ次のウィンドウまでの待機時間を返します。
func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}
	if rl.count < rl.limit {
		rl.count++
		return 0
	}
	return rl.interval - now.Sub(rl.lastReset)
}
