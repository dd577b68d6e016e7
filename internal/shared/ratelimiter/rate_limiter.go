// Package ratelimiter throttles outgoing API calls to a fixed number per window.
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Limiter は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter は固定ウィンドウ方式で呼び出し回数を制限します。
// 複数のgoroutineから同時に利用できます。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // ウィンドウあたりの上限
	interval  time.Duration // どの単位でリセットするか
	count     int
	lastReset time.Time
	now       func() time.Time
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
// limit が 0 以下の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
	}
}

// Wait はレートリミットの上限に達しているかを確認し、必要であれば次のウィンドウまで待機します。
// 待機中に ctx がキャンセルされた場合は ctx.Err() を返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if rl == nil || rl.limit <= 0 {
		return ctx.Err()
	}
	for {
		sleep := rl.reserve()
		if sleep <= 0 {
			return nil
		}
		slog.Info("rate limit reached, waiting", "limit", rl.limit, "sleep", sleep)
		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// reserve はスロットを1つ確保し、確保できなかった場合は待機すべき時間を返します。
func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	// interval を過ぎたらカウントリセット
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
