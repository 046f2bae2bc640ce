// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"math"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff
// between transient-failure retries. Tests override this to avoid real
// sleeps.
var RetryBaseDelay = 2 * time.Second

// Backoff returns the delay before retry attempt n (zero-based). The
// delay starts at RetryBaseDelay and doubles each attempt: 2 s, 4 s,
// 8 s, ...
func Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	return time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
}

// Wait sleeps for d or until the context is cancelled, whichever comes
// first. Returns ctx.Err() on cancellation.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
