package store

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle spaces out the calls to the Sheets API so that successive calls are at least 'interval'
// apart, keeping the application under the per-minute request quota. There is no burst allowance.
type Throttle struct {
	limiter *rate.Limiter
}

func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		return &Throttle{
			limiter: rate.NewLimiter(rate.Inf, 1),
		}
	}

	return &Throttle{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Wait blocks until the next call is allowed, or returns an error if the context is cancelled or the
// delay would exceed the context deadline.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}
