package source

import (
	"context"
	"time"

	"github.com/avast/retry-go"
)

const (
	DefaultAttempts = 3
	DefaultDelay    = 5 * time.Second
)

// Retrier runs an operation up to Attempts times with a fixed Delay between attempts.
// There is no sleep after the last attempt and no jitter.
type Retrier struct {
	Attempts uint
	Delay    time.Duration
	// Sleep replaces the real timer when set.
	Sleep func(time.Duration)
}

func DefaultRetrier() Retrier {
	return Retrier{Attempts: DefaultAttempts, Delay: DefaultDelay}
}

// Do returns nil as soon as op succeeds, otherwise the error of the last attempt.
// onFail is called after every failed attempt with its 1-based number.
func (r Retrier) Do(ctx context.Context, op func(ctx context.Context) error, onFail func(attempt uint, err error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(r.attempts()),
		retry.LastErrorOnly(true),
		retry.Delay(r.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.OnRetry(func(n uint, err error) {
			if onFail != nil {
				onFail(n+1, err)
			}
		}),
	}
	if r.Sleep != nil {
		opts = append(opts, retry.DelayType(func(uint, error, *retry.Config) time.Duration {
			r.Sleep(r.Delay)
			return 0
		}))
	}

	return retry.Do(func() error {
		return op(ctx)
	}, opts...)
}

// permanent marks an error that another attempt cannot fix.
func permanent(err error) error {
	return retry.Unrecoverable(err)
}

func (r Retrier) attempts() uint {
	if r.Attempts == 0 {
		return 1
	}
	return r.Attempts
}
