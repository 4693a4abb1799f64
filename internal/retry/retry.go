// Package retry provides a bounded retry-with-backoff combinator used by
// the match acceptance path. The delay doubles after each failed attempt;
// a predicate decides which errors are worth retrying.
package retry

import (
	"context"
	"time"
)

type Policy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int
	// BaseDelay is the wait before the second attempt; it doubles after
	// every subsequent failure.
	BaseDelay time.Duration
	// Retryable reports whether an error is transient. A nil predicate
	// treats every error as transient. Errors it rejects are returned
	// immediately without further attempts.
	Retryable func(error) bool
}

// Do runs fn until it succeeds, the policy is exhausted, a terminal
// error occurs, or ctx is cancelled. It returns nil on success and the
// last error otherwise.
func Do(ctx context.Context, p Policy, fn func() error) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	delay := p.BaseDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if attempt >= p.MaxAttempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
