// Package retry provides a bounded retry policy for operations against
// the vCenter endpoint.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Policy holds retry configuration. The zero Multiplier means constant
// backoff: every attempt waits Interval. A Multiplier > 1 grows the wait
// up to MaxInterval.
type Policy struct {
	MaxAttempts int
	Interval    time.Duration
	Multiplier  float64
	MaxInterval time.Duration
}

// Option is a functional option for retry configuration.
type Option func(*Policy)

// Do executes the operation until it succeeds, the attempt budget is
// exhausted, or the context is cancelled. Errors wrapped with Fatal()
// abort immediately without further attempts.
func Do(ctx context.Context, operation func() error, opts ...Option) error {
	p := &Policy{
		MaxAttempts: 5,
		Interval:    1 * time.Second,
		MaxInterval: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(p)
	}

	wait := p.Interval
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if IsFatal(err) {
			return fmt.Errorf("fatal error (not retrying): %w", err)
		}

		if attempt < p.MaxAttempts {
			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled after %d attempts: %w", attempt, ctx.Err())
			case <-time.After(wait):
				if p.Multiplier > 1 {
					wait = time.Duration(float64(wait) * p.Multiplier)
					if wait > p.MaxInterval {
						wait = p.MaxInterval
					}
				}
			}
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", p.MaxAttempts, lastErr)
}

// WithMaxAttempts sets the attempt budget.
func WithMaxAttempts(n int) Option {
	return func(p *Policy) {
		p.MaxAttempts = n
	}
}

// WithInterval sets the wait between attempts.
func WithInterval(d time.Duration) Option {
	return func(p *Policy) {
		p.Interval = d
	}
}

// WithExponentialBackoff grows the wait by the given multiplier, capped
// at max.
func WithExponentialBackoff(multiplier float64, max time.Duration) Option {
	return func(p *Policy) {
		p.Multiplier = multiplier
		p.MaxInterval = max
	}
}

// FatalError wraps an error to mark it as fatal (non-retryable).
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// Fatal marks an error as fatal (non-retryable).
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &FatalError{Err: err}
}

// IsFatal checks if an error is fatal (non-retryable).
func IsFatal(err error) bool {
	var fatalErr *FatalError
	return errors.As(err, &fatalErr)
}
