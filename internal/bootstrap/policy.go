package bootstrap

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	DefaultMaxAttempts = 15
	DefaultBackoff     = 3 * time.Second
)

// Policy bounds the tenant provisioning retry loop
type Policy struct {
	MaxAttempts int
	// Backoff yields the wait between two attempts. backoff.Stop ends the loop
	// early as if the attempt budget were spent.
	Backoff backoff.BackOff
}

// DefaultPolicy is 15 attempts with a constant 3s wait
func DefaultPolicy() Policy {
	return NewPolicy(DefaultMaxAttempts, DefaultBackoff)
}

// NewPolicy builds a constant-interval policy
func NewPolicy(maxAttempts int, interval time.Duration) Policy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return Policy{
		MaxAttempts: maxAttempts,
		Backoff:     backoff.NewConstantBackOff(interval),
	}
}

// Sleeper waits between provisioning attempts
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to Sleeper
type SleeperFunc func(ctx context.Context, d time.Duration) error

func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

type timerSleeper struct{}

func (timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
