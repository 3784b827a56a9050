// Package retry runs an operation with exponential backoff and jitter
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Config struct {
	MaxRetries   int
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	JitterFactor float64

	// Reports whether an error is worth another attempt
	IsRetryable func(error) bool

	// Called before sleeping between attempts
	OnRetry func(attempt int, delay time.Duration, err error)
}

type permanent struct {
	err error
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultMaxRetries   = 3
	DefaultBaseDelay    = 500 * time.Millisecond
	DefaultMaxDelay     = 10 * time.Second
	DefaultJitterFactor = 0.2
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func DefaultConfig() Config {
	return Config{
		MaxRetries:   DefaultMaxRetries,
		BaseDelay:    DefaultBaseDelay,
		MaxDelay:     DefaultMaxDelay,
		JitterFactor: DefaultJitterFactor,
		IsRetryable:  IsRetryable,
	}
}

// Permanent marks an error which should not be retried
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanent{err}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Do calls fn until it succeeds, returns a non-retryable error, or MaxRetries
// retries have been made. The last error is returned, unwrapped from
// Permanent.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	cfg = cfg.withDefaults()

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if lastErr = fn(); lastErr == nil {
			return nil
		}

		var p *permanent
		if errors.As(lastErr, &p) {
			return p.err
		}
		if !cfg.IsRetryable(lastErr) || attempt == cfg.MaxRetries {
			return lastErr
		}

		delay := backoff(cfg, attempt)
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt+1, delay, lastErr)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}

// IsRetryable returns false for nil errors, context cancellation and
// permanent errors, and true otherwise
func IsRetryable(err error) bool {
	var p *permanent
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.As(err, &p):
		return false
	default:
		return true
	}
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (p *permanent) Error() string {
	return p.err.Error()
}

func (p *permanent) Unwrap() error {
	return p.err
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func backoff(cfg Config, attempt int) time.Duration {
	delay := cfg.BaseDelay << min(attempt, 6)
	if delay > cfg.MaxDelay {
		delay = cfg.MaxDelay
	}
	jitter := float64(delay) * cfg.JitterFactor * (rand.Float64() - 0.5)
	return time.Duration(float64(delay) + jitter)
}

func (c Config) withDefaults() Config {
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = DefaultBaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = DefaultMaxDelay
	}
	if c.MaxDelay < c.BaseDelay {
		c.MaxDelay = c.BaseDelay
	}
	if c.JitterFactor < 0 {
		c.JitterFactor = 0
	}
	if c.IsRetryable == nil {
		c.IsRetryable = IsRetryable
	}
	return c
}
