// Package retry provides the attempt/delay/retry combinator shared by the wallet
// prompt, the contract setup, the role re-check and the backend identity call.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy describes how many times an operation is retried and how long to wait between attempts.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt. Zero means a single attempt.
	MaxRetries int
	// Delay is the wait before the first retry.
	Delay time.Duration
	// Exponential grows the delay between retries instead of keeping it fixed.
	Exponential bool
	// MaxDelay caps the exponential delay. Ignored for fixed delays.
	MaxDelay time.Duration
	// OnRetry is called before every retry with the failed attempt number (1-based).
	OnRetry func(attempt int, err error, next time.Duration)
}

// Fixed returns a policy with a constant delay between attempts.
func Fixed(maxRetries int, delay time.Duration) Policy {
	return Policy{MaxRetries: maxRetries, Delay: delay}
}

// Exponential returns a policy whose delay doubles after every failed attempt.
func Exponential(maxRetries int, delay time.Duration) Policy {
	return Policy{MaxRetries: maxRetries, Delay: delay, Exponential: true}
}

// Permanent marks err as non-retryable. Do returns the wrapped error unchanged.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs op until it succeeds, returns a permanent error, the retries are exhausted
// or ctx is done. The error of the last attempt is returned.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	attempt := 0
	operation := func() error {
		attempt++
		return op(ctx)
	}

	var notify backoff.Notify
	if p.OnRetry != nil {
		notify = func(err error, next time.Duration) {
			p.OnRetry(attempt, err, next)
		}
	}

	return backoff.RetryNotify(operation, p.backOff(ctx), notify)
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	var b backoff.BackOff
	if p.Exponential {
		exp := backoff.NewExponentialBackOff()
		exp.InitialInterval = p.Delay
		exp.RandomizationFactor = 0
		exp.Multiplier = 2
		exp.MaxElapsedTime = 0
		if p.MaxDelay > 0 {
			exp.MaxInterval = p.MaxDelay
		}
		exp.Reset()
		b = exp
	} else {
		b = backoff.NewConstantBackOff(p.Delay)
	}

	maxRetries := p.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxRetries)), ctx)
}
