package llm

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy bounds how a failed provider call is re-issued: capped
// exponential backoff, optionally jittered.
type RetryPolicy struct {
	MaxRetries        int     // retries after the first call fails
	BaseDelay         float64 // seconds before the first retry
	MaxDelay          float64 // backoff cap, seconds
	BackoffMultiplier float64
	Jitter            bool
	OnRetry           func(err error, attempt int, delay time.Duration)
}

// DefaultRetryPolicy is what Generate uses unless the caller overrides
// MaxRetries. A generation run makes few calls, so the backoff stays short.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:        2,
		BaseDelay:         1.0,
		MaxDelay:          60.0,
		BackoffMultiplier: 2.0,
		Jitter:            true,
	}
}

// Delay returns the backoff before retry n (0-indexed). With Jitter the
// computed delay is scaled by a random factor in [0.5, 1.5).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	delay := math.Min(p.BaseDelay*math.Pow(p.BackoffMultiplier, float64(attempt)), p.MaxDelay)
	if p.Jitter {
		delay = delay * (0.5 + rand.Float64())
	}
	return time.Duration(delay * float64(time.Second))
}

// Retry runs fn and re-issues it per policy while the error classifies as
// retryable (see IsRetryable). A Retry-After hint on a rate limit replaces
// the computed backoff; a hint beyond MaxDelay surfaces the error instead of
// sleeping that long. Cancellation during a backoff wait returns AbortError.
func Retry[T any](ctx context.Context, policy RetryPolicy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	result, err := fn(ctx)
	if err == nil {
		return result, nil
	}

	for attempt := 0; attempt < policy.MaxRetries; attempt++ {
		if !IsRetryable(err) {
			return zero, err
		}

		delay := policy.Delay(attempt)
		if rl, ok := err.(*RateLimitError); ok && rl.RetryAfter != nil {
			retryDelay := time.Duration(*rl.RetryAfter * float64(time.Second))
			if retryDelay > time.Duration(policy.MaxDelay*float64(time.Second)) {
				// The provider wants a longer pause than the policy
				// tolerates; let the caller decide.
				return zero, err
			}
			delay = retryDelay
		}

		if policy.OnRetry != nil {
			policy.OnRetry(err, attempt+1, delay)
		}

		select {
		case <-ctx.Done():
			return zero, &AbortError{SDKError: SDKError{Message: "request cancelled during retry", Cause: ctx.Err()}}
		case <-time.After(delay):
		}

		result, err = fn(ctx)
		if err == nil {
			return result, nil
		}
	}

	return zero, err
}
