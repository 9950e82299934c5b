// Package collab wraps calls to external collaborators (speech-to-text,
// vision, question generation, narrative feedback) behind one uniform shape:
// every call carries a timeout and at most one retry with a short constant
// backoff, and failure yields a Degraded result instead of an error the
// caller has to branch on.
package collab

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryBackoff is the fixed wait before the single retry attempt.
const RetryBackoff = 500 * time.Millisecond

// Result is the tagged outcome of a collaborator call. Degraded means the
// call (including its retry) failed and Value holds the fallback; Err keeps
// the last failure for logging.
type Result[T any] struct {
	Value    T
	Degraded bool
	Err      error
}

// Ok wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

// Degraded wraps a fallback value after a failed call.
func Degraded[T any](fallback T, err error) Result[T] {
	return Result[T]{Value: fallback, Degraded: true, Err: err}
}

// Do invokes fn with the per-attempt timeout, retrying once after
// RetryBackoff. The fallback is returned tagged Degraded when both attempts
// fail or the parent context ends.
func Do[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error), fallback T) Result[T] {
	var value T
	attempt := func() error {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		v, err := fn(callCtx)
		if err != nil {
			return err
		}
		value = v
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(RetryBackoff), 1),
		ctx,
	)
	if err := backoff.Retry(attempt, policy); err != nil {
		return Degraded(fallback, err)
	}
	return Ok(value)
}
