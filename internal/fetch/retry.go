// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package fetch

import (
	"context"
	"fmt"
	"time"
)

// RetryPolicy configures the single retry performed on retryable failures.
type RetryPolicy struct {
	// Delay is used when the failure carries no server specified delay.
	Delay time.Duration

	// OnRetry is called before sleeping.
	OnRetry func(err error, delay time.Duration)
}

// Retry runs op and, when it fails with a rate limit or transient error, waits and runs it
// exactly once more. Any other failure is returned immediately.
func Retry[T any](ctx context.Context, policy RetryPolicy, op func(context.Context) (T, error)) (T, error) {
	res, err := op(ctx)
	if err == nil {
		return res, nil
	}

	fErr, ok := isRetryable(err)
	if !ok {
		return res, err
	}

	delay := policy.Delay
	if fErr.RetryAfter > 0 {
		delay = fErr.RetryAfter
	}

	if policy.OnRetry != nil {
		policy.OnRetry(err, delay)
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("retry canceled: %w", ctx.Err())
	case <-timer.C:
	}

	return op(ctx)
}
