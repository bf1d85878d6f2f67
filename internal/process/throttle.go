// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package process

import (
	"context"

	"golang.org/x/time/rate"
)

var _ RunnerInterface = (*ThrottledRunner)(nil)

// ThrottledRunner caps the rate at which processes are launched, on top of any concurrency limit.
type ThrottledRunner struct {
	next    RunnerInterface
	limiter *rate.Limiter
}

func (t *ThrottledRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return t.next.Run(ctx, cmd)
}

// NewThrottledRunner wraps next. A non positive callsPerSecond disables throttling and returns next as is.
func NewThrottledRunner(next RunnerInterface, callsPerSecond float64) RunnerInterface {
	if callsPerSecond <= 0 {
		return next
	}

	burst := int(callsPerSecond)
	if burst < 1 {
		burst = 1
	}

	return &ThrottledRunner{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(callsPerSecond), burst),
	}
}
