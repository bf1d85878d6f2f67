// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package fetch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MapConcurrent applies fn to every input with at most limit invocations in flight and
// returns the results in input order. The window is rolling: a new invocation starts as soon
// as any running one completes.
//
// The first failure is returned. Invocations already running are not cancelled, they get the
// caller's ctx and run to completion, but no further invocation is started.
func MapConcurrent[T, R any](ctx context.Context, inputs []T, limit int, fn func(context.Context, T) (R, error)) ([]R, error) {
	if limit <= 0 {
		limit = 1
	}

	results := make([]R, len(inputs))

	g, failed := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, in := range inputs {
		if failed.Err() != nil {
			break
		}

		g.Go(func() error {
			// a sibling may have failed while this one waited for a slot
			if failed.Err() != nil {
				return nil
			}

			r, err := fn(ctx, in)
			if err != nil {
				return err
			}

			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// the parent context may have been cancelled before the loop completed
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// ForEachConcurrent is MapConcurrent for side-effecting calls.
func ForEachConcurrent[T any](ctx context.Context, inputs []T, limit int, fn func(context.Context, T) error) error {
	_, err := MapConcurrent(ctx, inputs, limit, func(ctx context.Context, in T) (struct{}, error) {
		return struct{}{}, fn(ctx, in)
	})
	return err
}
