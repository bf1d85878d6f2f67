// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package fetch

import (
	"context"
)

// PageFunc fetches the page identified by token, an empty token being the first page.
// It returns the page items and the next continuation token, empty on the last page.
type PageFunc[T any] func(ctx context.Context, token string) ([]T, string, error)

// Paginate follows continuation tokens until the provider stops returning one and
// accumulates the pages in arrival order. Pages are not deduplicated.
func Paginate[T any](ctx context.Context, fn PageFunc[T]) ([]T, error) {
	var (
		all   []T
		token string
	)

	for {
		items, next, err := fn(ctx, token)
		if err != nil {
			return nil, err
		}

		all = append(all, items...)

		if next == "" {
			return all, nil
		}
		token = next
	}
}
