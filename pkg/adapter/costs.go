// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package adapter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/canonical/tenant-collector/internal/types"
	"github.com/canonical/tenant-collector/internal/windows"
)

// ZeroCost is recorded for windows the provider reported nothing for, so windows line up
// across tenants.
func ZeroCost(w windows.Window, currency string) types.Cost {
	return types.Cost{
		Currency: currency,
		From:     w.FromString(),
		To:       w.ToString(),
		Cost:     "0",
		Details:  []types.CostDetail{},
	}
}

// Sum adds decimal strings, an empty string counts as zero.
func Sum(amounts ...string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range amounts {
		if a == "" {
			continue
		}
		d, err := decimal.NewFromString(a)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid amount %q: %w", a, err)
		}
		total = total.Add(d)
	}
	return total, nil
}

// NewCost builds a record whose total is the sum of its details. Details must share currency.
func NewCost(w windows.Window, currency string, details []types.CostDetail) (types.Cost, error) {
	for _, d := range details {
		if d.Currency != "" && d.Currency != currency {
			return types.Cost{}, fmt.Errorf("%w: %s and %s in %s", ErrCurrencyMismatch, currency, d.Currency, w.FromString())
		}
	}
	total, err := Sum(lo.Map(details, func(d types.CostDetail, _ int) string { return d.Cost })...)
	if err != nil {
		return types.Cost{}, err
	}
	if details == nil {
		details = []types.CostDetail{}
	}
	return types.Cost{
		Currency: currency,
		From:     w.FromString(),
		To:       w.ToString(),
		Cost:     total.String(),
		Details:  details,
	}, nil
}

// CheckCurrency fails when a tenant's costs were billed in more than one currency.
func CheckCurrency(t *types.Tenant) error {
	currencies := lo.Uniq(lo.FilterMap(t.Costs, func(c types.Cost, _ int) (string, bool) {
		return c.Currency, c.Currency != ""
	}))
	if len(currencies) > 1 {
		return fmt.Errorf("%w: tenant %s has %v", ErrCurrencyMismatch, t.PlatformTenantID, currencies)
	}
	return nil
}

// Currency returns the currency already used by the tenant's costs, or fallback.
func Currency(t *types.Tenant, fallback string) string {
	for _, c := range t.Costs {
		if c.Currency != "" {
			return c.Currency
		}
	}
	return fallback
}

// MergeCosts replaces the records of existing that overlap any of fresh and returns the
// result ordered by window start, so a tenant keeps one record per window.
func MergeCosts(existing, fresh []types.Cost) []types.Cost {
	kept := lo.Reject(existing, func(c types.Cost, _ int) bool {
		return lo.SomeBy(fresh, func(f types.Cost) bool {
			return c.From <= f.To && f.From <= c.To
		})
	})

	merged := append(kept, fresh...)
	slices.SortStableFunc(merged, func(a, b types.Cost) int {
		return strings.Compare(a.From, b.From)
	})
	return merged
}
