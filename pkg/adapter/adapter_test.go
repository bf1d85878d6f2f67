// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package adapter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/tenant-collector/internal/types"
	"github.com/canonical/tenant-collector/internal/windows"
)

func TestTagDelta(t *testing.T) {
	original := []types.Tag{
		{Name: "env", Values: []string{"dev"}},
		{Name: "owner", Values: []string{"alice"}},
		{Name: "removed", Values: []string{"x"}},
	}

	testCases := []struct {
		name     string
		updated  []types.Tag
		expected []types.Tag
	}{
		{
			name:     "no change",
			updated:  original[:2],
			expected: []types.Tag{},
		},
		{
			name: "changed and added",
			updated: []types.Tag{
				{Name: "env", Values: []string{"prod"}},
				{Name: "owner", Values: []string{"alice"}},
				{Name: "cost-center", Values: []string{"42"}},
			},
			expected: []types.Tag{
				{Name: "env", Values: []string{"prod"}},
				{Name: "cost-center", Values: []string{"42"}},
			},
		},
		{
			name: "extra value counts as a change",
			updated: []types.Tag{
				{Name: "owner", Values: []string{"alice", "bob"}},
			},
			expected: []types.Tag{
				{Name: "owner", Values: []string{"alice", "bob"}},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ElementsMatch(t, tc.expected, TagDelta(tc.updated, original))
		})
	}
}

func TestTagsMapConversions(t *testing.T) {
	tags := TagsFromMap(map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, []types.Tag{{Name: "a", Values: []string{"1"}}, {Name: "b", Values: []string{"2"}}}, tags)

	m := TagsToMap([]types.Tag{{Name: "a", Values: []string{"1", "2"}}}, ",")
	assert.Equal(t, map[string]string{"a": "1,2"}, m)
}

func TestNewCost(t *testing.T) {
	w := windows.Window{
		From: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2021, 3, 20, 0, 0, 0, 0, time.UTC),
	}

	c, err := NewCost(w, "EUR", []types.CostDetail{
		{Service: "compute", Cost: "0.1", Currency: "EUR"},
		{Service: "storage", Cost: "0.2", Currency: "EUR"},
	})
	require.NoError(t, err)
	assert.Equal(t, "0.3", c.Cost)
	assert.Equal(t, "2021-03-01", c.From)
	assert.Equal(t, "2021-03-20", c.To)

	_, err = NewCost(w, "EUR", []types.CostDetail{{Cost: "abc"}})
	assert.Error(t, err)

	z := ZeroCost(w, "USD")
	assert.Equal(t, "0", z.Cost)
	assert.Empty(t, z.Details)
}

func TestCheckCurrency(t *testing.T) {
	ok := &types.Tenant{PlatformTenantID: "a", Costs: []types.Cost{{Currency: "EUR"}, {Currency: "EUR"}, {Currency: ""}}}
	assert.NoError(t, CheckCurrency(ok))
	assert.Equal(t, "EUR", Currency(ok, "USD"))

	bad := &types.Tenant{PlatformTenantID: "b", Costs: []types.Cost{{Currency: "EUR"}, {Currency: "USD"}}}
	assert.True(t, errors.Is(CheckCurrency(bad), ErrCurrencyMismatch))

	assert.Equal(t, "USD", Currency(&types.Tenant{}, "USD"))
}

func TestNewCostCurrencyMismatch(t *testing.T) {
	w := windows.Window{From: time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2021, 3, 31, 0, 0, 0, 0, time.UTC)}

	_, err := NewCost(w, "EUR", []types.CostDetail{{Cost: "1", Currency: "USD"}})
	assert.True(t, errors.Is(err, ErrCurrencyMismatch))
}

func TestMergeCosts(t *testing.T) {
	existing := []types.Cost{
		{From: "2021-01-01", To: "2021-01-31", Cost: "1"},
		{From: "2021-02-01", To: "2021-02-28", Cost: "2"},
		{From: "2021-03-01", To: "2021-03-20", Cost: "3"},
	}
	fresh := []types.Cost{
		{From: "2021-03-01", To: "2021-03-31", Cost: "30"},
		{From: "2021-04-01", To: "2021-04-30", Cost: "40"},
	}

	merged := MergeCosts(existing, fresh)

	assert.Equal(t, []string{"1", "2", "30", "40"}, costValues(merged))
	assert.Len(t, MergeCosts(nil, fresh), 2)
	assert.Len(t, MergeCosts(existing, nil), 3)
}

func costValues(cs []types.Cost) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Cost)
	}
	return out
}
