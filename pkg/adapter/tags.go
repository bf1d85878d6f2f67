// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package adapter

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/canonical/tenant-collector/internal/types"
)

// TagDelta returns the tags of updated that are new or carry different values than in
// original, in the order they appear in updated. Tags removed in updated are not reported.
func TagDelta(updated, original []types.Tag) []types.Tag {
	before := lo.SliceToMap(original, func(t types.Tag) (string, []string) {
		return t.Name, t.Values
	})

	return lo.Filter(updated, func(t types.Tag, _ int) bool {
		old, ok := before[t.Name]
		return !ok || !slices.Equal(old, t.Values)
	})
}

// TagsToMap flattens tags for CLIs that accept name=value pairs. Multiple values are joined
// with sep.
func TagsToMap(tags []types.Tag, sep string) map[string]string {
	return lo.SliceToMap(tags, func(t types.Tag) (string, string) {
		return t.Name, strings.Join(t.Values, sep)
	})
}

// TagsFromMap builds tags sorted by name from a provider tag or label map.
func TagsFromMap(m map[string]string) []types.Tag {
	tags := lo.MapToSlice(m, func(k, v string) types.Tag {
		return types.Tag{Name: k, Values: []string{v}}
	})
	slices.SortFunc(tags, func(a, b types.Tag) int {
		return strings.Compare(a.Name, b.Name)
	})
	return tags
}
