// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gcp

import (
	"fmt"
	"regexp"

	"github.com/canonical/tenant-collector/internal/fetch"
	"github.com/canonical/tenant-collector/internal/types"
)

var (
	labelKey   = regexp.MustCompile(`^[a-z][a-z0-9_-]{0,62}$`)
	labelValue = regexp.MustCompile(`^[a-z0-9_-]{0,63}$`)
)

// toLabels converts tags to project labels. Labels hold a single lowercase value, anything
// else is rejected rather than rewritten.
func toLabels(tags []types.Tag) (map[string]string, error) {
	labels := make(map[string]string, len(tags))

	for _, t := range tags {
		if !labelKey.MatchString(t.Name) {
			return nil, invalidLabel(t.Name, fmt.Errorf("label keys start with a lowercase letter and contain only lowercase letters, digits, _ and -"))
		}
		if len(t.Values) > 1 {
			return nil, invalidLabel(t.Name, fmt.Errorf("labels hold a single value, got %d", len(t.Values)))
		}

		value := ""
		if len(t.Values) == 1 {
			value = t.Values[0]
		}
		if !labelValue.MatchString(value) {
			return nil, invalidLabel(t.Name, fmt.Errorf("label value %q may contain only lowercase letters, digits, _ and -", value))
		}
		labels[t.Name] = value
	}

	return labels, nil
}

func invalidLabel(name string, err error) error {
	return &fetch.Error{
		Kind:    fetch.KindInvalidTagValue,
		Subject: name,
		Remedy:  "See https://cloud.google.com/resource-manager/docs/labels-overview#requirements.",
		Err:     err,
	}
}
