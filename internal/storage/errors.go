// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidTenantID = errors.New("invalid tenant id")
	ErrCorruptRecord   = errors.New("corrupt record")
)

// validateTenantID rejects ids that would escape the store directory or clash with the meta file.
func validateTenantID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty", ErrInvalidTenantID)
	case strings.HasPrefix(id, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidTenantID, id)
	case strings.ContainsAny(id, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidTenantID, id)
	}
	return nil
}

// WrapCorruptRecord marks a record that exists on disk but cannot be used.
func WrapCorruptRecord(err error, context string) error {
	return fmt.Errorf("%s: %w: %v", context, ErrCorruptRecord, err)
}
