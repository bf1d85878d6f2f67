// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import "errors"

var (
	ErrPlatformNotConfigured = errors.New("platform not configured")
	ErrTenantNotFound        = errors.New("tenant not found")
)
