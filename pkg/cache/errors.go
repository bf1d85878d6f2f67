// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cache

import "errors"

var ErrStaleTenantCollection = errors.New("cached tenant collection is stale, clear the cache and retry")
