// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package adapter

import "errors"

var ErrCurrencyMismatch = errors.New("costs collected in more than one currency")
