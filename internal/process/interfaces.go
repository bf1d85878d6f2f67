// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package process

import (
	"context"
)

type RunnerInterface interface {
	Run(context.Context, Command) (*Result, error)
}
