// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package azure

import "time"

type Config struct {
	// Concurrency bounds per subscription calls.
	Concurrency int
	// RetryDelay is used for transient failures that carry no retry hint.
	RetryDelay time.Duration
	// AutoInstallExtensions installs missing az extensions instead of failing.
	AutoInstallExtensions bool
	// Currency is recorded on zero cost windows of tenants without any cost yet.
	Currency string
}

func (c Config) withDefaults() Config {
	if c.Concurrency <= 0 {
		c.Concurrency = 8
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = time.Second
	}
	if c.Currency == "" {
		c.Currency = "EUR"
	}
	return c
}
