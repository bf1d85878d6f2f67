// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package aws

import "time"

type Config struct {
	// Concurrency bounds per account calls such as tag listing and IAM collection.
	Concurrency int
	// RetryDelay is waited before retrying a throttled call. AWS gives no retry hint.
	RetryDelay time.Duration
	// AccessRole is assumed in every member account to read IAM data.
	AccessRole string
	// Profile selects a named CLI profile for organization level calls.
	Profile string
	// Currency is recorded on zero cost windows of tenants without any cost yet.
	Currency string
}

func (c Config) withDefaults() Config {
	if c.Concurrency <= 0 {
		c.Concurrency = 5
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = time.Second
	}
	if c.AccessRole == "" {
		c.AccessRole = "OrganizationAccountAccessRole"
	}
	if c.Currency == "" {
		c.Currency = "USD"
	}
	return c
}
