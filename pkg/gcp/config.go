// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gcp

import "time"

type Config struct {
	// Concurrency bounds per project calls.
	Concurrency int
	RetryDelay  time.Duration
	// BillingExportTable is the BigQuery billing export, as project.dataset.table.
	BillingExportTable string
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
		c.Currency = "USD"
	}
	return c
}
