// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"testing"
	"time"

	"github.com/kelseyhightower/envconfig"
)

func TestEnvSpecDefaults(t *testing.T) {
	specs := new(EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if specs.MaxCacheAge() != 24*time.Hour {
		t.Errorf("expected default max cache age of 24h, got %v", specs.MaxCacheAge())
	}
	if specs.AWSConcurrency != 5 || specs.AzureConcurrency != 8 || specs.GCPConcurrency != 8 {
		t.Errorf("unexpected concurrency defaults: %d/%d/%d", specs.AWSConcurrency, specs.AzureConcurrency, specs.GCPConcurrency)
	}
	if specs.AzureRetryDelay != time.Second || specs.GCPRetryDelay != time.Second {
		t.Errorf("unexpected retry delay defaults: %v/%v", specs.AzureRetryDelay, specs.GCPRetryDelay)
	}
	if specs.AWSCurrency != "USD" || specs.AzureCurrency != "EUR" || specs.GCPCurrency != "USD" {
		t.Errorf("unexpected currency defaults: %s/%s/%s", specs.AWSCurrency, specs.AzureCurrency, specs.GCPCurrency)
	}
	if len(specs.Platforms) != 3 {
		t.Errorf("expected 3 default platforms, got %v", specs.Platforms)
	}
}

func TestEnvSpecOverrides(t *testing.T) {
	t.Setenv("CACHE_MAX_AGE", "60")
	t.Setenv("PLATFORMS", "azure")
	t.Setenv("AWS_RETRY_DELAY", "250ms")
	t.Setenv("GCP_RETRY_DELAY", "2s")
	t.Setenv("AZURE_CURRENCY", "CHF")

	specs := new(EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if specs.MaxCacheAge() != time.Minute {
		t.Errorf("expected max cache age of 1m, got %v", specs.MaxCacheAge())
	}
	if len(specs.Platforms) != 1 || specs.Platforms[0] != "azure" {
		t.Errorf("expected only azure, got %v", specs.Platforms)
	}
	if specs.AWSRetryDelay != 250*time.Millisecond {
		t.Errorf("expected 250ms retry delay, got %v", specs.AWSRetryDelay)
	}
	if specs.GCPRetryDelay != 2*time.Second {
		t.Errorf("expected 2s gcp retry delay, got %v", specs.GCPRetryDelay)
	}
	if specs.AzureCurrency != "CHF" {
		t.Errorf("expected CHF, got %s", specs.AzureCurrency)
	}
}
