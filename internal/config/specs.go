// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"time"
)

// EnvSpec is the environment configuration read by every collector command
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"false"`

	LogLevel string `envconfig:"log_level" default:"info"`
	LogFile  string `envconfig:"log_file"`

	MetricsFile string `envconfig:"metrics_file"`

	CacheDir string `envconfig:"cache_dir" default:".collie/cache"`
	// CacheMaxAge is expressed in seconds and applies to tenant, cost and IAM collections alike.
	CacheMaxAge int `envconfig:"cache_max_age" default:"86400"`

	Platforms []string `envconfig:"platforms" default:"aws,azure,gcp"`

	CLICallsPerSecond float64 `envconfig:"cli_calls_per_second" default:"0"`

	AWSConcurrency int           `envconfig:"aws_concurrency" default:"5"`
	AWSRetryDelay  time.Duration `envconfig:"aws_retry_delay" default:"1s"`
	AWSAccessRole  string        `envconfig:"aws_access_role" default:"OrganizationAccountAccessRole"`
	AWSProfile     string        `envconfig:"aws_profile"`
	AWSCurrency    string        `envconfig:"aws_currency" default:"USD"`

	AzureConcurrency           int           `envconfig:"azure_concurrency" default:"8"`
	AzureRetryDelay            time.Duration `envconfig:"azure_retry_delay" default:"1s"`
	AzureAutoInstallExtensions bool          `envconfig:"azure_auto_install_extensions" default:"true"`
	AzureCurrency              string        `envconfig:"azure_currency" default:"EUR"`

	GCPConcurrency        int           `envconfig:"gcp_concurrency" default:"8"`
	GCPRetryDelay         time.Duration `envconfig:"gcp_retry_delay" default:"1s"`
	GCPBillingExportTable string        `envconfig:"gcp_billing_export_table"`
	GCPCurrency           string        `envconfig:"gcp_currency" default:"USD"`
}

func (s *EnvSpec) MaxCacheAge() time.Duration {
	return time.Duration(s.CacheMaxAge) * time.Second
}
