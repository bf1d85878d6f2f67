// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/canonical/tenant-collector/internal/config"
	"github.com/canonical/tenant-collector/internal/logging"
	"github.com/canonical/tenant-collector/internal/monitoring/prometheus"
	"github.com/canonical/tenant-collector/internal/process"
	"github.com/canonical/tenant-collector/internal/storage"
	"github.com/canonical/tenant-collector/internal/tracing"
	"github.com/canonical/tenant-collector/internal/types"
	"github.com/canonical/tenant-collector/pkg/adapter"
	"github.com/canonical/tenant-collector/pkg/aws"
	"github.com/canonical/tenant-collector/pkg/azure"
	"github.com/canonical/tenant-collector/pkg/cache"
	"github.com/canonical/tenant-collector/pkg/gcp"
	"github.com/canonical/tenant-collector/pkg/tenant"
	"github.com/kelseyhightower/envconfig"
)

// app holds everything a command needs for one invocation.
type app struct {
	specs     *config.EnvSpec
	platforms []types.Platform
	service   tenant.ServiceInterface

	logger  *logging.Logger
	monitor *prometheus.Monitor
	tracer  *tracing.Tracer
}

func newApp() (*app, error) {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		return nil, fmt.Errorf("issues with environment sourcing: %w", err)
	}

	if cacheDir != "" {
		specs.CacheDir = cacheDir
	}

	names := specs.Platforms
	if len(platformNames) > 0 {
		names = platformNames
	}

	platforms, err := parsePlatforms(names)
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(specs.LogLevel, specs.LogFile)
	logger.Debugf("env vars: %v", specs)

	monitor := prometheus.NewMonitor("tenant-collector", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	runner := process.NewThrottledRunner(process.NewRunner(tracer, monitor, logger), specs.CLICallsPerSecond)

	adapters := make(map[types.Platform]tenant.MeshAdapterInterface, len(platforms))
	stores := make(map[types.Platform]tenant.StorageInterface, len(platforms))

	for _, platform := range platforms {
		store := storage.NewStorage(
			filepath.Join(specs.CacheDir, strings.ToLower(string(platform))),
			tracer, monitor, logger,
		)

		adapters[platform] = cache.NewCache(
			liveAdapter(platform, specs, runner, tracer, monitor, logger),
			store,
			platform,
			specs.MaxCacheAge(),
			tracer, monitor, logger,
		)
		stores[platform] = store
	}

	a := new(app)
	a.specs = specs
	a.platforms = platforms
	a.service = tenant.NewService(adapters, stores, tracer, monitor, logger)
	a.logger = logger
	a.monitor = monitor
	a.tracer = tracer

	return a, nil
}

func liveAdapter(platform types.Platform, specs *config.EnvSpec, runner process.RunnerInterface, tracer *tracing.Tracer, monitor *prometheus.Monitor, logger *logging.Logger) adapter.MeshAdapter {
	switch platform {
	case types.PlatformAWS:
		return aws.NewCLIAdapter(
			runner,
			aws.Config{
				Concurrency: specs.AWSConcurrency,
				RetryDelay:  specs.AWSRetryDelay,
				AccessRole:  specs.AWSAccessRole,
				Profile:     specs.AWSProfile,
				Currency:    specs.AWSCurrency,
			},
			tracer, monitor, logger,
		)
	case types.PlatformAzure:
		return azure.NewCLIAdapter(
			runner,
			azure.Config{
				Concurrency:           specs.AzureConcurrency,
				RetryDelay:            specs.AzureRetryDelay,
				AutoInstallExtensions: specs.AzureAutoInstallExtensions,
				Currency:              specs.AzureCurrency,
			},
			tracer, monitor, logger,
		)
	default:
		return gcp.NewCLIAdapter(
			runner,
			gcp.Config{
				Concurrency:        specs.GCPConcurrency,
				RetryDelay:         specs.GCPRetryDelay,
				BillingExportTable: specs.GCPBillingExportTable,
				Currency:           specs.GCPCurrency,
			},
			tracer, monitor, logger,
		)
	}
}

// run executes fn with a context cancelled on SIGINT/SIGTERM and flushes
// traces, metrics and logs afterwards.
func (a *app) run(fn func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := fn(ctx)

	if serr := a.tracer.Shutdown(context.Background()); serr != nil {
		a.logger.Errorf("failed to shutdown tracer: %v", serr)
	}

	if a.specs.MetricsFile != "" {
		if werr := a.monitor.WriteToFile(a.specs.MetricsFile); werr != nil {
			a.logger.Errorf("failed to write metrics to %s: %v", a.specs.MetricsFile, werr)
		}
	}

	a.logger.Sync()

	return err
}

func parsePlatforms(names []string) ([]types.Platform, error) {
	platforms := make([]types.Platform, 0, len(names))
	seen := make(map[types.Platform]bool, len(names))

	for _, name := range names {
		p, err := types.ParsePlatform(name)
		if err != nil {
			return nil, err
		}

		if seen[p] {
			continue
		}

		seen[p] = true
		platforms = append(platforms, p)
	}

	if len(platforms) == 0 {
		return nil, fmt.Errorf("no platform selected")
	}

	return platforms, nil
}
