// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package azure

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/canonical/tenant-collector/internal/assignment"
	"github.com/canonical/tenant-collector/internal/fetch"
	"github.com/canonical/tenant-collector/internal/logging"
	"github.com/canonical/tenant-collector/internal/monitoring"
	"github.com/canonical/tenant-collector/internal/process"
	"github.com/canonical/tenant-collector/internal/tracing"
	"github.com/canonical/tenant-collector/internal/types"
	"github.com/canonical/tenant-collector/internal/windows"
	"github.com/canonical/tenant-collector/pkg/adapter"
)

const tagValueSep = ","

var (
	scopes = assignment.NewClassifier(
		assignment.Rule{Source: types.SourceOrganization, Match: assignment.Exact("/")},
		assignment.Rule{Source: types.SourceAncestor, Match: assignment.Pattern(`^/providers/Microsoft\.Management/managementGroups/([^/]+)$`)},
		assignment.Rule{Source: types.SourceTenant, Match: assignment.Pattern(`^/subscriptions/([^/]+)$`)},
	)

	principalTypes = assignment.PrincipalTypes{
		"User":             types.PrincipalUser,
		"Group":            types.PrincipalGroup,
		"ForeignGroup":     types.PrincipalGroup,
		"ServicePrincipal": types.PrincipalTechnicalUser,
		"Unknown":          types.PrincipalOrphan,
	}
)

var _ adapter.MeshAdapter = (*Adapter)(nil)

// Adapter exposes the subscriptions visible to the signed in az user as tenants.
type Adapter struct {
	cli CLIInterface
	cfg Config
	now func() time.Time

	loginOnce sync.Once
	loginErr  error

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *Adapter) GetMeshTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := a.tracer.Start(ctx, "azure.Adapter.GetMeshTenants")
	defer span.End()

	if err := a.checkLogin(ctx); err != nil {
		return nil, err
	}

	subs, err := a.cli.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return fetch.MapConcurrent(ctx, subs, a.cfg.Concurrency, func(ctx context.Context, sub types.AzureSubscription) (*types.Tenant, error) {
		tags, err := a.cli.ListTags(ctx, sub.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list tags of subscription %s: %w", sub.ID, err)
		}

		return &types.Tenant{
			PlatformTenantID:   sub.ID,
			PlatformTenantName: sub.Name,
			Platform:           types.PlatformAzure,
			Tags:               adapter.TagsFromMap(tags),
			Costs:              []types.Cost{},
			RoleAssignments:    []types.RoleAssignment{},
			NativeObj:          types.NewAzureNativeObj(&sub),
		}, nil
	})
}

// AttachTenantCosts records one cost per subscription covering [from, to], clipped to today
// since cost management has no data for the future.
func (a *Adapter) AttachTenantCosts(ctx context.Context, tenants []*types.Tenant, from, to time.Time) error {
	ctx, span := a.tracer.Start(ctx, "azure.Adapter.AttachTenantCosts")
	defer span.End()

	if err := a.checkLogin(ctx); err != nil {
		return err
	}

	w := windows.Window{From: windows.Day(from), To: windows.Clip(windows.Day(to), windows.Day(a.now()))}
	if w.To.Before(w.From) {
		return fmt.Errorf("invalid range: %s is after %s", w.FromString(), w.ToString())
	}

	return fetch.ForEachConcurrent(ctx, tenants, a.cfg.Concurrency, func(ctx context.Context, t *types.Tenant) error {
		res, err := a.cli.QueryCosts(ctx, t.PlatformTenantID, w.FromString(), w.ToString())
		if err != nil {
			return fmt.Errorf("failed to query costs of subscription %s: %w", t.PlatformTenantID, err)
		}

		rows, err := res.ServiceCosts()
		if err != nil {
			return fmt.Errorf("subscription %s: %w", t.PlatformTenantID, err)
		}

		cost := adapter.ZeroCost(w, adapter.Currency(t, a.cfg.Currency))
		if len(rows) > 0 {
			currency := lo.FindOrElse(rows, ServiceCost{Currency: adapter.Currency(t, a.cfg.Currency)}, func(r ServiceCost) bool {
				return r.Currency != ""
			}).Currency

			details := lo.Map(rows, func(r ServiceCost, _ int) types.CostDetail {
				return types.CostDetail{Service: r.Service, Cost: r.Cost, Currency: r.Currency}
			})
			if cost, err = adapter.NewCost(w, currency, details); err != nil {
				return fmt.Errorf("subscription %s: %w", t.PlatformTenantID, err)
			}
		}

		t.Costs = adapter.MergeCosts(t.Costs, []types.Cost{cost})
		return adapter.CheckCurrency(t)
	})
}

func (a *Adapter) AttachTenantRoleAssignments(ctx context.Context, tenants []*types.Tenant) error {
	ctx, span := a.tracer.Start(ctx, "azure.Adapter.AttachTenantRoleAssignments")
	defer span.End()

	if err := a.checkLogin(ctx); err != nil {
		return err
	}

	return fetch.ForEachConcurrent(ctx, tenants, a.cfg.Concurrency, func(ctx context.Context, t *types.Tenant) error {
		raw, err := a.cli.ListRoleAssignments(ctx, t.PlatformTenantID)
		if err != nil {
			return fmt.Errorf("failed to list role assignments of subscription %s: %w", t.PlatformTenantID, err)
		}

		ras := make([]types.RoleAssignment, 0, len(raw))
		for _, r := range raw {
			ra, err := toRoleAssignment(t, r)
			if err != nil {
				return fmt.Errorf("subscription %s: %w", t.PlatformTenantID, err)
			}
			ras = append(ras, ra)
		}
		t.RoleAssignments = ras
		return nil
	})
}

func toRoleAssignment(t *types.Tenant, r RoleAssignment) (types.RoleAssignment, error) {
	principalType, err := principalTypes.Resolve(r.PrincipalType)
	if err != nil {
		return types.RoleAssignment{}, err
	}

	source, id, err := scopes.Classify(r.Scope)
	if err != nil {
		return types.RoleAssignment{}, err
	}
	if source == types.SourceTenant && id != t.PlatformTenantID {
		return types.RoleAssignment{}, fmt.Errorf("%w: %s is not subscription %s", assignment.ErrUnknownScope, r.Scope, t.PlatformTenantID)
	}

	return types.RoleAssignment{
		PrincipalID:      r.PrincipalID,
		PrincipalName:    r.PrincipalName,
		PrincipalType:    principalType,
		RoleID:           r.RoleDefinitionID,
		RoleName:         r.RoleDefinitionName,
		AssignmentSource: source,
		AssignmentID:     id,
	}, nil
}

// UpdateMeshTenant merges added or changed tags into the subscription tags.
func (a *Adapter) UpdateMeshTenant(ctx context.Context, updated, original *types.Tenant) error {
	ctx, span := a.tracer.Start(ctx, "azure.Adapter.UpdateMeshTenant")
	defer span.End()

	delta := adapter.TagDelta(updated.Tags, original.Tags)
	if len(delta) == 0 {
		return nil
	}

	if err := a.checkLogin(ctx); err != nil {
		return err
	}

	if err := a.cli.UpdateTags(ctx, updated.PlatformTenantID, adapter.TagsToMap(delta, tagValueSep)); err != nil {
		return fmt.Errorf("failed to tag subscription %s: %w", updated.PlatformTenantID, err)
	}

	a.logger.Audit().TagsUpdated(string(types.PlatformAzure), updated.PlatformTenantID, (&types.Tenant{Tags: delta}).TagMap())
	return nil
}

func (a *Adapter) checkLogin(ctx context.Context) error {
	a.loginOnce.Do(func() {
		_, a.loginErr = a.cli.ShowAccount(ctx)

		available := 1.0
		if a.loginErr != nil {
			available = 0
		}
		a.monitor.SetDependencyAvailability(map[string]string{"platform": "azure"}, available)
	})
	return a.loginErr
}

func NewAdapter(cli CLIInterface, cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Adapter {
	a := new(Adapter)
	a.cli = cli
	a.cfg = cfg.withDefaults()
	a.now = time.Now
	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger
	return a
}

// NewCLIAdapter wires the az command line tool through runner. Rate limited and transient
// failures are retried once, missing extensions are installed when cfg allows it.
func NewCLIAdapter(runner process.RunnerInterface, cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Adapter {
	cfg = cfg.withDefaults()

	executor := process.NewRetryingExecutor(
		NewExtensionInstaller(process.NewExecutor(runner, classify), cfg.AutoInstallExtensions, logger),
		fetch.RetryPolicy{Delay: cfg.RetryDelay},
		logger,
	)

	return NewAdapter(NewCLI(executor, logger), cfg, tracer, monitor, logger)
}
