// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gcp

import (
	"context"
	"fmt"
	"strings"
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

const projectPageSize = 100

var (
	scopes = assignment.NewClassifier(
		assignment.Rule{Source: types.SourceOrganization, Match: assignment.Pattern(`^organizations/\d+$`)},
		assignment.Rule{Source: types.SourceAncestor, Match: assignment.Pattern(`^folders/(\d+)$`)},
		assignment.Rule{Source: types.SourceTenant, Match: assignment.Pattern(`^projects/([a-z][a-z0-9-]+)$`)},
	)

	// keyed by the member prefix, e.g. user in user:alice@example.com
	principalTypes = assignment.PrincipalTypes{
		"user":           types.PrincipalUser,
		"group":          types.PrincipalGroup,
		"serviceAccount": types.PrincipalTechnicalUser,
		"domain":         types.PrincipalDomain,
		"deleted":        types.PrincipalOrphan,
	}
)

var _ adapter.MeshAdapter = (*Adapter)(nil)

// Adapter exposes the projects visible to the active gcloud account as tenants.
type Adapter struct {
	cli CLIInterface
	cfg Config

	loginOnce sync.Once
	loginErr  error

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// GetMeshTenants pages through projects by id. Project labels become tags.
func (a *Adapter) GetMeshTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := a.tracer.Start(ctx, "gcp.Adapter.GetMeshTenants")
	defer span.End()

	if err := a.checkLogin(ctx); err != nil {
		return nil, err
	}

	projects, err := fetch.Paginate(ctx, func(ctx context.Context, after string) ([]types.GCPProject, string, error) {
		page, err := a.cli.ListProjects(ctx, after, projectPageSize)
		if err != nil {
			return nil, "", err
		}
		if len(page) < projectPageSize {
			return page, "", nil
		}
		return page, page[len(page)-1].ProjectID, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return lo.Map(projects, func(p types.GCPProject, _ int) *types.Tenant {
		return &types.Tenant{
			PlatformTenantID:   p.ProjectID,
			PlatformTenantName: p.Name,
			Platform:           types.PlatformGCP,
			Tags:               adapter.TagsFromMap(p.Labels),
			Costs:              []types.Cost{},
			RoleAssignments:    []types.RoleAssignment{},
			NativeObj:          types.NewGCPNativeObj(&p),
		}
	}), nil
}

// AttachTenantCosts reads monthly costs per service from the billing export.
func (a *Adapter) AttachTenantCosts(ctx context.Context, tenants []*types.Tenant, from, to time.Time) error {
	ctx, span := a.tracer.Start(ctx, "gcp.Adapter.AttachTenantCosts")
	defer span.End()

	if err := a.checkLogin(ctx); err != nil {
		return err
	}

	ws, err := windows.Monthly(from, to)
	if err != nil {
		return err
	}

	rows, err := a.cli.QueryBilling(ctx, a.cfg.BillingExportTable, ws[0].FromString(), ws[len(ws)-1].ToString())
	if err != nil {
		return fmt.Errorf("failed to query billing export: %w", err)
	}

	// project -> month -> rows
	byProject := make(map[string]map[string][]BillingRow)
	for _, r := range rows {
		if byProject[r.ProjectID] == nil {
			byProject[r.ProjectID] = make(map[string][]BillingRow)
		}
		byProject[r.ProjectID][r.Month] = append(byProject[r.ProjectID][r.Month], r)
	}

	for _, t := range tenants {
		months := byProject[t.PlatformTenantID]
		currency := adapter.Currency(t, a.cfg.Currency)
		for _, r := range lo.Flatten(lo.Values(months)) {
			if r.Currency != "" {
				currency = r.Currency
				break
			}
		}

		costs := make([]types.Cost, 0, len(ws))
		for _, w := range ws {
			rs, ok := months[w.Month()]
			if !ok {
				costs = append(costs, adapter.ZeroCost(w, currency))
				continue
			}

			details := lo.Map(rs, func(r BillingRow, _ int) types.CostDetail {
				return types.CostDetail{Service: r.Service, Cost: r.Cost, Currency: r.Currency}
			})
			c, err := adapter.NewCost(w, currency, details)
			if err != nil {
				return fmt.Errorf("project %s: %w", t.PlatformTenantID, err)
			}
			costs = append(costs, c)
		}

		t.Costs = adapter.MergeCosts(t.Costs, costs)
		if err := adapter.CheckCurrency(t); err != nil {
			return err
		}
	}

	return nil
}

// AttachTenantRoleAssignments reports the bindings of the project and everything it inherits.
func (a *Adapter) AttachTenantRoleAssignments(ctx context.Context, tenants []*types.Tenant) error {
	ctx, span := a.tracer.Start(ctx, "gcp.Adapter.AttachTenantRoleAssignments")
	defer span.End()

	if err := a.checkLogin(ctx); err != nil {
		return err
	}

	return fetch.ForEachConcurrent(ctx, tenants, a.cfg.Concurrency, func(ctx context.Context, t *types.Tenant) error {
		policies, err := a.cli.GetAncestorsIAMPolicy(ctx, t.PlatformTenantID)
		if err != nil {
			return fmt.Errorf("failed to get iam policies of project %s: %w", t.PlatformTenantID, err)
		}

		ras := []types.RoleAssignment{}
		for _, p := range policies {
			source, id, err := scopes.Classify(p.Scope())
			if err != nil {
				return fmt.Errorf("project %s: %w", t.PlatformTenantID, err)
			}
			if source == types.SourceTenant && id != t.PlatformTenantID {
				return fmt.Errorf("%w: %s is not project %s", assignment.ErrUnknownScope, p.Scope(), t.PlatformTenantID)
			}

			for _, b := range p.Policy.Bindings {
				for _, m := range b.Members {
					ra, err := toRoleAssignment(m, b.Role, source, id)
					if err != nil {
						return fmt.Errorf("project %s: %w", t.PlatformTenantID, err)
					}
					ras = append(ras, ra)
				}
			}
		}

		t.RoleAssignments = ras
		return nil
	})
}

func toRoleAssignment(member, role string, source types.AssignmentSource, id string) (types.RoleAssignment, error) {
	kind, principal, _ := strings.Cut(member, ":")

	principalType, err := principalTypes.Resolve(kind)
	if err != nil {
		return types.RoleAssignment{}, err
	}

	// deleted:user:alice@example.com?uid=123
	if principalType == types.PrincipalOrphan {
		_, principal, _ = strings.Cut(principal, ":")
		principal, _, _ = strings.Cut(principal, "?")
	}

	return types.RoleAssignment{
		PrincipalID:      principal,
		PrincipalName:    principal,
		PrincipalType:    principalType,
		RoleID:           role,
		RoleName:         strings.TrimPrefix(role, "roles/"),
		AssignmentSource: source,
		AssignmentID:     id,
	}, nil
}

// UpdateMeshTenant updates the labels whose value was added or changed.
func (a *Adapter) UpdateMeshTenant(ctx context.Context, updated, original *types.Tenant) error {
	ctx, span := a.tracer.Start(ctx, "gcp.Adapter.UpdateMeshTenant")
	defer span.End()

	delta := adapter.TagDelta(updated.Tags, original.Tags)
	if len(delta) == 0 {
		return nil
	}

	labels, err := toLabels(delta)
	if err != nil {
		return err
	}

	if err := a.checkLogin(ctx); err != nil {
		return err
	}

	if err := a.cli.UpdateLabels(ctx, updated.PlatformTenantID, labels); err != nil {
		return fmt.Errorf("failed to label project %s: %w", updated.PlatformTenantID, err)
	}

	a.logger.Audit().TagsUpdated(string(types.PlatformGCP), updated.PlatformTenantID, (&types.Tenant{Tags: delta}).TagMap())
	return nil
}

func (a *Adapter) checkLogin(ctx context.Context) error {
	a.loginOnce.Do(func() {
		accounts, err := a.cli.ListActiveAccounts(ctx)
		if err == nil && len(accounts) == 0 {
			err = &fetch.Error{Kind: fetch.KindNotLoggedIn, Remedy: loginRemedy, Err: fmt.Errorf("no active gcloud account")}
		}
		a.loginErr = err

		available := 1.0
		if err != nil {
			available = 0
		}
		a.monitor.SetDependencyAvailability(map[string]string{"platform": "gcp"}, available)
	})
	return a.loginErr
}

func NewAdapter(cli CLIInterface, cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Adapter {
	a := new(Adapter)
	a.cli = cli
	a.cfg = cfg.withDefaults()
	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger
	return a
}

// NewCLIAdapter wires gcloud and bq through runner, retrying quota and transient errors once.
func NewCLIAdapter(runner process.RunnerInterface, cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Adapter {
	cfg = cfg.withDefaults()

	executor := process.NewRetryingExecutor(
		process.NewExecutor(runner, classify),
		fetch.RetryPolicy{Delay: cfg.RetryDelay},
		logger,
	)

	return NewAdapter(NewCLI(executor, logger), cfg, tracer, monitor, logger)
}
