// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package aws

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
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

const (
	costMetric  = "UnblendedCost"
	sessionName = "tenant-collector"
	tagValueSep = ","
)

// IAM principals always live in the account itself.
var scopes = assignment.NewClassifier(
	assignment.Rule{Source: types.SourceTenant, Match: assignment.Pattern(`^arn:aws[a-z-]*:iam::(\d{12}):`)},
)

var _ adapter.MeshAdapter = (*Adapter)(nil)

// Adapter exposes the accounts of an AWS organization as tenants.
type Adapter struct {
	cli CLIInterface
	cfg Config

	loginOnce sync.Once
	loginErr  error

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *Adapter) GetMeshTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := a.tracer.Start(ctx, "aws.Adapter.GetMeshTenants")
	defer span.End()

	if err := a.checkLogin(ctx); err != nil {
		return nil, err
	}

	accounts, err := fetch.Paginate(ctx, func(ctx context.Context, token string) ([]types.AWSAccount, string, error) {
		page, err := a.cli.ListAccounts(ctx, token)
		if err != nil {
			return nil, "", err
		}
		return page.Accounts, page.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	return fetch.MapConcurrent(ctx, accounts, a.cfg.Concurrency, func(ctx context.Context, acc types.AWSAccount) (*types.Tenant, error) {
		tags, err := fetch.Paginate(ctx, func(ctx context.Context, token string) ([]Tag, string, error) {
			page, err := a.cli.ListTagsForResource(ctx, acc.ID, token)
			if err != nil {
				return nil, "", err
			}
			return page.Tags, page.NextToken, nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list tags of account %s: %w", acc.ID, err)
		}

		return &types.Tenant{
			PlatformTenantID:   acc.ID,
			PlatformTenantName: acc.Name,
			Platform:           types.PlatformAWS,
			Tags:               toTags(tags),
			Costs:              []types.Cost{},
			RoleAssignments:    []types.RoleAssignment{},
			NativeObj:          types.NewAWSNativeObj(&acc),
		}, nil
	})
}

// AttachTenantCosts fetches monthly costs per linked account and service for [from, to].
func (a *Adapter) AttachTenantCosts(ctx context.Context, tenants []*types.Tenant, from, to time.Time) error {
	ctx, span := a.tracer.Start(ctx, "aws.Adapter.AttachTenantCosts")
	defer span.End()

	if err := a.checkLogin(ctx); err != nil {
		return err
	}

	ws, err := windows.Monthly(from, to)
	if err != nil {
		return err
	}

	// cost explorer treats End as exclusive
	start, end := ws[0].FromString(), windows.Day(to).AddDate(0, 0, 1).Format(windows.DateLayout)

	results, err := fetch.Paginate(ctx, func(ctx context.Context, token string) ([]ResultByTime, string, error) {
		page, err := a.cli.GetCostAndUsage(ctx, start, end, token)
		if err != nil {
			return nil, "", err
		}
		return page.ResultsByTime, page.NextPageToken, nil
	})
	if err != nil {
		return fmt.Errorf("failed to get cost and usage: %w", err)
	}

	// window start -> account -> details
	details := make(map[string]map[string][]types.CostDetail)
	for _, r := range results {
		for _, g := range r.Groups {
			if len(g.Keys) == 0 {
				continue
			}
			amount := g.Metrics[costMetric]
			d := types.CostDetail{Cost: amount.Amount, Currency: amount.Unit}
			if len(g.Keys) > 1 {
				d.Service = g.Keys[1]
			}
			if details[r.TimePeriod.Start] == nil {
				details[r.TimePeriod.Start] = make(map[string][]types.CostDetail)
			}
			details[r.TimePeriod.Start][g.Keys[0]] = append(details[r.TimePeriod.Start][g.Keys[0]], d)
		}
	}

	for _, t := range tenants {
		costs := make([]types.Cost, 0, len(ws))
		currency := a.currency(t, ws, details)

		for _, w := range ws {
			ds, ok := details[w.FromString()][t.PlatformTenantID]
			if !ok {
				costs = append(costs, adapter.ZeroCost(w, currency))
				continue
			}
			c, err := adapter.NewCost(w, currency, ds)
			if err != nil {
				return fmt.Errorf("account %s: %w", t.PlatformTenantID, err)
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

func (a *Adapter) currency(t *types.Tenant, ws []windows.Window, details map[string]map[string][]types.CostDetail) string {
	for _, w := range ws {
		for _, d := range details[w.FromString()][t.PlatformTenantID] {
			if d.Currency != "" {
				return d.Currency
			}
		}
	}
	return adapter.Currency(t, a.cfg.Currency)
}

// AttachTenantRoleAssignments assumes the access role in every account and reports the
// managed policies attached to its IAM users and groups.
func (a *Adapter) AttachTenantRoleAssignments(ctx context.Context, tenants []*types.Tenant) error {
	ctx, span := a.tracer.Start(ctx, "aws.Adapter.AttachTenantRoleAssignments")
	defer span.End()

	if err := a.checkLogin(ctx); err != nil {
		return err
	}

	return fetch.ForEachConcurrent(ctx, tenants, a.cfg.Concurrency, func(ctx context.Context, t *types.Tenant) error {
		ras, err := a.roleAssignments(ctx, t)
		if err != nil {
			return fmt.Errorf("account %s: %w", t.PlatformTenantID, err)
		}
		t.RoleAssignments = ras
		return nil
	})
}

func (a *Adapter) roleAssignments(ctx context.Context, t *types.Tenant) ([]types.RoleAssignment, error) {
	roleArn := a.accessRoleArn(t)

	creds, err := a.cli.AssumeRole(ctx, roleArn, sessionName)
	if err != nil {
		var fErr *fetch.Error
		if errors.As(err, &fErr) && fErr.Kind == fetch.KindMissingRole {
			missing := *fErr
			missing.Subject = roleArn
			missing.Remedy = fmt.Sprintf("Create the role %s in account %s and allow the management account to assume it.", a.cfg.AccessRole, t.PlatformTenantID)
			return nil, &missing
		}
		return nil, err
	}

	ras := []types.RoleAssignment{}

	users, err := a.cli.ListUsers(ctx, creds)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		policies, err := a.cli.ListAttachedUserPolicies(ctx, creds, u.UserName)
		if err != nil {
			return nil, err
		}
		more, err := a.principalAssignments(t, u.Arn, u.UserID, u.UserName, types.PrincipalUser, policies)
		if err != nil {
			return nil, err
		}
		ras = append(ras, more...)
	}

	groups, err := a.cli.ListGroups(ctx, creds)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		policies, err := a.cli.ListAttachedGroupPolicies(ctx, creds, g.GroupName)
		if err != nil {
			return nil, err
		}
		more, err := a.principalAssignments(t, g.Arn, g.GroupID, g.GroupName, types.PrincipalGroup, policies)
		if err != nil {
			return nil, err
		}
		ras = append(ras, more...)
	}

	return ras, nil
}

func (a *Adapter) principalAssignments(t *types.Tenant, principalArn, id, name string, kind types.PrincipalType, policies []AttachedPolicy) ([]types.RoleAssignment, error) {
	source, scopeID, err := scopes.Classify(principalArn)
	if err != nil {
		return nil, err
	}
	if scopeID != t.PlatformTenantID {
		return nil, fmt.Errorf("%w: %s does not belong to account %s", assignment.ErrUnknownScope, principalArn, t.PlatformTenantID)
	}

	return lo.Map(policies, func(p AttachedPolicy, _ int) types.RoleAssignment {
		return types.RoleAssignment{
			PrincipalID:      id,
			PrincipalName:    name,
			PrincipalType:    kind,
			RoleID:           p.PolicyArn,
			RoleName:         p.PolicyName,
			AssignmentSource: source,
			AssignmentID:     scopeID,
		}
	}), nil
}

// accessRoleArn builds the role ARN in the partition of the account.
func (a *Adapter) accessRoleArn(t *types.Tenant) string {
	partition := "aws"
	if acc, err := t.NativeObj.AWSAccount(); err == nil {
		if parsed, err := arn.Parse(acc.Arn); err == nil {
			partition = parsed.Partition
		}
	}

	return arn.ARN{
		Partition: partition,
		Service:   "iam",
		AccountID: t.PlatformTenantID,
		Resource:  "role/" + a.cfg.AccessRole,
	}.String()
}

// UpdateMeshTenant pushes added or changed tags to the account. Multiple values are comma joined.
func (a *Adapter) UpdateMeshTenant(ctx context.Context, updated, original *types.Tenant) error {
	ctx, span := a.tracer.Start(ctx, "aws.Adapter.UpdateMeshTenant")
	defer span.End()

	delta := adapter.TagDelta(updated.Tags, original.Tags)
	if len(delta) == 0 {
		return nil
	}

	if err := a.checkLogin(ctx); err != nil {
		return err
	}

	tags := lo.Map(delta, func(t types.Tag, _ int) Tag {
		return Tag{Key: t.Name, Value: strings.Join(t.Values, tagValueSep)}
	})
	if err := a.cli.TagResource(ctx, updated.PlatformTenantID, tags); err != nil {
		return fmt.Errorf("failed to tag account %s: %w", updated.PlatformTenantID, err)
	}

	a.logger.Audit().TagsUpdated(string(types.PlatformAWS), updated.PlatformTenantID, (&types.Tenant{Tags: delta}).TagMap())
	return nil
}

func (a *Adapter) checkLogin(ctx context.Context) error {
	a.loginOnce.Do(func() {
		_, a.loginErr = a.cli.GetCallerIdentity(ctx)

		available := 1.0
		if a.loginErr != nil {
			available = 0
		}
		a.monitor.SetDependencyAvailability(map[string]string{"platform": "aws"}, available)
	})
	return a.loginErr
}

func toTags(tags []Tag) []types.Tag {
	return adapter.TagsFromMap(lo.SliceToMap(tags, func(t Tag) (string, string) {
		return t.Key, t.Value
	}))
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

// NewCLIAdapter wires the aws command line tool through runner, retrying throttled calls
// once after cfg.RetryDelay.
func NewCLIAdapter(runner process.RunnerInterface, cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Adapter {
	cfg = cfg.withDefaults()

	executor := process.NewRetryingExecutor(
		process.NewExecutor(runner, classify),
		fetch.RetryPolicy{Delay: cfg.RetryDelay},
		logger,
	)

	return NewAdapter(NewCLI(executor, cfg.Profile, logger), cfg, tracer, monitor, logger)
}
