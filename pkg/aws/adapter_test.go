// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package aws

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/tenant-collector/internal/assignment"
	"github.com/canonical/tenant-collector/internal/fetch"
	"github.com/canonical/tenant-collector/internal/logging"
	"github.com/canonical/tenant-collector/internal/monitoring"
	"github.com/canonical/tenant-collector/internal/process"
	"github.com/canonical/tenant-collector/internal/tracing"
	"github.com/canonical/tenant-collector/internal/types"
)

// fakeRunner answers aws invocations by "<service> <operation>".
type fakeRunner struct {
	mu       sync.Mutex
	handlers map[string]func(cmd process.Command) *process.Result
	calls    []process.Command
}

func (f *fakeRunner) Run(ctx context.Context, cmd process.Command) (*process.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	h, ok := f.handlers[cmd.Args[1]+" "+cmd.Args[2]]
	f.mu.Unlock()

	if !ok {
		return &process.Result{ExitCode: 255, Stderr: []byte("unexpected call " + cmd.String())}, nil
	}
	return h(cmd), nil
}

func (f *fakeRunner) called(op string) []process.Command {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []process.Command
	for _, c := range f.calls {
		if c.Args[1]+" "+c.Args[2] == op {
			out = append(out, c)
		}
	}
	return out
}

func respond(v any) func(process.Command) *process.Result {
	return func(process.Command) *process.Result {
		raw, _ := json.Marshal(v)
		return &process.Result{Stdout: raw}
	}
}

func fail(stderr string) func(process.Command) *process.Result {
	return func(process.Command) *process.Result {
		return &process.Result{ExitCode: 254, Stderr: []byte(stderr)}
	}
}

func flag(cmd process.Command, name string) string {
	return flagValue(cmd.Args, name)
}

func newTestAdapter(r *fakeRunner) *Adapter {
	if _, ok := r.handlers["sts get-caller-identity"]; !ok {
		r.handlers["sts get-caller-identity"] = respond(CallerIdentity{Account: "000000000000"})
	}
	return NewCLIAdapter(
		r,
		Config{Concurrency: 2, RetryDelay: time.Millisecond},
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor("test"),
		logging.NewNoopLogger(),
	)
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestGetMeshTenants(t *testing.T) {
	r := &fakeRunner{handlers: map[string]func(process.Command) *process.Result{
		"organizations list-accounts": func(cmd process.Command) *process.Result {
			if flag(cmd, "--starting-token") == "" {
				return respond(AccountsPage{
					Accounts:  []types.AWSAccount{{ID: "111111111111", Name: "one", Arn: "arn:aws:organizations::000000000000:account/o-x/111111111111"}},
					NextToken: "page2",
				})(cmd)
			}
			return respond(AccountsPage{Accounts: []types.AWSAccount{{ID: "222222222222", Name: "two"}}})(cmd)
		},
		"organizations list-tags-for-resource": func(cmd process.Command) *process.Result {
			if flag(cmd, "--resource-id") == "111111111111" {
				return respond(TagsPage{Tags: []Tag{{Key: "env", Value: "prod"}, {Key: "owner", Value: "alice"}}})(cmd)
			}
			return respond(TagsPage{})(cmd)
		},
	}}

	tenants, err := newTestAdapter(r).GetMeshTenants(context.Background())
	require.NoError(t, err)
	require.Len(t, tenants, 2)

	assert.Equal(t, "111111111111", tenants[0].PlatformTenantID)
	assert.Equal(t, "one", tenants[0].PlatformTenantName)
	assert.Equal(t, types.PlatformAWS, tenants[0].Platform)
	assert.Equal(t, []types.Tag{{Name: "env", Values: []string{"prod"}}, {Name: "owner", Values: []string{"alice"}}}, tenants[0].Tags)
	assert.Empty(t, tenants[1].Tags)

	acc, err := tenants[0].NativeObj.AWSAccount()
	require.NoError(t, err)
	assert.Equal(t, "one", acc.Name)

	assert.Len(t, r.called("organizations list-accounts"), 2)
	assert.Len(t, r.called("sts get-caller-identity"), 1)
}

func TestGetMeshTenantsRetriesThrottling(t *testing.T) {
	attempts := 0
	r := &fakeRunner{handlers: map[string]func(process.Command) *process.Result{
		"organizations list-accounts": func(cmd process.Command) *process.Result {
			attempts++
			if attempts == 1 {
				return fail("An error occurred (TooManyRequestsException) when calling the ListAccounts operation")(cmd)
			}
			return respond(AccountsPage{})(cmd)
		},
	}}

	tenants, err := newTestAdapter(r).GetMeshTenants(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tenants)
	assert.Equal(t, 2, attempts)
}

func TestNotLoggedIn(t *testing.T) {
	r := &fakeRunner{handlers: map[string]func(process.Command) *process.Result{
		"sts get-caller-identity": fail("Unable to locate credentials. You can configure credentials by running \"aws configure\"."),
	}}

	_, err := newTestAdapter(r).GetMeshTenants(context.Background())

	var fErr *fetch.Error
	require.True(t, errors.As(err, &fErr))
	assert.Equal(t, fetch.KindNotLoggedIn, fErr.Kind)
	assert.Contains(t, fErr.Remedy, "aws sso login")
}

func TestAttachTenantCosts(t *testing.T) {
	r := &fakeRunner{handlers: map[string]func(process.Command) *process.Result{
		"ce get-cost-and-usage": func(cmd process.Command) *process.Result {
			march := ResultByTime{Groups: []CostGroup{
				{Keys: []string{"111111111111", "Amazon EC2"}, Metrics: map[string]Amount{costMetric: {Amount: "1.25", Unit: "USD"}}},
				{Keys: []string{"111111111111", "Amazon S3"}, Metrics: map[string]Amount{costMetric: {Amount: "2.25", Unit: "USD"}}},
			}}
			march.TimePeriod.Start, march.TimePeriod.End = "2021-03-01", "2021-04-01"

			april := ResultByTime{Groups: []CostGroup{
				{Keys: []string{"111111111111", "Amazon EC2"}, Metrics: map[string]Amount{costMetric: {Amount: "4", Unit: "USD"}}},
			}}
			april.TimePeriod.Start, april.TimePeriod.End = "2021-04-01", "2021-04-16"

			if flag(cmd, "--next-page-token") == "" {
				return respond(CostAndUsagePage{ResultsByTime: []ResultByTime{march}, NextPageToken: "next"})(cmd)
			}
			return respond(CostAndUsagePage{ResultsByTime: []ResultByTime{april}})(cmd)
		},
	}}

	tenants := []*types.Tenant{
		{PlatformTenantID: "111111111111", Platform: types.PlatformAWS},
		{PlatformTenantID: "222222222222", Platform: types.PlatformAWS},
	}

	err := newTestAdapter(r).AttachTenantCosts(context.Background(), tenants, date("2021-03-01"), date("2021-04-15"))
	require.NoError(t, err)

	calls := r.called("ce get-cost-and-usage")
	require.Len(t, calls, 2)
	assert.Equal(t, "Start=2021-03-01,End=2021-04-16", flag(calls[0], "--time-period"))

	require.Len(t, tenants[0].Costs, 2)
	assert.Equal(t, "3.5", tenants[0].Costs[0].Cost)
	assert.Equal(t, "2021-03-31", tenants[0].Costs[0].To)
	assert.Len(t, tenants[0].Costs[0].Details, 2)
	assert.Equal(t, "4", tenants[0].Costs[1].Cost)
	assert.Equal(t, "2021-04-15", tenants[0].Costs[1].To)

	require.Len(t, tenants[1].Costs, 2)
	assert.Equal(t, "0", tenants[1].Costs[0].Cost)
	assert.Equal(t, "USD", tenants[1].Costs[0].Currency)
}

func TestAttachTenantRoleAssignments(t *testing.T) {
	r := &fakeRunner{handlers: map[string]func(process.Command) *process.Result{
		"sts assume-role": respond(map[string]any{"Credentials": map[string]string{
			"AccessKeyId": "AKIA", "SecretAccessKey": "secret", "SessionToken": "token", "Expiration": "2030-01-01T00:00:00Z",
		}}),
		"iam list-users": respond(map[string]any{"Users": []User{
			{UserID: "AIDA1", UserName: "alice", Arn: "arn:aws:iam::111111111111:user/alice"},
		}}),
		"iam list-attached-user-policies": respond(map[string]any{"AttachedPolicies": []AttachedPolicy{
			{PolicyName: "AdministratorAccess", PolicyArn: "arn:aws:iam::aws:policy/AdministratorAccess"},
		}}),
		"iam list-groups": respond(map[string]any{"Groups": []Group{
			{GroupID: "AGPA1", GroupName: "devs", Arn: "arn:aws:iam::111111111111:group/devs"},
		}}),
		"iam list-attached-group-policies": respond(map[string]any{"AttachedPolicies": []AttachedPolicy{
			{PolicyName: "ReadOnlyAccess", PolicyArn: "arn:aws:iam::aws:policy/ReadOnlyAccess"},
		}}),
	}}

	tenant := &types.Tenant{PlatformTenantID: "111111111111", Platform: types.PlatformAWS}

	err := newTestAdapter(r).AttachTenantRoleAssignments(context.Background(), []*types.Tenant{tenant})
	require.NoError(t, err)

	assert.Equal(t, []types.RoleAssignment{
		{
			PrincipalID: "AIDA1", PrincipalName: "alice", PrincipalType: types.PrincipalUser,
			RoleID: "arn:aws:iam::aws:policy/AdministratorAccess", RoleName: "AdministratorAccess",
			AssignmentSource: types.SourceTenant, AssignmentID: "111111111111",
		},
		{
			PrincipalID: "AGPA1", PrincipalName: "devs", PrincipalType: types.PrincipalGroup,
			RoleID: "arn:aws:iam::aws:policy/ReadOnlyAccess", RoleName: "ReadOnlyAccess",
			AssignmentSource: types.SourceTenant, AssignmentID: "111111111111",
		},
	}, tenant.RoleAssignments)

	assume := r.called("sts assume-role")
	require.Len(t, assume, 1)
	assert.Equal(t, "arn:aws:iam::111111111111:role/OrganizationAccountAccessRole", flag(assume[0], "--role-arn"))

	users := r.called("iam list-users")
	require.Len(t, users, 1)
	assert.Equal(t, "AKIA", users[0].Env["AWS_ACCESS_KEY_ID"])
	assert.Equal(t, "token", users[0].Env["AWS_SESSION_TOKEN"])
}

func TestAttachTenantRoleAssignmentsForeignPrincipal(t *testing.T) {
	r := &fakeRunner{handlers: map[string]func(process.Command) *process.Result{
		"sts assume-role": respond(map[string]any{"Credentials": map[string]string{"AccessKeyId": "AKIA"}}),
		"iam list-users": respond(map[string]any{"Users": []User{
			{UserID: "AIDA1", UserName: "alice", Arn: "arn:aws:iam::999999999999:user/alice"},
		}}),
		"iam list-attached-user-policies": respond(map[string]any{"AttachedPolicies": []AttachedPolicy{}}),
	}}

	tenant := &types.Tenant{PlatformTenantID: "111111111111", Platform: types.PlatformAWS}

	err := newTestAdapter(r).AttachTenantRoleAssignments(context.Background(), []*types.Tenant{tenant})
	assert.True(t, errors.Is(err, assignment.ErrUnknownScope))
}

func TestAttachTenantRoleAssignmentsMissingRole(t *testing.T) {
	r := &fakeRunner{handlers: map[string]func(process.Command) *process.Result{
		"sts assume-role": fail("An error occurred (AccessDenied) when calling the AssumeRole operation: User is not authorized to perform: sts:AssumeRole"),
	}}

	tenant := &types.Tenant{PlatformTenantID: "111111111111", Platform: types.PlatformAWS}

	err := newTestAdapter(r).AttachTenantRoleAssignments(context.Background(), []*types.Tenant{tenant})

	var fErr *fetch.Error
	require.True(t, errors.As(err, &fErr))
	assert.Equal(t, fetch.KindMissingRole, fErr.Kind)
	assert.Equal(t, "arn:aws:iam::111111111111:role/OrganizationAccountAccessRole", fErr.Subject)
	assert.Contains(t, fErr.Remedy, "OrganizationAccountAccessRole")
	assert.Len(t, r.called("sts assume-role"), 1)
}

func TestUpdateMeshTenant(t *testing.T) {
	r := &fakeRunner{handlers: map[string]func(process.Command) *process.Result{
		"organizations tag-resource": respond(nil),
	}}
	a := newTestAdapter(r)

	original := &types.Tenant{
		PlatformTenantID: "111111111111",
		Tags:             []types.Tag{{Name: "env", Values: []string{"dev"}}, {Name: "owner", Values: []string{"alice"}}},
	}

	require.NoError(t, a.UpdateMeshTenant(context.Background(), original.Clone(), original))
	assert.Empty(t, r.called("organizations tag-resource"))

	updated := original.Clone()
	updated.Tags[0].Values = []string{"prod", "staging"}
	require.NoError(t, a.UpdateMeshTenant(context.Background(), updated, original))

	calls := r.called("organizations tag-resource")
	require.Len(t, calls, 1)
	assert.Equal(t, "111111111111", flag(calls[0], "--resource-id"))

	var sent []Tag
	require.NoError(t, json.Unmarshal([]byte(flag(calls[0], "--tags")), &sent))
	assert.Equal(t, []Tag{{Key: "env", Value: "prod,staging"}}, sent)
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		stderr   string
		args     []string
		expected fetch.Kind
	}{
		{stderr: "ThrottlingException: Rate exceeded", expected: fetch.KindRateLimited},
		{stderr: "Error when retrieving token from sso: Token has expired and refresh failed", expected: fetch.KindNotLoggedIn},
		{stderr: "An error occurred (AccessDeniedException)", expected: fetch.KindUnauthorized},
		{stderr: "An error occurred (AccessDenied)", args: []string{"aws", "sts", "assume-role", "--role-arn", "r"}, expected: fetch.KindMissingRole},
	}

	for _, tc := range testCases {
		t.Run(string(tc.expected), func(t *testing.T) {
			args := tc.args
			if args == nil {
				args = []string{"aws", "organizations", "list-accounts"}
			}
			err := classify(process.Command{Args: args}, &process.Result{ExitCode: 254, Stderr: []byte(tc.stderr)})
			assert.True(t, fetch.IsKind(err, tc.expected), "got %v", err)
		})
	}

	err := classify(process.Command{Args: []string{"aws", "ce"}}, &process.Result{ExitCode: 1, Stderr: []byte("something else")})
	assert.True(t, strings.Contains(err.Error(), "something else"))
}
