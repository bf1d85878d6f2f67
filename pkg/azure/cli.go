// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/canonical/tenant-collector/internal/logging"
	"github.com/canonical/tenant-collector/internal/process"
	"github.com/canonical/tenant-collector/internal/types"
)

const costAggregation = `{"totalCost":{"name":"Cost","function":"Sum"}}`

var _ CLIInterface = (*CLI)(nil)

type CLI struct {
	executor process.ExecutorInterface
	logger   logging.LoggerInterface
}

func (c *CLI) ShowAccount(ctx context.Context) (*Account, error) {
	out := new(Account)
	if err := c.run(ctx, out, "account", "show"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CLI) ListSubscriptions(ctx context.Context) ([]types.AzureSubscription, error) {
	var out []types.AzureSubscription
	if err := c.run(ctx, &out, "account", "list"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CLI) ListTags(ctx context.Context, subscriptionID string) (map[string]string, error) {
	out := new(tagsResource)
	if err := c.run(ctx, out, "tag", "list", "--resource-id", subscriptionScope(subscriptionID)); err != nil {
		return nil, err
	}
	return out.Properties.Tags, nil
}

// UpdateTags merges tags into the subscription tags, leaving the others untouched.
func (c *CLI) UpdateTags(ctx context.Context, subscriptionID string, tags map[string]string) error {
	args := []string{"tag", "update", "--resource-id", subscriptionScope(subscriptionID), "--operation", "merge", "--tags"}
	for _, k := range slices.Sorted(maps.Keys(tags)) {
		args = append(args, k+"="+tags[k])
	}
	return c.run(ctx, nil, args...)
}

// QueryCosts sums the actual cost of the subscription over [from, to] per service.
func (c *CLI) QueryCosts(ctx context.Context, subscriptionID, from, to string) (*CostQueryResult, error) {
	out := new(CostQueryResult)
	err := c.run(ctx, out,
		"costmanagement", "query",
		"--type", "ActualCost",
		"--scope", subscriptionScope(subscriptionID),
		"--timeframe", "Custom",
		"--time-period", "from="+from, "to="+to,
		"--dataset-aggregation", costAggregation,
		"--dataset-grouping", "name=ServiceName", "type=Dimension",
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListRoleAssignments includes assignments inherited from management groups and the root.
func (c *CLI) ListRoleAssignments(ctx context.Context, subscriptionID string) ([]RoleAssignment, error) {
	var out []RoleAssignment
	if err := c.run(ctx, &out, "role", "assignment", "list", "--subscription", subscriptionID, "--include-inherited"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CLI) run(ctx context.Context, out any, args ...string) error {
	cmd := process.Command{Args: append(append([]string{"az"}, args...), "--output", "json")}

	stdout, err := c.executor.Exec(ctx, cmd)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(stdout)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(stdout))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		c.logger.Debugf("unparsable output of %s: %s", cmd, stdout)
		return fmt.Errorf("failed to parse output of %s: %w", cmd, err)
	}
	return nil
}

func subscriptionScope(id string) string {
	return "/subscriptions/" + id
}

func NewCLI(executor process.ExecutorInterface, logger logging.LoggerInterface) *CLI {
	c := new(CLI)
	c.executor = executor
	c.logger = logger
	return c
}
