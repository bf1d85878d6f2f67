// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/canonical/tenant-collector/internal/logging"
	"github.com/canonical/tenant-collector/internal/process"
	"github.com/canonical/tenant-collector/internal/types"
)

const billingQuery = "SELECT project.id AS project_id, FORMAT_DATE('%%Y%%m', DATE(usage_start_time)) AS month, " +
	"service.description AS service, currency, " +
	"CAST(SUM(cost) + SUM(IFNULL((SELECT SUM(c.amount) FROM UNNEST(credits) c), 0)) AS STRING) AS cost " +
	"FROM `%s` WHERE DATE(usage_start_time) BETWEEN '%s' AND '%s' AND project.id IS NOT NULL " +
	"GROUP BY project_id, month, service, currency"

var (
	ErrBillingTableNotConfigured = errors.New("no billing export table configured")
	ErrInvalidBillingTable       = errors.New("billing export table must be project.dataset.table")

	billingTable = regexp.MustCompile(`^[a-z][a-z0-9-]{4,28}[a-z0-9]\.\w+\.[\w$-]+$`)
	isoDate      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

var _ CLIInterface = (*CLI)(nil)

type CLI struct {
	executor process.ExecutorInterface
	logger   logging.LoggerInterface
}

func (c *CLI) ListActiveAccounts(ctx context.Context) ([]Credential, error) {
	var out []Credential
	if err := c.gcloud(ctx, &out, "auth", "list", "--filter=status:ACTIVE"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CLI) ListProjects(ctx context.Context, after string, limit int) ([]types.GCPProject, error) {
	args := []string{"projects", "list", "--sort-by=projectId", "--limit=" + strconv.Itoa(limit)}
	if after != "" {
		args = append(args, fmt.Sprintf("--filter=projectId>%q", after))
	}

	var out []types.GCPProject
	if err := c.gcloud(ctx, &out, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CLI) UpdateLabels(ctx context.Context, projectID string, labels map[string]string) error {
	pairs := make([]string, 0, len(labels))
	for _, k := range slices.Sorted(maps.Keys(labels)) {
		pairs = append(pairs, k+"="+labels[k])
	}
	return c.gcloud(ctx, nil, "projects", "update", projectID, "--update-labels="+strings.Join(pairs, ","))
}

func (c *CLI) GetAncestorsIAMPolicy(ctx context.Context, projectID string) ([]AncestorPolicy, error) {
	var out []AncestorPolicy
	if err := c.gcloud(ctx, &out, "projects", "get-ancestors-iam-policy", projectID); err != nil {
		return nil, err
	}
	return out, nil
}

// QueryBilling sums the billing export per project, usage month and service, credits included.
func (c *CLI) QueryBilling(ctx context.Context, table, from, to string) ([]BillingRow, error) {
	if table == "" {
		return nil, ErrBillingTableNotConfigured
	}
	if !billingTable.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBillingTable, table)
	}
	if !isoDate.MatchString(from) || !isoDate.MatchString(to) {
		return nil, fmt.Errorf("invalid billing range %q to %q", from, to)
	}

	var out []BillingRow
	cmd := process.Command{Args: []string{
		"bq", "query", "--use_legacy_sql=false", "--format=json", "--max_rows=1000000",
		fmt.Sprintf(billingQuery, table, from, to),
	}}
	if err := c.run(ctx, cmd, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CLI) gcloud(ctx context.Context, out any, args ...string) error {
	return c.run(ctx, process.Command{Args: append(append([]string{"gcloud"}, args...), "--format=json")}, out)
}

func (c *CLI) run(ctx context.Context, cmd process.Command, out any) error {
	stdout, err := c.executor.Exec(ctx, cmd)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(stdout)) == 0 {
		return nil
	}
	if err := json.Unmarshal(stdout, out); err != nil {
		c.logger.Debugf("unparsable output of %s: %s", cmd, stdout)
		return fmt.Errorf("failed to parse output of %s: %w", cmd, err)
	}
	return nil
}

func NewCLI(executor process.ExecutorInterface, logger logging.LoggerInterface) *CLI {
	c := new(CLI)
	c.executor = executor
	c.logger = logger
	return c
}
