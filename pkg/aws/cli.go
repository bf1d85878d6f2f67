// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package aws

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/canonical/tenant-collector/internal/logging"
	"github.com/canonical/tenant-collector/internal/process"
)

const pageSize = 20

var _ CLIInterface = (*CLI)(nil)

type CLI struct {
	executor process.ExecutorInterface
	profile  string
	logger   logging.LoggerInterface
}

func (c *CLI) GetCallerIdentity(ctx context.Context) (*CallerIdentity, error) {
	out := new(CallerIdentity)
	if err := c.run(ctx, nil, out, "sts", "get-caller-identity"); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CLI) ListAccounts(ctx context.Context, token string) (*AccountsPage, error) {
	out := new(AccountsPage)
	if err := c.run(ctx, nil, out, withPaging([]string{"organizations", "list-accounts"}, token)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CLI) ListTagsForResource(ctx context.Context, accountID, token string) (*TagsPage, error) {
	out := new(TagsPage)
	args := withPaging([]string{"organizations", "list-tags-for-resource", "--resource-id", accountID}, token)
	if err := c.run(ctx, nil, out, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CLI) TagResource(ctx context.Context, accountID string, tags []Tag) error {
	raw, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	return c.run(ctx, nil, nil, "organizations", "tag-resource", "--resource-id", accountID, "--tags", string(raw))
}

func (c *CLI) GetCostAndUsage(ctx context.Context, start, end, token string) (*CostAndUsagePage, error) {
	args := []string{
		"ce", "get-cost-and-usage",
		"--time-period", fmt.Sprintf("Start=%s,End=%s", start, end),
		"--granularity", "MONTHLY",
		"--metrics", costMetric,
		"--group-by", "Type=DIMENSION,Key=LINKED_ACCOUNT", "Type=DIMENSION,Key=SERVICE",
	}
	if token != "" {
		args = append(args, "--next-page-token", token)
	}

	out := new(CostAndUsagePage)
	if err := c.run(ctx, nil, out, args...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CLI) AssumeRole(ctx context.Context, roleArn, sessionName string) (aws.Credentials, error) {
	out := new(assumeRoleOutput)
	if err := c.run(ctx, nil, out, "sts", "assume-role", "--role-arn", roleArn, "--role-session-name", sessionName); err != nil {
		return aws.Credentials{}, err
	}

	creds := aws.Credentials{
		AccessKeyID:     out.Credentials.AccessKeyID,
		SecretAccessKey: out.Credentials.SecretAccessKey,
		SessionToken:    out.Credentials.SessionToken,
		Source:          roleArn,
	}
	if exp, err := time.Parse(time.RFC3339, out.Credentials.Expiration); err == nil {
		creds.CanExpire = true
		creds.Expires = exp
	}
	return creds, nil
}

func (c *CLI) ListUsers(ctx context.Context, creds aws.Credentials) ([]User, error) {
	var out struct {
		Users []User `json:"Users"`
	}
	if err := c.run(ctx, &creds, &out, "iam", "list-users"); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *CLI) ListAttachedUserPolicies(ctx context.Context, creds aws.Credentials, userName string) ([]AttachedPolicy, error) {
	var out struct {
		AttachedPolicies []AttachedPolicy `json:"AttachedPolicies"`
	}
	if err := c.run(ctx, &creds, &out, "iam", "list-attached-user-policies", "--user-name", userName); err != nil {
		return nil, err
	}
	return out.AttachedPolicies, nil
}

func (c *CLI) ListGroups(ctx context.Context, creds aws.Credentials) ([]Group, error) {
	var out struct {
		Groups []Group `json:"Groups"`
	}
	if err := c.run(ctx, &creds, &out, "iam", "list-groups"); err != nil {
		return nil, err
	}
	return out.Groups, nil
}

func (c *CLI) ListAttachedGroupPolicies(ctx context.Context, creds aws.Credentials, groupName string) ([]AttachedPolicy, error) {
	var out struct {
		AttachedPolicies []AttachedPolicy `json:"AttachedPolicies"`
	}
	if err := c.run(ctx, &creds, &out, "iam", "list-attached-group-policies", "--group-name", groupName); err != nil {
		return nil, err
	}
	return out.AttachedPolicies, nil
}

// run executes aws with JSON output and decodes stdout into out when it is not nil.
// Member account calls get their credentials through the environment, which takes
// precedence over any configured profile.
func (c *CLI) run(ctx context.Context, creds *aws.Credentials, out any, args ...string) error {
	cmd := process.Command{Args: append(append([]string{"aws"}, args...), "--output", "json")}

	if creds != nil {
		cmd.Env = map[string]string{
			"AWS_ACCESS_KEY_ID":     creds.AccessKeyID,
			"AWS_SECRET_ACCESS_KEY": creds.SecretAccessKey,
			"AWS_SESSION_TOKEN":     creds.SessionToken,
		}
	} else if c.profile != "" {
		cmd.Args = append(cmd.Args, "--profile", c.profile)
	}

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

func withPaging(args []string, token string) []string {
	args = append(args, "--max-items", strconv.Itoa(pageSize))
	if token != "" {
		args = append(args, "--starting-token", token)
	}
	return args
}

func NewCLI(executor process.ExecutorInterface, profile string, logger logging.LoggerInterface) *CLI {
	c := new(CLI)
	c.executor = executor
	c.profile = profile
	c.logger = logger
	return c
}
