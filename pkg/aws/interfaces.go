// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// CLIInterface is the typed facade over the aws command line tool.
// Calls taking credentials run inside a member account, the others against the organization.
type CLIInterface interface {
	GetCallerIdentity(ctx context.Context) (*CallerIdentity, error)
	ListAccounts(ctx context.Context, token string) (*AccountsPage, error)
	ListTagsForResource(ctx context.Context, accountID, token string) (*TagsPage, error)
	TagResource(ctx context.Context, accountID string, tags []Tag) error
	GetCostAndUsage(ctx context.Context, start, end, token string) (*CostAndUsagePage, error)
	AssumeRole(ctx context.Context, roleArn, sessionName string) (aws.Credentials, error)
	ListUsers(ctx context.Context, creds aws.Credentials) ([]User, error)
	ListAttachedUserPolicies(ctx context.Context, creds aws.Credentials, userName string) ([]AttachedPolicy, error)
	ListGroups(ctx context.Context, creds aws.Credentials) ([]Group, error)
	ListAttachedGroupPolicies(ctx context.Context, creds aws.Credentials, groupName string) ([]AttachedPolicy, error)
}
