// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package azure

import (
	"context"

	"github.com/canonical/tenant-collector/internal/types"
)

// CLIInterface is the typed facade over the az command line tool.
type CLIInterface interface {
	ShowAccount(ctx context.Context) (*Account, error)
	ListSubscriptions(ctx context.Context) ([]types.AzureSubscription, error)
	ListTags(ctx context.Context, subscriptionID string) (map[string]string, error)
	UpdateTags(ctx context.Context, subscriptionID string, tags map[string]string) error
	QueryCosts(ctx context.Context, subscriptionID, from, to string) (*CostQueryResult, error)
	ListRoleAssignments(ctx context.Context, subscriptionID string) ([]RoleAssignment, error)
}
