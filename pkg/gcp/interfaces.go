// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gcp

import (
	"context"

	"github.com/canonical/tenant-collector/internal/types"
)

// CLIInterface is the typed facade over gcloud and bq.
type CLIInterface interface {
	ListActiveAccounts(ctx context.Context) ([]Credential, error)
	// ListProjects returns up to limit projects ordered by id, starting after the given id.
	ListProjects(ctx context.Context, after string, limit int) ([]types.GCPProject, error)
	UpdateLabels(ctx context.Context, projectID string, labels map[string]string) error
	GetAncestorsIAMPolicy(ctx context.Context, projectID string) ([]AncestorPolicy, error)
	QueryBilling(ctx context.Context, table, from, to string) ([]BillingRow, error)
}
