// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package adapter

import (
	"context"
	"time"

	"github.com/canonical/tenant-collector/internal/types"
)

// MeshAdapter is the capability set every cloud provider exposes.
// The attach operations mutate the given tenants in place.
type MeshAdapter interface {
	GetMeshTenants(ctx context.Context) ([]*types.Tenant, error)
	AttachTenantCosts(ctx context.Context, tenants []*types.Tenant, from, to time.Time) error
	AttachTenantRoleAssignments(ctx context.Context, tenants []*types.Tenant) error
	UpdateMeshTenant(ctx context.Context, updated, original *types.Tenant) error
}
