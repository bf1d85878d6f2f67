// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"time"

	"github.com/canonical/tenant-collector/internal/types"
)

type ServiceInterface interface {
	ListTenants(ctx context.Context, platforms []types.Platform) ([]*types.Tenant, error)
	CollectCosts(ctx context.Context, platforms []types.Platform, from, to time.Time) ([]*types.Tenant, error)
	CollectRoleAssignments(ctx context.Context, platforms []types.Platform) ([]*types.Tenant, error)
	TagTenant(ctx context.Context, platform types.Platform, tenantID string, tags []types.Tag) (*types.Tenant, error)
	ClearCache(ctx context.Context, platforms []types.Platform) error
}

type MeshAdapterInterface interface {
	GetMeshTenants(ctx context.Context) ([]*types.Tenant, error)
	AttachTenantCosts(ctx context.Context, tenants []*types.Tenant, from, to time.Time) error
	AttachTenantRoleAssignments(ctx context.Context, tenants []*types.Tenant) error
	UpdateMeshTenant(ctx context.Context, updated, original *types.Tenant) error
}

type StorageInterface interface {
	Clear(ctx context.Context) error
}
