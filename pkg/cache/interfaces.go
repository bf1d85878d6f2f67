// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cache

import (
	"context"

	"github.com/canonical/tenant-collector/internal/types"
)

type StorageInterface interface {
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	SaveTenant(ctx context.Context, t *types.Tenant) error
	SaveTenants(ctx context.Context, ts []*types.Tenant) error
	ReadMeta(ctx context.Context) (*types.Meta, error)
	WriteMeta(ctx context.Context, meta *types.Meta) error
}
