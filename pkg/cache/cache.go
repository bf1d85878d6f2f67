// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/canonical/tenant-collector/internal/logging"
	"github.com/canonical/tenant-collector/internal/monitoring"
	"github.com/canonical/tenant-collector/internal/storage"
	"github.com/canonical/tenant-collector/internal/tracing"
	"github.com/canonical/tenant-collector/internal/types"
	"github.com/canonical/tenant-collector/internal/windows"
	"github.com/canonical/tenant-collector/pkg/adapter"
)

const (
	categoryTenants = "tenants"
	categoryCosts   = "costs"
	categoryIAM     = "iam"
)

var _ adapter.MeshAdapter = (*Cache)(nil)

// Cache wraps a MeshAdapter and serves tenants, costs and role assignments from a store
// while each category is younger than maxAge. Writes always reach the provider.
type Cache struct {
	next     adapter.MeshAdapter
	store    StorageInterface
	platform types.Platform
	maxAge   time.Duration
	now      func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// GetMeshTenants returns the tenants of the last collection from the store when fresh.
// Otherwise it fetches them and carries known costs and role assignments over to the
// fetched tenants before storing them. Tenants the provider stopped reporting stay on
// disk but are not returned.
func (c *Cache) GetMeshTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := c.tracer.Start(ctx, "cache.Cache.GetMeshTenants")
	defer span.End()

	meta, err := c.store.ReadMeta(ctx)
	if err != nil {
		return nil, err
	}

	if c.fresh(meta.TenantCollection) {
		tenants, ok, err := c.load(ctx, meta.TenantCollection.TenantIDs)
		if err != nil {
			return nil, err
		}
		if ok {
			c.lookup(categoryTenants, true)
			return tenants, nil
		}
	}
	c.lookup(categoryTenants, false)

	tenants, err := c.next.GetMeshTenants(ctx)
	if err != nil {
		return nil, err
	}

	cached, err := c.cachedByID(ctx)
	if err != nil {
		return nil, err
	}

	for _, t := range tenants {
		old, ok := cached[t.PlatformTenantID]
		if !ok {
			continue
		}
		if len(t.Costs) == 0 {
			t.Costs = old.Costs
		}
		if len(t.RoleAssignments) == 0 {
			t.RoleAssignments = old.RoleAssignments
		}
	}

	if err := c.store.SaveTenants(ctx, tenants); err != nil {
		return nil, err
	}

	meta.TenantCollection = &types.CollectionStamp{LastCollection: c.now(), TenantIDs: tenantIDs(tenants)}
	if err := c.store.WriteMeta(ctx, meta); err != nil {
		return nil, err
	}

	return tenants, nil
}

// AttachTenantCosts serves costs from the store only for the exact range collected last,
// and only when every tenant took part in that collection.
func (c *Cache) AttachTenantCosts(ctx context.Context, tenants []*types.Tenant, from, to time.Time) error {
	ctx, span := c.tracer.Start(ctx, "cache.Cache.AttachTenantCosts")
	defer span.End()

	meta, err := c.requireFreshTenants(ctx)
	if err != nil {
		return err
	}

	fromS, toS := windows.Day(from).Format(windows.DateLayout), windows.Day(to).Format(windows.DateLayout)

	if cc := meta.CostCollection; cc != nil && cc.From == fromS && cc.To == toS && c.freshAt(cc.LastCollection) {
		hit, err := c.fromCache(ctx, cc.TenantIDs, tenants, func(t, cached *types.Tenant) {
			t.Costs = cached.Costs
		})
		if err != nil {
			return err
		}
		if hit {
			c.lookup(categoryCosts, true)
			return nil
		}
	}
	c.lookup(categoryCosts, false)

	if err := c.next.AttachTenantCosts(ctx, tenants, from, to); err != nil {
		return err
	}
	if err := c.store.SaveTenants(ctx, tenants); err != nil {
		return err
	}

	meta.CostCollection = &types.CostCollectionStamp{From: fromS, To: toS, LastCollection: c.now(), TenantIDs: tenantIDs(tenants)}
	return c.store.WriteMeta(ctx, meta)
}

func (c *Cache) AttachTenantRoleAssignments(ctx context.Context, tenants []*types.Tenant) error {
	ctx, span := c.tracer.Start(ctx, "cache.Cache.AttachTenantRoleAssignments")
	defer span.End()

	meta, err := c.requireFreshTenants(ctx)
	if err != nil {
		return err
	}

	if c.fresh(meta.IAMCollection) {
		hit, err := c.fromCache(ctx, meta.IAMCollection.TenantIDs, tenants, func(t, cached *types.Tenant) {
			t.RoleAssignments = cached.RoleAssignments
		})
		if err != nil {
			return err
		}
		if hit {
			c.lookup(categoryIAM, true)
			return nil
		}
	}
	c.lookup(categoryIAM, false)

	if err := c.next.AttachTenantRoleAssignments(ctx, tenants); err != nil {
		return err
	}
	if err := c.store.SaveTenants(ctx, tenants); err != nil {
		return err
	}

	meta.IAMCollection = &types.CollectionStamp{LastCollection: c.now(), TenantIDs: tenantIDs(tenants)}
	return c.store.WriteMeta(ctx, meta)
}

func (c *Cache) UpdateMeshTenant(ctx context.Context, updated, original *types.Tenant) error {
	ctx, span := c.tracer.Start(ctx, "cache.Cache.UpdateMeshTenant")
	defer span.End()

	if err := c.next.UpdateMeshTenant(ctx, updated, original); err != nil {
		return err
	}
	return c.store.SaveTenant(ctx, updated)
}

// fromCache applies apply to every tenant when all of them were part of the collected
// set and are still readable from the store, and reports whether it did.
func (c *Cache) fromCache(ctx context.Context, collected []string, tenants []*types.Tenant, apply func(t, cached *types.Tenant)) (bool, error) {
	ids := tenantIDs(tenants)
	if !lo.Every(collected, ids) {
		return false, nil
	}

	cached, ok, err := c.load(ctx, ids)
	if err != nil || !ok {
		return false, err
	}

	for i, t := range tenants {
		apply(t, cached[i])
	}
	return true, nil
}

// load reads tenants by id in the given order. A missing or corrupt record turns the
// lookup into a miss instead of an error.
func (c *Cache) load(ctx context.Context, ids []string) ([]*types.Tenant, bool, error) {
	tenants := make([]*types.Tenant, 0, len(ids))

	for _, id := range ids {
		t, err := c.store.GetTenantByID(ctx, id)
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrCorruptRecord) {
			c.logger.Warnf("%s tenant %s is not usable from the cache: %v", c.platform, id, err)
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		tenants = append(tenants, t)
	}

	return tenants, true, nil
}

func (c *Cache) requireFreshTenants(ctx context.Context) (*types.Meta, error) {
	meta, err := c.store.ReadMeta(ctx)
	if err != nil {
		return nil, err
	}
	if !c.fresh(meta.TenantCollection) {
		return nil, fmt.Errorf("%w: %s", ErrStaleTenantCollection, c.platform)
	}
	return meta, nil
}

func (c *Cache) cachedByID(ctx context.Context) (map[string]*types.Tenant, error) {
	cached, err := c.store.ListTenants(ctx)
	if err != nil {
		return nil, err
	}
	return lo.KeyBy(cached, func(t *types.Tenant) string {
		return t.PlatformTenantID
	}), nil
}

func tenantIDs(tenants []*types.Tenant) []string {
	return lo.Map(tenants, func(t *types.Tenant, _ int) string {
		return t.PlatformTenantID
	})
}

func (c *Cache) fresh(stamp *types.CollectionStamp) bool {
	return stamp != nil && c.freshAt(stamp.LastCollection)
}

func (c *Cache) freshAt(collected time.Time) bool {
	return c.now().Sub(collected) <= c.maxAge
}

func (c *Cache) lookup(category string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	c.logger.Debugf("%s %s cache %s", c.platform, category, result)
	c.monitor.IncCacheLookup(map[string]string{
		"platform": strings.ToLower(string(c.platform)),
		"category": category,
		"result":   result,
	})
}

func NewCache(
	next adapter.MeshAdapter,
	store StorageInterface,
	platform types.Platform,
	maxAge time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Cache {
	c := new(Cache)
	c.next = next
	c.store = store
	c.platform = platform
	c.maxAge = maxAge
	c.now = time.Now
	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger
	return c
}
