// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-collector/internal/logging"
	"github.com/canonical/tenant-collector/internal/monitoring"
	"github.com/canonical/tenant-collector/internal/storage"
	"github.com/canonical/tenant-collector/internal/tracing"
	"github.com/canonical/tenant-collector/internal/types"
)

// clock is a settable time source shared by a cache under test.
type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newStoreBackedCache(t *testing.T, next *MockMeshAdapter) (*Cache, *storage.Storage, *clock) {
	t.Helper()

	store := storage.NewStorage(t.TempDir(), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	clk := &clock{t: now}

	c := NewCache(next, store, types.PlatformAzure, maxAge, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
	c.now = clk.now

	return c, store, clk
}

func listing(ids ...string) func(context.Context) ([]*types.Tenant, error) {
	return func(context.Context) ([]*types.Tenant, error) {
		tenants := make([]*types.Tenant, 0, len(ids))
		for _, id := range ids {
			tenants = append(tenants, tenant(id))
		}
		return tenants, nil
	}
}

func liveRoleAssignments(_ context.Context, tenants []*types.Tenant) error {
	for _, t := range tenants {
		t.RoleAssignments = []types.RoleAssignment{
			{PrincipalID: "p-" + t.PlatformTenantID, PrincipalType: types.PrincipalGroup, AssignmentSource: types.SourceTenant, AssignmentID: t.PlatformTenantID},
		}
	}
	return nil
}

func TestCache_RemovedTenantsAreNotServed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	next := NewMockMeshAdapter(ctrl)
	c, store, clk := newStoreBackedCache(t, next)
	ctx := context.Background()

	gomock.InOrder(
		next.EXPECT().GetMeshTenants(gomock.Any()).DoAndReturn(listing("s1", "s2")),
		next.EXPECT().GetMeshTenants(gomock.Any()).DoAndReturn(listing("s1")),
	)

	if _, err := c.GetMeshTenants(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clk.advance(2 * maxAge)

	refreshed, err := c.GetMeshTenants(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	served, err := c.GetMeshTenants(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(refreshed) != 1 || len(served) != 1 || served[0].PlatformTenantID != "s1" {
		t.Errorf("expected only s1 after the refresh and on the next read, got %d and %d tenants", len(refreshed), len(served))
	}

	if _, err := store.GetTenantByID(ctx, "s2"); err != nil {
		t.Errorf("expected the removed tenant to stay on disk until the cache is cleared, got %v", err)
	}
}

func TestCache_TenantDiscoveredAfterCostCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	next := NewMockMeshAdapter(ctrl)
	c, _, clk := newStoreBackedCache(t, next)
	ctx := context.Background()
	from, to := date("2021-01-01"), date("2021-03-31")

	gomock.InOrder(
		next.EXPECT().GetMeshTenants(gomock.Any()).DoAndReturn(listing("s1")),
		next.EXPECT().AttachTenantCosts(gomock.Any(), gomock.Len(1), from, to).DoAndReturn(liveCosts),
		next.EXPECT().GetMeshTenants(gomock.Any()).DoAndReturn(listing("s1", "s2")),
		next.EXPECT().AttachTenantCosts(gomock.Any(), gomock.Len(2), from, to).DoAndReturn(liveCosts),
	)

	tenants, err := c.GetMeshTenants(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clk.advance(maxAge / 2)

	if err := c.AttachTenantCosts(ctx, tenants, from, to); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// tenants expire while the cost collection is still fresh
	clk.advance(maxAge/2 + time.Minute)

	tenants, err = c.GetMeshTenants(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AttachTenantCosts(ctx, tenants, from, to); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, tn := range tenants {
		if len(tn.Costs) != 1 {
			t.Errorf("expected one cost record for %s, got %v", tn.PlatformTenantID, tn.Costs)
		}
	}
}

func TestCache_TenantDiscoveredAfterIAMCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	next := NewMockMeshAdapter(ctrl)
	c, _, clk := newStoreBackedCache(t, next)
	ctx := context.Background()

	gomock.InOrder(
		next.EXPECT().GetMeshTenants(gomock.Any()).DoAndReturn(listing("s1")),
		next.EXPECT().AttachTenantRoleAssignments(gomock.Any(), gomock.Len(1)).DoAndReturn(liveRoleAssignments),
		next.EXPECT().GetMeshTenants(gomock.Any()).DoAndReturn(listing("s1", "s2")),
		next.EXPECT().AttachTenantRoleAssignments(gomock.Any(), gomock.Len(2)).DoAndReturn(liveRoleAssignments),
	)

	tenants, err := c.GetMeshTenants(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clk.advance(maxAge / 2)

	if err := c.AttachTenantRoleAssignments(ctx, tenants); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clk.advance(maxAge/2 + time.Minute)

	tenants, err = c.GetMeshTenants(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AttachTenantRoleAssignments(ctx, tenants); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, tn := range tenants {
		if len(tn.RoleAssignments) != 1 {
			t.Errorf("expected one role assignment for %s, got %v", tn.PlatformTenantID, tn.RoleAssignments)
		}
	}
}

func TestCache_CostHitAfterTenantRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	next := NewMockMeshAdapter(ctrl)
	c, _, clk := newStoreBackedCache(t, next)
	ctx := context.Background()
	from, to := date("2021-01-01"), date("2021-03-31")

	gomock.InOrder(
		next.EXPECT().GetMeshTenants(gomock.Any()).DoAndReturn(listing("s1")),
		next.EXPECT().AttachTenantCosts(gomock.Any(), gomock.Any(), from, to).DoAndReturn(liveCosts),
		next.EXPECT().GetMeshTenants(gomock.Any()).DoAndReturn(listing("s1")),
	)

	tenants, err := c.GetMeshTenants(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clk.advance(maxAge / 2)

	if err := c.AttachTenantCosts(ctx, tenants, from, to); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	clk.advance(maxAge/2 + time.Minute)

	tenants, err = c.GetMeshTenants(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AttachTenantCosts(ctx, tenants, from, to); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tenants[0].Costs) != 1 || tenants[0].Costs[0].Cost != "99" {
		t.Errorf("expected the stored cost to be served, got %v", tenants[0].Costs)
	}
}
