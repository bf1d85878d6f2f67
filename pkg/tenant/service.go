// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/canonical/tenant-collector/internal/logging"
	"github.com/canonical/tenant-collector/internal/monitoring"
	"github.com/canonical/tenant-collector/internal/tracing"
	"github.com/canonical/tenant-collector/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

// Service runs collections across platforms, one platform at a time.
type Service struct {
	adapters map[types.Platform]MeshAdapterInterface
	stores   map[types.Platform]StorageInterface
	tracer   tracing.TracingInterface
	monitor  monitoring.MonitorInterface
	logger   logging.LoggerInterface
}

func NewService(
	adapters map[types.Platform]MeshAdapterInterface,
	stores map[types.Platform]StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		adapters: adapters,
		stores:   stores,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

func (s *Service) ListTenants(ctx context.Context, platforms []types.Platform) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ListTenants")
	defer span.End()

	return s.collect(ctx, platforms, func(ctx context.Context, a MeshAdapterInterface, tenants []*types.Tenant) error {
		return nil
	})
}

func (s *Service) CollectCosts(ctx context.Context, platforms []types.Platform, from, to time.Time) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.CollectCosts")
	defer span.End()

	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: %s is after %s", from.Format(time.DateOnly), to.Format(time.DateOnly))
	}

	return s.collect(ctx, platforms, func(ctx context.Context, a MeshAdapterInterface, tenants []*types.Tenant) error {
		return a.AttachTenantCosts(ctx, tenants, from, to)
	})
}

func (s *Service) CollectRoleAssignments(ctx context.Context, platforms []types.Platform) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.CollectRoleAssignments")
	defer span.End()

	return s.collect(ctx, platforms, func(ctx context.Context, a MeshAdapterInterface, tenants []*types.Tenant) error {
		return a.AttachTenantRoleAssignments(ctx, tenants)
	})
}

// TagTenant sets the given tags on a tenant, replacing the values of tags it already has.
// Tags not named are kept.
func (s *Service) TagTenant(ctx context.Context, platform types.Platform, tenantID string, tags []types.Tag) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.TagTenant")
	defer span.End()

	a, err := s.adapter(platform)
	if err != nil {
		return nil, err
	}

	tenants, err := a.GetMeshTenants(ctx)
	if err != nil {
		return nil, err
	}

	original, ok := lo.Find(tenants, func(t *types.Tenant) bool {
		return t.PlatformTenantID == tenantID
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrTenantNotFound, platform, tenantID)
	}

	updated := original.Clone()
	for _, tag := range tags {
		i := slices.IndexFunc(updated.Tags, func(t types.Tag) bool { return t.Name == tag.Name })
		if i < 0 {
			updated.Tags = append(updated.Tags, tag)
			continue
		}
		updated.Tags[i].Values = tag.Values
	}

	if err := a.UpdateMeshTenant(ctx, updated, original); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) ClearCache(ctx context.Context, platforms []types.Platform) error {
	ctx, span := s.tracer.Start(ctx, "tenant.Service.ClearCache")
	defer span.End()

	for _, p := range platforms {
		store, ok := s.stores[p]
		if !ok {
			return fmt.Errorf("%w: %s", ErrPlatformNotConfigured, p)
		}
		if err := store.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear %s cache: %w", p, err)
		}
		s.logger.Infof("cleared %s cache", p)
	}
	return nil
}

// collect lists the tenants of every platform and runs attach on them. The first failing
// platform aborts the collection.
func (s *Service) collect(ctx context.Context, platforms []types.Platform, attach func(context.Context, MeshAdapterInterface, []*types.Tenant) error) ([]*types.Tenant, error) {
	var all []*types.Tenant

	for _, p := range platforms {
		a, err := s.adapter(p)
		if err != nil {
			return nil, err
		}

		tenants, err := a.GetMeshTenants(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s tenants: %w", p, err)
		}
		if err := attach(ctx, a, tenants); err != nil {
			return nil, fmt.Errorf("failed to collect %s: %w", p, err)
		}

		s.logger.Debugf("collected %d %s tenants", len(tenants), p)
		all = append(all, tenants...)
	}

	if all == nil {
		all = []*types.Tenant{}
	}
	return all, nil
}

func (s *Service) adapter(p types.Platform) (MeshAdapterInterface, error) {
	a, ok := s.adapters[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlatformNotConfigured, p)
	}
	return a, nil
}
