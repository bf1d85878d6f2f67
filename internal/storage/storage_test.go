// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/tenant-collector/internal/logging"
	"github.com/canonical/tenant-collector/internal/monitoring"
	"github.com/canonical/tenant-collector/internal/tracing"
	"github.com/canonical/tenant-collector/internal/types"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	return NewStorage(filepath.Join(t.TempDir(), "aws"), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test"), logging.NewNoopLogger())
}

// countingMonitor records corrupt record increments by record kind.
type countingMonitor struct {
	*monitoring.NoopMonitor
	corrupt map[string]int
}

func (m *countingMonitor) IncCorruptRecord(tags map[string]string) error {
	m.corrupt[tags["record"]]++
	return nil
}

func newCountedStorage(t *testing.T) (*Storage, *countingMonitor) {
	t.Helper()
	m := &countingMonitor{NoopMonitor: monitoring.NewNoopMonitor("test"), corrupt: map[string]int{}}
	return NewStorage(filepath.Join(t.TempDir(), "aws"), tracing.NewNoopTracer(), m, logging.NewNoopLogger()), m
}

func awsTenant(id string) *types.Tenant {
	return &types.Tenant{
		PlatformTenantID:   id,
		PlatformTenantName: "account " + id,
		Platform:           types.PlatformAWS,
		Tags:               []types.Tag{{Name: "env", Values: []string{"prod"}}},
		Costs: []types.Cost{
			{Currency: "USD", From: "2021-03-01", To: "2021-03-20", Cost: "12.34"},
		},
		RoleAssignments: []types.RoleAssignment{
			{PrincipalID: "AIDA1", PrincipalName: "alice", PrincipalType: types.PrincipalUser, RoleID: "arn:aws:iam::aws:policy/ReadOnlyAccess", RoleName: "ReadOnlyAccess", AssignmentSource: types.SourceTenant, AssignmentID: id},
		},
		NativeObj: types.NewAWSNativeObj(&types.AWSAccount{ID: id, Name: "account " + id}),
	}
}

func TestStorageSaveAndList(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTenants(ctx, []*types.Tenant{awsTenant("222222222222"), awsTenant("111111111111")}))

	tenants, err := s.ListTenants(ctx)
	require.NoError(t, err)
	require.Len(t, tenants, 2)
	assert.Equal(t, "111111111111", tenants[0].PlatformTenantID)
	assert.Equal(t, awsTenant("111111111111"), tenants[0])

	_, err = os.Stat(filepath.Join(s.Directory(), "111111111111.json"))
	assert.NoError(t, err, "expected one file per tenant named after its id")
}

func TestStorageListMissingDirectory(t *testing.T) {
	s := newTestStorage(t)

	tenants, err := s.ListTenants(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tenants)
}

func TestStorageSkipsCorruptTenant(t *testing.T) {
	s, m := newCountedStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTenant(ctx, awsTenant("111111111111")))
	require.NoError(t, os.WriteFile(filepath.Join(s.Directory(), "broken.json"), []byte("{not json"), 0o640))
	require.NoError(t, os.WriteFile(filepath.Join(s.Directory(), "invalid.json"), []byte(`{"platformTenantId":""}`), 0o640))

	tenants, err := s.ListTenants(ctx)
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	assert.Equal(t, "111111111111", tenants[0].PlatformTenantID)
	assert.Equal(t, 2, m.corrupt["tenant"])

	_, err = s.GetTenantByID(ctx, "broken")
	assert.ErrorIs(t, err, ErrCorruptRecord)
	assert.Equal(t, 3, m.corrupt["tenant"])
}

func TestStorageGetTenantByID(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTenant(ctx, awsTenant("111111111111")))

	testCases := []struct {
		name        string
		id          string
		expectedErr error
	}{
		{name: "found", id: "111111111111"},
		{name: "not found", id: "999999999999", expectedErr: ErrNotFound},
		{name: "path traversal", id: "../etc", expectedErr: ErrInvalidTenantID},
		{name: "meta file", id: ".meta", expectedErr: ErrInvalidTenantID},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tenant, err := s.GetTenantByID(ctx, tc.id)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.id, tenant.PlatformTenantID)
		})
	}
}

func TestStorageSaveOverwrites(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	tenant := awsTenant("111111111111")
	require.NoError(t, s.SaveTenant(ctx, tenant))

	tenant.Tags = []types.Tag{{Name: "env", Values: []string{"dev"}}}
	require.NoError(t, s.SaveTenant(ctx, tenant))

	got, err := s.GetTenantByID(ctx, "111111111111")
	require.NoError(t, err)
	assert.Equal(t, []string{"dev"}, got.Tags[0].Values)
}

func TestStorageMeta(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	meta, err := s.ReadMeta(ctx)
	require.NoError(t, err)
	assert.Nil(t, meta.TenantCollection)
	assert.Nil(t, meta.CostCollection)
	assert.Nil(t, meta.IAMCollection)

	now := time.Date(2021, 3, 20, 10, 0, 0, 0, time.UTC)
	meta.TenantCollection = &types.CollectionStamp{LastCollection: now, TenantIDs: []string{"111111111111", "222222222222"}}
	meta.CostCollection = &types.CostCollectionStamp{From: "2021-01-01", To: "2021-02-28", LastCollection: now, TenantIDs: []string{}}
	require.NoError(t, s.WriteMeta(ctx, meta))

	got, err := s.ReadMeta(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.MetaVersion, got.Version)
	assert.True(t, now.Equal(got.TenantCollection.LastCollection))
	assert.Equal(t, "2021-02-28", got.CostCollection.To)
	assert.Equal(t, []string{"111111111111", "222222222222"}, got.TenantCollection.TenantIDs)
	assert.NotNil(t, got.CostCollection.TenantIDs, "an empty collection must stay distinguishable from a missing one")
	assert.Empty(t, got.CostCollection.TenantIDs)
	assert.Nil(t, got.IAMCollection)

	tenants, err := s.ListTenants(ctx)
	require.NoError(t, err)
	assert.Empty(t, tenants, "meta file must not be listed as a tenant")
}

func TestStorageCorruptMetaIsStale(t *testing.T) {
	s, m := newCountedStorage(t)
	ctx := context.Background()

	require.NoError(t, os.MkdirAll(s.Directory(), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(s.Directory(), metaFile), []byte("garbage"), 0o640))

	meta, err := s.ReadMeta(ctx)
	require.NoError(t, err)
	assert.Nil(t, meta.TenantCollection)
	assert.Equal(t, 1, m.corrupt["meta"])
}

func TestStorageClear(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTenants(ctx, []*types.Tenant{awsTenant("111111111111"), awsTenant("222222222222")}))
	require.NoError(t, s.WriteMeta(ctx, &types.Meta{TenantCollection: &types.CollectionStamp{LastCollection: time.Now()}}))

	require.NoError(t, s.Clear(ctx))

	tenants, err := s.ListTenants(ctx)
	require.NoError(t, err)
	assert.Empty(t, tenants)

	meta, err := s.ReadMeta(ctx)
	require.NoError(t, err)
	assert.Nil(t, meta.TenantCollection)

	_, err = s.GetTenantByID(ctx, "111111111111")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestStorageClearMissingDirectory(t *testing.T) {
	assert.NoError(t, newTestStorage(t).Clear(context.Background()))
}
