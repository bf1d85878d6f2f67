// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/canonical/tenant-collector/internal/logging"
	"github.com/canonical/tenant-collector/internal/monitoring"
	"github.com/canonical/tenant-collector/internal/tracing"
	"github.com/canonical/tenant-collector/internal/types"
)

const (
	metaFile      = ".meta.json"
	tenantFileExt = ".json"
	dirPerm       = 0o750
	filePerm      = 0o640
)

var _ StorageInterface = (*Storage)(nil)

// Storage keeps one JSON file per tenant, named after its platform tenant id, and a single
// meta file with the collection stamps. Files are replaced atomically, there is no locking.
type Storage struct {
	directory string
	validate  *validator.Validate

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(directory string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.directory = directory
	s.validate = validator.New(validator.WithRequiredStructEnabled())

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) Directory() string {
	return s.directory
}

func (s *Storage) tenantPath(id string) string {
	return filepath.Join(s.directory, id+tenantFileExt)
}

// ListTenants loads every tenant file. Files that fail to parse or validate are skipped with a warning.
func (s *Storage) ListTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTenants")
	defer span.End()

	entries, err := os.ReadDir(s.directory)
	if errors.Is(err, fs.ErrNotExist) {
		return []*types.Tenant{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || e.Name() == metaFile || !strings.HasSuffix(e.Name(), tenantFileExt) || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	tenants := make([]*types.Tenant, 0, len(names))
	for _, name := range names {
		t, err := s.readTenant(filepath.Join(s.directory, name))
		if err != nil {
			s.logger.Warnf("skipping tenant file %s: %v", name, err)
			s.corrupt("tenant")
			continue
		}
		tenants = append(tenants, t)
	}

	return tenants, nil
}

func (s *Storage) GetTenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByID")
	defer span.End()

	if err := validateTenantID(id); err != nil {
		return nil, err
	}

	t, err := s.readTenant(s.tenantPath(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if errors.Is(err, ErrCorruptRecord) {
		s.corrupt("tenant")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return t, nil
}

func (s *Storage) readTenant(path string) (*types.Tenant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t types.Tenant
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, WrapCorruptRecord(err, filepath.Base(path))
	}
	if err := s.validate.Struct(&t); err != nil {
		return nil, WrapCorruptRecord(err, filepath.Base(path))
	}

	return &t, nil
}

func (s *Storage) SaveTenant(ctx context.Context, t *types.Tenant) error {
	ctx, span := s.tracer.Start(ctx, "storage.SaveTenant")
	defer span.End()

	if err := validateTenantID(t.PlatformTenantID); err != nil {
		return err
	}

	if err := s.writeJSON(s.tenantPath(t.PlatformTenantID), t); err != nil {
		return fmt.Errorf("failed to save tenant %s: %w", t.PlatformTenantID, err)
	}

	return nil
}

// SaveTenants writes tenants one by one, tenants written before a failure stay persisted.
func (s *Storage) SaveTenants(ctx context.Context, ts []*types.Tenant) error {
	ctx, span := s.tracer.Start(ctx, "storage.SaveTenants")
	defer span.End()

	for _, t := range ts {
		if err := s.SaveTenant(ctx, t); err != nil {
			return err
		}
	}

	return nil
}

// ReadMeta returns the store meta record, or an empty one if nothing was collected yet.
// A corrupt meta file is treated as missing so every category reads as stale.
func (s *Storage) ReadMeta(ctx context.Context) (*types.Meta, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ReadMeta")
	defer span.End()

	data, err := os.ReadFile(filepath.Join(s.directory, metaFile))
	if errors.Is(err, fs.ErrNotExist) {
		return types.NewMeta(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read meta: %w", err)
	}

	meta := types.NewMeta()
	if err := json.Unmarshal(data, meta); err != nil {
		s.logger.Warnf("ignoring corrupt meta file in %s: %v", s.directory, err)
		s.corrupt("meta")
		return types.NewMeta(), nil
	}
	if meta.Version != types.MetaVersion {
		s.logger.Warnf("ignoring meta file version %d in %s, expected %d", meta.Version, s.directory, types.MetaVersion)
		return types.NewMeta(), nil
	}

	return meta, nil
}

func (s *Storage) WriteMeta(ctx context.Context, meta *types.Meta) error {
	ctx, span := s.tracer.Start(ctx, "storage.WriteMeta")
	defer span.End()

	meta.Version = types.MetaVersion

	if err := s.writeJSON(filepath.Join(s.directory, metaFile), meta); err != nil {
		return fmt.Errorf("failed to write meta: %w", err)
	}

	return nil
}

// Clear removes every tenant file and the meta record together.
func (s *Storage) Clear(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "storage.Clear")
	defer span.End()

	entries, err := os.ReadDir(s.directory)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), tenantFileExt) {
			continue
		}
		if err := os.Remove(filepath.Join(s.directory, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", e.Name(), err)
		}
	}

	s.logger.Audit().CacheCleared(s.directory)

	return nil
}

func (s *Storage) corrupt(record string) {
	if err := s.monitor.IncCorruptRecord(map[string]string{"record": record}); err != nil {
		s.logger.Debugf("failed to record corrupt %s: %v", record, err)
	}
}

func (s *Storage) writeJSON(path string, v any) error {
	if err := os.MkdirAll(s.directory, dirPerm); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.directory, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
