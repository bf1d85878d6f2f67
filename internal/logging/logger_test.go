// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDebugLogger(t *testing.T) {
	l := NewLogger("DEBUG", "")
	if !l.Desugar().Core().Enabled(-1) {
		t.Error("expected debug level to be enabled")
	}
}

func TestInvalidLevel(t *testing.T) {
	l := NewLogger("invalid", "")
	if l.Desugar().Core().Enabled(-1) {
		t.Error("expected invalid level to fall back to info")
	}
}

func TestFileSink(t *testing.T) {
	file := filepath.Join(t.TempDir(), "collector.log")

	l := NewLogger("info", file)
	l.Info("hello")
	l.Audit().CacheCleared("/tmp/cache")
	_ = l.Sync()

	info, err := os.Stat(file)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected log file to have content")
	}
}

func TestNoopLogger(t *testing.T) {
	l := NewNoopLogger()
	l.Audit().TagsUpdated("aws", "123", map[string][]string{"env": {"prod"}})
	l.Infof("nothing %s", "happens")
}
