// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuditLogger struct {
	l *zap.Logger
}

func (a *AuditLogger) TagsUpdated(platform, tenantID string, tags map[string][]string) {
	a.l.Info(
		"tenant tags updated",
		zap.String("change_id", uuid.NewString()),
		zap.String("platform", platform),
		zap.String("tenant_id", tenantID),
		zap.Any("tags", tags),
	)
}

func (a *AuditLogger) CacheCleared(directory string) {
	a.l.Info(
		"tenant cache cleared",
		zap.String("change_id", uuid.NewString()),
		zap.String("directory", directory),
	)
}
