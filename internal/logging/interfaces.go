// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

type LoggerInterface interface {
	Errorf(string, ...interface{})
	Infof(string, ...interface{})
	Warnf(string, ...interface{})
	Debugf(string, ...interface{})
	Fatalf(string, ...interface{})
	Error(...interface{})
	Info(...interface{})
	Warn(...interface{})
	Debug(...interface{})
	Fatal(...interface{})
	Audit() AuditLoggerInterface
	Sync() error
}

// AuditLoggerInterface records governance write actions performed against providers or the cache.
type AuditLoggerInterface interface {
	TagsUpdated(platform, tenantID string, tags map[string][]string)
	CacheCleared(directory string)
}
