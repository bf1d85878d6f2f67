// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package azure

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/tenant-collector/internal/fetch"
	"github.com/canonical/tenant-collector/internal/logging"
	"github.com/canonical/tenant-collector/internal/process"
)

var _ process.ExecutorInterface = (*ExtensionInstaller)(nil)

// ExtensionInstaller installs an az extension a command reports missing and runs the
// command again. Without auto install it only attaches the install command as remedy.
type ExtensionInstaller struct {
	next        process.ExecutorInterface
	autoInstall bool
	logger      logging.LoggerInterface
}

func (e *ExtensionInstaller) Exec(ctx context.Context, cmd process.Command) ([]byte, error) {
	out, err := e.next.Exec(ctx, cmd)

	var fErr *fetch.Error
	if err == nil || !errors.As(err, &fErr) || fErr.Kind != fetch.KindMissingExtension {
		return out, err
	}

	install := []string{"az", "extension", "add", "--name", fErr.Subject, "--yes"}

	if !e.autoInstall {
		missing := *fErr
		missing.Remedy = fmt.Sprintf("Run `%s` and try again.", process.Command{Args: install})
		return nil, &missing
	}

	e.logger.Infof("installing az extension %s", fErr.Subject)
	if _, err := e.next.Exec(ctx, process.Command{Args: install}); err != nil {
		return nil, fmt.Errorf("failed to install az extension %s: %w", fErr.Subject, err)
	}

	return e.next.Exec(ctx, cmd)
}

func NewExtensionInstaller(next process.ExecutorInterface, autoInstall bool, logger logging.LoggerInterface) *ExtensionInstaller {
	return &ExtensionInstaller{next: next, autoInstall: autoInstall, logger: logger}
}
