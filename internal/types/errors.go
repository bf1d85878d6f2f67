// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownPlatform = errors.New("unknown platform")
	ErrNativeMismatch  = errors.New("native object does not belong to the requested platform")
)

// ParsePlatform accepts the lowercase names used on the command line and in configuration.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "aws":
		return PlatformAWS, nil
	case "azure":
		return PlatformAzure, nil
	case "gcp":
		return PlatformGCP, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownPlatform, s)
}
