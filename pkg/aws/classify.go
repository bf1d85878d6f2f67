// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package aws

import (
	"errors"
	"slices"
	"strings"

	"github.com/canonical/tenant-collector/internal/fetch"
	"github.com/canonical/tenant-collector/internal/process"
)

const loginRemedy = "Run `aws sso login` or `aws configure` and try again."

var (
	rateLimitMarkers   = []string{"TooManyRequestsException", "ThrottlingException", "Rate exceeded"}
	notLoggedInMarkers = []string{"Unable to locate credentials", "ExpiredToken", "Token has expired", "The SSO session associated with this profile has expired", "Error loading SSO Token"}
	unauthorizedMarker = []string{"AccessDenied", "UnauthorizedOperation", "is not authorized to perform"}
)

func containsAny(s string, markers []string) bool {
	return slices.ContainsFunc(markers, func(m string) bool {
		return strings.Contains(s, m)
	})
}

// classify maps aws CLI failure output to a fetch.Error.
func classify(cmd process.Command, res *process.Result) error {
	stderr := strings.TrimSpace(string(res.Stderr))
	cause := errors.New(cmd.String() + ": " + stderr)

	switch {
	case containsAny(stderr, rateLimitMarkers):
		return fetch.NewError(fetch.KindRateLimited, cause)
	case containsAny(stderr, notLoggedInMarkers):
		return &fetch.Error{Kind: fetch.KindNotLoggedIn, Remedy: loginRemedy, Err: cause}
	case containsAny(stderr, unauthorizedMarker):
		if slices.Contains(cmd.Args, "assume-role") {
			return &fetch.Error{Kind: fetch.KindMissingRole, Subject: flagValue(cmd.Args, "--role-arn"), Err: cause}
		}
		return fetch.NewError(fetch.KindUnauthorized, cause)
	}
	return process.UnclassifiedError(cmd, res)
}

func flagValue(args []string, flag string) string {
	i := slices.Index(args, flag)
	if i < 0 || i+1 >= len(args) {
		return ""
	}
	return args[i+1]
}
