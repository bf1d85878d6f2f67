// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gcp

import (
	"errors"
	"slices"
	"strings"

	"github.com/canonical/tenant-collector/internal/fetch"
	"github.com/canonical/tenant-collector/internal/process"
)

const loginRemedy = "Run `gcloud auth login` and `gcloud auth application-default login` and try again."

var (
	rateLimitMarkers    = []string{"RESOURCE_EXHAUSTED", "Quota exceeded", "rateLimitExceeded"}
	transientMarkers    = []string{"UNAVAILABLE", "503", "Connection reset by peer"}
	notLoggedInMarkers  = []string{"You do not currently have an active account selected", "Reauthentication failed", "problem refreshing your current auth tokens", "gcloud auth login"}
	unauthorizedMarkers = []string{"PERMISSION_DENIED", "does not have permission", "Access Denied"}
)

func containsAny(s string, markers []string) bool {
	return slices.ContainsFunc(markers, func(m string) bool {
		return strings.Contains(s, m)
	})
}

// classify maps gcloud and bq failure output to a fetch.Error.
func classify(cmd process.Command, res *process.Result) error {
	stderr := strings.TrimSpace(string(res.Stderr))
	cause := errors.New(cmd.String() + ": " + stderr)

	switch {
	case containsAny(stderr, rateLimitMarkers):
		return fetch.NewError(fetch.KindRateLimited, cause)
	case containsAny(stderr, notLoggedInMarkers):
		return &fetch.Error{Kind: fetch.KindNotLoggedIn, Remedy: loginRemedy, Err: cause}
	case containsAny(stderr, unauthorizedMarkers):
		return fetch.NewError(fetch.KindUnauthorized, cause)
	case containsAny(stderr, transientMarkers):
		return fetch.NewError(fetch.KindTransient, cause)
	}
	return process.UnclassifiedError(cmd, res)
}
