// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package azure

import (
	"errors"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/canonical/tenant-collector/internal/fetch"
	"github.com/canonical/tenant-collector/internal/process"
)

const loginRemedy = "Run `az login` and try again."

var (
	retryAfter       = regexp.MustCompile(`(?i)retry after (\d+) seconds?`)
	missingExtension = regexp.MustCompile(`'(\w+)' is misspelled or not recognized by the system`)

	rateLimitMarkers    = []string{"Too many requests", "TooManyRequests", "(429)"}
	transientMarkers    = []string{"CERTIFICATE_VERIFY_FAILED", "401 Client Error", "InvalidAuthenticationTokenTenant", "ExpiredAuthenticationToken"}
	notLoggedInMarkers  = []string{"Please run 'az login'", "az login", "No subscription found"}
	unauthorizedMarkers = []string{"AuthorizationFailed", "does not have authorization", "RBACAccessDenied"}
)

func containsAny(s string, markers []string) bool {
	return slices.ContainsFunc(markers, func(m string) bool {
		return strings.Contains(s, m)
	})
}

// classify maps az CLI failure output to a fetch.Error. Order matters: az appends a login
// hint to some token errors that are worth one retry.
func classify(cmd process.Command, res *process.Result) error {
	stderr := strings.TrimSpace(string(res.Stderr))
	cause := errors.New(cmd.String() + ": " + stderr)

	if m := missingExtension.FindStringSubmatch(stderr); m != nil {
		return &fetch.Error{Kind: fetch.KindMissingExtension, Subject: m[1], Err: cause}
	}

	switch {
	case containsAny(stderr, rateLimitMarkers) || retryAfter.MatchString(stderr):
		e := fetch.NewError(fetch.KindRateLimited, cause)
		if m := retryAfter.FindStringSubmatch(stderr); m != nil {
			if secs, err := strconv.Atoi(m[1]); err == nil {
				e.RetryAfter = time.Duration(secs) * time.Second
			}
		}
		return e
	case containsAny(stderr, transientMarkers):
		return fetch.NewError(fetch.KindTransient, cause)
	case containsAny(stderr, unauthorizedMarkers):
		return fetch.NewError(fetch.KindUnauthorized, cause)
	case containsAny(stderr, notLoggedInMarkers):
		return &fetch.Error{Kind: fetch.KindNotLoggedIn, Remedy: loginRemedy, Err: cause}
	}
	return process.UnclassifiedError(cmd, res)
}
