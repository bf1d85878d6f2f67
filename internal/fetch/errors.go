// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package fetch

import (
	"errors"
	"fmt"
	"time"
)

type Kind string

const (
	KindRateLimited      Kind = "rate_limited"
	KindTransient        Kind = "transient"
	KindUnauthorized     Kind = "unauthorized"
	KindNotLoggedIn      Kind = "not_logged_in"
	KindMissingExtension Kind = "missing_extension"
	KindMissingRole      Kind = "missing_role"
	KindInvalidTagValue  Kind = "invalid_tag_value"
)

// Error is a provider failure classified from the CLI output.
type Error struct {
	Kind Kind
	// RetryAfter is the server specified delay, zero when the provider gave none.
	RetryAfter time.Duration
	// Remedy tells the user how to fix the problem, e.g. the login command to run.
	Remedy string
	// Subject names the extension, role or tag the error is about.
	Subject string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Subject != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Subject)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Remedy != "" {
		msg = fmt.Sprintf("%s. %s", msg, e.Remedy)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether one more attempt may succeed.
func (e *Error) Retryable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindTransient
}

func NewError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// IsKind checks whether err carries a classified provider error of the given kind.
func IsKind(err error, kind Kind) bool {
	var fErr *Error
	if errors.As(err, &fErr) {
		return fErr.Kind == kind
	}
	return false
}

func isRetryable(err error) (*Error, bool) {
	var fErr *Error
	if errors.As(err, &fErr) && fErr.Retryable() {
		return fErr, true
	}
	return nil, false
}
