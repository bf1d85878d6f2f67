// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package assignment

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/canonical/tenant-collector/internal/types"
)

var (
	ErrUnknownScope         = errors.New("unknown role assignment scope")
	ErrUnknownPrincipalType = errors.New("unknown principal type")
)

// Matcher reports whether scope has the expected shape and, if so, the id to record for it.
type Matcher func(scope string) (id string, ok bool)

// Exact matches a fixed scope string, the recorded id is empty.
func Exact(s string) Matcher {
	return func(scope string) (string, bool) {
		return "", scope == s
	}
}

// Pattern matches a regular expression. The first capture group, if any, is the recorded id.
func Pattern(expr string) Matcher {
	re := regexp.MustCompile(expr)

	return func(scope string) (string, bool) {
		m := re.FindStringSubmatch(scope)
		if m == nil {
			return "", false
		}
		if len(m) > 1 {
			return m[1], true
		}
		return "", true
	}
}

type Rule struct {
	Source types.AssignmentSource
	Match  Matcher
}

// Classifier maps a provider scope to the hierarchy level the binding was made at.
// Rules are evaluated in order and the first match wins.
type Classifier struct {
	rules []Rule
}

func NewClassifier(rules ...Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify never guesses: a scope no rule recognises is an error.
func (c *Classifier) Classify(scope string) (types.AssignmentSource, string, error) {
	for _, r := range c.rules {
		if id, ok := r.Match(scope); ok {
			return r.Source, id, nil
		}
	}
	return "", "", fmt.Errorf("%w: %q", ErrUnknownScope, scope)
}

// PrincipalTypes resolves provider principal kinds to the uniform principal types.
type PrincipalTypes map[string]types.PrincipalType

func (p PrincipalTypes) Resolve(raw string) (types.PrincipalType, error) {
	if t, ok := p[raw]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPrincipalType, raw)
}
