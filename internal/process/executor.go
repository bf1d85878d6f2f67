// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package process

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/canonical/tenant-collector/internal/fetch"
	"github.com/canonical/tenant-collector/internal/logging"
)

// Classifier turns the output of a failed command into an error, ideally a *fetch.Error.
type Classifier func(cmd Command, res *Result) error

// ExecutorInterface runs a command and returns its stdout, failing on a non-zero exit.
// Decorators implement it to add retries or remediation around a base executor.
type ExecutorInterface interface {
	Exec(context.Context, Command) ([]byte, error)
}

var (
	_ ExecutorInterface = (*Executor)(nil)
	_ ExecutorInterface = (*RetryingExecutor)(nil)
)

type Executor struct {
	runner   RunnerInterface
	classify Classifier
}

func (e *Executor) Exec(ctx context.Context, cmd Command) ([]byte, error) {
	res, err := e.runner.Run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if res.Failed() {
		return nil, e.classify(cmd, res)
	}
	return res.Stdout, nil
}

// NewExecutor uses classify for failed commands, or UnclassifiedError when it is nil.
func NewExecutor(runner RunnerInterface, classify Classifier) *Executor {
	if classify == nil {
		classify = UnclassifiedError
	}
	return &Executor{runner: runner, classify: classify}
}

// UnclassifiedError reports the command, exit code and stderr.
func UnclassifiedError(cmd Command, res *Result) error {
	return fmt.Errorf("%s exited with %d: %s", cmd, res.ExitCode, strings.TrimSpace(string(res.Stderr)))
}

// RetryingExecutor retries once on rate limit and transient failures.
type RetryingExecutor struct {
	next   ExecutorInterface
	policy fetch.RetryPolicy
}

func (r *RetryingExecutor) Exec(ctx context.Context, cmd Command) ([]byte, error) {
	return fetch.Retry(ctx, r.policy, func(ctx context.Context) ([]byte, error) {
		return r.next.Exec(ctx, cmd)
	})
}

func NewRetryingExecutor(next ExecutorInterface, policy fetch.RetryPolicy, logger logging.LoggerInterface) *RetryingExecutor {
	if policy.OnRetry == nil {
		policy.OnRetry = func(err error, delay time.Duration) {
			logger.Warnf("retrying in %s: %v", delay, err)
		}
	}
	return &RetryingExecutor{next: next, policy: policy}
}
