// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/canonical/tenant-collector/internal/logging"
	"github.com/canonical/tenant-collector/internal/monitoring"
	"github.com/canonical/tenant-collector/internal/tracing"
)

// Command is an argument vector plus optional environment and working directory overrides.
type Command struct {
	Args []string
	Env  map[string]string
	Dir  string
}

func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Result carries the exit status and captured output of a finished process.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

func (r *Result) Failed() bool {
	return r.ExitCode != 0
}

var _ RunnerInterface = (*Runner)(nil)

// Runner launches real processes. A non-zero exit is not an error, callers classify the output.
type Runner struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (r *Runner) Run(ctx context.Context, cmd Command) (*Result, error) {
	ctx, span := r.tracer.Start(ctx, "process.Runner.Run")
	defer span.End()

	if len(cmd.Args) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	c := exec.CommandContext(ctx, cmd.Args[0], cmd.Args[1:]...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = os.Environ()
		for k, v := range cmd.Env {
			c.Env = append(c.Env, k+"="+v)
		}
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	r.logger.Debugf("running %s", cmd)

	start := time.Now()
	err := c.Run()

	r.monitor.SetResponseTimeMetric(
		map[string]string{"platform": cmd.Args[0], "command": subcommand(cmd.Args)},
		time.Since(start).Seconds(),
	)

	res := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to run %s: %w", cmd.Args[0], err)
	}

	return res, nil
}

func subcommand(args []string) string {
	if len(args) < 2 {
		return ""
	}
	return args[1]
}

func NewRunner(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Runner {
	r := new(Runner)

	r.tracer = tracer
	r.monitor = monitor
	r.logger = logger

	return r
}
