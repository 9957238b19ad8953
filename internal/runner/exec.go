package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// Status classifies the result of an invocation.
type Status string

const (
	StatusSuccess     Status = "success"
	StatusToolFailure Status = "tool_failure"
	StatusToolMissing Status = "tool_missing"
	// StatusNotRun means no process was started, e.g. the output directory
	// could not be created.
	StatusNotRun Status = "not_run"
)

// ToolMissingError means the executable could not be found.
type ToolMissingError struct {
	Tool string
	Err  error
}

func (e *ToolMissingError) Error() string {
	return fmt.Sprintf("command not found: %s", e.Tool)
}

func (e *ToolMissingError) Unwrap() error { return e.Err }

// ToolFailureError means the child ran and did not exit cleanly.
type ToolFailureError struct {
	Command  string
	Stderr   string
	ExitCode int
	Err      error
}

func (e *ToolFailureError) Error() string {
	msg := fmt.Sprintf("command failed: %s: %v", e.Command, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ToolFailureError) Unwrap() error { return e.Err }

// StatusOf maps an error returned by Exec to its Status.
func StatusOf(err error) Status {
	var (
		missing *ToolMissingError
		failure *ToolFailureError
	)
	switch {
	case err == nil:
		return StatusSuccess
	case errors.As(err, &missing):
		return StatusToolMissing
	case errors.As(err, &failure):
		return StatusToolFailure
	default:
		return StatusNotRun
	}
}

// ExitCode returns the child's exit status for err, 0 for nil and -1 when
// the process never produced one.
func ExitCode(err error) int {
	var failure *ToolFailureError
	if err == nil {
		return 0
	}
	if errors.As(err, &failure) {
		return failure.ExitCode
	}
	return -1
}

// Exec creates inv.Dir if it is set, runs the invocation through r and
// classifies the result. It blocks until the child exits or ctx is done.
// A created directory is left in place when the command fails.
func Exec(ctx context.Context, r CommandRunner, inv Invocation, log *logrus.Logger) error {
	if len(inv.Argv) == 0 {
		return fmt.Errorf("empty command")
	}
	entry := logEntry(log).WithFields(logrus.Fields{
		"tool": inv.Program(),
		"args": inv.Argv[1:],
		"dir":  inv.Dir,
	})

	if inv.Dir != "" {
		if err := os.MkdirAll(inv.Dir, 0755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", inv.Dir, err)
		}
	}

	entry.Debug("running command")
	_, stderr, err := r.Run(ctx, inv)
	if err == nil {
		entry.Debug("command succeeded")
		return nil
	}

	if isNotFound(err) {
		entry.WithError(err).Debug("command not found")
		return &ToolMissingError{Tool: inv.Program(), Err: err}
	}

	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	entry.WithError(err).WithField("exit_code", code).Debug("command failed")
	return &ToolFailureError{
		Command:  inv.String(),
		Stderr:   stderr,
		ExitCode: code,
		Err:      err,
	}
}

func isNotFound(err error) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false
	}
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

func logEntry(log *logrus.Logger) *logrus.Entry {
	if log == nil {
		log = logrus.New()
		log.SetLevel(logrus.PanicLevel)
	}
	return logrus.NewEntry(log)
}
