package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Invocation is one concrete external process call.
type Invocation struct {
	Argv []string
	// Dir is the working directory for the child. Empty means the caller's
	// current directory.
	Dir string
}

// Program returns the executable name.
func (inv Invocation) Program() string {
	if len(inv.Argv) == 0 {
		return ""
	}
	return inv.Argv[0]
}

func (inv Invocation) String() string {
	return strings.Join(inv.Argv, " ")
}

// CommandRunner abstracts command execution for testability.
type CommandRunner interface {
	Run(ctx context.Context, inv Invocation) (stdout, stderr string, err error)
}

// OSRunner executes commands via os/exec. Output is captured and, when
// Stdout or Stderr is set, also copied there as the child writes it. Stdin
// is handed to the child so tools can prompt; nil means no input.
type OSRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (r *OSRunner) Run(ctx context.Context, inv Invocation) (string, string, error) {
	if len(inv.Argv) == 0 {
		return "", "", fmt.Errorf("empty command")
	}
	cmd := exec.CommandContext(ctx, inv.Argv[0], inv.Argv[1:]...)
	cmd.Dir = inv.Dir
	cmd.Stdin = r.Stdin

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = tee(&outBuf, r.Stdout)
	cmd.Stderr = tee(&errBuf, r.Stderr)
	err := cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}
