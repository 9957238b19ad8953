// Package archive implements the extract and compress operations by
// resolving a format and handing the command to a runner.
package archive

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ecairns22/arc/internal/fileinfo"
	"github.com/ecairns22/arc/internal/formats"
	"github.com/ecairns22/arc/internal/history"
	"github.com/ecairns22/arc/internal/runner"
	"github.com/sirupsen/logrus"
)

// ErrPathNotFound is matched by every NotFoundError.
var ErrPathNotFound = errors.New("path not found")

// NotFoundError is returned before any process is spawned when the subject
// of an operation does not exist.
type NotFoundError struct {
	Op   formats.Op
	Path string
}

func (e *NotFoundError) Error() string {
	if e.Op == formats.OpCompress {
		return fmt.Sprintf("source not found: %s", e.Path)
	}
	return fmt.Sprintf("file not found: %s", e.Path)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrPathNotFound }

// Recorder stores a log entry for each spawned command.
type Recorder interface {
	Append(ctx context.Context, e *history.Entry) error
}

// Options configures an Archiver. Runner is required.
type Options struct {
	Runner runner.CommandRunner
	Logger *logrus.Logger
	// History is optional.
	History Recorder
	// DestDir is the parent of extraction output directories. Empty means
	// the current directory.
	DestDir string
	// Program maps a table program name to the executable to run.
	Program func(name string) string
	// Timeout bounds each external command. Zero waits indefinitely.
	Timeout time.Duration
}

// Archiver runs one extract or compress request at a time.
type Archiver struct {
	runner  runner.CommandRunner
	log     *logrus.Logger
	history Recorder
	destDir string
	program func(string) string
	timeout time.Duration
}

// New creates an Archiver from opts.
func New(opts Options) *Archiver {
	a := &Archiver{
		runner:  opts.Runner,
		log:     opts.Logger,
		history: opts.History,
		destDir: opts.DestDir,
		program: opts.Program,
		timeout: opts.Timeout,
	}
	if a.log == nil {
		a.log = logrus.New()
		a.log.SetLevel(logrus.WarnLevel)
	}
	if a.program == nil {
		a.program = func(name string) string { return name }
	}
	return a
}

// Result describes what was run.
type Result struct {
	Op        formats.Op
	Ext       string
	Argv      []string
	OutputDir string
	Target    string
}

// Extract unpacks path into a directory named after it.
func (a *Archiver) Extract(ctx context.Context, path string) (*Result, error) {
	if !fileinfo.Validate(path) {
		return nil, &NotFoundError{Op: formats.OpExtract, Path: path}
	}

	res, err := formats.ResolveExtract(path)
	if err != nil {
		return nil, err
	}

	// The child runs inside the output directory, so it needs a path that
	// does not depend on the caller's working directory.
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	var dir string
	if res.OutputDir != "" {
		dir = filepath.Join(a.destDir, res.OutputDir)
	}

	result := &Result{
		Op:        formats.OpExtract,
		Ext:       res.Ext,
		Argv:      a.argv(res.Template, abs),
		OutputDir: dir,
		Target:    dir,
	}
	a.log.WithFields(logrus.Fields{"ext": res.Ext, "path": path, "dir": dir}).Debug("resolved extraction")

	err = a.exec(ctx, result, runner.Invocation{Argv: result.Argv, Dir: dir}, path)
	return result, err
}

// Compress archives source into output. An empty output means
// "<source>.zip".
func (a *Archiver) Compress(ctx context.Context, source, output string) (*Result, error) {
	if !fileinfo.Exists(source) {
		return nil, &NotFoundError{Op: formats.OpCompress, Path: source}
	}
	if output == "" {
		output = formats.DefaultCompressOutput(source)
	}

	res, err := formats.ResolveCompress(output)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Op:     formats.OpCompress,
		Ext:    res.Ext,
		Argv:   a.argv(res.Template, output, source),
		Target: output,
	}
	a.log.WithFields(logrus.Fields{"ext": res.Ext, "source": source, "output": output}).Debug("resolved compression")

	err = a.exec(ctx, result, runner.Invocation{Argv: result.Argv}, source)
	return result, err
}

func (a *Archiver) argv(tmpl formats.Template, args ...string) []string {
	argv := tmpl.With(args...)
	argv[0] = a.program(argv[0])
	return argv
}

func (a *Archiver) exec(ctx context.Context, result *Result, inv runner.Invocation, source string) error {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	err := runner.Exec(ctx, a.runner, inv, a.log)
	a.record(ctx, result, source, err)
	return err
}

func (a *Archiver) record(ctx context.Context, result *Result, source string, runErr error) {
	status := runner.StatusOf(runErr)
	if a.history == nil || status == runner.StatusNotRun {
		return
	}
	entry := &history.Entry{
		Op:       opName(result.Op),
		Source:   source,
		Target:   result.Target,
		Argv:     result.Argv,
		Status:   string(status),
		ExitCode: runner.ExitCode(runErr),
	}
	if runErr != nil {
		entry.Detail = runErr.Error()
	}
	// The command's own deadline must not prevent the write.
	if err := a.history.Append(context.WithoutCancel(ctx), entry); err != nil {
		a.log.WithError(err).Warn("could not record history")
	}
}

func opName(op formats.Op) string {
	if op == formats.OpCompress {
		return "compress"
	}
	return "extract"
}
