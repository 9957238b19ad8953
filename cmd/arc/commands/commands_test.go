package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ecairns22/arc/internal/runner"
	"github.com/spf13/cobra"
)

type harness struct {
	fake   *runner.FakeRunner
	root   *cobra.Command
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	dir    string
}

func newHarness(t *testing.T, configContent string) *harness {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "arc.conf")
	if configContent != "" {
		if err := os.WriteFile(cfgPath, []byte(configContent), 0644); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("ARC_CONFIG", cfgPath)
	testChdir(t, dir)

	fake := runner.NewFakeRunner()
	a := &app{
		runner: fake,
		lookPath: func(name string) (string, error) {
			if name == "rar" || name == "unrar" {
				return "", errors.New("not found")
			}
			return "/usr/bin/" + name, nil
		},
	}
	root := newRoot(a)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	return &harness{fake: fake, root: root, stdout: &stdout, stderr: &stderr, dir: dir}
}

func (h *harness) run(args ...string) int {
	return execute(h.root, args)
}

func (h *harness) touch(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(h.dir, name)
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractCommand(t *testing.T) {
	h := newHarness(t, "")
	h.touch(t, "src.tar.xz")

	if code := h.run("extract", "src.tar.xz"); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, h.stderr)
	}
	if !h.fake.Called("tar -xJf") {
		t.Errorf("expected tar -xJf, got %v", h.fake.Calls)
	}
	if !strings.Contains(h.stdout.String(), "src") {
		t.Errorf("stdout should name the output dir, got %q", h.stdout)
	}
}

func TestExtractMissingFileCommand(t *testing.T) {
	h := newHarness(t, "")

	code := h.run("x", "ghost.zip")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if got := h.stderr.String(); !strings.Contains(got, "[!] File not found: ghost.zip") {
		t.Errorf("stderr = %q", got)
	}
	if len(h.fake.Calls) != 0 {
		t.Errorf("no process should be spawned, got %v", h.fake.Calls)
	}
}

func TestExtractUnsupportedCommand(t *testing.T) {
	h := newHarness(t, "")
	h.touch(t, "notes.foo")

	if code := h.run("extract", "notes.foo"); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if got := h.stderr.String(); !strings.Contains(got, "[!] Unsupported file format for extraction: .foo") {
		t.Errorf("stderr = %q", got)
	}
}

func TestCompressDefaultOutputCommand(t *testing.T) {
	h := newHarness(t, "")
	if err := os.Mkdir(filepath.Join(h.dir, "data"), 0755); err != nil {
		t.Fatal(err)
	}

	if code := h.run("compress", "data"); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, h.stderr)
	}
	if !h.fake.Called("zip -r data.zip data") {
		t.Errorf("expected zip -r data.zip data, got %v", h.fake.Calls)
	}
}

func TestCompressOutputFlagAndArg(t *testing.T) {
	h := newHarness(t, "")
	h.touch(t, "a.txt")

	if code := h.run("c", "a.txt", "-o", "a.7z"); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, h.stderr)
	}
	if !h.fake.Called("7z a a.7z a.txt") {
		t.Errorf("expected 7z a a.7z a.txt, got %v", h.fake.Calls)
	}
}

func TestToolMissingCommand(t *testing.T) {
	h := newHarness(t, "")
	h.touch(t, "a.rar")
	h.fake.SetResponse("unrar", runner.Response{Err: &exec.Error{Name: "unrar", Err: exec.ErrNotFound}})

	if code := h.run("extract", "a.rar"); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	got := h.stderr.String()
	if !strings.Contains(got, "[!] Command not found: unrar") || !strings.Contains(got, "[!] Please install unrar") {
		t.Errorf("stderr = %q", got)
	}
}

func TestToolFailureCommand(t *testing.T) {
	h := newHarness(t, "")
	src := h.touch(t, "a.zip")
	h.fake.SetResponse("unzip", runner.Response{Err: fmt.Errorf("exit status 9")})

	if code := h.run("extract", "a.zip"); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	got := h.stderr.String()
	if !strings.Contains(got, "[!] Command failed: unzip -q "+src) {
		t.Errorf("stderr should include the command line, got %q", got)
	}
	if !strings.Contains(got, "[!] Error: exit status 9") {
		t.Errorf("stderr should include the error, got %q", got)
	}
}

func TestToolOverrideFromConfig(t *testing.T) {
	h := newHarness(t, "[tools]\n7z = \"7zz\"\n")
	h.touch(t, "b.7z")

	if code := h.run("extract", "b.7z"); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, h.stderr)
	}
	if !h.fake.Called("7zz x") {
		t.Errorf("expected 7zz, got %v", h.fake.Calls)
	}
}

func TestCheckCommand(t *testing.T) {
	h := newHarness(t, "")
	if code := h.run("check"); code != 0 {
		t.Fatalf("check should be advisory, exit code = %d", code)
	}
	if got := h.stdout.String(); !strings.Contains(got, "Missing: unrar, rar") {
		t.Errorf("stdout = %q", got)
	}

	h = newHarness(t, "")
	if code := h.run("check", "--strict"); code != 1 {
		t.Errorf("strict check exit code = %d, want 1", code)
	}
}

func TestCheckWritesConfig(t *testing.T) {
	h := newHarness(t, "")
	if code := h.run("check", "--write-config"); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, h.stderr)
	}
	data, err := os.ReadFile(filepath.Join(h.dir, "arc.conf"))
	if err != nil {
		t.Fatalf("config template not written: %v", err)
	}
	if !strings.Contains(string(data), "[history]") {
		t.Error("template should contain [history]")
	}
}

func TestFormatsCommand(t *testing.T) {
	h := newHarness(t, "")
	if code := h.run("formats"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	out := h.stdout.String()
	for _, want := range []string{".tar.gz", "tar -xzf", "tar -czf", "gunzip", "unrar x", "rar a"} {
		if !strings.Contains(out, want) {
			t.Errorf("formats output missing %q", want)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, ".xz ") && !strings.HasSuffix(strings.TrimSpace(line), " -") {
			t.Errorf("extract-only row should show - for compress, got %q", line)
		}
		if strings.ContainsFunc(line, func(r rune) bool { return r > 0x7f }) {
			t.Errorf("formats output should be plain ASCII, got %q", line)
		}
	}
}

func TestInfoCommand(t *testing.T) {
	h := newHarness(t, "")
	h.touch(t, "pics.tgz")
	if code := h.run("info", "pics.tgz"); code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, h.stderr)
	}
	out := h.stdout.String()
	if !strings.Contains(out, "Format:   .tgz") || !strings.Contains(out, "Size:     1 B") {
		t.Errorf("info output = %q", out)
	}
}

func TestHistoryCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "h.db")
	h := newHarness(t, fmt.Sprintf("[history]\nenabled = true\npath = %q\n", dbPath))
	h.touch(t, "a.zip")

	if code := h.run("extract", "a.zip"); code != 0 {
		t.Fatalf("extract exit code = %d, stderr: %s", code, h.stderr)
	}

	h2 := newHarness(t, fmt.Sprintf("[history]\nenabled = true\npath = %q\n", dbPath))
	if code := h2.run("history"); code != 0 {
		t.Fatalf("history exit code = %d, stderr: %s", code, h2.stderr)
	}
	if got := h2.stdout.String(); !strings.Contains(got, "extract") || !strings.Contains(got, "unzip -q") {
		t.Errorf("history output = %q", got)
	}
}

func TestHistoryDisabled(t *testing.T) {
	h := newHarness(t, "")
	if code := h.run("history"); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(h.stdout.String(), "History is disabled") {
		t.Errorf("stdout = %q", h.stdout)
	}
}

func TestDiagnosticsFallback(t *testing.T) {
	lines := Diagnostics(errors.New("something odd"))
	if len(lines) != 1 || lines[0] != "[!] something odd" {
		t.Errorf("Diagnostics = %v", lines)
	}
}
