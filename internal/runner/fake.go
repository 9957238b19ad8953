package runner

import (
	"context"
	"strings"
	"sync"
)

// Response is a pre-configured response for a command pattern.
type Response struct {
	Stdout string
	Stderr string
	Err    error
}

// FakeRunner records invocations and returns pre-configured responses.
// Exported for use by archive and command tests.
type FakeRunner struct {
	mu        sync.Mutex
	Calls     []Invocation
	responses map[string]Response // key: "name arg1 arg2..."
	fallback  Response
}

// NewFakeRunner creates a FakeRunner whose unmatched calls succeed.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		responses: make(map[string]Response),
	}
}

// SetResponse configures a response for a specific command string.
func (f *FakeRunner) SetResponse(cmd string, resp Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmd] = resp
}

// SetFallback sets the default response for unmatched commands.
func (f *FakeRunner) SetFallback(resp Response) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fallback = resp
}

// Run records the call and returns the matching response.
func (f *FakeRunner) Run(_ context.Context, inv Invocation) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	inv.Argv = append([]string(nil), inv.Argv...)
	f.Calls = append(f.Calls, inv)

	if resp, ok := f.responses[inv.String()]; ok {
		return resp.Stdout, resp.Stderr, resp.Err
	}

	// Program plus first flag, e.g. "tar -xzf"
	if len(inv.Argv) > 1 {
		if resp, ok := f.responses[inv.Argv[0]+" "+inv.Argv[1]]; ok {
			return resp.Stdout, resp.Stderr, resp.Err
		}
	}

	if resp, ok := f.responses[inv.Program()]; ok {
		return resp.Stdout, resp.Stderr, resp.Err
	}

	return f.fallback.Stdout, f.fallback.Stderr, f.fallback.Err
}

// Called returns true if a command matching the prefix was recorded.
func (f *FakeRunner) Called(prefix string) bool {
	return f.CallCount(prefix) > 0
}

// CallCount returns the number of times a command matching the prefix was called.
func (f *FakeRunner) CallCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if strings.HasPrefix(c.String(), prefix) {
			n++
		}
	}
	return n
}

// Last returns the most recent invocation and whether there was one.
func (f *FakeRunner) Last() (Invocation, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return Invocation{}, false
	}
	return f.Calls[len(f.Calls)-1], true
}

// Reset clears all recorded calls.
func (f *FakeRunner) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = nil
}

var _ CommandRunner = (*FakeRunner)(nil)
var _ CommandRunner = (*OSRunner)(nil)
