//go:build !windows

package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/papapumpkin/pulsar/internal/pi"
	"github.com/papapumpkin/pulsar/internal/tui"
)

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}
}

// withHeadlessProgram swaps the watch-mode program constructor for one
// that needs no terminal, restoring it when the test ends.
func withHeadlessProgram(t *testing.T) {
	t.Helper()
	prev := newWatchProgram
	newWatchProgram = func(m tui.Model) *tea.Program {
		return tea.NewProgram(m, tea.WithInput(strings.NewReader("")), tea.WithOutput(io.Discard))
	}
	t.Cleanup(func() { newWatchProgram = prev })
}

func TestRunWatch_RunnerSetupErrorReturns(t *testing.T) {
	// Point the temp root at a missing directory so the runner fails
	// before spawning anything.
	t.Setenv("TMPDIR", filepath.Join(t.TempDir(), "missing"))
	withHeadlessProgram(t)

	runner := &pi.Runner{Binary: "pi"}

	type outcome struct {
		res *pi.Result
		err error
	}
	got := make(chan outcome, 1)
	go func() {
		res, err := runWatch(context.Background(), runner, pi.RunOptions{Task: "hi"}, "librarian", "hi")
		got <- outcome{res, err}
	}()

	select {
	case o := <-got:
		if o.err == nil {
			t.Fatalf("runWatch error = nil, res = %+v, want prompt-dir failure", o.res)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runWatch did not return after the runner failed")
	}
}

func TestRunWatch_DeliversResult(t *testing.T) {
	withHeadlessProgram(t)

	dir := t.TempDir()
	script := filepath.Join(dir, "pi")
	writeScript(t, script, `#!/bin/sh
echo '{"type":"message_end","message":{"role":"assistant","content":[{"type":"text","text":"Hello"}]}}'
`)

	runner := &pi.Runner{Binary: script}
	res, err := runWatch(context.Background(), runner, pi.RunOptions{Task: "hi"}, "librarian", "hi")
	if err != nil {
		t.Fatalf("runWatch: %v", err)
	}
	if res == nil || res.Output != "Hello" || res.ExitCode != 0 {
		t.Fatalf("res = %+v, want output Hello with exit 0", res)
	}
}
