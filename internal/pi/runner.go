// Package pi wraps one isolated, non-interactive invocation of the pi
// coding-agent CLI: it spawns the child in structured-output mode, parses
// its newline-delimited JSON event stream, accumulates usage and tool-call
// statistics, and delivers incremental snapshots plus a final result.
package pi

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultBinary is the pi CLI looked up on PATH when Runner.Binary is unset.
const DefaultBinary = "pi"

// DefaultGrace is how long a cancelled child gets to exit after SIGTERM
// before it is force-killed.
const DefaultGrace = 5 * time.Second

// AbortedMessage marks results of runs that were cancelled by the caller.
const AbortedMessage = "aborted: subagent run cancelled"

// Runner executes subagent runs. The zero value is usable; it runs "pi"
// from PATH with the default grace window. A Runner is stateless and safe
// to share across concurrent runs.
type Runner struct {
	Binary  string
	Grace   time.Duration
	Verbose bool
}

// RunOptions configures a single run.
type RunOptions struct {
	// Task is the free-text instruction, passed as the final positional
	// argument. The runner does not guard against empty tasks; callers do.
	Task string

	// Dir is the working directory the child is launched in.
	Dir string

	// Model optionally overrides the child's model (--model).
	Model string

	// SystemPrompt is the persona text. The launch interface only accepts
	// a file path, so it is written to a private temporary file for the
	// duration of the run.
	SystemPrompt string

	// Tools is the restricted tool allowlist, passed comma-separated.
	Tools []string

	// OnProgress, when non-nil, is invoked synchronously with a snapshot
	// after every recognized event.
	OnProgress func(Snapshot)
}

// Run spawns one child process, drains its event stream, and returns the
// final result. Expected conditions — non-zero exit, abort, stderr output,
// failure to launch — are encoded in the Result, never returned as an
// error. A non-nil error means the run could not be attempted at all
// (temp file or pipe setup failed).
//
// Cancelling ctx sends SIGTERM to the child; if it has not exited within
// the grace window it is force-killed. The read loop keeps draining output
// until the child actually exits.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if ctx.Err() != nil {
		return &Result{Snapshot: Snapshot{Error: AbortedMessage}, ExitCode: 1}, nil
	}

	promptDir, err := os.MkdirTemp("", "pulsar-prompt-")
	if err != nil {
		return nil, fmt.Errorf("pi: create prompt dir: %w", err)
	}
	defer os.RemoveAll(promptDir)

	promptPath := filepath.Join(promptDir, "prompt.md")
	if err := os.WriteFile(promptPath, []byte(opts.SystemPrompt), 0o600); err != nil {
		return nil, fmt.Errorf("pi: write prompt file: %w", err)
	}

	args := buildArgs(opts, promptPath)

	cmd := exec.Command(r.binary(), args...)
	cmd.Dir = opts.Dir
	cmd.Env = buildEnv(os.Environ())
	cmd.SysProcAttr = sessionAttr()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("pi: stdout pipe: %w", err)
	}
	var stderr lockedBuffer
	cmd.Stderr = &stderr

	if r.Verbose {
		fmt.Fprintf(os.Stderr, "[pi] running: %s %s\n", r.binary(), strings.Join(args, " "))
	}

	if err := cmd.Start(); err != nil {
		msg := err.Error()
		if ctx.Err() != nil {
			msg = AbortedMessage
		}
		return &Result{Snapshot: Snapshot{Error: msg}, ExitCode: 1}, nil
	}

	// One-shot cancellation watcher, independent of the read loop: SIGTERM
	// the child's session on ctx cancellation, then SIGKILL it if it has
	// not exited within the grace window. The read loop keeps draining
	// output until the process actually exits.
	exited := make(chan struct{})
	go func() {
		select {
		case <-exited:
		case <-ctx.Done():
			_ = gracefulStop(cmd.Process)
			select {
			case <-exited:
			case <-time.After(r.grace()):
				_ = forceKill(cmd.Process)
			}
		}
	}()

	acc := &accumulator{}
	var lines lineBuffer
	consume := func(line []byte) {
		if acc.feedLine(line) && opts.OnProgress != nil {
			opts.OnProgress(acc.snapshot(stderr.String()))
		}
	}

	// Single-threaded cooperative consumption: one chunk at a time, in
	// emission order. The loop ends when the child closes stdout (exit or
	// force-kill after the grace window).
	buf := make([]byte, 32*1024)
	for {
		n, readErr := stdout.Read(buf)
		if n > 0 {
			lines.feed(buf[:n], consume)
		}
		if readErr != nil {
			break
		}
	}
	lines.flush(consume)

	waitErr := cmd.Wait()
	close(exited)

	res := &Result{Snapshot: acc.snapshot(stderr.String())}
	switch {
	case waitErr == nil:
		res.ExitCode = 0
	case cmd.ProcessState != nil && cmd.ProcessState.ExitCode() >= 0:
		res.ExitCode = cmd.ProcessState.ExitCode()
	default:
		// Killed by signal or never ran to completion.
		res.ExitCode = 1
	}

	if ctx.Err() != nil {
		res.Error = AbortedMessage
	} else if res.Error == "" && waitErr != nil {
		res.Error = waitErr.Error()
	}

	return res, nil
}

// Validate checks that the pi CLI is reachable and executable.
func (r *Runner) Validate() error {
	cmd := exec.Command(r.binary(), "--version")
	cmd.Env = buildEnv(os.Environ())

	out, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("pi: CLI not found at %q: %w", r.binary(), err)
	}
	if r.Verbose {
		fmt.Fprintf(os.Stderr, "[pi] version: %s", string(out))
	}
	return nil
}

func (r *Runner) binary() string {
	if r.Binary != "" {
		return r.Binary
	}
	return DefaultBinary
}

func (r *Runner) grace() time.Duration {
	if r.Grace > 0 {
		return r.Grace
	}
	return DefaultGrace
}

// buildArgs constructs the CLI arguments for one run: structured JSON
// output, single-shot prompt mode, no session persistence, the tool
// allowlist, the optional model override, the system-prompt file, and the
// task text as the final positional argument.
func buildArgs(opts RunOptions, promptPath string) []string {
	args := []string{"--mode", "json", "-p", "--no-session"}

	if len(opts.Tools) > 0 {
		args = append(args, "--tools", strings.Join(opts.Tools, ","))
	}
	if opts.Model != "" {
		args = append(args, "--model", opts.Model)
	}
	args = append(args, "--append-system-prompt", promptPath, opts.Task)
	return args
}

// buildEnv constructs the child environment. It strips PI_SESSION (so a
// nested invocation never attaches to the parent's conversation) and sets
// PI_NO_INTERACTIVE=1 to suppress any interactive surface during headless
// runs.
func buildEnv(base []string) []string {
	env := make([]string, 0, len(base)+1)
	for _, e := range base {
		if !strings.HasPrefix(e, "PI_SESSION=") {
			env = append(env, e)
		}
	}
	return append(env, "PI_NO_INTERACTIVE=1")
}

// lockedBuffer is a mutex-guarded byte buffer. The exec package writes
// stderr from its own goroutine, while progress snapshots read it from the
// consume loop.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
