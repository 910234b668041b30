package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/pulsar/internal/agent"
	"github.com/papapumpkin/pulsar/internal/ansi"
	"github.com/papapumpkin/pulsar/internal/config"
	"github.com/papapumpkin/pulsar/internal/pi"
	"github.com/papapumpkin/pulsar/internal/telemetry"
	"github.com/papapumpkin/pulsar/internal/tui"
)

// personaFlags holds the per-run overrides shared by every persona command.
type personaFlags struct {
	model   string
	dir     string
	tools   []string
	watch   bool
	timeout time.Duration
}

// newPersonaCommand builds a cobra command that runs one named persona.
// All persona commands share flags and run plumbing; only the persona
// resolution differs.
func newPersonaCommand(name, short, long string) *cobra.Command {
	flags := &personaFlags{}
	cmd := &cobra.Command{
		Use:   name + " <task>",
		Short: short,
		Long:  long,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPersona(name, strings.Join(args, " "), flags)
		},
	}
	cmd.Flags().StringVarP(&flags.model, "model", "m", "", "model override (provider/id)")
	cmd.Flags().StringVarP(&flags.dir, "dir", "d", "", "working directory for the subagent")
	cmd.Flags().StringSliceVar(&flags.tools, "tools", nil, "tool allowlist override")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "live progress view")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "abort the run after this duration")
	return cmd
}

func runPersona(name, task string, flags *personaFlags) error {
	if strings.TrimSpace(task) == "" {
		return fmt.Errorf("task must not be empty")
	}

	cfg := config.Load()

	custom, err := agent.LoadDir(cfg.PersonasDir)
	if err != nil {
		return err
	}
	persona, ok := agent.Resolve(name, custom)
	if !ok {
		return fmt.Errorf("unknown persona %q", name)
	}

	model := flags.model
	if model == "" {
		model = cfg.ModelFor(persona.Name)
	}
	if model == "" {
		model = persona.Model
	}

	tools := persona.Tools
	if len(flags.tools) > 0 {
		tools = flags.tools
	}

	dir := flags.dir
	if dir == "" {
		dir = cfg.WorkDir
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}

	runner := &pi.Runner{
		Binary:  cfg.PiPath,
		Grace:   time.Duration(cfg.GraceSeconds) * time.Second,
		Verbose: cfg.Verbose,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if flags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.timeout)
		defer cancel()
	}

	emitter, err := telemetry.NewEmitter(cfg.HistoryPath)
	if err != nil {
		// History is best-effort; the run proceeds without it.
		fmt.Fprintf(os.Stderr, "%swarning: %v%s\n", ansi.Yellow, err, ansi.Reset)
		emitter = nil
	}
	defer emitter.Close()

	runID := uuid.NewString()
	started := time.Now()
	_ = emitter.Emit(telemetry.Event{
		Timestamp: started,
		Kind:      telemetry.KindRunStart,
		RunID:     runID,
		Persona:   persona.Name,
		Data:      map[string]string{"task": task, "model": model},
	})

	opts := pi.RunOptions{
		Task:  task,
		Dir:   dir,
		Model: model,
		SystemPrompt: agent.BuildSystemPrompt(persona.SystemPrompt, agent.PromptOpts{
			RepoContext: cfg.RepoContext,
			Addendum:    cfg.PromptAddendum,
		}),
		Tools: tools,
	}

	var res *pi.Result
	if flags.watch {
		res, err = runWatch(ctx, runner, opts, persona.Name, task)
	} else {
		res, err = runPlain(ctx, runner, opts, persona.Name)
	}
	elapsed := time.Since(started)

	if err != nil {
		_ = emitter.Emit(telemetry.Event{
			Timestamp: time.Now(),
			Kind:      telemetry.KindRunDone,
			RunID:     runID,
			Persona:   persona.Name,
			Data:      telemetry.RunOutcome{ExitCode: 1, DurationMs: elapsed.Milliseconds(), Error: err.Error()},
		})
		return err
	}

	kind := telemetry.KindRunDone
	if res.Error == pi.AbortedMessage {
		kind = telemetry.KindRunAborted
	}
	_ = emitter.Emit(telemetry.Event{
		Timestamp: time.Now(),
		Kind:      kind,
		RunID:     runID,
		Persona:   persona.Name,
		Data: telemetry.RunOutcome{
			Model:            res.Model,
			ExitCode:         res.ExitCode,
			DurationMs:       elapsed.Milliseconds(),
			Turns:            res.Usage.Turns,
			InputTokens:      res.Usage.InputTokens,
			OutputTokens:     res.Usage.OutputTokens,
			CacheReadTokens:  res.Usage.CacheReadTokens,
			CacheWriteTokens: res.Usage.CacheWriteTokens,
			CostUSD:          res.Usage.CostUSD,
			ToolCalls:        len(res.ToolCalls),
			Error:            res.Error,
		},
	})

	printSummary(persona.Name, res, elapsed)
	if res.Failed() {
		return fmt.Errorf("%s: %s", persona.Name, res.FailureMessage())
	}
	fmt.Println(res.Output)
	return nil
}

// runPlain streams progress as dim log lines on stderr and returns the
// final result. Output stays on stdout so answers can be piped.
func runPlain(ctx context.Context, runner *pi.Runner, opts pi.RunOptions, persona string) (*pi.Result, error) {
	fmt.Fprintf(os.Stderr, "%s%s%s %sthinking...%s\n", ansi.Cyan, persona, ansi.Reset, ansi.Dim, ansi.Reset)
	progress := &plainProgress{}
	opts.OnProgress = progress.update
	return runner.Run(ctx, opts)
}

// plainProgress prints each new tool call and turn boundary as it arrives.
type plainProgress struct {
	seenCalls int
	seenTurns int
}

func (p *plainProgress) update(s pi.Snapshot) {
	for _, tc := range s.ToolCalls[p.seenCalls:] {
		fmt.Fprintf(os.Stderr, "%s  · %s%s\n", ansi.Dim, tc.Name, ansi.Reset)
	}
	p.seenCalls = len(s.ToolCalls)
	if s.Usage.Turns > p.seenTurns {
		p.seenTurns = s.Usage.Turns
		fmt.Fprintf(os.Stderr, "%s  turn %d · %d tok · $%.4f%s\n",
			ansi.Dim, s.Usage.Turns, s.Usage.TotalTokens(), s.Usage.CostUSD, ansi.Reset)
	}
}

// runWatch runs the subagent behind the live bubbletea view. The run is
// driven from a goroutine; snapshots reach the view through a buffered
// channel with a drop-oldest-free policy so the reader never stalls the
// stream.
func runWatch(ctx context.Context, runner *pi.Runner, opts pi.RunOptions, persona, task string) (*pi.Result, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	snaps := make(chan pi.Snapshot, 8)
	done := make(chan *pi.Result, 1)
	opts.OnProgress = func(s pi.Snapshot) {
		select {
		case snaps <- s:
		default:
		}
	}

	var runErr error
	go func() {
		res, err := runner.Run(runCtx, opts)
		runErr = err
		done <- res
		// No further sends can happen; close both channels so any later
		// receive completes instead of blocking.
		close(done)
		close(snaps)
	}()

	prog := newWatchProgram(tui.New(persona, task, snaps, done, cancel))
	final, err := prog.Run()
	if err != nil {
		cancel()
		<-done
		if runErr != nil {
			return nil, runErr
		}
		return nil, fmt.Errorf("watch view: %w", err)
	}
	res := final.(tui.Model).Result()
	if res == nil {
		// Either the view quit before the run finished, or the runner
		// failed and delivered a nil result. Wait out the run; on the
		// closed channel this returns immediately.
		cancel()
		res = <-done
	}
	if runErr != nil {
		return nil, runErr
	}
	return res, nil
}

// newWatchProgram builds the bubbletea program for watch mode. A variable
// so tests can run the view with headless input/output.
var newWatchProgram = func(m tui.Model) *tea.Program {
	return tea.NewProgram(m)
}

func printSummary(persona string, res *pi.Result, elapsed time.Duration) {
	status := ansi.Green + "done" + ansi.Reset
	if res.Failed() {
		status = ansi.Red + "failed" + ansi.Reset
	}
	fmt.Fprintf(os.Stderr, "%s%s %s%s in %s · %d turns · %d tool calls · %d tok · $%.4f\n",
		ansi.Bold, persona, ansi.Reset, " "+status,
		elapsed.Round(time.Second), res.Usage.Turns, len(res.ToolCalls),
		res.Usage.TotalTokens(), res.Usage.CostUSD)
}
