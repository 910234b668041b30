// Package tui is the live terminal view for a single subagent run. It is
// strictly a consumer of pi.Snapshot values; all accumulation lives in the
// runner.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/pulsar/internal/pi"
)

// MsgSnapshot delivers a progress snapshot from the run.
type MsgSnapshot pi.Snapshot

// MsgDone delivers the final result and ends the program.
type MsgDone struct {
	Result *pi.Result
}

// Model is the bubbletea model for one run. Collapsed mode shows the
// header, usage line, and the most recent tool calls; expanded mode adds
// the full tool-call list and an output preview. Tab toggles between the
// two.
type Model struct {
	persona string
	task    string
	spin    spinner.Model
	cancel  context.CancelFunc

	snaps <-chan pi.Snapshot
	done  <-chan *pi.Result

	snap      pi.Snapshot
	result    *pi.Result
	expanded  bool
	cancelled bool
	width     int
}

// New builds a Model wired to a running subagent. cancel aborts the run;
// snaps and done are fed by the caller's run goroutine.
func New(persona, task string, snaps <-chan pi.Snapshot, done <-chan *pi.Result, cancel context.CancelFunc) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return Model{
		persona: persona,
		task:    task,
		spin:    sp,
		cancel:  cancel,
		snaps:   snaps,
		done:    done,
		width:   80,
	}
}

// Result returns the final run result once the program has finished.
func (m Model) Result() *pi.Result {
	return m.result
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, waitSnapshot(m.snaps), waitDone(m.done))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "e":
			m.expanded = !m.expanded
			return m, nil
		case "ctrl+c", "q":
			// Cancel the run and keep going until MsgDone arrives so the
			// final (aborted) result is still surfaced.
			m.cancelled = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}

	case MsgSnapshot:
		m.snap = pi.Snapshot(msg)
		return m, waitSnapshot(m.snaps)

	case MsgDone:
		m.result = msg.Result
		if m.result != nil {
			m.snap = m.result.Snapshot
		}
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.headerLine())
	b.WriteByte('\n')
	b.WriteString(UsageLine(m.snap.Usage))
	b.WriteByte('\n')

	max := collapsedToolCalls
	if m.expanded {
		max = 0
	}
	b.WriteString(RenderToolCalls(m.snap.ToolCalls, max, m.width))
	b.WriteByte('\n')

	if m.expanded {
		b.WriteString(RenderOutputPreview(m.snap.Output, m.width))
		b.WriteByte('\n')
	}

	if m.result == nil {
		hint := "tab expand · ctrl+c cancel"
		if m.expanded {
			hint = "tab collapse · ctrl+c cancel"
		}
		b.WriteString(styleFooter.Render(hint))
		b.WriteByte('\n')
	}

	return b.String()
}

func (m Model) headerLine() string {
	status := m.spin.View()
	switch {
	case m.result != nil && m.result.Failed():
		status = styleError.Render(iconFailed)
	case m.result != nil:
		status = styleDone.Render(iconDone)
	case m.cancelled:
		status = styleError.Render("stopping…")
	}

	model := m.snap.Model
	if model != "" {
		model = styleUsage.Render(" " + model)
	}
	header := fmt.Sprintf("%s %s%s %s",
		status,
		styleHeader.Render(m.persona),
		model,
		styleTask.Render(truncate(m.task, m.width/2)))
	return truncate(header, m.width)
}

func waitSnapshot(ch <-chan pi.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return MsgSnapshot(s)
	}
}

func waitDone(ch <-chan *pi.Result) tea.Cmd {
	return func() tea.Msg {
		return MsgDone{Result: <-ch}
	}
}
