package pi

import (
	"bytes"
	"encoding/json"
	"strings"
)

// lineBuffer splits an arbitrary chunked byte stream into newline-terminated
// lines. An incomplete trailing fragment is held over to the next chunk and
// only surfaced by flush. The accumulated state must be identical no matter
// where the chunk boundaries fall, including mid-line.
type lineBuffer struct {
	rem []byte
}

// feed appends chunk and emits every complete line it can now form,
// without the trailing newline.
func (lb *lineBuffer) feed(chunk []byte, emit func(line []byte)) {
	lb.rem = append(lb.rem, chunk...)
	for {
		i := bytes.IndexByte(lb.rem, '\n')
		if i < 0 {
			return
		}
		line := lb.rem[:i]
		lb.rem = lb.rem[i+1:]
		emit(line)
	}
}

// flush emits the held-over fragment, if any. Called once at process exit
// so a final line without a newline is still parsed.
func (lb *lineBuffer) flush(emit func(line []byte)) {
	if len(lb.rem) > 0 {
		emit(lb.rem)
		lb.rem = nil
	}
}

// accumulator folds the child's event stream into running statistics and a
// transcript. It is driven synchronously from the read loop; one line at a
// time, in emission order.
type accumulator struct {
	transcript []message
	toolCalls  []ToolCall
	usage      Usage
	model      string
	output     string
}

// feedLine parses one line as a JSON event and applies it. It reports
// whether the line carried a recognized event. Unparsable lines and
// unknown event types are dropped silently: the child's output framing is
// not fully under our control, so a malformed line must never abort a run.
func (a *accumulator) feedLine(line []byte) bool {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return false
	}

	var evt streamEvent
	if err := json.Unmarshal(line, &evt); err != nil {
		return false
	}
	if evt.Message == nil {
		return false
	}

	switch evt.Type {
	case eventMessageEnd:
		a.addMessage(*evt.Message)
	case eventToolExecutionEnd:
		// Tool results only surface in the transcript; they never affect
		// usage accounting.
		a.transcript = append(a.transcript, *evt.Message)
	default:
		return false
	}

	a.recomputeOutput()
	return true
}

// addMessage applies a finalized message. Assistant messages count as a
// turn and contribute usage, model, and tool-call records.
func (a *accumulator) addMessage(m message) {
	if m.Role == roleAssistant {
		a.usage.Turns++
		if u := m.Usage; u != nil {
			a.usage.InputTokens += u.Input
			a.usage.OutputTokens += u.Output
			a.usage.CacheReadTokens += u.CacheRead
			a.usage.CacheWriteTokens += u.CacheWrite
			a.usage.CostUSD += u.Cost.Total
			a.usage.ContextTokens = u.TotalTokens
		}
		if a.model == "" && m.Model != "" {
			a.model = m.Model
		}
		for _, blk := range m.Content {
			if blk.Type == blockToolCall {
				a.toolCalls = append(a.toolCalls, ToolCall{
					Name:      blk.Name,
					Arguments: blk.Arguments,
				})
			}
		}
	}
	a.transcript = append(a.transcript, m)
}

// recomputeOutput scans the transcript backward for the most recent
// assistant message with non-empty text content. Later empty-text turns
// never clobber earlier output.
func (a *accumulator) recomputeOutput() {
	for i := len(a.transcript) - 1; i >= 0; i-- {
		m := a.transcript[i]
		if m.Role != roleAssistant {
			continue
		}
		if text := messageText(m); strings.TrimSpace(text) != "" {
			a.output = text
			return
		}
	}
}

// messageText joins the text blocks of a message.
func messageText(m message) string {
	var b strings.Builder
	for _, blk := range m.Content {
		if blk.Type != blockText || blk.Text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(blk.Text)
	}
	return b.String()
}

// snapshot returns an independent copy of the accumulated public state.
func (a *accumulator) snapshot(stderr string) Snapshot {
	calls := make([]ToolCall, len(a.toolCalls))
	copy(calls, a.toolCalls)
	return Snapshot{
		Output:    a.output,
		ToolCalls: calls,
		Usage:     a.usage,
		Model:     a.model,
		Error:     strings.TrimSpace(stderr),
	}
}
