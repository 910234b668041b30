package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/papapumpkin/pulsar/internal/pi"
)

// collapsedToolCalls is how many of the most recent tool calls the
// collapsed view shows.
const collapsedToolCalls = 3

// outputPreviewLines caps the output preview in the expanded view.
const outputPreviewLines = 12

// UsageLine formats the running usage totals on one line.
func UsageLine(u pi.Usage) string {
	parts := []string{
		fmt.Sprintf("%d turns", u.Turns),
		fmt.Sprintf("%d in / %d out tok", u.InputTokens, u.OutputTokens),
	}
	if u.CacheReadTokens > 0 || u.CacheWriteTokens > 0 {
		parts = append(parts, fmt.Sprintf("%d cached", u.CacheReadTokens))
	}
	if u.ContextTokens > 0 {
		parts = append(parts, fmt.Sprintf("ctx %d", u.ContextTokens))
	}
	line := styleUsage.Render(strings.Join(parts, " · "))
	if u.CostUSD > 0 {
		line += styleUsage.Render(" · ") + styleCost.Render(fmt.Sprintf("$%.4f", u.CostUSD))
	}
	return line
}

// RenderToolCalls renders tool calls oldest-first. When max > 0 and more
// calls exist, only the most recent max are shown under an overflow note.
func RenderToolCalls(calls []pi.ToolCall, max, width int) string {
	if len(calls) == 0 {
		return styleTool.Render("no tool calls yet")
	}

	var b strings.Builder
	shown := calls
	if max > 0 && len(calls) > max {
		fmt.Fprintf(&b, "%s\n", styleTool.Render(fmt.Sprintf("… %d earlier tool calls", len(calls)-max)))
		shown = calls[len(calls)-max:]
	}
	for i, tc := range shown {
		if i > 0 {
			b.WriteByte('\n')
		}
		line := fmt.Sprintf("%s %s %s",
			styleTool.Render(iconTool),
			styleToolName.Render(tc.Name),
			styleTool.Render(formatArgs(tc.Arguments)))
		b.WriteString(truncate(line, width))
	}
	return b.String()
}

// formatArgs renders tool arguments as sorted key=value pairs.
func formatArgs(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, args[k])
	}
	return b.String()
}

// RenderOutputPreview shows the tail of the accumulated output text.
func RenderOutputPreview(output string, width int) string {
	output = strings.TrimSpace(output)
	if output == "" {
		return styleTool.Render("no output yet")
	}
	lines := strings.Split(output, "\n")
	if len(lines) > outputPreviewLines {
		lines = lines[len(lines)-outputPreviewLines:]
	}
	for i, l := range lines {
		lines[i] = truncate(l, width)
	}
	return styleOutput.Render(strings.Join(lines, "\n"))
}

// truncate cuts a line to width runes with an ellipsis. Width 0 disables
// truncation. Styled input is measured naively, which is fine for the
// mostly-plain lines rendered here.
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
