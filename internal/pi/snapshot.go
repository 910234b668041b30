package pi

import "strings"

// Usage holds running totals for one subagent run. Token and cost fields
// are summed across assistant turns; ContextTokens is the last reported
// total context size, overwritten on every turn that carries usage.
type Usage struct {
	InputTokens      int
	OutputTokens     int
	CacheReadTokens  int
	CacheWriteTokens int
	CostUSD          float64
	ContextTokens    int
	Turns            int
}

// TotalTokens returns the summed input and output tokens for the run.
func (u Usage) TotalTokens() int {
	return u.InputTokens + u.OutputTokens
}

// ToolCall records one tool invocation reported by the child, in arrival
// order. Arguments are never mutated after creation.
type ToolCall struct {
	Name      string
	Arguments map[string]any
}

// Snapshot is the renderer-agnostic view of a run's accumulated state.
// Each snapshot is an independent copy; callers may retain it.
type Snapshot struct {
	Output    string
	ToolCalls []ToolCall
	Usage     Usage
	Model     string
	Error     string
}

// Result is the final outcome of one subagent run.
type Result struct {
	Snapshot
	ExitCode int
}

// fallbackFailureMessage is shown when a failed run produced no error text.
const fallbackFailureMessage = "subagent produced no output"

// Failed reports whether the run is a reportable failure from the caller's
// point of view: a non-zero exit, or a zero exit with no usable output
// text. The runner itself never treats an empty transcript as an error;
// this is invoking-layer policy.
func (r *Result) Failed() bool {
	return r.ExitCode != 0 || strings.TrimSpace(r.Output) == ""
}

// FailureMessage returns the best available error detail for a failed run.
func (r *Result) FailureMessage() string {
	if r.Error != "" {
		return r.Error
	}
	return fallbackFailureMessage
}
