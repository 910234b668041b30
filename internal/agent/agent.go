// Package agent defines the personas pulsar runs: named configuration
// records pairing a system prompt with a model preference and a restricted
// tool allowlist. The two built-ins, librarian and oracle, share the same
// runner; they differ only in these records.
package agent

import "strings"

// Built-in persona names.
const (
	NameLibrarian = "librarian"
	NameOracle    = "oracle"
)

// ReadOnlyTools is the restricted allowlist granted to built-in personas:
// enough to read and search a repository, nothing that mutates it.
var ReadOnlyTools = []string{"read", "grep", "glob", "ls"}

// Persona is one subagent flavor. User-defined personas are loaded from
// TOML files with the same shape.
type Persona struct {
	Name         string   `toml:"name"`
	Summary      string   `toml:"summary"`
	SystemPrompt string   `toml:"system_prompt"`
	Model        string   `toml:"model"`
	Tools        []string `toml:"tools"`
}

// PromptOpts controls optional sections around a persona's base prompt.
type PromptOpts struct {
	// RepoContext is a short description of the repository under analysis.
	// It is placed first because it is stable across invocations in the
	// same repo, maximizing prompt cache hit rates.
	RepoContext string

	// Addendum is user-supplied extra instruction text appended last.
	Addendum string
}

// BuildSystemPrompt combines a persona's base prompt with the optional
// sections. Ordering: [RepoContext] → base → [Addendum].
func BuildSystemPrompt(base string, opts PromptOpts) string {
	var b strings.Builder

	if opts.RepoContext != "" {
		b.WriteString(opts.RepoContext)
		b.WriteString("\n\n---\n\n")
	}

	b.WriteString(base)

	if opts.Addendum != "" {
		b.WriteString("\n\n")
		b.WriteString(opts.Addendum)
	}

	return b.String()
}
