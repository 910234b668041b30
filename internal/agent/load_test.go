package agent

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePersona(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadDir_MissingDirIsEmpty(t *testing.T) {
	t.Parallel()

	personas, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("LoadDir on missing dir: %v", err)
	}
	if len(personas) != 0 {
		t.Errorf("got %d personas, want 0", len(personas))
	}
}

func TestLoadDir_ParsesAndSorts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePersona(t, dir, "b-scribe.toml", `
name = "scribe"
summary = "writes docs"
system_prompt = "You write documentation."
model = "anthropic/claude-haiku"
tools = ["read", "grep"]
`)
	writePersona(t, dir, "a-auditor.toml", `
name = "auditor"
system_prompt = "You audit dependencies."
`)
	writePersona(t, dir, "ignored.txt", "not a persona")

	personas, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(personas) != 2 {
		t.Fatalf("got %d personas, want 2", len(personas))
	}
	if personas[0].Name != "auditor" || personas[1].Name != "scribe" {
		t.Errorf("order = %q, %q", personas[0].Name, personas[1].Name)
	}
	if personas[1].Model != "anthropic/claude-haiku" {
		t.Errorf("scribe model = %q", personas[1].Model)
	}
	// A persona without tools falls back to the read-only allowlist.
	if strings.Join(personas[0].Tools, ",") != strings.Join(ReadOnlyTools, ",") {
		t.Errorf("auditor tools = %v, want default read-only set", personas[0].Tools)
	}
}

func TestLoadDir_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "bad toml",
			body:    "name = [unclosed",
			wantErr: "parse",
		},
		{
			name:    "missing name",
			body:    `system_prompt = "x"`,
			wantErr: "no name",
		},
		{
			name:    "missing prompt",
			body:    `name = "empty"`,
			wantErr: "no system_prompt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writePersona(t, dir, "p.toml", tt.body)
			_, err := LoadDir(dir)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	custom := []Persona{{Name: "auditor", SystemPrompt: "x"}, {Name: NameOracle, SystemPrompt: "shadowed"}}

	if p, ok := Resolve(NameLibrarian, custom); !ok || p.SystemPrompt != DefaultLibrarianSystemPrompt {
		t.Error("librarian builtin not resolved")
	}
	if p, ok := Resolve("auditor", custom); !ok || p.SystemPrompt != "x" {
		t.Error("custom persona not resolved")
	}
	// User-defined personas shadow built-ins of the same name.
	if p, _ := Resolve(NameOracle, custom); p.SystemPrompt != "shadowed" {
		t.Errorf("oracle not shadowed, prompt = %q", p.SystemPrompt[:20])
	}
	if _, ok := Resolve("ghost", nil); ok {
		t.Error("unknown persona should not resolve")
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	t.Parallel()

	base := "BASE"

	if got := BuildSystemPrompt(base, PromptOpts{}); got != base {
		t.Errorf("no opts: %q", got)
	}

	got := BuildSystemPrompt(base, PromptOpts{RepoContext: "CTX", Addendum: "MORE"})
	ctxIdx := strings.Index(got, "CTX")
	baseIdx := strings.Index(got, base)
	moreIdx := strings.Index(got, "MORE")
	if ctxIdx == -1 || baseIdx == -1 || moreIdx == -1 {
		t.Fatalf("missing section in %q", got)
	}
	if !(ctxIdx < baseIdx && baseIdx < moreIdx) {
		t.Errorf("section order wrong in %q", got)
	}
}

func TestBuiltins_HaveRestrictedTools(t *testing.T) {
	t.Parallel()

	for _, p := range Builtins() {
		if len(p.Tools) == 0 {
			t.Errorf("%s has no tool allowlist", p.Name)
		}
		for _, tool := range p.Tools {
			switch tool {
			case "write", "edit", "bash":
				t.Errorf("%s allowlist contains mutating tool %q", p.Name, tool)
			}
		}
		if p.SystemPrompt == "" || p.Summary == "" {
			t.Errorf("%s persona incomplete", p.Name)
		}
	}
}
