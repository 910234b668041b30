package cmd

import (
	"bufio"
	"strings"
	"testing"
)

func TestFormatDataMap_SortedPairs(t *testing.T) {
	t.Parallel()

	got := formatDataMap(map[string]any{"zeta": 1, "alpha": "x", "mid": true})
	want := "alpha=x mid=true zeta=1"
	if got != want {
		t.Errorf("formatDataMap = %q, want %q", got, want)
	}
}

func TestPrintEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "run done event",
			line: `{"ts":"2026-08-31T10:00:00Z","kind":"run_done","run":"1b2c3d4e-aaaa-bbbb","persona":"oracle","data":{"exitCode":0,"turns":2}}`,
			want: []string{"[10:00:00]", "run_done", "persona=oracle", "run=1b2c3d4e", "exitCode=0 turns=2"},
		},
		{
			name: "malformed line passed through",
			line: `not json at all`,
			want: []string{"??? not json at all"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var b strings.Builder
			printEvent(&b, tt.line)
			for _, want := range tt.want {
				if !strings.Contains(b.String(), want) {
					t.Errorf("printEvent output %q missing %q", b.String(), want)
				}
			}
		})
	}
}

func TestDrainLines(t *testing.T) {
	t.Parallel()

	// Blank lines are skipped; a trailing fragment without a newline is
	// still printed.
	input := "{\"kind\":\"run_start\"}\n\n{\"kind\":\"run_done\"}"
	var b strings.Builder
	drainLines(bufio.NewReader(strings.NewReader(input)), &b)

	out := b.String()
	if !strings.Contains(out, "run_start") || !strings.Contains(out, "run_done") {
		t.Errorf("drainLines output %q missing events", out)
	}
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("line count = %d, want 2", got)
	}
}
