// Package telemetry records subagent runs as a JSONL event stream. Every
// run start and outcome is appended as one structured JSON line, making
// spend and tool activity auditable after the fact.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event kinds identify the type of telemetry event.
const (
	KindRunStart   = "run_start"
	KindRunDone    = "run_done"
	KindRunAborted = "run_aborted"
)

// Event represents a single telemetry record. Each event carries a
// timestamp, a kind tag, and run identifiers along with optional
// structured data.
type Event struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	RunID     string    `json:"run,omitempty"`
	Persona   string    `json:"persona,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// RunOutcome is the Data payload for run_done and run_aborted events.
type RunOutcome struct {
	Model            string  `json:"model,omitempty"`
	ExitCode         int     `json:"exitCode"`
	DurationMs       int64   `json:"durationMs"`
	Turns            int     `json:"turns"`
	InputTokens      int     `json:"inputTokens"`
	OutputTokens     int     `json:"outputTokens"`
	CacheReadTokens  int     `json:"cacheReadTokens"`
	CacheWriteTokens int     `json:"cacheWriteTokens"`
	CostUSD          float64 `json:"costUSD"`
	ToolCalls        int     `json:"toolCalls"`
	Error            string  `json:"error,omitempty"`
}

// Emitter writes telemetry events to a JSONL file. It is safe for
// concurrent use by multiple goroutines. A nil *Emitter is a valid no-op
// emitter.
type Emitter struct {
	file *os.File
	enc  *json.Encoder
	mu   sync.Mutex
}

// NewEmitter creates a new Emitter that appends JSONL events to the file
// at path, creating parent directories as needed.
func NewEmitter(path string) (*Emitter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("telemetry: create %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("telemetry: open %s: %w", path, err)
	}
	return &Emitter{
		file: f,
		enc:  json.NewEncoder(f),
	}, nil
}

// Emit writes a single event to the JSONL file. It is safe for concurrent
// use. Calling Emit on a nil Emitter is a no-op.
func (e *Emitter) Emit(evt Event) error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.enc.Encode(evt); err != nil {
		return fmt.Errorf("telemetry: encode event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file. Calling Close on a nil
// Emitter is a no-op.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.file.Close(); err != nil {
		return fmt.Errorf("telemetry: close: %w", err)
	}
	return nil
}
