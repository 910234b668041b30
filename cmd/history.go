package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/papapumpkin/pulsar/internal/config"
	"github.com/papapumpkin/pulsar/internal/telemetry"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View past subagent runs",
	Long: `Reads and formats the JSONL run history file.

With --follow (-f), watches the file for new events (like tail -f).`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("file", "", "history file to read (default from config)")
	historyCmd.Flags().BoolP("follow", "f", false, "follow the file for new events")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("file")
	follow, _ := cmd.Flags().GetBool("follow")

	if path == "" {
		path = config.Load().HistoryPath
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("history: open %s: %w", path, err)
	}
	defer f.Close()

	// Print all existing events.
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		printEvent(cmd.OutOrStdout(), line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("history: read %s: %w", path, err)
	}

	if !follow {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return tailFollow(ctx, cmd.OutOrStdout(), f, path)
}

// tailFollow watches the file for new data using fsnotify and prints new
// events until ctx is cancelled (ctrl+c).
func tailFollow(ctx context.Context, w io.Writer, f *os.File, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("history: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("history: watch %s: %w", path, err)
	}

	reader := bufio.NewReader(f)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == 0 {
				continue
			}
			drainLines(reader, w)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("history: watch %s: %w", path, err)
		}
	}
}

// drainLines prints every line currently readable, holding nothing back.
// The last line of an actively appended file may arrive without a newline
// yet; it is printed as-is rather than waited on.
func drainLines(reader *bufio.Reader, w io.Writer) {
	for {
		line, err := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			printEvent(w, line)
		}
		if err != nil {
			return
		}
	}
}

// printEvent decodes a JSONL line and prints a human-readable representation.
func printEvent(w io.Writer, line string) {
	var evt telemetry.Event
	if err := json.Unmarshal([]byte(line), &evt); err != nil {
		fmt.Fprintf(w, "??? %s\n", line)
		return
	}

	ts := evt.Timestamp.Format(time.TimeOnly)
	var parts []string
	parts = append(parts, fmt.Sprintf("[%s]", ts))
	parts = append(parts, evt.Kind)

	if evt.Persona != "" {
		parts = append(parts, fmt.Sprintf("persona=%s", evt.Persona))
	}
	if evt.RunID != "" {
		parts = append(parts, fmt.Sprintf("run=%s", shortID(evt.RunID)))
	}
	if evt.Data != nil {
		if m, ok := evt.Data.(map[string]any); ok {
			parts = append(parts, formatDataMap(m))
		} else {
			data, _ := json.Marshal(evt.Data)
			parts = append(parts, string(data))
		}
	}

	fmt.Fprintln(w, strings.Join(parts, " "))
}

// shortID truncates a UUID to its first segment for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// formatDataMap formats a data map as key=value pairs sorted by key.
func formatDataMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, m[k]))
	}
	return strings.Join(pairs, " ")
}
