package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/pulsar/internal/agent"
	"github.com/papapumpkin/pulsar/internal/config"
	"github.com/papapumpkin/pulsar/internal/pi"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that required dependencies are available",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		ok := true

		runner := &pi.Runner{
			Binary:  cfg.PiPath,
			Grace:   time.Duration(cfg.GraceSeconds) * time.Second,
			Verbose: cfg.Verbose,
		}
		if err := runner.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "✗ pi: %v\n", err)
			ok = false
		} else {
			fmt.Fprintln(os.Stderr, "✓ pi CLI found")
		}

		if custom, err := agent.LoadDir(cfg.PersonasDir); err != nil {
			fmt.Fprintf(os.Stderr, "✗ personas: %v\n", err)
			ok = false
		} else {
			fmt.Fprintf(os.Stderr, "✓ personas dir ok (%d custom)\n", len(custom))
		}

		if !ok {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
