package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/pulsar/internal/agent"
	"github.com/papapumpkin/pulsar/internal/ansi"
	"github.com/papapumpkin/pulsar/internal/config"
)

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List available subagent personas",
	Long: `List the built-in personas plus any custom personas found in the
personas directory. Custom personas are TOML files; one with the same
name as a built-in replaces it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		custom, err := agent.LoadDir(cfg.PersonasDir)
		if err != nil {
			return err
		}

		shadowed := make(map[string]bool, len(custom))
		for _, p := range custom {
			shadowed[p.Name] = true
		}

		for _, p := range agent.Builtins() {
			if shadowed[p.Name] {
				continue
			}
			printPersona(p, "builtin", cfg)
		}
		for _, p := range custom {
			printPersona(p, cfg.PersonasDir, cfg)
		}
		return nil
	},
}

func printPersona(p agent.Persona, source string, cfg config.Config) {
	model := cfg.ModelFor(p.Name)
	if model == "" {
		model = p.Model
	}
	if model == "" {
		model = "(child default)"
	}
	fmt.Printf("%s%s%s  %s\n", ansi.Bold, p.Name, ansi.Reset, p.Summary)
	fmt.Printf("  %smodel: %s · tools: %s · source: %s%s\n",
		ansi.Dim, model, strings.Join(p.Tools, ","), source, ansi.Reset)
}

func init() {
	rootCmd.AddCommand(personasCmd)
}
