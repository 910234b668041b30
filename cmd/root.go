// Package cmd wires up the pulsar command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pulsar",
	Short: "Side-channel subagents for the pi coding agent",
	Long: `Pulsar runs read-only research and review subagents on top of the
pi CLI. Each subagent is a persona with its own system prompt and tool
allowlist; pulsar spawns pi, streams its progress, and prints the final
answer along with token and cost accounting.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .pulsar.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		panic(err)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pulsar")
	}

	viper.SetEnvPrefix("PULSAR")
	viper.AutomaticEnv()

	// Missing config file is fine; defaults cover everything.
	_ = viper.ReadInConfig()
}
