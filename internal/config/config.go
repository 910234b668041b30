package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for pulsar. Values are populated
// from .pulsar.yaml, PULSAR_* env vars, and CLI flags.
type Config struct {
	PiPath         string `mapstructure:"pi_path"`
	WorkDir        string `mapstructure:"work_dir"`
	Model          string `mapstructure:"model"`
	LibrarianModel string `mapstructure:"librarian_model"`
	OracleModel    string `mapstructure:"oracle_model"`
	GraceSeconds   int    `mapstructure:"grace_seconds"`
	HistoryPath    string `mapstructure:"history_path"`
	PersonasDir    string `mapstructure:"personas_dir"`
	RepoContext    string `mapstructure:"repo_context"`
	PromptAddendum string `mapstructure:"prompt_addendum"`
	Verbose        bool   `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() Config {
	viper.SetDefault("pi_path", "pi")
	viper.SetDefault("work_dir", ".")
	viper.SetDefault("model", "")
	viper.SetDefault("librarian_model", "")
	viper.SetDefault("oracle_model", "")
	viper.SetDefault("grace_seconds", 5)
	viper.SetDefault("history_path", filepath.Join(".pulsar", "history.jsonl"))
	viper.SetDefault("personas_dir", defaultPersonasDir())
	viper.SetDefault("repo_context", "")
	viper.SetDefault("prompt_addendum", "")
	viper.SetDefault("verbose", false)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

// ModelFor returns the model override for a persona name: the per-persona
// key when set, otherwise the global model key, otherwise empty (child
// default).
func (c Config) ModelFor(persona string) string {
	switch persona {
	case "librarian":
		if c.LibrarianModel != "" {
			return c.LibrarianModel
		}
	case "oracle":
		if c.OracleModel != "" {
			return c.OracleModel
		}
	}
	return c.Model
}

func defaultPersonasDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".pulsar", "personas")
	}
	return filepath.Join(home, ".config", "pulsar", "personas")
}
