package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg := Load()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"PiPath", cfg.PiPath, "pi"},
		{"WorkDir", cfg.WorkDir, "."},
		{"Model", cfg.Model, ""},
		{"LibrarianModel", cfg.LibrarianModel, ""},
		{"OracleModel", cfg.OracleModel, ""},
		{"GraceSeconds", cfg.GraceSeconds, 5},
		{"Verbose", cfg.Verbose, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if cfg.HistoryPath == "" {
		t.Error("HistoryPath should have a default")
	}
	if cfg.PersonasDir == "" {
		t.Error("PersonasDir should have a default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "pi_path",
			envKey: "PULSAR_PI_PATH",
			envVal: "/usr/local/bin/pi",
			field:  func(c Config) any { return c.PiPath },
			want:   "/usr/local/bin/pi",
		},
		{
			name:   "work_dir",
			envKey: "PULSAR_WORK_DIR",
			envVal: "/tmp/work",
			field:  func(c Config) any { return c.WorkDir },
			want:   "/tmp/work",
		},
		{
			name:   "model",
			envKey: "PULSAR_MODEL",
			envVal: "anthropic/claude-opus",
			field:  func(c Config) any { return c.Model },
			want:   "anthropic/claude-opus",
		},
		{
			name:   "grace_seconds",
			envKey: "PULSAR_GRACE_SECONDS",
			envVal: "9",
			field:  func(c Config) any { return c.GraceSeconds },
			want:   9,
		},
		{
			name:   "verbose",
			envKey: "PULSAR_VERBOSE",
			envVal: "true",
			field:  func(c Config) any { return c.Verbose },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			// Set env prefix so PULSAR_* env vars map to config keys.
			viper.SetEnvPrefix("PULSAR")
			viper.AutomaticEnv()

			os.Setenv(tt.envKey, tt.envVal)
			defer os.Unsetenv(tt.envKey)

			cfg := Load()
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestModelFor(t *testing.T) {
	resetViper()

	tests := []struct {
		name    string
		cfg     Config
		persona string
		want    string
	}{
		{"global fallback", Config{Model: "m"}, "librarian", "m"},
		{"librarian override", Config{Model: "m", LibrarianModel: "lib"}, "librarian", "lib"},
		{"oracle override", Config{Model: "m", OracleModel: "orc"}, "oracle", "orc"},
		{"oracle override does not leak", Config{OracleModel: "orc"}, "librarian", ""},
		{"custom persona uses global", Config{Model: "m", OracleModel: "orc"}, "auditor", "m"},
		{"everything empty", Config{}, "oracle", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ModelFor(tt.persona); got != tt.want {
				t.Errorf("ModelFor(%q) = %q, want %q", tt.persona, got, tt.want)
			}
		})
	}
}
