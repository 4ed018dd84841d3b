package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all process configuration. Values come from defaults, then
// the optional YAML file, then CORREDOR_* environment overrides, in that
// order.
type Config struct {
	// DBPath is the SQLite database location.
	DBPath string `yaml:"db_path"`
	// DataDir holds per-device state such as board column preferences.
	DataDir string `yaml:"data_dir"`
	// AgentEmail identifies the signed-in viewer.
	AgentEmail string `yaml:"agent_email"`

	Voice    VoiceConfig    `yaml:"voice"`
	Tutorial TutorialConfig `yaml:"tutorial"`
}

// VoiceConfig configures the hosted speech-synthesis function.
type VoiceConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	Function  string `yaml:"function"`
	TimeoutMs int    `yaml:"timeout_ms"`
	// MaxRetries counts additional attempts after the first.
	MaxRetries int  `yaml:"max_retries"`
	LogCalls   bool `yaml:"log_calls"`
}

// TutorialConfig configures the narration/render pipeline.
type TutorialConfig struct {
	ScriptDir string `yaml:"script_dir"`
	OutputDir string `yaml:"output_dir"`
}

// DefaultConfig returns a Config with sensible defaults rooted under
// ~/.corredor. Voice synthesis is disabled by default.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	base := filepath.Join(home, ".corredor")
	return Config{
		DBPath:  filepath.Join(base, "corredor.db"),
		DataDir: base,
		Voice: VoiceConfig{
			Enabled:    false,
			Endpoint:   "http://localhost:9090",
			Function:   "text-to-speech",
			TimeoutMs:  15000,
			MaxRetries: 1,
		},
		Tutorial: TutorialConfig{
			ScriptDir: filepath.Join(base, "tutorials"),
			OutputDir: filepath.Join(base, "tutorials", "out"),
		},
	}, nil
}

// Load builds the effective configuration: defaults, overlaid with the
// YAML file at path when it exists, overlaid with environment variables.
func Load(path string) (Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".corredor", "config.yaml"), nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CORREDOR_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CORREDOR_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("CORREDOR_AGENT_EMAIL"); v != "" {
		cfg.AgentEmail = v
	}
	if v := os.Getenv("CORREDOR_VOICE_ENABLED"); v != "" {
		cfg.Voice.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CORREDOR_VOICE_ENDPOINT"); v != "" {
		cfg.Voice.Endpoint = v
	}
	if v := os.Getenv("CORREDOR_VOICE_FUNCTION"); v != "" {
		cfg.Voice.Function = v
	}
	if v := os.Getenv("CORREDOR_VOICE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Voice.TimeoutMs = n
		}
	}
	if v := os.Getenv("CORREDOR_VOICE_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Voice.MaxRetries = n
		}
	}
	if v := os.Getenv("CORREDOR_VOICE_LOG_CALLS"); v != "" {
		cfg.Voice.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CORREDOR_TUTORIAL_SCRIPTS"); v != "" {
		cfg.Tutorial.ScriptDir = v
	}
	if v := os.Getenv("CORREDOR_TUTORIAL_OUT"); v != "" {
		cfg.Tutorial.OutputDir = v
	}
}
