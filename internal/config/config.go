package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"fortio.org/log"
	"github.com/BurntSushi/toml"
)

// Config holds the interpreter settings read from nino.toml.
type Config struct {
	Interpreter InterpreterConfig `toml:"interpreter"`
	Log         LogConfig         `toml:"log"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	REPL        REPLConfig        `toml:"repl"`
}

// InterpreterConfig bounds evaluation.
type InterpreterConfig struct {
	MaxDepth int `toml:"max_depth"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type DiagnosticsConfig struct {
	Color bool `toml:"color"`
}

// REPLConfig holds line editor settings. HistoryFile may reference
// environment variables; an empty value disables history.
type REPLConfig struct {
	HistoryFile  string `toml:"history_file"`
	Prompt       string `toml:"prompt"`
	Continuation string `toml:"continuation"`
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	return &Config{
		Interpreter: InterpreterConfig{MaxDepth: 100000},
		Log:         LogConfig{Level: "info"},
		Diagnostics: DiagnosticsConfig{Color: true},
		REPL: REPLConfig{
			HistoryFile:  "$HOME/.nino_history",
			Prompt:       "nino> ",
			Continuation: "....> ",
		},
	}
}

// Load reads a TOML file over the defaults. Keys the file leaves out keep
// their default value; keys Config does not know are an error.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.expandEnvVars()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns Default() when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		cfg.expandEnvVars()
		return cfg, nil
	}
	return Load(path)
}

func (c *Config) expandEnvVars() {
	c.REPL.HistoryFile = os.ExpandEnv(c.REPL.HistoryFile)
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Interpreter.MaxDepth < 0 {
		return fmt.Errorf("interpreter.max_depth must be >= 0, got %d", c.Interpreter.MaxDepth)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.REPL.Prompt == "" {
		return errors.New("repl.prompt must not be empty")
	}
	return nil
}

// LogLevel maps log.level onto a fortio log level.
func (c *Config) LogLevel() (log.Level, error) {
	lvl, err := log.ValidateLevel(c.Log.Level)
	if err != nil {
		return lvl, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
