package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/oarkflow/log"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfig names an alternative config file.
	EnvConfig = "LANG_CONFIG"
	// EnvCache overrides the cache directory.
	EnvCache    = "LANGCACHE"
	DefaultFile = "lang.yaml"
	appName     = "lang"
)

type Config struct {
	// MaxCallDepth bounds the number of active function calls.
	MaxCallDepth int `yaml:"max_call_depth"`
	// LogLevel is one of trace, debug, info, warn, error, fatal.
	LogLevel string `yaml:"log_level"`
	// TraceTokens logs every token at debug level.
	TraceTokens bool `yaml:"trace_tokens"`
	// TraceAST logs the parsed program, rendered as source, at debug level.
	TraceAST bool   `yaml:"trace_ast"`
	CacheDir string `yaml:"cache_dir"`
	// HistorySize is the number of REPL lines kept between sessions.
	HistorySize int `yaml:"history_size"`
}

func Default() Config {
	return Config{
		MaxCallDepth: 10000,
		LogLevel:     "warn",
		CacheDir:     DefaultCacheDir(),
		HistorySize:  1000,
	}
}

// Parse reads a YAML config. Keys that are missing keep their default;
// unknown keys are an error.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the config at path. A missing file yields the defaults
// unless required is set.
func Load(path string, required bool) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads $LANG_CONFIG, which must exist when set, or else
// lang.yaml from the working directory if there is one.
func LoadDefault() (Config, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return Load(path, true)
	}
	return Load(DefaultFile, false)
}

func (c Config) Validate() error {
	if c.MaxCallDepth <= 0 {
		return fmt.Errorf("max_call_depth must be positive, got %d", c.MaxCallDepth)
	}
	if c.HistorySize < 0 {
		return fmt.Errorf("history_size must not be negative, got %d", c.HistorySize)
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// Logger returns a logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) *log.Logger {
	return &log.Logger{
		Level:  log.ParseLevel(c.LogLevel),
		Writer: &log.IOWriter{Writer: w},
	}
}

// DefaultCacheDir returns $LANGCACHE, or the per-user cache directory of
// the platform.
func DefaultCacheDir() string {
	if env := os.Getenv(EnvCache); env != "" {
		return env
	}

	homeDir, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LocalAppData"); localAppData != "" {
			return filepath.Join(localAppData, appName)
		}
		return filepath.Join(homeDir, "AppData", "Local", appName)
	case "darwin":
		return filepath.Join(homeDir, "Library", "Caches", appName)
	default: // Linux and others
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, appName)
		}
		return filepath.Join(homeDir, ".cache", appName)
	}
}
