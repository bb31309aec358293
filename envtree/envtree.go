// Package envtree provides utilities for loading environment variables from .env files.
// It searches for the nearest .env file in the current directory and its parent directories.
package envtree

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/presbrey/envtree/dotenv"
	"github.com/presbrey/envtree/findup"
)

// Config holds the configuration for the environment loader
type Config struct {
	// EnvFileNames are the file names tried in each directory, in priority order
	// (default: FileNamesForMode(Mode))
	EnvFileNames []string

	// Mode selects mode-specific files such as .env.development when
	// EnvFileNames is empty (default: none, only .env)
	Mode string

	// Dir is where the search starts (default: working directory)
	Dir string

	// StopAt is the last directory searched (default: filesystem root)
	StopAt string

	// Encoding is the charset of the env file (default: UTF-8)
	Encoding string

	// Override replaces variables that are already set
	Override bool

	// Debug logs every variable that was already set
	Debug bool

	// LogFlags sets the logging flags (default: log.Lshortfile | log.LstdFlags)
	LogFlags int

	// Logger overrides the logger built from LogFlags
	Logger *log.Logger

	// Silent suppresses all log output
	Silent bool

	// Store receives the variables (default: the process environment)
	Store dotenv.Store

	// Registerer enables load metrics when set
	Registerer prometheus.Registerer
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		EnvFileNames: []string{dotenv.DefaultFileName},
		LogFlags:     log.Lshortfile | log.LstdFlags,
		Silent:       false,
		Override:     false,
		Store:        dotenv.OSStore{},
	}
}

// Loader handles environment file loading
type Loader struct {
	config  *Config
	logger  *log.Logger
	metrics *metrics
}

// New creates a new Loader with the given configuration.
// Zero fields in config take their default values.
func New(config *Config) *Loader {
	defaults := DefaultConfig()
	cfg := *defaults
	if config != nil {
		cfg = *config
	}
	if len(cfg.EnvFileNames) == 0 {
		cfg.EnvFileNames = FileNamesForMode(cfg.Mode)
	}
	if cfg.LogFlags == 0 {
		cfg.LogFlags = defaults.LogFlags
	}
	if cfg.Store == nil {
		cfg.Store = defaults.Store
	}

	logger := cfg.Logger
	switch {
	case cfg.Silent:
		logger = log.New(io.Discard, "", 0)
	case logger == nil:
		logger = log.New(os.Stderr, "", cfg.LogFlags)
	}

	return &Loader{
		config:  &cfg,
		logger:  logger,
		metrics: newMetrics(cfg.Registerer),
	}
}

func (l *Loader) searchOptions() *findup.Options {
	return &findup.Options{
		Dir:    l.config.Dir,
		StopAt: l.config.StopAt,
	}
}

// Find returns the nearest env file, if any
func (l *Loader) Find() (string, bool, error) {
	return findup.One(l.config.EnvFileNames, l.searchOptions())
}

// LoadEnv finds the nearest env file and merges it into the configured store.
// It returns a nil result when no file was found.
func (l *Loader) LoadEnv() (*dotenv.Result, error) {
	path, ok, err := l.Find()
	if err != nil {
		return nil, fmt.Errorf("failed to search for env files: %w", err)
	}
	if !ok {
		if l.config.Debug {
			l.logger.Printf("No %v files found in current or parent directories", l.config.EnvFileNames)
		}
		return nil, nil
	}

	res := dotenv.Load(&dotenv.Options{
		Path:     path,
		Encoding: l.config.Encoding,
		Override: l.config.Override,
		Debug:    l.config.Debug,
		Store:    l.config.Store,
		Logger:   l.logger,
	})
	l.metrics.observe(res)
	if res.Err != nil {
		return &res, fmt.Errorf("failed to load env file: %w", res.Err)
	}

	l.logger.Printf("Loaded %d variable(s) from %s", res.Parsed.Len(), res.Path)
	return &res, nil
}

// Load searches for the nearest environment file and loads it.
// Finding no file is not an error.
func (l *Loader) Load() error {
	_, err := l.LoadEnv()
	return err
}

// MustLoad loads environment files and panics on error
func (l *Loader) MustLoad() {
	if err := l.Load(); err != nil {
		panic(err)
	}
}

// GetEnvFilePaths returns every environment file from the start directory up
// to StopAt, nearest first, without loading them
func (l *Loader) GetEnvFilePaths() ([]string, error) {
	paths, err := findup.Multiple(l.config.EnvFileNames, l.searchOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to get env file paths: %w", err)
	}
	return paths, nil
}

// ProjectDir returns the directory holding the nearest environment file
func (l *Loader) ProjectDir() (string, bool, error) {
	return findup.Dir(l.config.EnvFileNames, l.searchOptions())
}

// LoadDefault loads environment files using default configuration
func LoadDefault() error {
	loader := New(nil)
	return loader.Load()
}

// MustLoadDefault loads environment files using default configuration and panics on error
func MustLoadDefault() {
	loader := New(nil)
	loader.MustLoad()
}

// AutoLoad is a convenience function for use in init() functions
// It loads environment files with default settings and logs any errors
func AutoLoad() {
	if err := LoadDefault(); err != nil {
		log.Printf("Warning: failed to auto-load environment files: %v", err)
	}
}
