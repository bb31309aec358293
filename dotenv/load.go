package dotenv

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// DefaultFileName is loaded from the working directory when no path is given
const DefaultFileName = ".env"

// ErrUnknownEncoding is returned when Options.Encoding names no supported charset
var ErrUnknownEncoding = errors.New("dotenv: unknown encoding")

// Options controls Load
type Options struct {
	// Path is the file to load. A leading ~ expands to the home directory.
	// Default: .env in the working directory
	Path string

	// Encoding is an IANA charset name such as "ISO-8859-1" (default: UTF-8)
	Encoding string

	// Override replaces values already present in Store
	Override bool

	// Debug logs keys that were already present and load failures
	Debug bool

	// Store receives the variables (default: OSStore)
	Store Store

	// Logger receives debug output (default: log.Default())
	Logger *log.Logger
}

// Action is what Apply did with one key
type Action int

const (
	// ActionSet means the key was not in the store and was added
	ActionSet Action = iota
	// ActionOverride means an existing value was replaced
	ActionOverride
	// ActionSkip means an existing value was kept
	ActionSkip
)

func (a Action) String() string {
	switch a {
	case ActionSet:
		return "set"
	case ActionOverride:
		return "overridden"
	case ActionSkip:
		return "skipped"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Change records the Action taken for a key
type Change struct {
	Key    string
	Action Action
}

// Result is the outcome of Load. Exactly one of Parsed and Err is set.
type Result struct {
	// Path is the resolved file path, when resolution succeeded
	Path string

	Parsed  *Env
	Changes []Change
	Err     error
}

// Load reads the file named by opts, parses it and merges it into opts.Store.
// Read failures are returned in Result.Err and leave the store untouched.
func Load(opts *Options) Result {
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.logger()

	path, err := ResolvePath(opts.Path)
	if err != nil {
		return Result{Err: err}
	}

	text, err := ReadFile(path, opts.Encoding)
	if err != nil {
		if opts.Debug {
			logger.Printf("[dotenv][DEBUG] Failed to load %s %v", path, err)
		}
		return Result{Path: path, Err: err}
	}

	parsed := Parse(text)
	changes, err := Apply(parsed, opts)
	if err != nil {
		return Result{Path: path, Changes: changes, Err: err}
	}

	return Result{Path: path, Parsed: parsed, Changes: changes}
}

// Apply merges env into opts.Store. Missing keys are always set; existing
// ones are replaced only when opts.Override is true.
func Apply(env *Env, opts *Options) ([]Change, error) {
	if opts == nil {
		opts = &Options{}
	}
	store := opts.Store
	if store == nil {
		store = OSStore{}
	}
	logger := opts.logger()

	changes := make([]Change, 0, env.Len())
	for _, key := range env.keys {
		action := ActionSet
		if _, exists := store.LookupEnv(key); exists {
			action = ActionSkip
			if opts.Override {
				action = ActionOverride
			}
			if opts.Debug {
				verb := "WAS NOT"
				if opts.Override {
					verb = "WAS"
				}
				logger.Printf("[dotenv][DEBUG] %q is already defined in the environment and %s overwritten", key, verb)
			}
		}

		if action != ActionSkip {
			if err := store.Setenv(key, env.values[key]); err != nil {
				return changes, fmt.Errorf("failed to set %s: %w", key, err)
			}
		}
		changes = append(changes, Change{Key: key, Action: action})
	}

	return changes, nil
}

// ResolvePath expands a leading ~ and makes path absolute.
// An empty path resolves to DefaultFileName in the working directory.
func ResolvePath(path string) (string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return filepath.Join(wd, DefaultFileName), nil
	}

	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to expand %s: %w", path, err)
		}
		return filepath.Join(home, path[1:]), nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return abs, nil
}

// ReadFile reads path and decodes it from the named encoding
func ReadFile(path, encoding string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read env file: %w", err)
	}
	return decode(data, encoding)
}

func decode(data []byte, name string) (string, error) {
	switch strings.ToLower(name) {
	case "", "utf8", "utf-8":
		return string(data), nil
	}

	// ianaindex returns a nil Encoding for names it knows but cannot decode
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode env file as %s: %w", name, err)
	}
	return string(out), nil
}

func (o *Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}
