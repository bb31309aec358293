// Package findup finds files or directories by walking up parent directories.
package findup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/presbrey/envtree/locate"
)

// Options controls an upward search
type Options struct {
	// Dir is where the search starts (default: working directory)
	Dir string

	// StopAt is the last directory searched if nothing matched before it
	// (default: the filesystem root of Dir)
	StopAt string

	// Limit is the maximum number of matches to collect; zero or less is unbounded
	Limit int

	// Type is the object type to match (default: locate.File)
	Type locate.Type

	// NoFollowSymlinks matches links themselves instead of their targets
	NoFollowSymlinks bool
}

// Root returns the filesystem root of the volume holding the absolute path dir.
// Drive letters and UNC shares are handled by filepath.VolumeName.
func Root(dir string) string {
	return filepath.VolumeName(dir) + string(filepath.Separator)
}

// Multiple returns the absolute path of every match from Dir up to StopAt,
// nearest directory first. At each level the first name in names that
// matches wins.
func Multiple(names []string, opts *Options) ([]string, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := opts.Type.Validate(); err != nil {
		return nil, err
	}

	dir, err := absDir(opts.Dir)
	if err != nil {
		return nil, err
	}

	stopAt := Root(dir)
	if opts.StopAt != "" {
		if stopAt, err = filepath.Abs(opts.StopAt); err != nil {
			return nil, fmt.Errorf("failed to resolve stop directory: %w", err)
		}
	}

	locateOpts := &locate.Options{
		Type:             opts.Type,
		NoFollowSymlinks: opts.NoFollowSymlinks,
	}

	var matches []string
	for {
		locateOpts.Dir = dir
		name, ok, err := locate.Path(names, locateOpts)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, locate.Resolve(dir, name))
		}

		if dir == stopAt || (opts.Limit > 0 && len(matches) >= opts.Limit) {
			break
		}

		parent := filepath.Dir(dir)

		// StopAt was not an ancestor of Dir and the root has been searched
		if parent == dir {
			break
		}

		dir = parent
	}

	return matches, nil
}

// One returns the nearest match, or false if none was found before StopAt
func One(names []string, opts *Options) (string, bool, error) {
	o := Options{}
	if opts != nil {
		o = *opts
	}
	o.Limit = 1

	matches, err := Multiple(names, &o)
	if err != nil || len(matches) == 0 {
		return "", false, err
	}
	return matches[0], true, nil
}

// Dir returns the directory containing the nearest match
func Dir(names []string, opts *Options) (string, bool, error) {
	match, ok, err := One(names, opts)
	if !ok {
		return "", false, err
	}
	return filepath.Dir(match), true, nil
}

// absDir resolves dir to a clean absolute path, using the working directory when empty
func absDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	return abs, nil
}
