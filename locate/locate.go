// Package locate finds the first of several candidate paths that exists on disk
// as a given kind of filesystem object.
package locate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Type is the kind of filesystem object a candidate must be to match
type Type string

const (
	// File matches regular files. It is the default when Type is empty.
	File Type = "file"
	// Directory matches directories
	Directory Type = "directory"
)

// ErrInvalidType is returned when Options.Type is neither File nor Directory
var ErrInvalidType = errors.New("locate: invalid type specified")

// Validate reports whether t names a supported object type
func (t Type) Validate() error {
	switch t {
	case "", File, Directory:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidType, string(t))
}

// matches reports whether info describes an object of type t
func (t Type) matches(info os.FileInfo) bool {
	if t == Directory {
		return info.IsDir()
	}
	return info.Mode().IsRegular()
}

// Options controls how candidates are resolved and matched
type Options struct {
	// Dir is the directory candidates are resolved against (default: working directory)
	Dir string

	// Type is the object type to match (default: File)
	Type Type

	// NoFollowSymlinks queries the link itself instead of its target.
	// A symlink never matches File or Directory in this mode.
	NoFollowSymlinks bool
}

// Path returns the first name in names that exists as the requested type.
// The returned string is the candidate as given, not the resolved path.
// Filesystem errors for a candidate are treated as a non-match; the only
// error returned is an invalid Type, checked before any filesystem access.
func Path(names []string, opts *Options) (string, bool, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := opts.Type.Validate(); err != nil {
		return "", false, err
	}

	dir := opts.Dir
	if dir == "" {
		// Without a working directory only absolute candidates can match
		dir, _ = os.Getwd()
	}

	stat := os.Stat
	if opts.NoFollowSymlinks {
		stat = os.Lstat
	}

	for _, name := range names {
		info, err := stat(Resolve(dir, name))
		if err != nil {
			continue
		}
		if opts.Type.matches(info) {
			return name, true, nil
		}
	}

	return "", false, nil
}

// Resolve joins name onto dir unless name is already absolute
func Resolve(dir, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(dir, name)
}
