package dotenv

import (
	"errors"
	"os"
	"sort"
	"strings"
)

// Store is the environment that parsed variables are merged into
type Store interface {
	LookupEnv(key string) (string, bool)
	Setenv(key, value string) error
}

// OSStore is the process environment
type OSStore struct{}

// LookupEnv calls os.LookupEnv
func (OSStore) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Setenv calls os.Setenv
func (OSStore) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

// ErrNilMapStore is returned when writing to a MapStore that was never made
var ErrNilMapStore = errors.New("dotenv: nil MapStore, use NewMapStore")

// MapStore is an in-memory Store. It is not safe for concurrent writes.
// Create one with NewMapStore or MapStore{}; a nil MapStore is read-only.
type MapStore map[string]string

// NewMapStore builds a MapStore from KEY=value pairs such as os.Environ()
func NewMapStore(environ []string) MapStore {
	m := make(MapStore, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}

func (m MapStore) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MapStore) Setenv(key, value string) error {
	if m == nil {
		return ErrNilMapStore
	}
	m[key] = value
	return nil
}

// Environ returns the store as sorted KEY=value pairs
func (m MapStore) Environ() []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
