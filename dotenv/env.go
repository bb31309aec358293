package dotenv

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnquotable is returned by Marshal for a key or value Parse could not read back
var ErrUnquotable = errors.New("dotenv: cannot quote value")

// Env is a parsed set of variables that remembers the order keys were first seen
type Env struct {
	keys   []string
	values map[string]string
}

// NewEnv creates an empty Env
func NewEnv() *Env {
	return &Env{values: make(map[string]string)}
}

// Set assigns value to key. A new key is appended; an existing one keeps its position.
func (e *Env) Set(key, value string) {
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

// Get returns the value for key, or "" if it is not set
func (e *Env) Get(key string) string {
	return e.values[key]
}

// Lookup returns the value for key and whether it was set
func (e *Env) Lookup(key string) (string, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Keys returns the keys in encounter order
func (e *Env) Keys() []string {
	keys := make([]string, len(e.keys))
	copy(keys, e.keys)
	return keys
}

// Len returns the number of keys
func (e *Env) Len() int {
	return len(e.keys)
}

// Map returns a copy of the variables as a plain map
func (e *Env) Map() map[string]string {
	m := make(map[string]string, len(e.values))
	for k, v := range e.values {
		m[k] = v
	}
	return m
}

// MarshalJSON encodes the variables as a JSON object in encounter order
func (e *Env) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range e.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the variables as a YAML mapping of strings in encounter order
func (e *Env) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range e.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.values[k]},
		)
	}
	return node, nil
}

// Marshal renders env as KEY=value lines in encounter order, quoted so that
// Parse reads back the same values
func Marshal(env *Env) (string, error) {
	lines := make([]string, 0, len(env.keys))
	for _, k := range env.keys {
		if !validKey(k) {
			return "", fmt.Errorf("%w: key %q", ErrUnquotable, k)
		}
		v, ok := quote(env.values[k])
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnquotable, k)
		}
		lines = append(lines, k+"="+v)
	}
	return strings.Join(lines, "\n"), nil
}

var escapeNewlines = strings.NewReplacer("\n", `\n`, "\r", `\r`)

// quote picks a form of v that Parse maps back to v. Single and backtick
// quotes are literal; double quotes only expand \n and \r.
func quote(v string) (string, bool) {
	if bare(v) {
		return v, true
	}
	// A trailing backslash would escape the closing quote
	if strings.HasSuffix(v, `\`) {
		return unquoted(v)
	}

	if !strings.ContainsAny(v, "\r\n") {
		if q, ok := literalQuote(v); ok {
			return q, true
		}
	}
	if !strings.Contains(v, `"`) && !strings.Contains(v, `\n`) && !strings.Contains(v, `\r`) {
		return `"` + escapeNewlines.Replace(v) + `"`, true
	}
	// Line breaks other than \r survive inside literal quotes
	if !strings.Contains(v, "\r") {
		if q, ok := literalQuote(v); ok {
			return q, true
		}
	}
	return unquoted(v)
}

func literalQuote(v string) (string, bool) {
	for _, q := range []string{"'", "`"} {
		if !strings.Contains(v, q) {
			return q + v + q, true
		}
	}
	return "", false
}

// unquoted accepts v as-is when it has no comment, line break, leading quote
// or surrounding space
func unquoted(v string) (string, bool) {
	if strings.ContainsAny(v, "#\r\n") || isQuote(v[0]) || strings.TrimSpace(v) != v {
		return "", false
	}
	return v, true
}

// bare reports whether v is a plain token that needs no quotes
func bare(v string) bool {
	for i := 0; i < len(v); i++ {
		if !isKeyChar(v[i]) && !strings.ContainsRune("/:@+,", rune(v[i])) {
			return false
		}
	}
	return true
}

func validKey(k string) bool {
	for i := 0; i < len(k); i++ {
		if !isKeyChar(k[i]) {
			return false
		}
	}
	return k != ""
}
