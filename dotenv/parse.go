// Package dotenv parses .env files and merges them into a key/value store.
package dotenv

import (
	"strings"
	"unicode"
)

var (
	lineBreaks     = strings.NewReplacer("\r\n", "\n", "\r", "\n")
	expandNewlines = strings.NewReplacer(`\n`, "\n", `\r`, "\r")
)

// Parse reads text in the .env format into an Env.
//
// Each line holds one assignment:
//
//	[export] KEY = value   # comment
//	KEY: 'single quoted'
//	KEY="double quoted\nwith escapes"
//
// Keys are made of letters, digits, '_', '.' and '-'. Values may be wrapped
// in single, double or backtick quotes; a quoted value may contain '#' and
// may continue over several lines. Only double-quoted values expand \n and
// \r. Lines that do not form an assignment are skipped. When a key repeats,
// the last value wins.
func Parse(text string) *Env {
	env := NewEnv()
	p := &parser{src: lineBreaks.Replace(text)}
	for !p.done() {
		if key, value, ok := p.next(); ok {
			env.Set(key, value)
		}
	}
	return env
}

// ParseBytes is Parse for raw file contents
func ParseBytes(b []byte) *Env {
	return Parse(string(b))
}

type parser struct {
	src string
	pos int
}

func (p *parser) done() bool {
	return p.pos >= len(p.src)
}

// eol returns the index of the line break ending the line that contains i
func (p *parser) eol(i int) int {
	if j := strings.IndexByte(p.src[i:], '\n'); j >= 0 {
		return i + j
	}
	return len(p.src)
}

// advance moves past the line break at lineEnd
func (p *parser) advance(lineEnd int) {
	p.pos = min(lineEnd+1, len(p.src))
}

// next consumes one logical line and returns its assignment, if any
func (p *parser) next() (string, string, bool) {
	start, lineEnd := p.pos, p.eol(p.pos)
	line := p.src[start:lineEnd]
	p.advance(lineEnd)

	key, rest, ok := splitAssignment(line)
	if !ok {
		return "", "", false
	}

	// rest is a suffix of line, so its offset in src is known
	valueStart := start + len(line) - len(rest)
	return key, unquote(p.value(valueStart, lineEnd)), true
}

// value extracts the raw value starting at valueStart. A quoted value runs
// to its closing quote, possibly on a later line; anything else runs to the
// first '#' or the end of the line.
func (p *parser) value(valueStart, lineEnd int) string {
	region := p.src[valueStart:lineEnd]
	if region != "" && isQuote(region[0]) {
		if end, ok := p.closingQuote(valueStart); ok {
			p.advance(p.eol(end))
			return p.src[valueStart : end+1]
		}
	}

	if i := strings.IndexByte(region, '#'); i >= 0 {
		region = region[:i]
	}
	return strings.TrimSpace(region)
}

// closingQuote finds the quote that closes the one at open. The first
// unescaped quote ends the scan; escaped quotes before it are fallbacks.
// The longest candidate followed only by whitespace or a comment wins.
func (p *parser) closingQuote(open int) (int, bool) {
	q := p.src[open]
	var candidates []int

scan:
	for i := open + 1; i < len(p.src); i++ {
		switch p.src[i] {
		case '\\':
			if i+1 < len(p.src) && p.src[i+1] == q {
				i++
				candidates = append(candidates, i)
			}
		case q:
			candidates = append(candidates, i)
			break scan
		}
	}

	for j := len(candidates) - 1; j >= 0; j-- {
		if p.endsLine(candidates[j] + 1) {
			return candidates[j], true
		}
	}
	return 0, false
}

// endsLine reports whether only whitespace or a comment follows i on its line
func (p *parser) endsLine(i int) bool {
	tail := trimLeft(p.src[i:p.eol(i)])
	return tail == "" || tail[0] == '#'
}

// splitAssignment splits a line into its key and the text after the
// separator. A bare key yields an empty rest.
func splitAssignment(line string) (string, string, bool) {
	s := trimLeft(line)
	if s == "" || s[0] == '#' {
		return "", "", false
	}

	if rest, ok := cutExport(s); ok {
		if key, value, ok := splitKey(rest); ok {
			return key, value, true
		}
	}
	// "export" may itself be the key, as in export=1
	return splitKey(s)
}

func cutExport(s string) (string, bool) {
	rest, ok := strings.CutPrefix(s, "export")
	if !ok || rest == "" || !unicode.IsSpace(rune(rest[0])) {
		return "", false
	}
	return trimLeft(rest), true
}

func splitKey(s string) (string, string, bool) {
	n := 0
	for n < len(s) && isKeyChar(s[n]) {
		n++
	}
	if n == 0 {
		return "", "", false
	}

	key, rest := s[:n], trimLeft(s[n:])
	switch {
	case rest == "" || rest[0] == '#':
		return key, "", true
	case rest[0] == '=' || rest[0] == ':':
		return key, trimLeft(rest[1:]), true
	}
	return "", "", false
}

// unquote strips a matching pair of outer quotes and expands \n and \r
// in double-quoted values
func unquote(raw string) string {
	doubleQuoted := strings.HasPrefix(raw, `"`)
	if len(raw) >= 2 && isQuote(raw[0]) && raw[len(raw)-1] == raw[0] {
		raw = raw[1 : len(raw)-1]
	}
	if doubleQuoted {
		raw = expandNewlines.Replace(raw)
	}
	return raw
}

func isKeyChar(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '.' || c == '-'
}

func isQuote(c byte) bool {
	return c == '\'' || c == '"' || c == '`'
}

func trimLeft(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}
