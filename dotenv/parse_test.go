package dotenv

import (
	"fmt"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string]string
	}{
		{"simple", "FOO=bar", map[string]string{"FOO": "bar"}},
		{"spaces around separator", "FOO = bar ", map[string]string{"FOO": "bar"}},
		{"colon separator", "FOO: bar", map[string]string{"FOO": "bar"}},
		{"export prefix", "export FOO=bar", map[string]string{"FOO": "bar"}},
		{"export with tabs", "\texport\tFOO=bar", map[string]string{"FOO": "bar"}},
		{"export as key", "export=1", map[string]string{"export": "1"}},
		{"leading whitespace", "   FOO=bar", map[string]string{"FOO": "bar"}},
		{"dots and dashes in key", "app.log-level=debug", map[string]string{"app.log-level": "debug"}},
		{"equals inside value", "URL=postgres://u:p@h/db?sslmode=disable", map[string]string{"URL": "postgres://u:p@h/db?sslmode=disable"}},
		{"empty value", "EMPTY=", map[string]string{"EMPTY": ""}},
		{"bare key", "BARE", map[string]string{"BARE": ""}},
		{"bare key with comment", "BARE # nothing here", map[string]string{"BARE": ""}},
		{"inline comment", "FOO=bar # comment", map[string]string{"FOO": "bar"}},
		{"comment without space", "A=x#y", map[string]string{"A": "x"}},
		{"only comment after separator", "A= # comment", map[string]string{"A": ""}},
		{"single quoted hash", "A='x#y'", map[string]string{"A": "x#y"}},
		{"double quoted hash", `BAR = "baz # not a comment"`, map[string]string{"BAR": "baz # not a comment"}},
		{"backtick quoted", "A=`it's \"both\"`", map[string]string{"A": `it's "both"`}},
		{"mixed quotes inside single", `QUOTED='can contain # and "double" quotes'`, map[string]string{"QUOTED": `can contain # and "double" quotes`}},
		{"quoted keeps inner whitespace", `A="  padded  "`, map[string]string{"A": "  padded  "}},
		{"quoted then comment", `A="value" # trailing`, map[string]string{"A": "value"}},
		{"escaped quote kept verbatim", `A="say \"hi\""`, map[string]string{"A": `say \"hi\"`}},
		{"trailing escaped quote", `A='abc\'`, map[string]string{"A": `abc\`}},
		{"garbage after closing quote", `A="x" y`, map[string]string{"A": `"x" y`}},
		{"unterminated quote", `A="open`, map[string]string{"A": `"open`}},
		{"double quoted newline", `A="line1\nline2"`, map[string]string{"A": "line1\nline2"}},
		{"double quoted carriage return", `A="a\rb"`, map[string]string{"A": "a\rb"}},
		{"single quoted no expansion", `A='line1\nline2'`, map[string]string{"A": `line1\nline2`}},
		{"backtick no expansion", "A=`line1\\nline2`", map[string]string{"A": `line1\nline2`}},
		{"unquoted no expansion", `A=line1\nline2`, map[string]string{"A": `line1\nline2`}},
		{"other escapes untouched", `A="tab\there"`, map[string]string{"A": `tab\there`}},
		{"multi-line quoted value", "A=\"first\nsecond\"\nB=2", map[string]string{"A": "first\nsecond", "B": "2"}},
		{"unicode value", "GREETING=héllo wörld", map[string]string{"GREETING": "héllo wörld"}},
		{"blank and comment lines", "\n# comment\n   \n\t# indented\n", map[string]string{}},
		{"malformed lines skipped", "not an assignment\n=novalue\n!BANG=1\nGOOD=1", map[string]string{"GOOD": "1"}},
		{"duplicate keys last wins", "A=1\nA=2", map[string]string{"A": "2"}},
		{"empty input", "", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			assert.Equal(t, tt.want, got.Map())
		})
	}
}

func TestParseLineEndings(t *testing.T) {
	want := map[string]string{"A": "1", "B": "2", "C": "3"}

	for name, text := range map[string]string{
		"lf":    "A=1\nB=2\nC=3\n",
		"crlf":  "A=1\r\nB=2\r\nC=3\r\n",
		"cr":    "A=1\rB=2\rC=3\r",
		"mixed": "A=1\r\nB=2\rC=3\n",
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, Parse(text).Map())
		})
	}
}

func TestParseQuotedCRLF(t *testing.T) {
	env := Parse("A=\"one\r\ntwo\"\r\nB=3")
	assert.Equal(t, "one\ntwo", env.Get("A"))
	assert.Equal(t, "3", env.Get("B"))
}

func TestParseMixedFile(t *testing.T) {
	text := strings.Join([]string{
		"FOO=bar",
		`export BAR = "baz # not a comment"`,
		`QUOTED='can contain # and "double" quotes'`,
		`MULTI="line1\nline2"`,
		"EMPTY=",
		"# this whole line is a comment",
	}, "\n")

	env := Parse(text)
	assert.Equal(t, []string{"FOO", "BAR", "QUOTED", "MULTI", "EMPTY"}, env.Keys())
	assert.Equal(t, "bar", env.Get("FOO"))
	assert.Equal(t, "baz # not a comment", env.Get("BAR"))
	assert.Equal(t, `can contain # and "double" quotes`, env.Get("QUOTED"))
	assert.Equal(t, "line1\nline2", env.Get("MULTI"))
	v, ok := env.Lookup("EMPTY")
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestParseDuplicateKeepsFirstPosition(t *testing.T) {
	env := Parse("A=1\nB=2\nA=3")
	assert.Equal(t, []string{"A", "B"}, env.Keys())
	assert.Equal(t, "3", env.Get("A"))
}

func TestParseIdempotent(t *testing.T) {
	text := "A=1\nexport B='two # words'\nC=\"x\\ny\"\n# c\nD=4 # four\n"
	assert.Equal(t, Parse(text), Parse(text))
}

// valueFor returns a quote-, newline- and hash-free value for key i
func valueFor(i int) string {
	alphabet := "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_-./:@"
	var b strings.Builder
	for j := 0; j <= i%17; j++ {
		b.WriteByte(alphabet[(i*31+j*7)%len(alphabet)])
	}
	return b.String()
}

func TestParseRoundTrip(t *testing.T) {
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, fmt.Sprintf("KEY_%d=%s", i, valueFor(i)))
	}
	first := Parse(strings.Join(lines, "\n"))
	require.Equal(t, 50, first.Len())

	var again []string
	for _, k := range first.Keys() {
		again = append(again, k+"="+first.Get(k))
	}
	assert.Equal(t, first.Map(), Parse(strings.Join(again, "\n")).Map())

	marshaled, err := Marshal(first)
	require.NoError(t, err)
	assert.Equal(t, first.Map(), Parse(marshaled).Map())

	awkward := []string{
		`C:\Users\app`,
		"pa$$word!",
		`say "hi"`,
		"a`b",
		"l1\nl2",
		"crlf\r\nline",
		`it's "quoted"`,
		"it's `all` \"three\"",
		"# not a comment",
		"  padded  ",
		`ends with \`,
		`literal \n stays`,
		"'\"\nmixed",
		"",
	}
	env := NewEnv()
	for i, v := range awkward {
		env.Set(fmt.Sprintf("V%d", i), v)
	}
	marshaled, err = Marshal(env)
	require.NoError(t, err)
	back := Parse(marshaled)
	assert.Equal(t, env.Keys(), back.Keys())
	for _, k := range env.Keys() {
		assert.Equal(t, env.Get(k), back.Get(k), "%s in\n%s", k, marshaled)
	}
}

// Common .env content must read the same as with godotenv
func TestParseMatchesGodotenv(t *testing.T) {
	text := strings.Join([]string{
		"FOO=bar",
		"export BAR=baz",
		"SPACED = value",
		`DQ="x y"`,
		`SQ='single'`,
		"INLINE=inline # comment",
		`NL="line1\nline2"`,
		"EMPTY=",
		"# comment",
		"",
		"PORT=8080",
	}, "\n")

	want, err := godotenv.Unmarshal(text)
	require.NoError(t, err)
	assert.Equal(t, want, Parse(text).Map())
}

func TestSplitAssignment(t *testing.T) {
	tests := []struct {
		line, key, rest string
		ok              bool
	}{
		{"A=1", "A", "1", true},
		{"  export A = 1", "A", "1", true},
		{"export", "export", "", true},
		{"A: 'x'", "A", "'x'", true},
		{"A 1", "", "", false},
		{"# A=1", "", "", false},
		{"", "", "", false},
		{"=1", "", "", false},
	}

	for _, tt := range tests {
		key, rest, ok := splitAssignment(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.key, key, tt.line)
		assert.Equal(t, tt.rest, rest, tt.line)
	}
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "x", unquote(`"x"`))
	assert.Equal(t, "x", unquote(`'x'`))
	assert.Equal(t, "x", unquote("`x`"))
	assert.Equal(t, `"x'`, unquote(`"x'`))
	assert.Equal(t, `"`, unquote(`"`))
	assert.Equal(t, "a\nb", unquote(`"a\nb"`))
	assert.Equal(t, `a\nb`, unquote(`'a\nb'`))
}
