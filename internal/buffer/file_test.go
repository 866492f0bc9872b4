package buffer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{}},
		{name: "terminated", input: "a\nb\n", want: []string{"a", "b"}},
		{name: "unterminated last line", input: "a\nb", want: []string{"a", "b"}},
		{name: "blank lines", input: "\n\nx\n\n", want: []string{"", "", "x", ""}},
		{name: "crlf kept", input: "a\r\nb\r\n", want: []string{"a\r", "b\r"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := New()
			n, err := b.ReadFrom(strings.NewReader(tc.input))
			require.NoError(t, err)
			assert.Equal(t, int64(len(tc.input)), n)
			assert.Equal(t, tc.want, b.Lines())
		})
	}
}

func TestWriteTo(t *testing.T) {
	b := fill("a", "", "c")
	var out bytes.Buffer
	n, err := b.WriteTo(&out)
	require.NoError(t, err)
	assert.Equal(t, "a\n\nc\n", out.String())
	assert.Equal(t, int64(out.Len()), n)
}

func TestLoadMissingFile(t *testing.T) {
	b := fill("stale")
	existed, err := b.Load(filepath.Join(t.TempDir(), "new.txt"))
	require.NoError(t, err)
	assert.False(t, existed)
	assert.Equal(t, 0, b.Len())
	assert.False(t, b.Modified())
}

func TestLoadReplacesContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("first\nsecond\n"), 0644))

	b := fill("stale")
	existed, err := b.Load(path)
	require.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, []string{"first", "second"}, b.Lines())
	assert.False(t, b.Modified())
	checkLinks(t, b)
}

func TestLoadDirectory(t *testing.T) {
	b := fill("kept")
	_, err := b.Load(t.TempDir())
	assert.Error(t, err)
	assert.Equal(t, []string{"kept"}, b.Lines())
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.txt")
	lines := []string{"alpha", "", "  indented", "tab\there", "unicode ñ ü"}

	b := fill(lines...)
	require.True(t, b.Modified())
	require.NoError(t, b.Save(path))
	assert.False(t, b.Modified())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(lines, "\n")+"\n", string(data))

	loaded := New()
	_, err = loaded.Load(path)
	require.NoError(t, err)
	assert.Equal(t, lines, loaded.Lines())
}

func TestSaveTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.txt")
	require.NoError(t, os.WriteFile(path, []byte("a much longer previous content\nwith two lines\n"), 0644))

	b := fill("x")
	require.NoError(t, b.Save(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(data))
}

func TestSaveFailureKeepsModified(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "file.txt")
	b := fill("a")
	err := b.Save(path)
	assert.Error(t, err)
	assert.True(t, b.Modified())
	assert.Equal(t, []string{"a"}, b.Lines())
}
