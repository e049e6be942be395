package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestTextExtractorUTF8(t *testing.T) {
	path := writeTestFile(t, "plain.txt", []byte("line1\nline2\n"))

	result := (&TextExtractor{}).Extract(path, statInfo(path, "text/plain"))

	assert.Empty(t, result.Errors)
	assert.Equal(t, "line1\nline2\n", result.Text)
	assert.Equal(t, 2, result.LineCount)
}

func TestTextExtractorNoTrailingNewline(t *testing.T) {
	path := writeTestFile(t, "plain.txt", []byte("line1\nline2"))

	result := (&TextExtractor{}).Extract(path, statInfo(path, "text/plain"))

	assert.Equal(t, 2, result.LineCount)
}

func TestTextExtractorEmptyFile(t *testing.T) {
	path := writeTestFile(t, "empty.txt", nil)

	result := (&TextExtractor{}).Extract(path, statInfo(path, "text/plain"))

	assert.Empty(t, result.Errors)
	assert.Equal(t, "", result.Text)
	assert.Equal(t, 0, result.LineCount)
}

func TestTextExtractorLatin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 but invalid standalone UTF-8.
	path := writeTestFile(t, "latin1.txt", []byte{'c', 'a', 'f', 0xE9})

	result := (&TextExtractor{}).Extract(path, statInfo(path, "text/plain"))

	assert.Empty(t, result.Errors)
	assert.Equal(t, "café", result.Text)
	assert.Equal(t, 1, result.LineCount)
}

func TestTextExtractorMissingFile(t *testing.T) {
	result := (&TextExtractor{}).Extract("/nonexistent/file.txt", FileInfo{FileName: "file.txt"})

	assert.Contains(t, result.Errors, "text_extraction")
	assert.Empty(t, result.Text)
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, countLines(""))
	assert.Equal(t, 1, countLines("only"))
	assert.Equal(t, 1, countLines("only\n"))
	assert.Equal(t, 3, countLines("a\nb\nc"))
	assert.Equal(t, 3, countLines("a\nb\nc\n"))
}
