package extract

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// TextExtractor reads the file as UTF-8 and falls back to Latin-1 when the
// bytes are not valid UTF-8; it never fails past that point.
type TextExtractor struct{}

func (e *TextExtractor) Extract(path string, info FileInfo) *Result {
	result := newResult(info)
	capture(result, "text_extraction", func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read text file failed: %w", err)
		}

		var content string
		if utf8.Valid(data) {
			content = string(data)
		} else {
			content = decodeLatin1(data)
		}

		result.Text = content
		result.LineCount = countLines(content)
		return nil
	})
	return result
}

// decodeLatin1 maps each byte to the rune with the same code point.
func decodeLatin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}
