package extract

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenTextPriority(t *testing.T) {
	r := newResult(FileInfo{MimeType: "text/plain"})
	r.Text = "direct text"
	r.Slides = []string{"slide"}
	r.Body = "email body"
	assert.Equal(t, "direct text", r.FlattenText())

	r.Text = ""
	assert.Equal(t, "slide", r.FlattenText())

	r.Slides = nil
	assert.Equal(t, "email body", r.FlattenText())

	r.Body = ""
	assert.Equal(t, "", r.FlattenText())
}

func TestFlattenTextSheetsBeforeBody(t *testing.T) {
	r := newResult(FileInfo{MimeType: MimeExcel})
	r.Sheets = []Sheet{{Name: "Data", Rows: [][]string{{"x", "y"}}}}
	r.Body = "should not win"

	assert.Equal(t, "Sheet: Data\nx\ty\n", r.FlattenText())
}

func TestCaptureRecordsError(t *testing.T) {
	r := newResult(FileInfo{})
	capture(r, "step", func() error {
		return errors.New("boom")
	})

	assert.Equal(t, "boom", r.Errors["step"])
}

func TestCaptureRecoversPanic(t *testing.T) {
	r := newResult(FileInfo{})
	capture(r, "step", func() error {
		panic("parser blew up")
	})

	assert.Contains(t, r.Errors["step"], "parser blew up")
}

func TestResultJSONOmitsEmptyFeatures(t *testing.T) {
	r := newResult(FileInfo{FileName: "a.bin", MimeType: MimeBinary})

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "a.bin", decoded["file_name"])
	assert.NotContains(t, decoded, "slides")
	assert.NotContains(t, decoded, "sheets")
	assert.NotContains(t, decoded, "text_content")
	assert.NotContains(t, decoded, "extraction_errors")
}
