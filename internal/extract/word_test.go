package extract

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZipFile(t *testing.T, name string, parts map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for partName, content := range parts {
		w, err := zw.Create(partName)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

const wordDocumentXML = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph</w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>A1</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>B1</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>A2</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>B2</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
    <w:p><w:r><w:t>After the table</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestWordExtractor(t *testing.T) {
	path := writeZipFile(t, "doc.docx", map[string]string{
		"word/document.xml": wordDocumentXML,
	})

	result := (&WordExtractor{}).Extract(path, statInfo(path, MimeWord))

	require.Empty(t, result.Errors)
	assert.Equal(t, "First paragraph\nSecond paragraph\nAfter the table", result.Text)
	assert.Equal(t, 3, result.ParagraphCount)
	require.Equal(t, 1, result.TableCount)
	assert.Equal(t, [][]string{{"A1", "B1"}, {"A2", "B2"}}, result.Tables[0])
}

func TestWordExtractorMissingDocumentPart(t *testing.T) {
	path := writeZipFile(t, "bad.docx", map[string]string{
		"other.xml": "<x/>",
	})

	result := (&WordExtractor{}).Extract(path, statInfo(path, MimeWord))

	assert.Contains(t, result.Errors, "docx_extraction")
	assert.Empty(t, result.Text)
}

func TestWordExtractorNotAZip(t *testing.T) {
	path := writeTestFile(t, "fake.docx", []byte("not a zip archive"))

	result := (&WordExtractor{}).Extract(path, statInfo(path, MimeWord))

	assert.Contains(t, result.Errors, "docx_extraction")
	assert.Equal(t, "fake.docx", result.FileName)
}
