package extract

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// FileInfo is the base metadata every extraction carries, whatever the
// format and however badly the format-specific pass goes.
type FileInfo struct {
	FilePath     string `json:"file_path"`
	FileName     string `json:"file_name"`
	MimeType     string `json:"mime_type"`
	FileSize     int64  `json:"file_size"`
	CreatedTime  string `json:"created_time,omitempty"`
	ModifiedTime string `json:"modified_time,omitempty"`
}

// Sheet is one spreadsheet tab in original workbook order.
type Sheet struct {
	Name string     `json:"name"`
	Rows [][]string `json:"rows"`
}

// Attachment records an email attachment extracted into the file store.
type Attachment struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	MimeType string `json:"mime_type"`
}

// Result is the structured outcome of one extraction. Format-specific fields
// are only set by the extractor that owns them; a feature that fails leaves
// its field empty and records the failure under a label in Errors instead of
// aborting the rest of the extraction.
type Result struct {
	FileInfo

	Text            string            `json:"text_content,omitempty"`
	PageCount       int               `json:"page_count,omitempty"`
	LineCount       int               `json:"line_count,omitempty"`
	ParagraphCount  int               `json:"paragraph_count,omitempty"`
	Tables          [][][]string      `json:"tables,omitempty"`
	TableCount      int               `json:"table_count,omitempty"`
	Slides          []string          `json:"slides,omitempty"`
	SlideCount      int               `json:"slide_count,omitempty"`
	Sheets          []Sheet           `json:"sheets,omitempty"`
	SheetCount      int               `json:"sheet_count,omitempty"`
	Headers         map[string]string `json:"headers,omitempty"`
	Body            string            `json:"body,omitempty"`
	Attachments     []Attachment      `json:"attachments,omitempty"`
	AttachmentCount int               `json:"attachment_count,omitempty"`
	Images          []string          `json:"extracted_images,omitempty"`
	ImageCount      int               `json:"num_images_extracted,omitempty"`

	Errors map[string]string `json:"extraction_errors,omitempty"`
}

func newResult(info FileInfo) *Result {
	return &Result{FileInfo: info, Errors: map[string]string{}}
}

func (r *Result) setError(label string, err error) {
	if r.Errors == nil {
		r.Errors = map[string]string{}
	}
	r.Errors[label] = err.Error()
}

// FlattenText normalizes the structured result into the single extracted-text
// payload stored alongside the document. Priority: plain text, then slides,
// then sheets, then email body, then the best-effort PDF note, then empty.
func (r *Result) FlattenText() string {
	if r.Text != "" {
		return r.Text
	}
	if len(r.Slides) > 0 {
		return strings.Join(r.Slides, "\n\n")
	}
	if len(r.Sheets) > 0 {
		texts := make([]string, 0, len(r.Sheets))
		for _, sheet := range r.Sheets {
			var b strings.Builder
			fmt.Fprintf(&b, "Sheet: %s\n", sheet.Name)
			for _, row := range sheet.Rows {
				b.WriteString(strings.Join(row, "\t"))
				b.WriteString("\n")
			}
			texts = append(texts, b.String())
		}
		return strings.Join(texts, "\n\n")
	}
	if r.Body != "" {
		return r.Body
	}
	if r.MimeType == MimePDF {
		return r.pdfFallbackText()
	}
	return ""
}

// pdfFallbackText synthesizes a note for PDFs without a text layer. Best
// effort only: a metadata dump plus the image-extraction count.
func (r *Result) pdfFallbackText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PDF Document: %s\n\n", r.FileName)
	b.WriteString("Metadata:\n")
	fmt.Fprintf(&b, "file_size: %d\n", r.FileSize)
	if r.PageCount > 0 {
		fmt.Fprintf(&b, "page_count: %d\n", r.PageCount)
	}
	if r.ImageCount > 0 {
		fmt.Fprintf(&b, "\nNote: %d images were extracted from this PDF.", r.ImageCount)
		b.WriteString("\nText extraction is limited for this PDF document.")
	}
	return b.String()
}

// capture runs one extraction feature, turning both returned errors and
// panics from parser libraries into a labeled entry in r.Errors.
func capture(r *Result, label string, fn func() error) {
	defer func() {
		if p := recover(); p != nil {
			r.Errors[label] = fmt.Sprintf("panic: %v", p)
		}
	}()
	if err := fn(); err != nil {
		r.setError(label, err)
	}
}

func statInfo(path, mimeType string) FileInfo {
	info := FileInfo{
		FilePath: path,
		FileName: baseName(path),
		MimeType: mimeType,
	}
	if fi, err := os.Stat(path); err == nil {
		info.FileSize = fi.Size()
		// Portable stat exposes no creation time, so created_time mirrors
		// the modification time.
		ts := fi.ModTime().Format(time.RFC3339)
		info.CreatedTime = ts
		info.ModifiedTime = ts
	}
	return info
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
