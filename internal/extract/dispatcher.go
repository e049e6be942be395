// Package extract turns stored documents into structured extraction results,
// one strategy per MIME family behind a common contract.
package extract

import (
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"docanalyzer/internal/filestore"
)

// MIME types with a dedicated extractor.
const (
	MimePDF        = "application/pdf"
	MimeWord       = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePowerPoint = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	MimeExcel      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeEmail      = "message/rfc822"
	MimeOutlook    = "application/vnd.ms-outlook"
	MimeBinary     = "application/octet-stream"
)

func init() {
	// The platform mime table does not always know the office and email
	// extensions we dispatch on.
	_ = mime.AddExtensionType(".txt", "text/plain")
	_ = mime.AddExtensionType(".docx", MimeWord)
	_ = mime.AddExtensionType(".pptx", MimePowerPoint)
	_ = mime.AddExtensionType(".xlsx", MimeExcel)
	_ = mime.AddExtensionType(".eml", MimeEmail)
	_ = mime.AddExtensionType(".msg", MimeOutlook)
}

// MimeTypeOf guesses a MIME type from the filename extension, defaulting to
// generic binary when the extension is unknown.
func MimeTypeOf(filename string) string {
	mimeType := mime.TypeByExtension(filepath.Ext(filename))
	if mimeType == "" {
		return MimeBinary
	}
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType
}

// Extractor is one format strategy. Implementations never fail outright:
// feature-level problems are recorded inside the result and the base file
// metadata is always present.
type Extractor interface {
	Extract(path string, info FileInfo) *Result
}

// Dispatcher selects the extractor for a MIME type. Exact matches win over
// prefix rules; anything unmatched (images included) degrades to the
// metadata-only fallback.
type Dispatcher struct {
	exact    map[string]Extractor
	prefixes []prefixRule
	logger   *slog.Logger
}

type prefixRule struct {
	prefix    string
	extractor Extractor
}

// Options bounds the more expensive extraction features.
type Options struct {
	MaxRowsPerSheet int // per-sheet row cap for spreadsheets
	PDFImagePageCap int // how many leading PDF pages to mine for images
}

func (o Options) withDefaults() Options {
	if o.MaxRowsPerSheet <= 0 {
		o.MaxRowsPerSheet = 100
	}
	if o.PDFImagePageCap <= 0 {
		o.PDFImagePageCap = 3
	}
	return o
}

func NewDispatcher(store *filestore.Store, opts Options, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()

	email := &EmailExtractor{store: store, logger: logger}
	d := &Dispatcher{
		exact: map[string]Extractor{
			MimePDF:        &PDFExtractor{store: store, pageCap: opts.PDFImagePageCap, logger: logger},
			MimeWord:       &WordExtractor{},
			MimePowerPoint: &PowerPointExtractor{},
			MimeExcel:      &ExcelExtractor{maxRows: opts.MaxRowsPerSheet},
			MimeEmail:      email,
			MimeOutlook:    email,
		},
		prefixes: []prefixRule{
			{prefix: "text/", extractor: &TextExtractor{}},
		},
		logger: logger,
	}
	return d
}

// Extract dispatches on mimeType and runs the matching extractor over the
// stored file. The result always carries base file metadata; unknown types
// and images get nothing else.
func (d *Dispatcher) Extract(path, mimeType string) *Result {
	info := statInfo(path, mimeType)

	if extractor, ok := d.exact[mimeType]; ok {
		return extractor.Extract(path, info)
	}
	for _, rule := range d.prefixes {
		if strings.HasPrefix(mimeType, rule.prefix) {
			return rule.extractor.Extract(path, info)
		}
	}

	d.logger.Debug("no extractor for mime type, returning file info only", "mime_type", mimeType)
	return newResult(info)
}
