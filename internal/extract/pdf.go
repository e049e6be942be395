package extract

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"docanalyzer/internal/filestore"
)

// PDFExtractor pulls the text layer page by page and, independently, mines
// the leading pages for embedded images. Either sub-step failing leaves a
// labeled error without blocking the other.
type PDFExtractor struct {
	store   *filestore.Store
	pageCap int
	logger  *slog.Logger
}

func (e *PDFExtractor) Extract(path string, info FileInfo) *Result {
	result := newResult(info)
	capture(result, "text_extraction", func() error {
		return e.extractText(path, result)
	})
	capture(result, "image_extraction", func() error {
		return e.extractImages(path, result)
	})
	return result
}

func (e *PDFExtractor) extractText(path string, result *Result) error {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return fmt.Errorf("open pdf failed: %w", err)
	}
	defer f.Close()

	total := reader.NumPage()
	result.PageCount = total

	var pages []string
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(content) == "" {
			continue
		}
		pages = append(pages, fmt.Sprintf("Page %d:\n%s", i, content))
	}
	if len(pages) > 0 {
		result.Text = strings.Join(pages, "\n\n")
		e.logger.Info("extracted pdf text", "file", result.FileName, "chars", len(result.Text))
	}
	return nil
}

// extractImages extracts embedded images from the first pageCap pages into a
// scratch dir, then moves each into the store under a collision-free name.
func (e *PDFExtractor) extractImages(path string, result *Result) error {
	lastPage := e.pageCap
	if result.PageCount > 0 && result.PageCount < lastPage {
		lastPage = result.PageCount
	}

	tmpDir, err := os.MkdirTemp("", "pdf-images-*")
	if err != nil {
		return fmt.Errorf("create scratch dir failed: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pages := []string{fmt.Sprintf("1-%d", lastPage)}
	if err := api.ExtractImagesFile(path, tmpDir, pages, nil); err != nil {
		return fmt.Errorf("extract pdf images failed: %w", err)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return fmt.Errorf("read scratch dir failed: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		dest := filepath.Join(e.store.Dir(), e.store.UniqueName(entry.Name()))
		if err := os.Rename(filepath.Join(tmpDir, entry.Name()), dest); err != nil {
			return fmt.Errorf("move extracted image failed: %w", err)
		}
		result.Images = append(result.Images, dest)
	}
	result.ImageCount = len(result.Images)
	return nil
}
