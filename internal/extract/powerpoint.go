package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var slidePartPattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// PowerPointExtractor collects the text of every shape on every slide, in
// slide order. A .pptx is a zip with one ppt/slides/slideN.xml per slide;
// visible text lives in a:t elements.
type PowerPointExtractor struct{}

func (e *PowerPointExtractor) Extract(path string, info FileInfo) *Result {
	result := newResult(info)
	capture(result, "pptx_extraction", func() error {
		return e.extractSlides(path, result)
	})
	return result
}

func (e *PowerPointExtractor) extractSlides(path string, result *Result) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open pptx archive failed: %w", err)
	}
	defer zr.Close()

	type slidePart struct {
		num  int
		file *zip.File
	}
	var parts []slidePart
	for _, f := range zr.File {
		m := slidePartPattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		parts = append(parts, slidePart{num: num, file: f})
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].num < parts[j].num })

	slides := make([]string, 0, len(parts))
	for _, part := range parts {
		text, err := slideText(part.file)
		if err != nil {
			return fmt.Errorf("slide %d: %w", part.num, err)
		}
		slides = append(slides, strings.TrimSpace(text))
	}

	result.Slides = slides
	result.SlideCount = len(slides)
	return nil
}

func slideText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open slide part failed: %w", err)
	}
	defer rc.Close()

	var b strings.Builder
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode slide xml failed: %w", err)
		}
		if el, ok := tok.(xml.StartElement); ok && el.Name.Local == "t" {
			var text string
			if err := decoder.DecodeElement(&text, &el); err == nil {
				b.WriteString(text)
				b.WriteString("\n")
			}
		}
	}
	return b.String(), nil
}
