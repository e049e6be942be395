package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// WordExtractor reads the OpenXML document part directly: a .docx is a zip
// holding word/document.xml, paragraphs are w:p/w:t runs, tables w:tbl.
type WordExtractor struct{}

func (e *WordExtractor) Extract(path string, info FileInfo) *Result {
	result := newResult(info)
	capture(result, "docx_extraction", func() error {
		return e.extractDocument(path, result)
	})
	return result
}

func (e *WordExtractor) extractDocument(path string, result *Result) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open docx archive failed: %w", err)
	}
	defer zr.Close()

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return errors.New("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return fmt.Errorf("open document part failed: %w", err)
	}
	defer rc.Close()

	paragraphs, tables, err := parseDocumentXML(rc)
	if err != nil {
		return err
	}

	result.Text = strings.Join(paragraphs, "\n")
	result.ParagraphCount = len(paragraphs)
	result.Tables = tables
	result.TableCount = len(tables)
	return nil
}

// parseDocumentXML walks the body once, collecting top-level paragraph text
// and table rows. Paragraphs inside table cells belong to the cell, not the
// document text.
func parseDocumentXML(r io.Reader) ([]string, [][][]string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs []string
		tables     [][][]string
		curTable   [][]string
		curRow     []string
		cellText   strings.Builder
		paraText   strings.Builder
		tableDepth int
		inCell     bool
		inPara     bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("decode document xml failed: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "tbl":
				tableDepth++
				if tableDepth == 1 {
					curTable = nil
				}
			case "tr":
				if tableDepth == 1 {
					curRow = nil
				}
			case "tc":
				if tableDepth == 1 {
					inCell = true
					cellText.Reset()
				}
			case "p":
				if tableDepth == 0 {
					inPara = true
					paraText.Reset()
				}
			case "t":
				var text string
				if err := decoder.DecodeElement(&text, &el); err != nil {
					continue
				}
				switch {
				case inCell:
					cellText.WriteString(text)
				case inPara:
					paraText.WriteString(text)
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "tbl":
				if tableDepth == 1 {
					tables = append(tables, curTable)
				}
				tableDepth--
			case "tr":
				if tableDepth == 1 {
					curTable = append(curTable, curRow)
				}
			case "tc":
				if tableDepth == 1 && inCell {
					curRow = append(curRow, cellText.String())
					inCell = false
				}
			case "p":
				if tableDepth == 0 && inPara {
					paragraphs = append(paragraphs, paraText.String())
					inPara = false
				}
			}
		}
	}

	return paragraphs, tables, nil
}
