// Package resume implements PDF text extraction for the resume parser.
package resume

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"seekers/internal/domain"
)

type pdfExtractor struct{}

// NewPDFExtractor returns a PDFExtractor backed by a pure-Go PDF reader.
func NewPDFExtractor() domain.PDFExtractor {
	return &pdfExtractor{}
}

func (e *pdfExtractor) ExtractText(r io.ReaderAt, size int64) (string, error) {
	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	var b strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			// Skip unreadable pages; a partially extracted resume still
			// autofills something.
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
				b.WriteByte(' ')
			}
			b.WriteByte('\n')
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("no extractable text in pdf")
	}
	return text, nil
}
