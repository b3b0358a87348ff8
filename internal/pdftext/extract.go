// Package pdftext extracts plain text from PDF files for the resolution
// pipeline. Pages are joined with the textsample page separator so the
// sample builder can grow windows page by page. The matching engine never
// imports this package; it only ever sees the extracted string.
package pdftext

import (
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/matsen/citejump/internal/textsample"
)

// ExtractFile extracts text from up to maxPages pages of a PDF file.
// maxPages <= 0 means all pages. Pages that fail to render are skipped
// rather than failing the whole extraction.
func ExtractFile(filePath string, maxPages int) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return extract(r, maxPages)
}

// Extract extracts text from a PDF reader.
func Extract(r io.ReaderAt, size int64, maxPages int) (string, error) {
	pdfReader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", err
	}
	return extract(pdfReader, maxPages)
}

func extract(r *pdf.Reader, maxPages int) (string, error) {
	if maxPages <= 0 || maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	var builder strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteByte(byte(textsample.PageSeparator))
	}

	return builder.String(), nil
}
