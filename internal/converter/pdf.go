package converter

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextExtractor produces plain text from a document on disk.
type TextExtractor interface {
	Extract(path string) (string, error)
}

type pdfExtractor struct{}

// NewPDFExtractor returns the default extractor backed by ledongthuc/pdf.
func NewPDFExtractor() TextExtractor {
	return pdfExtractor{}
}

func (pdfExtractor) Extract(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var pages []string
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extracting text from page %d: %w", pageIndex, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, strings.TrimSpace(text))
	}

	if len(pages) == 0 {
		return "", fmt.Errorf("no text content extracted from PDF")
	}
	return strings.Join(pages, "\n\n"), nil
}

// describeError maps extraction failures to the short reasons shown to the
// user. The underlying library wraps encryption and structure problems in
// free-form messages, so we classify by substring.
func describeError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "encrypt") || strings.Contains(msg, "password"):
		return "Encrypted PDF not supported"
	case strings.Contains(msg, "corrupt") || strings.Contains(msg, "invalid") ||
		strings.Contains(msg, "malformed") || strings.Contains(msg, "not a pdf"):
		return "Corrupted or invalid PDF file"
	default:
		return fmt.Sprintf("PDF parsing error: %s", err.Error())
	}
}
