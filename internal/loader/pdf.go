package loader

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// extractPDF pulls text from a PDF page by page via MuPDF. Pages that fail
// extraction are skipped; a PDF is an error only when no page yields text
// (scanned images without an OCR layer, typically).
func extractPDF(filePath string) (string, error) {
	doc, err := fitz.New(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		pageText, err := doc.Text(page)
		if err != nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(pageText)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no text extracted from PDF: %s", filePath)
	}
	return text, nil
}
