package loader

import (
	"fmt"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// extractDOCX pulls the body text out of a Word document.
func extractDOCX(filePath string) (string, error) {
	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX file: %w", err)
	}
	defer doc.Close()

	text := strings.TrimSpace(doc.Editable().GetContent())
	if text == "" {
		return "", fmt.Errorf("no text extracted from DOCX: %s", filePath)
	}
	return text, nil
}
