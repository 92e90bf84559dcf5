package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractHTML extracts the visible text of an HTML file, dropping script,
// style and noscript content first.
func extractHTML(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open HTML file: %w", err)
	}
	defer file.Close()

	doc, err := goquery.NewDocumentFromReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	text := strings.TrimSpace(doc.Text())
	if text == "" {
		return "", fmt.Errorf("no text extracted from HTML: %s", filePath)
	}
	return text, nil
}
