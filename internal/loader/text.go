package loader

import (
	"fmt"
	"os"
)

// extractText reads plain text and markdown files as-is.
func extractText(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read text file: %w", err)
	}
	if len(content) == 0 {
		return "", fmt.Errorf("empty text file: %s", filePath)
	}
	return string(content), nil
}
