package loader

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mnako/letters"
)

// extractEmail flattens an EML message into text: subject, sender and date
// as header lines, then the body. The plain-text body is preferred; HTML is
// the fallback for HTML-only messages.
func extractEmail(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open EML file: %w", err)
	}
	defer file.Close()

	email, err := letters.ParseEmail(file)
	if err != nil {
		return "", fmt.Errorf("failed to parse EML file: %w", err)
	}

	var sb strings.Builder
	if email.Headers.Subject != "" {
		sb.WriteString(fmt.Sprintf("Asunto: %s\n", email.Headers.Subject))
	}
	if len(email.Headers.From) > 0 {
		from := email.Headers.From[0]
		if from.Name != "" {
			sb.WriteString(fmt.Sprintf("De: %s <%s>\n", from.Name, from.Address))
		} else {
			sb.WriteString(fmt.Sprintf("De: %s\n", from.Address))
		}
	}
	if !email.Headers.Date.IsZero() {
		sb.WriteString(fmt.Sprintf("Fecha: %s\n", email.Headers.Date.Format(time.RFC3339)))
	}

	body := email.Text
	if body == "" {
		body = email.HTML
	}
	if strings.TrimSpace(body) == "" {
		return "", fmt.Errorf("no body text in EML file: %s", filePath)
	}
	sb.WriteString("\n")
	sb.WriteString(body)

	return strings.TrimSpace(sb.String()), nil
}
