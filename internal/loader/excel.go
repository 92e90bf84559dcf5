package loader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractExcel flattens a spreadsheet into prose-like lines, one per data
// row, pairing each cell with its column header so the chunked text stays
// self-describing.
func extractExcel(filePath string) (string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("no sheets in spreadsheet: %s", filePath)
	}

	var sb strings.Builder
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) < 2 {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(fmt.Sprintf("Hoja: %s\n", sheet))

		headers := rows[0]
		for _, row := range rows[1:] {
			var parts []string
			for col, header := range headers {
				if col < len(row) {
					if value := strings.TrimSpace(row[col]); value != "" {
						parts = append(parts, fmt.Sprintf("%s: %s", header, value))
					}
				}
			}
			if len(parts) > 0 {
				sb.WriteString(strings.Join(parts, ", "))
				sb.WriteString("\n")
			}
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no data rows in spreadsheet: %s", filePath)
	}
	return text, nil
}
