// Package loader reads documents from disk and extracts their text, routing
// each file to a format-specific extractor by extension.
package loader

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ragmill/internal/chunker"
)

// supportedExtensions lists the file types the loader can extract text from.
var supportedExtensions = []string{".pdf", ".docx", ".txt", ".md", ".xlsx", ".xls", ".html", ".htm", ".eml"}

// extractor pulls plain text out of one file format.
type extractor func(filePath string) (string, error)

var extractors = map[string]extractor{
	".pdf":  extractPDF,
	".docx": extractDOCX,
	".txt":  extractText,
	".md":   extractText,
	".xlsx": extractExcel,
	".xls":  extractExcel,
	".html": extractHTML,
	".htm":  extractHTML,
	".eml":  extractEmail,
}

// IsSupported reports whether the loader has an extractor for the file.
func IsSupported(filePath string) bool {
	_, ok := extractors[strings.ToLower(filepath.Ext(filePath))]
	return ok
}

// IsTemporary reports whether a file looks like an editor or office
// temporary file that should never be ingested.
func IsTemporary(filePath string) bool {
	base := filepath.Base(filePath)
	return strings.HasPrefix(base, "~$") ||
		strings.HasPrefix(base, "._") ||
		strings.HasSuffix(base, ".tmp")
}

// Load extracts one file into a Document with source metadata attached.
func Load(filePath string) (chunker.Document, error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	extract, ok := extractors[ext]
	if !ok {
		return chunker.Document{}, fmt.Errorf("unsupported file type: %s", ext)
	}

	info, err := os.Stat(filePath)
	if err != nil {
		return chunker.Document{}, fmt.Errorf("failed to stat %s: %w", filePath, err)
	}

	text, err := extract(filePath)
	if err != nil {
		return chunker.Document{}, fmt.Errorf("failed to extract %s: %w", filePath, err)
	}

	return chunker.Document{
		Text: text,
		Metadata: map[string]any{
			"source":     filePath,
			"filename":   filepath.Base(filePath),
			"extension":  ext,
			"size_bytes": info.Size(),
		},
	}, nil
}

// LoadDirectory loads every supported file under dir, optionally recursing
// into subdirectories. Files that fail extraction are logged and skipped so
// one broken document does not sink the batch. Results come back in sorted
// path order for reproducible runs.
func LoadDirectory(dir string, recursive bool) ([]chunker.Document, error) {
	var paths []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsSupported(path) || IsTemporary(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	sort.Strings(paths)

	docs := make([]chunker.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := Load(path)
		if err != nil {
			log.Printf("LoadDirectory: skipping %s: %v", path, err)
			continue
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
