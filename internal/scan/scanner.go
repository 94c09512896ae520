package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/thatguyinabeanie/todo-mcp/internal/logger"
)

var log = logger.ForComponent("scan")

const maxFileSize = 10 * 1024 * 1024

// Item is one comment marker found in a source file.
type Item struct {
	FilePath string `json:"file_path"`
	Line     int    `json:"line"`
	Marker   string `json:"marker"`
	Text     string `json:"text"`
}

// Scanner walks a tree collecting TODO-style comment markers.
type Scanner struct {
	ignorePatterns []string
}

func NewScanner(ignorePatterns []string) *Scanner {
	if len(ignorePatterns) == 0 {
		ignorePatterns = DefaultIgnorePatterns
	}
	return &Scanner{ignorePatterns: ignorePatterns}
}

// ScanRoot walks root and returns all markers found in non-ignored,
// non-binary files. Unreadable files are skipped, not fatal.
func (s *Scanner) ScanRoot(root string) ([]Item, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return s.ScanFile(root)
	}

	var items []Item
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if s.ignored(filepath.ToSlash(rel)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		found, scanErr := s.ScanFile(path)
		if scanErr != nil {
			log.Debug("skipping unreadable file", "path", path, "error", scanErr)
			return nil
		}
		items = append(items, found...)
		return nil
	})

	return items, err
}

// ScanFile reads one file and returns its markers. Binary and oversized
// files yield no items.
func (s *Scanner) ScanFile(path string) ([]Item, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxFileSize {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isBinary(data) {
		return nil, nil
	}

	var items []Item
	for i, line := range strings.Split(decodeToUTF8(data), "\n") {
		marker, text, ok := matchMarker(line)
		if !ok {
			continue
		}

		text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "*/"))
		text = strings.TrimSuffix(text, "-->")
		text = strings.TrimSpace(text)
		if text == "" {
			text = strings.ToUpper(marker)
		}

		items = append(items, Item{
			FilePath: path,
			Line:     i + 1,
			Marker:   strings.ToUpper(marker),
			Text:     text,
		})
	}

	return items, nil
}

func (s *Scanner) ignored(relPath string) bool {
	for _, pattern := range s.ignorePatterns {
		if match, _ := doublestar.Match(pattern, relPath); match {
			return true
		}
	}
	return false
}
