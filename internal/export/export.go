// Package export writes item text to files and to the clipboard.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/five82/codexrays/internal/state"
)

const (
	filePrefix      = "codexrays_export_"
	timestampLayout = "20060102_150405"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// FileName returns the export file name for key at time now.
func FileName(key state.Key, now time.Time) string {
	safe := unsafeNameChars.ReplaceAllString(key.ItemID, "_")
	return fmt.Sprintf("%s%s_%d_%s.txt", filePrefix, safe, key.OutputIndex, now.Format(timestampLayout))
}

// Write saves text under dir (the working directory when empty) and returns
// the path written.
func Write(dir string, key state.Key, text string, now time.Time) (string, error) {
	path := FileName(key, now)
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create export dir: %w", err)
		}
		path = filepath.Join(dir, path)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
