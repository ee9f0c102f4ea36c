package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TreeFileName is where tree exports are written.
const TreeFileName = "tree.txt"

// DefaultExportName is the timestamped file name used for collection exports.
func DefaultExportName(now time.Time) string {
	return fmt.Sprintf("code_context_%d.md", now.Unix())
}

// WriteFile writes data to dir/name and returns the full path. An empty name
// picks DefaultExportName.
func WriteFile(dir, name, data string, now time.Time) (string, error) {
	if name == "" {
		name = DefaultExportName(now)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
