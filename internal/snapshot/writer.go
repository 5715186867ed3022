package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/all-man/site-feeds/internal/domain"
)

// snapshotJSON keeps non-ASCII and HTML characters literal.
var snapshotJSON = jsoniter.Config{EscapeHTML: false}.Froze()

// Marshal renders a snapshot as 2-space indented JSON.
func Marshal(snap domain.Snapshot) ([]byte, error) {
	return snapshotJSON.MarshalIndent(snap, "", "  ")
}

// WriteFile replaces the file at path with the rendered snapshot, creating the
// parent directory if needed.
func WriteFile(path string, snap domain.Snapshot) error {
	data, err := Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".feeds-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod snapshot: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
