package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/magicwall/internal/wall"
)

// Format is a snapshot file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from the file extension.
// .yaml and .yml select YAML, anything else JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// FormatExtensions returns the extensions recognized as snapshot files.
func FormatExtensions() []string {
	return []string{".json", ".yaml", ".yml"}
}

// WriteSnapshotFile exports snap to path.
func WriteSnapshotFile(path string, snap wall.Snapshot) error {
	path, err := ExpandPath(path)
	if err != nil {
		return fail("export", "cannot expand home directory", err)
	}

	var data []byte
	switch FormatFor(path) {
	case FormatYAML:
		data, err = yaml.Marshal(snap)
	default:
		data, err = json.MarshalIndent(snap, "", "  ")
	}
	if err != nil {
		return fail("export", "cannot encode snapshot", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fail("export", "cannot create directory "+dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fail("export", "cannot write "+path, err)
	}
	return nil
}

// ReadSnapshotFile imports a snapshot from path.
// Like LoadSnapshot it decodes without validating.
func ReadSnapshotFile(path string) (wall.Snapshot, error) {
	var snap wall.Snapshot

	path, err := ExpandPath(path)
	if err != nil {
		return snap, fail("import", "cannot expand home directory", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return snap, fail("import", "cannot read "+path, err)
	}

	switch FormatFor(path) {
	case FormatYAML:
		err = yaml.Unmarshal(data, &snap)
	default:
		err = json.Unmarshal(data, &snap)
	}
	if err != nil {
		return snap, fail("import", "cannot decode "+path, fmt.Errorf("%w: %v", wall.ErrMalformedSnapshot, err))
	}
	return snap, nil
}
