// Package snapshot reads the extraction pipeline's handoff file: the
// relationship catalogue plus flattened table records, serialized as
// JSON or YAML.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tablecraft/insight-engine/pkg/apperrors"
	"github.com/tablecraft/insight-engine/pkg/models"
)

// Format identifies the serialization of a snapshot file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Load reads a data snapshot from disk, choosing the format by file
// extension (.json, .yaml or .yml).
func Load(path string) (*models.DataSnapshot, error) {
	format, err := formatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	return Parse(data, format)
}

// Parse decodes a snapshot in the given format. A snapshot with neither
// relationships nor files is rejected: there is nothing to analyze.
func Parse(data []byte, format Format) (*models.DataSnapshot, error) {
	var snap models.DataSnapshot

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("decode json snapshot: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("decode yaml snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownFormat, string(format))
	}

	if len(snap.Relationships) == 0 && len(snap.Files) == 0 {
		return nil, apperrors.ErrEmptySnapshot
	}
	return &snap, nil
}

func formatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnknownFormat, path)
	}
}
