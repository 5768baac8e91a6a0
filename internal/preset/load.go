package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

// Format is the serialization of a preset document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath guesses the document format from a file extension. JSON is the default.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a preset document. A document that is literally null yields a nil preset.
func Decode(data []byte, format Format) (*Preset, error) {
	var p *Preset
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode YAML preset: %w", err)
		}
	case FormatJSON, "":
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode JSON preset: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported preset format %q", format)
	}
	return p, nil
}

// LoadFile reads and decodes the preset stored at path.
func LoadFile(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset %q: %w", path, err)
	}
	p, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", path, err)
	}
	return p, nil
}
