package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown layout format")

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// Parse decodes and validates a definition. JSON input is checked against
// the layout schema before it is decoded.
func Parse(data []byte, format Format) (*Definition, error) {
	def := &Definition{}

	switch format {
	case FormatJSON:
		if err := ValidateJSON(data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, def); err != nil {
			return nil, fmt.Errorf("unmarshalling json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, def); err != nil {
			return nil, fmt.Errorf("unmarshalling yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("format %d: %w", format, ErrUnknownFormat)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}
