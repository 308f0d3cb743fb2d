package tiling

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aretw0/penrose/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format is a definition file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Formats lists the supported encodings.
var Formats = []string{string(FormatYAML), string(FormatTOML), string(FormatJSON)}

// FormatOf picks the encoding from a file extension. Unknown extensions default to YAML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	default:
		return FormatYAML
	}
}

// LoadFile reads and compiles a definition file.
func LoadFile(path string) (domain.Tiling, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Tiling{}, fmt.Errorf("failed to read tiling file: %w", err)
	}
	t, err := Parse(data, FormatOf(path))
	if err != nil {
		return domain.Tiling{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// Parse decodes, validates and compiles a definition document.
func Parse(data []byte, format Format) (domain.Tiling, error) {
	raw, err := decodeRaw(data, format)
	if err != nil {
		return domain.Tiling{}, err
	}
	return FromMap(raw)
}

func decodeRaw(data []byte, format Format) (map[string]any, error) {
	raw := make(map[string]any)
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse tiling json: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse tiling toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse tiling yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported tiling format %q", format)
	}
	return raw, nil
}

// Encode renders a tiling as a definition document.
func Encode(t domain.Tiling, format Format) ([]byte, error) {
	def := FromTiling(t)
	switch format {
	case FormatJSON:
		return json.MarshalIndent(def, "", "  ")
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(def); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(def)
	default:
		return nil, fmt.Errorf("unsupported tiling format %q", format)
	}
}
