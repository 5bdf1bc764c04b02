package site

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the descriptor file looked up when none is named.
const DefaultFile = "site.toml"

// Format is a descriptor encoding.
type Format string

// Supported formats. Module can be written but not read.
const (
	JSON   Format = "json"
	YAML   Format = "yaml"
	TOML   Format = "toml"
	Module Format = "js"
)

// ErrUnknownFormat is returned for unsupported format names or file extensions.
var ErrUnknownFormat = errors.New("unknown descriptor format")

// ParseFormat parses a format name such as "json" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "toml":
		return TOML, nil
	case "js", "mjs", "module":
		return Module, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatOf picks the format from the extension of name.
func FormatOf(name string) (Format, error) {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, name)
	}
	return ParseFormat(ext)
}

// Decode reads a descriptor in format f. Unknown fields are an error.
func Decode(r io.Reader, f Format) (*Descriptor, error) {
	var d Descriptor
	switch f {
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("Decode json: %w", err)
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("Decode yaml: %w", err)
		}
	case TOML:
		if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&d); err != nil {
			return nil, fmt.Errorf("Decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q cannot be decoded", ErrUnknownFormat, f)
	}
	return &d, nil
}

// Load reads and decodes the named descriptor from fsys.
// The format follows the file extension.
func Load(fsys fs.FS, name string) (*Descriptor, error) {
	f, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("Cannot read descriptor: %w", err)
	}
	d, err := Decode(bytes.NewReader(b), f)
	if err != nil {
		return nil, fmt.Errorf("Cannot parse descriptor %s: %w", name, err)
	}
	return d, nil
}

// LoadFile is Load for a path on the local file system.
func LoadFile(filename string) (*Descriptor, error) {
	f, err := FormatOf(filename)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("Cannot read descriptor: %w", err)
	}
	d, err := Decode(bytes.NewReader(b), f)
	if err != nil {
		return nil, fmt.Errorf("Cannot parse descriptor %s: %w", filename, err)
	}
	return d, nil
}
