package site

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encode writes d to w in format f.
func Encode(w io.Writer, d *Descriptor, f Format) error {
	switch f {
	case JSON:
		b, err := marshalJSON(d)
		if err != nil {
			return fmt.Errorf("Encode json: %w", err)
		}
		_, err = w.Write(b)
		return err
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("Encode yaml: %w", err)
		}
		return enc.Close()
	case TOML:
		enc := toml.NewEncoder(w).SetIndentTables(true)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("Encode toml: %w", err)
		}
		return nil
	case Module:
		return WriteModule(w, d)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// WriteModule writes d as an ES module whose default export is the config
// object, ready to be saved as the generator's config file.
func WriteModule(w io.Writer, d *Descriptor) error {
	b, err := marshalJSON(d)
	if err != nil {
		return fmt.Errorf("WriteModule: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("export default ")
	buf.Write(bytes.TrimRight(b, "\n"))
	buf.WriteString("\n")
	_, err = w.Write(buf.Bytes())
	return err
}

// marshalJSON indents with two spaces and leaves <, > and & alone.
func marshalJSON(d *Descriptor) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
