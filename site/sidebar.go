package site

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoSidebar is returned when no sidebar prefix matches a route.
var ErrNoSidebar = errors.New("no sidebar for route")

// SidebarGroup is the list of sections rendered under one route prefix.
type SidebarGroup struct {
	Prefix   string           `json:"prefix" yaml:"prefix" toml:"prefix"`
	Sections []SidebarSection `json:"sections" yaml:"sections" toml:"sections"`
}

// SidebarMap maps route prefixes to sidebars in authored order.
// In JSON and YAML it is written as an object keyed by prefix.
type SidebarMap []SidebarGroup

// Prefixes returns the keys in order.
func (m SidebarMap) Prefixes() []string {
	keys := make([]string, len(m))
	for i := range m {
		keys[i] = m[i].Prefix
	}
	return keys
}

// Get returns the group with exactly the given prefix.
func (m SidebarMap) Get(prefix string) (SidebarGroup, bool) {
	for _, g := range m {
		if g.Prefix == prefix {
			return g, true
		}
	}
	return SidebarGroup{}, false
}

// SidebarFor returns the sidebar the generator shows for route: the
// group with the longest prefix that route starts with. A route without
// its trailing slash also selects its own prefix, so "/code" matches "/code/".
func (d *Descriptor) SidebarFor(route string) (SidebarGroup, error) {
	route = normalizeRoute(route)
	best := -1
	for i, g := range d.ThemeConfig.Sidebar {
		if g.Prefix == "" {
			continue
		}
		if !strings.HasPrefix(route, g.Prefix) && route+"/" != g.Prefix {
			continue
		}
		if best < 0 || len(g.Prefix) > len(d.ThemeConfig.Sidebar[best].Prefix) {
			best = i
		}
	}
	if best < 0 {
		return SidebarGroup{}, fmt.Errorf("%w: %q", ErrNoSidebar, route)
	}
	return d.ThemeConfig.Sidebar[best], nil
}

// normalizeRoute drops query and fragment and ensures a leading slash.
func normalizeRoute(route string) string {
	if i := strings.IndexAny(route, "?#"); i >= 0 {
		route = route[:i]
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return route
}

// MarshalJSON writes the map as an object whose keys keep their order.
// A nil map is written as null.
func (m SidebarMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		sections := g.Sections
		if sections == nil {
			sections = []SidebarSection{}
		}
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(g.Prefix); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := enc.Encode(sections); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keyed by prefix, keeping key order.
// Duplicate keys are kept so that validation can report them.
func (m *SidebarMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("sidebar: %w", err)
	}
	if tok == nil {
		*m = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("sidebar: expected an object keyed by route prefix, got %v", tok)
	}
	groups := SidebarMap{}
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return fmt.Errorf("sidebar: %w", err)
		}
		prefix, _ := tok.(string)
		var sections []SidebarSection
		if err := dec.Decode(&sections); err != nil {
			return fmt.Errorf("sidebar %q: %w", prefix, err)
		}
		groups = append(groups, SidebarGroup{Prefix: prefix, Sections: sections})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("sidebar: %w", err)
	}
	*m = groups
	return nil
}

// MarshalYAML writes the map as a mapping whose keys keep their order.
// A nil map is written as null.
func (m SidebarMap) MarshalYAML() (any, error) {
	if m == nil {
		return nil, nil
	}
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, g := range m {
		sections := g.Sections
		if sections == nil {
			sections = []SidebarSection{}
		}
		var val yaml.Node
		if err := val.Encode(sections); err != nil {
			return nil, fmt.Errorf("sidebar %q: %w", g.Prefix, err)
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: g.Prefix}
		node.Content = append(node.Content, key, &val)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping keyed by prefix, keeping key order.
func (m *SidebarMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode && value.Alias != nil {
		value = value.Alias
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*m = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("sidebar: line %d: expected a mapping keyed by route prefix", value.Line)
	}
	groups := SidebarMap{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		sections, err := decodeSectionsYAML(val)
		if err != nil {
			return fmt.Errorf("sidebar %q: line %d: %w", key.Value, val.Line, err)
		}
		groups = append(groups, SidebarGroup{Prefix: key.Value, Sections: sections})
	}
	*m = groups
	return nil
}

// decodeSectionsYAML decodes the sections under one prefix. Node.Decode
// ignores KnownFields, so the node is re-encoded and read back strictly.
func decodeSectionsYAML(val *yaml.Node) ([]SidebarSection, error) {
	b, err := yaml.Marshal(val)
	if err != nil {
		return nil, err
	}
	var sections []SidebarSection
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&sections); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return sections, nil
}
