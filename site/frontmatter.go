package site

import (
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FrontMatter holds data scraped from a markdown document.
type FrontMatter struct {
	Title       string `toml:"title" yaml:"title"`             // Title of the document
	Description string `toml:"description" yaml:"description"` // Short summary
}

var (
	// tomlFence delimits TOML front matter.
	tomlFence = regexp.MustCompile(`(?m)^\s*\+\+\+\s*$`)
	// yamlFence delimits YAML front matter.
	yamlFence = regexp.MustCompile(`(?m)^\s*---\s*$`)
)

// extractFrontMatter splits the front matter and markdown content and
// reports which format the front matter is in.
func extractFrontMatter(x []byte) (fm, r []byte, f Format) {
	for _, fence := range []struct {
		re *regexp.Regexp
		f  Format
	}{{tomlFence, TOML}, {yamlFence, YAML}} {
		subs := fence.re.Split(string(x), 3)
		if len(subs) != 3 {
			continue
		}
		if s := strings.TrimSpace(subs[0]); len(s) > 0 {
			continue
		}
		return []byte(strings.TrimSpace(subs[1])), []byte(strings.TrimSpace(subs[2])), fence.f
	}
	return nil, x, ""
}

// parseFrontMatter unmarshals front matter found by extractFrontMatter.
// Keys other than the ones in FrontMatter are ignored.
func parseFrontMatter(b []byte, f Format, fm *FrontMatter) error {
	if len(b) == 0 {
		return nil
	}
	switch f {
	case TOML:
		return toml.Unmarshal(b, fm)
	case YAML:
		return yaml.Unmarshal(b, fm)
	}
	return nil
}

// readFrontMatter extracts and unmarshals the front matter of the named
// document, returning the markdown that follows it.
func readFrontMatter(fsys fs.FS, name string, fm *FrontMatter) ([]byte, error) {
	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("readFrontMatter: %w", err)
	}
	fmb, body, f := extractFrontMatter(b)
	if err := parseFrontMatter(fmb, f, fm); err != nil {
		return nil, fmt.Errorf("readFrontMatter %s: %w", name, err)
	}
	return body, nil
}
