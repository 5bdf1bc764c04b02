package site

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/russross/blackfriday/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/xluoyu/corgi-docs/internal/validate"
)

// Scaffold builds a sidebar section listing the markdown documents of the
// folder behind prefix, in file name order. index.md is not listed; when
// present it becomes the section link. An empty text is taken from
// index.md or the folder name.
func Scaffold(fsys fs.FS, prefix, text string) (SidebarSection, error) {
	v := validate.New()
	v.Prefix("prefix", prefix)
	if err := v.Err(); err != nil {
		return SidebarSection{}, fmt.Errorf("Scaffold: %w", err)
	}
	dir := strings.Trim(prefix, "/")
	if dir == "" {
		dir = "."
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return SidebarSection{}, fmt.Errorf("Scaffold: %w", err)
	}

	sec := SidebarSection{Text: text, Items: []SidebarItem{}}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || path.Ext(name) != ".md" {
			continue
		}
		title, err := documentTitle(fsys, path.Join(dir, name))
		if err != nil {
			return SidebarSection{}, fmt.Errorf("Scaffold: %w", err)
		}
		if name == "index.md" {
			sec.Link = prefix
			if sec.Text == "" {
				sec.Text = title
			}
			continue
		}
		sec.Items = append(sec.Items, SidebarItem{Text: title, Link: prefix + name})
	}
	if sec.Text == "" {
		sec.Text = fileTitle(path.Base(dir))
	}
	return sec, nil
}

// documentTitle picks the title of a document: front matter first, then
// the first heading, then the file name.
func documentTitle(fsys fs.FS, name string) (string, error) {
	var fm FrontMatter
	body, err := readFrontMatter(fsys, name, &fm)
	if err != nil {
		return "", err
	}
	if t := strings.TrimSpace(fm.Title); t != "" {
		return t, nil
	}
	if t := headingTitle(body); t != "" {
		return t, nil
	}
	base := path.Base(name)
	if base == "index.md" {
		base = path.Base(path.Dir(name))
	}
	return fileTitle(base), nil
}

// headingTitle returns the text of the first heading in md.
func headingTitle(md []byte) string {
	var title string
	doc := blackfriday.New(blackfriday.WithExtensions(blackfriday.CommonExtensions)).Parse(md)
	doc.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if !entering || n.Type != blackfriday.Heading {
			return blackfriday.GoToNext
		}
		var b strings.Builder
		n.Walk(func(c *blackfriday.Node, entering bool) blackfriday.WalkStatus {
			if entering && (c.Type == blackfriday.Text || c.Type == blackfriday.Code) {
				b.Write(c.Literal)
			}
			return blackfriday.GoToNext
		})
		title = strings.TrimSpace(b.String())
		if title == "" {
			return blackfriday.SkipChildren
		}
		return blackfriday.Terminate
	})
	return title
}

// fileTitle turns "getting-started.md" into "Getting Started".
func fileTitle(name string) string {
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return cases.Title(language.English).String(name)
}
