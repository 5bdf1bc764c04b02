package site

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/xluoyu/corgi-docs/internal/validate"
)

// Link is an internal link of the descriptor and where it was found.
type Link struct {
	Field string // e.g. themeConfig.nav[0].link
	Path  string
}

// Links returns every internal link in display order: nav items first,
// then each sidebar's section links and item links.
func (d *Descriptor) Links() []Link {
	var links []Link
	add := func(field, p string) {
		if p != "" && strings.HasPrefix(p, "/") {
			links = append(links, Link{Field: field, Path: p})
		}
	}
	for i, n := range d.ThemeConfig.Nav {
		add(fmt.Sprintf("themeConfig.nav[%d].link", i), n.Link)
	}
	for _, g := range d.ThemeConfig.Sidebar {
		for j, sec := range g.Sections {
			field := fmt.Sprintf("themeConfig.sidebar[%q][%d]", g.Prefix, j)
			add(field+".link", sec.Link)
			for k, it := range sec.Items {
				add(fmt.Sprintf("%s.items[%d].link", field, k), it.Link)
			}
		}
	}
	return links
}

// PageURLs returns the public URL of every internal link, de-duplicated,
// in display order.
func (d *Descriptor) PageURLs() []string {
	var (
		urls []string
		seen = make(map[string]bool)
	)
	for _, l := range d.Links() {
		u := PageURL(l.Path)
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	return urls
}

// PageURL converts a link to the URL the generator publishes it under:
// markdown documents become ".html" pages and "index.md" becomes its folder.
func PageURL(link string) string {
	frag := ""
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link, frag = link[:i], link[i:]
	}
	switch {
	case path.Base(link) == "index.md":
		link = strings.TrimSuffix(link, "index.md")
	case path.Ext(link) == ".md":
		link = strings.TrimSuffix(link, ".md") + ".html"
	}
	return link + frag
}

// pathToMarkdown takes a link and converts it into the path of the markdown
// document behind it, relative to the root of the documents tree.
func pathToMarkdown(link string) string {
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	// folders are served by their index.md
	if strings.HasSuffix(link, "/") {
		link += "index.md"
	}
	link = path.Clean(link)
	link = strings.TrimPrefix(link, "/")
	switch path.Ext(link) {
	case ".html":
		link = strings.TrimSuffix(link, ".html") + ".md"
	case "":
		link += ".md"
	}
	return link
}

// CheckLinks resolves every internal link against the documents in fsys and
// reports the ones whose markdown file is missing.
func (d *Descriptor) CheckLinks(fsys fs.FS) error {
	v := validate.New()
	for _, l := range d.Links() {
		name := pathToMarkdown(l.Path)
		if !fs.ValidPath(name) {
			v.AddError(l.Field, "link leaves the documents tree", l.Path)
			continue
		}
		_, err := fs.Stat(fsys, name)
		switch {
		case err == nil:
		case errors.Is(err, fs.ErrNotExist):
			v.AddError(l.Field, fmt.Sprintf("no document %s", name), l.Path)
		default:
			v.AddError(l.Field, fmt.Sprintf("cannot stat %s: %v", name, err), l.Path)
		}
	}
	return v.Err()
}
