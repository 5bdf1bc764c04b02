package site

import (
	"fmt"
	"strings"

	"github.com/xluoyu/corgi-docs/internal/validate"
)

// SocialIcons are the icon names the generator ships with.
var SocialIcons = []string{
	"discord", "facebook", "github", "instagram", "linkedin",
	"mastodon", "npm", "slack", "twitter", "x", "youtube",
}

// Validate checks the structure of d and returns a validate.ValidationError
// listing every problem, or nil. It does not look at the documents tree;
// see CheckLinks.
func (d *Descriptor) Validate() error {
	v := validate.New()
	t := &d.ThemeConfig

	v.NotEmpty("title", d.Title)
	if t.Logo != "" && !strings.HasPrefix(t.Logo, "/") {
		v.URL("themeConfig.logo", t.Logo, []string{"http", "https"})
	}

	for i, n := range t.Nav {
		field := fmt.Sprintf("themeConfig.nav[%d]", i)
		v.NotEmpty(field+".text", n.Text)
		v.Route(field+".link", n.Link)
	}

	for i, s := range t.SocialLinks {
		field := fmt.Sprintf("themeConfig.socialLinks[%d]", i)
		v.OneOf(field+".icon", s.Icon, SocialIcons)
		v.URL(field+".link", s.Link, []string{"http", "https"})
	}

	seen := make(map[string]bool, len(t.Sidebar))
	for _, g := range t.Sidebar {
		field := fmt.Sprintf("themeConfig.sidebar[%q]", g.Prefix)
		v.Prefix(field, g.Prefix)
		if seen[g.Prefix] {
			v.AddError(field, "duplicate route prefix", g.Prefix)
		}
		seen[g.Prefix] = true
		for j, sec := range g.Sections {
			validateSection(v, fmt.Sprintf("%s[%d]", field, j), g.Prefix, sec)
		}
	}

	validateRouting(v, d)
	return v.Err()
}

func validateSection(v *validate.Validator, field, prefix string, sec SidebarSection) {
	v.NotEmpty(field+".text", sec.Text)
	if sec.Link != "" {
		v.Route(field+".link", sec.Link)
		if prefix != "" && !strings.HasPrefix(sec.Link, prefix) {
			v.AddError(field+".link", fmt.Sprintf("section link is outside its sidebar %q", prefix), sec.Link)
		}
	}
	links := make(map[string]int, len(sec.Items))
	for k, it := range sec.Items {
		itemField := fmt.Sprintf("%s.items[%d]", field, k)
		v.NotEmpty(itemField+".text", it.Text)
		v.Route(itemField+".link", it.Link)
		if first, dup := links[it.Link]; dup && it.Link != "" {
			v.AddError(itemField+".link", fmt.Sprintf("duplicate of items[%d]", first), it.Link)
			continue
		}
		links[it.Link] = k
	}
}

// validateRouting cross-checks the nav bar against the sidebar prefixes:
// every section route of the nav bar (one ending in "/", other than the
// home page) needs a sidebar with exactly that prefix, and every sidebar
// needs a nav item that leads into it.
func validateRouting(v *validate.Validator, d *Descriptor) {
	t := &d.ThemeConfig
	for i, n := range t.Nav {
		if n.Link == "/" || !strings.HasPrefix(n.Link, "/") || !strings.HasSuffix(n.Link, "/") {
			continue
		}
		if _, ok := t.Sidebar.Get(n.Link); !ok {
			v.AddError(fmt.Sprintf("themeConfig.nav[%d].link", i), "no sidebar has this route prefix", n.Link)
		}
	}
	for _, g := range t.Sidebar {
		if g.Prefix == "" {
			continue
		}
		reached := false
		for _, n := range t.Nav {
			if strings.HasPrefix(n.Link, g.Prefix) {
				reached = true
				break
			}
		}
		if !reached {
			v.AddError(fmt.Sprintf("themeConfig.sidebar[%q]", g.Prefix), "no nav item links into this sidebar", g.Prefix)
		}
	}
}
