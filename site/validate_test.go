package site

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xluoyu/corgi-docs/internal/validate"
)

// fields returns the field paths of a validation error.
func fields(t *testing.T, err error) []string {
	t.Helper()
	var ve validate.ValidationError
	require.True(t, errors.As(err, &ve), "not a validation error: %v", err)
	var out []string
	for _, e := range ve.Errors() {
		out = append(out, e.Field)
	}
	return out
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestDefaultIsFresh(t *testing.T) {
	a := Default()
	a.ThemeConfig.Nav[0].Text = "changed"
	assert.Equal(t, "笔记", Default().ThemeConfig.Nav[0].Text)
}

func TestMeta(t *testing.T) {
	m := Default().Meta()
	assert.Equal(t, SiteMeta{
		Title:           "Corgi笔记小站",
		Description:     "Just playing around.",
		LastUpdated:     true,
		LastUpdatedText: "Updated Date",
	}, m)
}

func TestValidateCodesMismatch(t *testing.T) {
	// The sidebar key drifted to /codes/ while the nav bar still links /code/.
	d := Default()
	d.ThemeConfig.Sidebar[2].Prefix = "/codes/"

	err := d.Validate()
	require.Error(t, err)
	assert.ElementsMatch(t, []string{
		`themeConfig.sidebar["/codes/"][0].link`,
		`themeConfig.nav[2].link`,
		`themeConfig.sidebar["/codes/"]`,
	}, fields(t, err))
}

func TestValidateSectionWithoutLink(t *testing.T) {
	d := Default()
	d.ThemeConfig.Sidebar[2].Sections[0].Link = ""
	assert.NoError(t, d.Validate())
}

func TestValidateProblems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *Descriptor)
		field  string
	}{
		{"empty title", func(d *Descriptor) { d.Title = "" }, "title"},
		{"relative nav link", func(d *Descriptor) { d.ThemeConfig.Nav[3].Link = "about" }, "themeConfig.nav[3].link"},
		{"empty nav link", func(d *Descriptor) { d.ThemeConfig.Nav[3].Link = "" }, "themeConfig.nav[3].link"},
		{"empty nav text", func(d *Descriptor) { d.ThemeConfig.Nav[0].Text = " " }, "themeConfig.nav[0].text"},
		{"unknown icon", func(d *Descriptor) { d.ThemeConfig.SocialLinks[0].Icon = "myspace" }, "themeConfig.socialLinks[0].icon"},
		{"social link not absolute", func(d *Descriptor) { d.ThemeConfig.SocialLinks[0].Link = "/github" }, "themeConfig.socialLinks[0].link"},
		{"bad logo", func(d *Descriptor) { d.ThemeConfig.Logo = "ftp://example.com/logo.png" }, "themeConfig.logo"},
		{"prefix without trailing slash", func(d *Descriptor) { d.ThemeConfig.Sidebar[0].Prefix = "/guide" }, `themeConfig.sidebar["/guide"]`},
		{"duplicate prefix", func(d *Descriptor) {
			d.ThemeConfig.Sidebar = append(d.ThemeConfig.Sidebar, SidebarGroup{Prefix: "/code/"})
		}, `themeConfig.sidebar["/code/"]`},
		{"duplicate item link", func(d *Descriptor) {
			sec := &d.ThemeConfig.Sidebar[2].Sections[0]
			sec.Items = append(sec.Items, SidebarItem{Text: "again", Link: "/code/string.md"})
		}, `themeConfig.sidebar["/code/"][0].items[2].link`},
		{"item link not a route", func(d *Descriptor) {
			d.ThemeConfig.Sidebar[0].Sections[0].Items[0].Link = "第一篇笔记.md"
		}, `themeConfig.sidebar["/guide/"][0].items[0].link`},
		{"empty section text", func(d *Descriptor) { d.ThemeConfig.Sidebar[1].Sections[0].Text = "" }, `themeConfig.sidebar["/interview/"][0].text`},
		{"nav section without sidebar", func(d *Descriptor) {
			d.ThemeConfig.Nav = append(d.ThemeConfig.Nav, NavItem{Text: "新", Link: "/new/"})
		}, "themeConfig.nav[4].link"},
		{"sidebar without nav", func(d *Descriptor) { d.ThemeConfig.Nav = d.ThemeConfig.Nav[:2] }, `themeConfig.sidebar["/code/"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Default()
			tt.mutate(d)
			err := d.Validate()
			require.Error(t, err)
			assert.Contains(t, fields(t, err), tt.field)
		})
	}
}

func TestValidateAllowsLocalLogoAndHome(t *testing.T) {
	d := Default()
	d.ThemeConfig.Logo = "/logo.png"
	d.ThemeConfig.Nav = append([]NavItem{{Text: "首页", Link: "/"}}, d.ThemeConfig.Nav...)
	assert.NoError(t, d.Validate())
}
