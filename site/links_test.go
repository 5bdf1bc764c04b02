package site

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidebarForCode(t *testing.T) {
	d := Default()
	for _, route := range []string{"/code/", "/code/大屏适配.md", "/code/string.html#trim", "code/deep/page", "/code"} {
		g, err := d.SidebarFor(route)
		require.NoError(t, err, route)
		assert.Equal(t, "/code/", g.Prefix, route)
		require.Len(t, g.Sections, 1)
		sec := g.Sections[0]
		assert.Equal(t, "常用代码", sec.Text)
		assert.Equal(t, "/code/", sec.Link)
		assert.Equal(t, []SidebarItem{
			{Text: "大屏适配", Link: "/code/大屏适配.md"},
			{Text: "常用的字符串方法", Link: "/code/string.md"},
		}, sec.Items)
	}
}

func TestSidebarForLongestPrefix(t *testing.T) {
	d := Default()
	d.ThemeConfig.Sidebar = append(d.ThemeConfig.Sidebar, SidebarGroup{
		Prefix:   "/code/vue/",
		Sections: []SidebarSection{{Text: "Vue", Items: []SidebarItem{}}},
	})
	g, err := d.SidebarFor("/code/vue/hooks.md")
	require.NoError(t, err)
	assert.Equal(t, "/code/vue/", g.Prefix)

	g, err = d.SidebarFor("/code/react.md")
	require.NoError(t, err)
	assert.Equal(t, "/code/", g.Prefix)
}

func TestSidebarForNone(t *testing.T) {
	_, err := Default().SidebarFor("/about")
	assert.ErrorIs(t, err, ErrNoSidebar)
	_, err = Default().SidebarFor("/codes/x.md")
	assert.ErrorIs(t, err, ErrNoSidebar)
}

func TestLinks(t *testing.T) {
	links := Default().Links()
	require.Len(t, links, 9)
	assert.Equal(t, Link{Field: "themeConfig.nav[0].link", Path: "/guide/"}, links[0])
	assert.Equal(t, Link{Field: `themeConfig.sidebar["/code/"][0].items[1].link`, Path: "/code/string.md"}, links[8])

	assert.Equal(t, []string{
		"/guide/",
		"/interview/",
		"/code/",
		"/about",
		"/guide/第一篇笔记.html",
		"/code/大屏适配.html",
		"/code/string.html",
	}, Default().PageURLs())
}

func TestPageURL(t *testing.T) {
	tests := map[string]string{
		"/guide/第一篇笔记.md": "/guide/第一篇笔记.html",
		"/guide/index.md": "/guide/",
		"/guide/":         "/guide/",
		"/about":          "/about",
		"/code/x.md#trim": "/code/x.html#trim",
	}
	for in, want := range tests {
		assert.Equal(t, want, PageURL(in), in)
	}
}

func TestPathToMarkdown(t *testing.T) {
	tests := map[string]string{
		"/":                 "index.md",
		"/guide/":           "guide/index.md",
		"/about":            "about.md",
		"/code/string.md":   "code/string.md",
		"/code/string.html": "code/string.md",
		"/guide/a.md#top":   "guide/a.md",
		"/files/report.pdf": "files/report.pdf",
		"/guide/../about":   "about.md",
	}
	for in, want := range tests {
		assert.Equal(t, want, pathToMarkdown(in), in)
	}
}

func TestCheckLinksExample(t *testing.T) {
	assert.NoError(t, Default().CheckLinks(os.DirFS("../example/docs")))
}

func TestCheckLinksMissing(t *testing.T) {
	docs := fstest.MapFS{
		"about.md":            {Data: []byte("# about")},
		"guide/index.md":      {Data: []byte("")},
		"guide/第一篇笔记.md":      {Data: []byte("")},
		"interview/index.md":  {Data: []byte("")},
		"code/index.md":       {Data: []byte("")},
		"code/大屏适配.md":        {Data: []byte("")},
		"code/string.html.md": {Data: []byte("")},
	}
	err := Default().CheckLinks(docs)
	require.Error(t, err)
	assert.Equal(t, []string{`themeConfig.sidebar["/code/"][0].items[1].link`}, fields(t, err))
	assert.Contains(t, err.Error(), "no document code/string.md")
}
