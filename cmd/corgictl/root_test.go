package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xluoyu/corgi-docs/site"
)

// run executes corgictl with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExportDefault(t *testing.T) {
	out, err := run(t, "export")
	require.NoError(t, err)
	d, err := site.Decode(strings.NewReader(out), site.JSON)
	require.NoError(t, err)
	if diff := cmp.Diff(site.Default(), d); diff != "" {
		t.Errorf("export mismatch (-want +got):\n%s", diff)
	}

	out, err = run(t, "export", "--format", "js", "--config", "../../example/site.toml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "export default {"), out)
}

func TestExportToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "site.yaml")
	out, err := run(t, "export", "--out", file)
	require.NoError(t, err)
	assert.Empty(t, out)

	d, err := site.LoadFile(file)
	require.NoError(t, err)
	if diff := cmp.Diff(site.Default(), d, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("yaml export mismatch (-want +got):\n%s", diff)
	}

	_, err = run(t, "export", "--format", "xml")
	assert.ErrorIs(t, err, site.ErrUnknownFormat)
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Equal(t, "built-in descriptor: ok\n", out)

	d := site.Default()
	d.ThemeConfig.Sidebar[2].Prefix = "/codes/"
	file := filepath.Join(t.TempDir(), "site.json")
	f, err := os.Create(file)
	require.NoError(t, err)
	require.NoError(t, site.Encode(f, d, site.JSON))
	require.NoError(t, f.Close())

	out, err = run(t, "validate", "--config", file)
	require.Error(t, err)
	assert.Contains(t, out, "themeConfig.nav[2].link")
	assert.Contains(t, out, `themeConfig.sidebar["/codes/"]`)
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check", "--docs", "../../example/docs")
	require.NoError(t, err)
	assert.Equal(t, "built-in descriptor: 9 links ok\n", out)

	out, err = run(t, "check", "--docs", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, out, "no document about.md")
}

func TestSidebar(t *testing.T) {
	out, err := run(t, "sidebar", "/code/string.md")
	require.NoError(t, err)
	var g site.SidebarGroup
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	assert.Equal(t, "/code/", g.Prefix)

	_, err = run(t, "sidebar", "/about")
	assert.ErrorIs(t, err, site.ErrNoSidebar)

	_, err = run(t, "sidebar")
	assert.Error(t, err)
}

func TestScaffold(t *testing.T) {
	out, err := run(t, "scaffold", "/guide/", "--docs", "../../example/docs")
	require.NoError(t, err)
	var sec site.SidebarSection
	require.NoError(t, json.Unmarshal([]byte(out), &sec))
	assert.Equal(t, site.SidebarSection{
		Text:  "随笔",
		Link:  "/guide/",
		Items: []site.SidebarItem{{Text: "这是一个标题党哈哈哈哈哈哈", Link: "/guide/第一篇笔记.md"}},
	}, sec)

	out, err = run(t, "scaffold", "/code/", "--docs", "../../example/docs", "--format", "yaml", "--text", "代码")
	require.NoError(t, err)
	assert.Contains(t, out, "text: 代码")
	assert.Contains(t, out, "link: /code/string.md")

	_, err = run(t, "scaffold", "/code/", "--docs", "../../example/docs", "--format", "ini")
	assert.ErrorIs(t, err, site.ErrUnknownFormat)
}

func TestExportFormat(t *testing.T) {
	f, err := exportFormat("", "")
	require.NoError(t, err)
	assert.Equal(t, site.JSON, f)
	f, err = exportFormat("", "out/site.toml")
	require.NoError(t, err)
	assert.Equal(t, site.TOML, f)
	f, err = exportFormat("yml", "out/site.toml")
	require.NoError(t, err)
	assert.Equal(t, site.YAML, f)
}
