package reload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xluoyu/corgi-docs/site"
)

func TestReloadKeepsPreviousOnError(t *testing.T) {
	var next *site.Descriptor
	var loadErr error
	h := New(site.Default(), func() (*site.Descriptor, error) { return next, loadErr }, "")

	loadErr = errors.New("disk on fire")
	assert.Error(t, h.Reload())
	assert.Equal(t, "Corgi笔记小站", h.Get().Title)

	loadErr = nil
	next = site.Default()
	next.ThemeConfig.Sidebar[2].Prefix = "/codes/"
	assert.Error(t, h.Reload())
	assert.Equal(t, "/code/", h.Get().ThemeConfig.Sidebar[2].Prefix)

	before := h.LoadedAt()
	next = site.Default()
	next.Title = "Renamed"
	require.NoError(t, h.Reload())
	assert.Equal(t, "Renamed", h.Get().Title)
	assert.False(t, h.LoadedAt().Before(before))
}

func TestReloadWithoutLoader(t *testing.T) {
	assert.Error(t, New(site.Default(), nil, "").Reload())
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "site.json")
	write := func(d *site.Descriptor) {
		f, err := os.Create(file)
		require.NoError(t, err)
		require.NoError(t, site.Encode(f, d, site.JSON))
		require.NoError(t, f.Close())
	}
	write(site.Default())

	initial, err := site.LoadFile(file)
	require.NoError(t, err)
	h := New(initial, func() (*site.Descriptor, error) { return site.LoadFile(file) }, file)
	h.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, h.Watch(ctx))

	d := site.Default()
	d.Title = "Watched"
	write(d)
	assert.Eventually(t, func() bool { return h.Get().Title == "Watched" }, 5*time.Second, 20*time.Millisecond)
}

func TestWatchDisabled(t *testing.T) {
	assert.NoError(t, New(site.Default(), nil, "").Watch(context.Background()))
}
