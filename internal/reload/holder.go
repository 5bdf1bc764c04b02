// Package reload keeps the current site descriptor and swaps in a new one
// when its file changes.
package reload

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	xlog "github.com/xluoyu/corgi-docs/internal/log"
	"github.com/xluoyu/corgi-docs/site"
)

// LoadFunc produces a fresh descriptor.
type LoadFunc func() (*site.Descriptor, error)

// Holder holds a descriptor with atomic reloading.
// Callers must treat the descriptor returned by Get as read-only.
type Holder struct {
	mu       sync.RWMutex
	current  *site.Descriptor
	loadedAt time.Time

	load     LoadFunc
	path     string
	debounce time.Duration
	logger   zerolog.Logger
}

// New returns a Holder serving initial. path is the file to watch and may
// be empty when the descriptor does not come from a file.
func New(initial *site.Descriptor, load LoadFunc, path string) *Holder {
	return &Holder{
		current:  initial,
		loadedAt: time.Now(),
		load:     load,
		path:     path,
		debounce: 500 * time.Millisecond,
		logger:   xlog.WithComponent("reload"),
	}
}

// Get returns the current descriptor.
func (h *Holder) Get() *site.Descriptor {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// LoadedAt returns when the current descriptor was installed.
func (h *Holder) LoadedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.loadedAt
}

// Reload loads and validates a new descriptor. On any error the previous
// descriptor stays in place.
func (h *Holder) Reload() error {
	if h.load == nil {
		return fmt.Errorf("reload: no loader")
	}
	d, err := h.load()
	if err != nil {
		h.logger.Error().Err(err).Str("event", "descriptor.reload_failed").Msg("cannot load descriptor")
		return fmt.Errorf("reload: %w", err)
	}
	if err := d.Validate(); err != nil {
		h.logger.Error().Err(err).Str("event", "descriptor.validation_failed").Msg("new descriptor is invalid; keeping the old one")
		return fmt.Errorf("reload: %w", err)
	}

	h.mu.Lock()
	h.current = d
	h.loadedAt = time.Now()
	h.mu.Unlock()

	h.logger.Info().
		Str("event", "descriptor.reloaded").
		Int("nav", len(d.ThemeConfig.Nav)).
		Strs("sidebars", d.ThemeConfig.Sidebar.Prefixes()).
		Msg("descriptor reloaded")
	return nil
}

// Watch reloads the descriptor whenever its file is written, created or
// renamed over, until ctx is done. Bursts of events are debounced.
// The directory is watched so editors that replace the file are seen.
func (h *Holder) Watch(ctx context.Context) error {
	if h.path == "" {
		h.logger.Info().Str("event", "descriptor.watch_disabled").Msg("no descriptor file to watch")
		return nil
	}
	target, err := filepath.Abs(h.path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch: %w", err)
	}
	h.logger.Info().Str("event", "descriptor.watch_started").Str("path", h.path).Msg("watching descriptor")

	go h.watchLoop(ctx, watcher, target)
	return nil
}

func (h *Holder) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string) {
	defer watcher.Close()

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			h.logger.Info().Str("event", "descriptor.watch_stopped").Msg("descriptor watcher stopped")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			h.logger.Debug().Str("op", event.Op.String()).Msg("descriptor changed")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(h.debounce, func() {
				// Errors are logged by Reload.
				_ = h.Reload()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().Err(err).Str("event", "descriptor.watch_error").Msg("watcher error")
		}
	}
}
