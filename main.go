package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ancientlore/cachefs"
	"github.com/facebookgo/flagenv"
	"github.com/golang/groupcache"

	xlog "github.com/xluoyu/corgi-docs/internal/log"
	"github.com/xluoyu/corgi-docs/internal/reload"
	"github.com/xluoyu/corgi-docs/site"
	"github.com/xluoyu/corgi-docs/web"
)

func main() {
	// Setup flags
	var (
		fPort              = flag.Int("port", 8080, "Port to listen on.")
		fReadTimeout       = flag.Duration("readtimeout", 10*time.Second, "HTTP server read timeout.")
		fReadHeaderTimeout = flag.Duration("readheadertimeout", 5*time.Second, "HTTP server read header timeout.")
		fWriteTimeout      = flag.Duration("writetimeout", 30*time.Second, "HTTP server write timeout.")
		fConfig            = flag.String("config", site.DefaultFile, "Site descriptor file (.toml, .yaml or .json). Empty serves the built-in descriptor.")
		fDocs              = flag.String("docs", "", "Folder of markdown documents used for link checks and scaffolding.")
		fSettings          = flag.String("cfg", web.ConfigFile, "Server settings file (expires, headers).")
		fBaseURL           = flag.String("baseurl", "", "Base URL prepended to sitemap entries.")
		fWatch             = flag.Bool("watch", false, "Reload the descriptor when its file changes.")
		fCacheSize         = flag.Int64("cachesize", 10*1024*1024, "Size in bytes of the docs cache.")
		fCacheDuration     = flag.Duration("cacheduration", 10*time.Second, "Expiration of cached docs; 0 disables expiration.")
		fLogLevel          = flag.String("loglevel", "", "Log level (debug, info, warn, error). Defaults to LOG_LEVEL or info.")
		fLogConsole        = flag.Bool("logconsole", false, "Write human-readable logs instead of JSON.")
	)
	flag.Parse()
	flagenv.Parse()

	xlog.Configure(xlog.Config{Level: *fLogLevel, Console: *fLogConsole})
	logger := xlog.WithComponent("main")

	// Load the descriptor
	desc, load, err := loadDescriptor(*fConfig)
	if err != nil {
		logger.Error().Err(err).Str("config", *fConfig).Msg("cannot load descriptor")
		os.Exit(1)
	}
	if err := desc.Validate(); err != nil {
		logger.Error().Err(err).Str("config", *fConfig).Msg("descriptor is invalid")
		os.Exit(2)
	}
	logger.Info().Str("title", desc.Title).Strs("sidebars", desc.ThemeConfig.Sidebar.Prefixes()).Msg("loaded descriptor")
	holder := reload.New(desc, load, *fConfig)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	if *fWatch {
		if err := holder.Watch(ctx); err != nil {
			logger.Error().Err(err).Msg("cannot watch descriptor")
			os.Exit(3)
		}
	}

	// Setup groupcache with no peers and cache the docs folder
	var docs fs.FS
	if *fDocs != "" {
		groupcache.RegisterPeerPicker(func() groupcache.PeerPicker { return groupcache.NoPeers{} })
		docs = cachefs.New(os.DirFS(*fDocs), &cachefs.Config{GroupName: "docs", SizeInBytes: *fCacheSize, Duration: *fCacheDuration})
		logger.Info().Str("docs", *fDocs).Msg("serving docs folder")
	}

	// Server settings
	settings, err := web.LoadConfig(os.DirFS(filepath.Dir(*fSettings)), filepath.Base(*fSettings))
	if err != nil {
		logger.Error().Err(err).Msg("cannot load server settings")
		os.Exit(4)
	}
	if settings == nil {
		logger.Info().Str("cfg", *fSettings).Msg("no server settings file found")
	}

	handler, err := newServer(holder, docs, *fBaseURL, settings)
	if err != nil {
		logger.Error().Err(err).Msg("cannot create handlers")
		os.Exit(5)
	}

	// Create HTTP server
	var srv = http.Server{
		Addr:              fmt.Sprintf(":%d", *fPort),
		Handler:           handler,
		ReadTimeout:       *fReadTimeout,
		WriteTimeout:      *fWriteTimeout,
		ReadHeaderTimeout: *fReadHeaderTimeout,
	}

	// Create signal handler for graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)

		// interrupt signal sent from terminal
		signal.Notify(sigint, os.Interrupt)
		// sigterm signal sent from kubernetes
		signal.Notify(sigint, syscall.SIGTERM)

		<-sigint
		stop()

		// We received an interrupt signal, shut down.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			// Error from closing listeners, or context timeout:
			logger.Error().Err(err).Msg("HTTP server Shutdown")
		}
	}()

	// Listen for requests
	logger.Info().Str("addr", srv.Addr).Msg("Listening for requests")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("HTTP server")
	} else {
		logger.Info().Msg("Goodbye.")
	}
}

// loadDescriptor loads the descriptor file, or the built-in descriptor when
// name is empty. The returned LoadFunc reloads from the same source.
func loadDescriptor(name string) (*site.Descriptor, reload.LoadFunc, error) {
	load := func() (*site.Descriptor, error) { return site.LoadFile(name) }
	if name == "" {
		load = func() (*site.Descriptor, error) { return site.Default(), nil }
	}
	d, err := load()
	return d, load, err
}
