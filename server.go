package main

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"path"
	"text/template"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/rs/zerolog"

	xlog "github.com/xluoyu/corgi-docs/internal/log"
	"github.com/xluoyu/corgi-docs/internal/validate"
	"github.com/xluoyu/corgi-docs/site"
	"github.com/xluoyu/corgi-docs/web"
)

// source supplies the descriptor being served.
type source interface {
	Get() *site.Descriptor
	LoadedAt() time.Time
}

// server answers descriptor queries.
type server struct {
	src        source
	docs       fs.FS
	baseURL    string
	sitemapTpl *template.Template
	logger     zerolog.Logger
}

// newServer returns the HTTP handler for the descriptor endpoints. docs may
// be nil, in which case link checks and scaffolding are unavailable.
// cfg may be nil.
func newServer(src source, docs fs.FS, baseURL string, cfg *web.Config) (http.Handler, error) {
	s := &server{
		src:     src,
		docs:    docs,
		baseURL: baseURL,
		logger:  xlog.WithComponent("server"),
	}
	var err error
	if docs != nil {
		s.sitemapTpl, err = loadSitemapTemplate(docs)
	} else {
		s.sitemapTpl, err = template.New("sitemap").Parse(defaultSitemap)
	}
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/config.json", s.config)
	mux.HandleFunc("/config.js", s.config)
	mux.HandleFunc("/config.yaml", s.config)
	mux.HandleFunc("/config.toml", s.config)
	mux.HandleFunc("/sidebar", s.sidebar)
	mux.HandleFunc("/sitemap.txt", s.sitemap)
	mux.HandleFunc("/check", s.check)
	mux.HandleFunc("/scaffold", s.scaffold)
	mux.HandleFunc("/", s.notFound)

	var h http.Handler = gziphandler.GzipHandler(web.MethodHandler(mux))
	if cfg != nil {
		h = web.HeaderHandler(web.ExpiresHandler(h, time.Duration(cfg.Expires)), cfg.Headers)
	}
	return s.logRequests(h), nil
}

var contentTypes = map[site.Format]string{
	site.JSON:   "application/json; charset=utf-8",
	site.YAML:   "application/yaml; charset=utf-8",
	site.TOML:   "application/toml; charset=utf-8",
	site.Module: "text/javascript; charset=utf-8",
}

// config serves the descriptor in the format named by the path extension.
func (s *server) config(w http.ResponseWriter, r *http.Request) {
	f, err := site.FormatOf(r.URL.Path)
	if err != nil {
		s.notFound(w, r)
		return
	}
	var buf bytes.Buffer
	if err := site.Encode(&buf, s.src.Get(), f); err != nil {
		s.logger.Error().Err(err).Str("format", string(f)).Msg("encode descriptor")
		s.serverError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[f])
	http.ServeContent(w, r, path.Base(r.URL.Path), s.src.LoadedAt(), bytes.NewReader(buf.Bytes()))
}

// sidebar serves the sidebar shown for the page at ?route=.
func (s *server) sidebar(w http.ResponseWriter, r *http.Request) {
	route := r.URL.Query().Get("route")
	if route == "" {
		web.Error(w, http.StatusBadRequest, "route parameter is required")
		return
	}
	g, err := s.src.Get().SidebarFor(route)
	if errors.Is(err, site.ErrNoSidebar) {
		web.Error(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.serverError(w, err)
		return
	}
	web.JSON(w, http.StatusOK, g)
}

// checkReport is the body of a successful /check.
type checkReport struct {
	OK    bool `json:"ok"`
	Links int  `json:"links"`
}

// check validates the descriptor and, when a docs folder is configured,
// verifies that every internal link has a document behind it.
func (s *server) check(w http.ResponseWriter, r *http.Request) {
	d := s.src.Get()
	v := validate.New()
	v.Merge("descriptor", d.Validate())
	if s.docs != nil {
		v.Merge("docs", d.CheckLinks(s.docs))
	}
	if err := v.Err(); err != nil {
		web.ErrorFrom(w, http.StatusUnprocessableEntity, err)
		return
	}
	web.JSON(w, http.StatusOK, checkReport{OK: true, Links: len(d.Links())})
}

// scaffold proposes a sidebar section for ?prefix= from the docs folder.
func (s *server) scaffold(w http.ResponseWriter, r *http.Request) {
	if s.docs == nil {
		web.Error(w, http.StatusNotImplemented, "no docs folder configured")
		return
	}
	q := r.URL.Query()
	sec, err := site.Scaffold(s.docs, q.Get("prefix"), q.Get("text"))
	var ve validate.ValidationError
	switch {
	case errors.As(err, &ve):
		web.ErrorFrom(w, http.StatusBadRequest, err)
	case errors.Is(err, fs.ErrNotExist):
		web.Error(w, http.StatusNotFound, err.Error())
	case err != nil:
		s.serverError(w, err)
	default:
		web.JSON(w, http.StatusOK, sec)
	}
}

func (s *server) notFound(w http.ResponseWriter, r *http.Request) {
	web.Error(w, http.StatusNotFound, "not found: "+r.URL.Path)
}

func (s *server) serverError(w http.ResponseWriter, err error) {
	web.Error(w, http.StatusInternalServerError, err.Error())
}

// statusWriter records the status code written.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// logRequests logs each request at debug level.
func (s *server) logRequests(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(sw, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
