package main

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"text/template"
)

// defaultSitemap lists one absolute URL per line.
const defaultSitemap = `{{range .URLs}}{{$.BaseURL}}{{.}}
{{end}}`

// sitemapData is passed to the sitemap template.
type sitemapData struct {
	BaseURL string
	URLs    []string
}

// loadSitemapTemplate parses sitemap.txt from the docs folder, falling back
// to the built-in template when the file does not exist.
func loadSitemapTemplate(docs fs.FS) (*template.Template, error) {
	b, err := fs.ReadFile(docs, "sitemap.txt")
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		b = []byte(defaultSitemap)
	}
	return template.New("sitemap").Parse(string(b))
}

// sitemap is an http.HandlerFunc that renders the public URL of every page
// the descriptor links to.
func (s *server) sitemap(w http.ResponseWriter, r *http.Request) {
	d := s.src.Get()
	var out bytes.Buffer
	err := s.sitemapTpl.Execute(&out, sitemapData{
		BaseURL: strings.TrimSuffix(s.baseURL, "/"),
		URLs:    d.PageURLs(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("sitemap")
		s.serverError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeContent(w, r, "sitemap.txt", s.src.LoadedAt(), bytes.NewReader(out.Bytes()))
}
