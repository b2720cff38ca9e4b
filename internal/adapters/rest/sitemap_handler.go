package rest

import (
	"context"
	"encoding/xml"
	"net/http"

	"github.com/philly/folio/internal/posts/domain"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapSource lists the entries of the public sitemap
type SitemapSource interface {
	Entries(ctx context.Context) []domain.SitemapEntry
}

// SitemapHandler serves /sitemap.xml
type SitemapHandler struct {
	*BaseHandler
	source SitemapSource
}

func NewSitemapHandler(base *BaseHandler, source SitemapSource) *SitemapHandler {
	return &SitemapHandler{
		BaseHandler: base,
		source:      source,
	}
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

func (h *SitemapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	entries := h.source.Entries(r.Context())

	set := urlSet{Xmlns: sitemapNamespace, URLs: make([]sitemapURL, len(entries))}
	for i, e := range entries {
		set.URLs[i] = sitemapURL{
			Loc:     e.URL,
			LastMod: e.LastModified.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(set); err != nil {
		h.logger.Error(r.Context(), "failed to encode sitemap", "error", err)
	}
}
