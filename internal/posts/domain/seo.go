package domain

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Site describes the public site posts are served from.
type Site struct {
	URL            string // e.g. https://example.com, no trailing slash
	DefaultOGImage string
}

// Metadata is the page metadata of a single post: document head fields,
// OpenGraph/Twitter card data and a BlogPosting structured-data object.
type Metadata struct {
	Title       string
	Description string
	Keywords    []string
	Canonical   string
	SiteName    string
	OGImage     string
	Tags        []string
	JSONLD      BlogPosting
}

// BlogPosting is the schema.org object embedded as JSON-LD.
type BlogPosting struct {
	Context         string        `json:"@context"`
	Type            string        `json:"@type"`
	Headline        string        `json:"headline"`
	Description     string        `json:"description"`
	DatePublished   string        `json:"datePublished"`
	DateModified    string        `json:"dateModified"`
	Author          *PersonSchema `json:"author,omitempty"`
	Keywords        []string      `json:"keywords"`
	ArticleSection  string        `json:"articleSection,omitempty"`
	MainEntityOfURL string        `json:"mainEntityOfPage,omitempty"`
}

// PersonSchema is a schema.org Person.
type PersonSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

var absoluteURL = regexp.MustCompile(`(?i)^https?://`)

// BuildMetadata assembles the page metadata for p as served from site.
func BuildMetadata(p *Post, site Site) Metadata {
	title := p.Title
	if p.SEOTitle != nil && *p.SEOTitle != "" {
		title = *p.SEOTitle
	}

	description := ""
	switch {
	case p.SEODescription != nil && *p.SEODescription != "":
		description = *p.SEODescription
	case p.Excerpt != nil:
		description = *p.Excerpt
	}

	keywords := p.SEOKeywords
	if len(keywords) == 0 {
		keywords = p.Tags
	}

	canonical := site.URL + "/blog/" + p.Slug

	image := site.DefaultOGImage
	if p.FeaturedImage != nil && *p.FeaturedImage != "" {
		image = *p.FeaturedImage
	}

	ld := BlogPosting{
		Context:         "https://schema.org",
		Type:            "BlogPosting",
		Headline:        title,
		Description:     description,
		DatePublished:   isoTime(InstantTime(p.PublishedAt)),
		DateModified:    isoTime(p.LastModified()),
		Keywords:        append(append([]string{}, p.SEOKeywords...), p.Tags...),
		MainEntityOfURL: canonical,
	}
	if p.AuthorName != "" {
		ld.Author = &PersonSchema{Type: "Person", Name: p.AuthorName}
	}
	if p.Category != nil {
		ld.ArticleSection = *p.Category
	}

	return Metadata{
		Title:       title,
		Description: description,
		Keywords:    append([]string{}, keywords...),
		Canonical:   canonical,
		SiteName:    siteHost(site.URL),
		OGImage:     toAbsolute(site.URL, image),
		Tags:        append([]string{}, p.Tags...),
		JSONLD:      ld,
	}
}

func toAbsolute(siteURL, src string) string {
	if src == "" {
		return ""
	}
	if absoluteURL.MatchString(src) {
		return src
	}
	if !strings.HasPrefix(src, "/") {
		src = "/" + src
	}
	return siteURL + src
}

func siteHost(siteURL string) string {
	u, err := url.Parse(siteURL)
	if err != nil {
		return ""
	}
	return u.Host
}

func isoTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
