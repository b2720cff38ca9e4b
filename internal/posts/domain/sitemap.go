package domain

import "time"

// SitemapEntry is one URL of the public sitemap.
type SitemapEntry struct {
	URL          string
	LastModified time.Time
}

// BaseSitemap lists the pages that exist regardless of content: the site
// root and the blog index.
func BaseSitemap(siteURL string, now time.Time) []SitemapEntry {
	return []SitemapEntry{
		{URL: siteURL, LastModified: now},
		{URL: siteURL + "/blog", LastModified: now},
	}
}

// BuildSitemap lists the base pages followed by one entry per post. A post
// without update or publication time is stamped with now.
func BuildSitemap(siteURL string, posts []*Post, now time.Time) []SitemapEntry {
	entries := BaseSitemap(siteURL, now)
	for _, p := range posts {
		if p == nil {
			continue
		}
		lastmod := p.LastModified()
		if lastmod.IsZero() {
			lastmod = now
		}
		entries = append(entries, SitemapEntry{URL: siteURL + "/blog/" + p.Slug, LastModified: lastmod})
	}
	return entries
}
