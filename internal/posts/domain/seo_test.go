package domain_test

import (
	"testing"
	"time"

	"github.com/philly/folio/internal/posts/domain"
	"github.com/stretchr/testify/assert"
)

var site = domain.Site{URL: "https://example.com", DefaultOGImage: "/og/default.png"}

func TestBuildMetadata(t *testing.T) {
	post := &domain.Post{
		Title:         "Hello World",
		Slug:          "hello-world",
		Excerpt:       strPtr("greeting"),
		Tags:          []string{"news"},
		Category:      strPtr("Life"),
		AuthorName:    "User",
		FeaturedImage: strPtr("images/cover.png"),
		PublishedAt:   domain.At(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
	}

	got := domain.BuildMetadata(post, site)

	assert.Equal(t, "Hello World", got.Title)
	assert.Equal(t, "greeting", got.Description)
	assert.Equal(t, []string{"news"}, got.Keywords)
	assert.Equal(t, "https://example.com/blog/hello-world", got.Canonical)
	assert.Equal(t, "example.com", got.SiteName)
	assert.Equal(t, "https://example.com/images/cover.png", got.OGImage)

	assert.Equal(t, "BlogPosting", got.JSONLD.Type)
	assert.Equal(t, "2024-03-01T00:00:00.000Z", got.JSONLD.DatePublished)
	assert.Equal(t, "2024-03-01T00:00:00.000Z", got.JSONLD.DateModified)
	assert.Equal(t, "Life", got.JSONLD.ArticleSection)
	if assert.NotNil(t, got.JSONLD.Author) {
		assert.Equal(t, "User", got.JSONLD.Author.Name)
	}
}

func TestBuildMetadata_SEOOverrides(t *testing.T) {
	post := &domain.Post{
		Title:          "Hello World",
		Slug:           "hello-world",
		Excerpt:        strPtr("greeting"),
		Tags:           []string{"news"},
		SEOTitle:       strPtr("Custom"),
		SEODescription: strPtr("custom description"),
		SEOKeywords:    []string{"k1"},
		FeaturedImage:  strPtr("HTTPS://cdn.example.net/a.png"),
	}

	got := domain.BuildMetadata(post, site)

	assert.Equal(t, "Custom", got.Title)
	assert.Equal(t, "custom description", got.Description)
	assert.Equal(t, []string{"k1"}, got.Keywords)
	assert.Equal(t, "HTTPS://cdn.example.net/a.png", got.OGImage)
	assert.Equal(t, []string{"k1", "news"}, got.JSONLD.Keywords)
	assert.Nil(t, got.JSONLD.Author)
	assert.Empty(t, got.JSONLD.DatePublished)
}

func TestBuildMetadata_DefaultImage(t *testing.T) {
	got := domain.BuildMetadata(&domain.Post{Title: "t", Slug: "t"}, site)
	assert.Equal(t, "https://example.com/og/default.png", got.OGImage)

	got = domain.BuildMetadata(&domain.Post{Title: "t", Slug: "t"}, domain.Site{URL: "https://example.com"})
	assert.Empty(t, got.OGImage)
	assert.Empty(t, got.Description)
}

func TestBuildSitemap(t *testing.T) {
	clock := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	updated := date("2024-04-01")
	posts := []*domain.Post{
		{Slug: "a", PublishedAt: domain.At(date("2024-03-01")), UpdatedAt: domain.At(updated)},
		{Slug: "b", PublishedAt: domain.At(date("2024-02-01"))},
		{Slug: "c"},
		nil,
	}

	got := domain.BuildSitemap("https://example.com", posts, clock)

	assert.Equal(t, []domain.SitemapEntry{
		{URL: "https://example.com", LastModified: clock},
		{URL: "https://example.com/blog", LastModified: clock},
		{URL: "https://example.com/blog/a", LastModified: updated},
		{URL: "https://example.com/blog/b", LastModified: date("2024-02-01")},
		{URL: "https://example.com/blog/c", LastModified: clock},
	}, got)
}

func TestBuildTaxonomy(t *testing.T) {
	_, posts := fixture()
	got := domain.BuildTaxonomy(append(posts, nil))

	assert.Equal(t, []domain.TermCount{
		{Name: "life", Count: 2},
		{Name: "news", Count: 1},
		{Name: "next", Count: 1},
		{Name: "tech", Count: 1},
	}, got.Tags)
	assert.Equal(t, []domain.TermCount{
		{Name: "Life", Count: 1},
		{Name: "Tech", Count: 1},
	}, got.Categories)
}
