package domain_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/philly/folio/internal/posts/domain"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func makePost(title string, published domain.Instant, opts ...func(*domain.Post)) *domain.Post {
	p := &domain.Post{
		Title:       title,
		Content:     "Content",
		Slug:        "slug",
		Published:   true,
		PublishedAt: published,
		Tags:        []string{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func withExcerpt(s string) func(*domain.Post) { return func(p *domain.Post) { p.Excerpt = strPtr(s) } }
func withContent(s string) func(*domain.Post) { return func(p *domain.Post) { p.Content = s } }
func withTags(tags ...string) func(*domain.Post) {
	return func(p *domain.Post) { p.Tags = tags }
}
func withCategory(s string) func(*domain.Post) { return func(p *domain.Post) { p.Category = strPtr(s) } }

// fixture returns posts keyed by short names. "d" carries a document-store
// timestamp instead of a native time.
func fixture() (map[string]*domain.Post, []*domain.Post) {
	a := makePost("Hello World", domain.At(date("2024-03-01")), withExcerpt("greeting"), withTags("news"))
	b := makePost("Next.js Tips", domain.At(date("2024-05-10")), withContent("router and link"), withTags("tech", "next"), withCategory("Tech"))
	c := makePost("Daily Log", domain.At(date("2024-02-20")), withContent("hello diary"), withTags("life"), withCategory("Life"))
	d := makePost("Old Note", domain.From(domain.TimestampOf(date("2023-12-31"))), withContent("archive"), withTags("life"))

	byName := map[string]*domain.Post{"a": a, "b": b, "c": c, "d": d}
	return byName, []*domain.Post{a, b, c, d}
}

func names(byName map[string]*domain.Post, posts []*domain.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		for name, candidate := range byName {
			if candidate == p {
				out = append(out, name)
			}
		}
	}
	return out
}

func TestFilterAndSortPosts(t *testing.T) {
	tests := []struct {
		name string
		opts domain.QueryOptions
		want []string
	}{
		{name: "default sorts newest first", opts: domain.QueryOptions{}, want: []string{"b", "a", "c", "d"}},
		{name: "old sorts oldest first", opts: domain.QueryOptions{Sort: domain.SortOldest}, want: []string{"d", "c", "a", "b"}},
		{name: "unknown sort token means newest", opts: domain.QueryOptions{Sort: "sideways"}, want: []string{"b", "a", "c", "d"}},
		{name: "query matches title or content", opts: domain.QueryOptions{Query: "hello"}, want: []string{"a", "c"}},
		{name: "query is trimmed and case-insensitive", opts: domain.QueryOptions{Query: "  HELLO\u3000"}, want: []string{"a", "c"}},
		{name: "query matches excerpt", opts: domain.QueryOptions{Query: "greet"}, want: []string{"a"}},
		{name: "excerpt hides content from search", opts: domain.QueryOptions{Query: "content"}, want: []string{}},
		{name: "blank query does not filter", opts: domain.QueryOptions{Query: "   "}, want: []string{"b", "a", "c", "d"}},
		{name: "tag exact match", opts: domain.QueryOptions{Tag: "life"}, want: []string{"c", "d"}},
		{name: "tag is case-sensitive", opts: domain.QueryOptions{Tag: "Life"}, want: []string{}},
		{name: "category exact match", opts: domain.QueryOptions{Category: "Tech"}, want: []string{"b"}},
		{name: "category is case-sensitive", opts: domain.QueryOptions{Category: "tech"}, want: []string{}},
		{name: "query and tag combine", opts: domain.QueryOptions{Query: "next", Tag: "next"}, want: []string{"b"}},
		{name: "query and tag must both hold", opts: domain.QueryOptions{Query: "hello", Tag: "news", Sort: domain.SortOldest}, want: []string{"a"}},
		{name: "no matches", opts: domain.QueryOptions{Query: "zzz"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			byName, posts := fixture()
			got := domain.FilterAndSortPosts(posts, tt.opts)
			if diff := cmp.Diff(tt.want, names(byName, got)); diff != "" {
				t.Errorf("FilterAndSortPosts() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterAndSortPosts_DoesNotMutateInput(t *testing.T) {
	_, posts := fixture()
	before := append([]*domain.Post(nil), posts...)

	_ = domain.FilterAndSortPosts(posts, domain.QueryOptions{Sort: domain.SortOldest})
	_ = domain.FilterAndSortPosts(posts, domain.QueryOptions{})

	assert.Equal(t, before, posts)
}

func TestFilterAndSortPosts_EmptyInput(t *testing.T) {
	got := domain.FilterAndSortPosts(nil, domain.QueryOptions{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterAndSortPosts_SkipsNilAndAbsentFields(t *testing.T) {
	bare := &domain.Post{Title: "Bare"}
	got := domain.FilterAndSortPosts([]*domain.Post{nil, bare}, domain.QueryOptions{})
	assert.Equal(t, []*domain.Post{bare}, got)

	assert.Empty(t, domain.FilterAndSortPosts([]*domain.Post{bare}, domain.QueryOptions{Tag: "x"}))
	assert.Empty(t, domain.FilterAndSortPosts([]*domain.Post{bare}, domain.QueryOptions{Category: "x"}))
}

func TestFilterAndSortPosts_StableForTies(t *testing.T) {
	same := domain.At(date("2024-01-01"))
	first := makePost("first", same)
	second := makePost("second", domain.From(domain.TimestampOf(date("2024-01-01"))))
	third := makePost("third", same)
	posts := []*domain.Post{first, second, third}

	assert.Equal(t, posts, domain.FilterAndSortPosts(posts, domain.QueryOptions{}))
	assert.Equal(t, posts, domain.FilterAndSortPosts(posts, domain.QueryOptions{Sort: domain.SortOldest}))
}

func TestFilterAndSortPosts_DateRepresentationParity(t *testing.T) {
	days := []string{"2024-04-01", "2022-01-15", "2023-07-30", "2024-01-01"}

	native := make([]*domain.Post, len(days))
	sourced := make([]*domain.Post, len(days))
	for i, d := range days {
		native[i] = makePost(d, domain.At(date(d)))
		sourced[i] = makePost(d, domain.From(domain.TimestampOf(date(d))))
	}

	titles := func(posts []*domain.Post) []string {
		out := make([]string, len(posts))
		for i, p := range posts {
			out[i] = p.Title
		}
		return out
	}

	for _, sort := range []domain.SortOrder{domain.SortNewest, domain.SortOldest} {
		opts := domain.QueryOptions{Sort: sort}
		assert.Equal(t,
			titles(domain.FilterAndSortPosts(native, opts)),
			titles(domain.FilterAndSortPosts(sourced, opts)),
			"sort %q", sort)
	}
}

func TestFilterAndSortPosts_MissingInstantSortsOldest(t *testing.T) {
	dated := makePost("dated", domain.At(date("2020-01-01")))
	undated := makePost("undated", nil)

	got := domain.FilterAndSortPosts([]*domain.Post{undated, dated}, domain.QueryOptions{})
	assert.Equal(t, []*domain.Post{dated, undated}, got)
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, domain.SortOldest, domain.ParseSortOrder("old"))
	assert.Equal(t, domain.SortNewest, domain.ParseSortOrder("new"))
	assert.Equal(t, domain.SortNewest, domain.ParseSortOrder(""))
	assert.Equal(t, domain.SortNewest, domain.ParseSortOrder("OLD"))
}
