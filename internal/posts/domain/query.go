package domain

import (
	"slices"
	"strings"

	"github.com/philly/folio/internal/platform/textutil"
)

// SortOrder selects the publication order of query results.
type SortOrder string

const (
	SortNewest SortOrder = "new"
	SortOldest SortOrder = "old"
)

// ParseSortOrder maps a request token to a SortOrder. Anything other than
// "old" means newest first.
func ParseSortOrder(token string) SortOrder {
	if token == string(SortOldest) {
		return SortOldest
	}
	return SortNewest
}

// QueryOptions narrows and orders a post collection. Empty fields do not
// filter.
type QueryOptions struct {
	Query    string
	Tag      string
	Category string
	Sort     SortOrder
}

// FilterAndSortPosts returns the posts matching every non-empty option,
// ordered by publication instant. The input slice is left untouched and
// posts with equal instants keep their relative order.
func FilterAndSortPosts(posts []*Post, opts QueryOptions) []*Post {
	query := strings.ToLower(textutil.TrimSpace(opts.Query))

	out := make([]*Post, 0, len(posts))
	for _, p := range posts {
		if p == nil {
			continue
		}
		if query != "" && !matchesText(p, query) {
			continue
		}
		if opts.Tag != "" && !p.HasTag(opts.Tag) {
			continue
		}
		if opts.Category != "" && !p.InCategory(opts.Category) {
			continue
		}
		out = append(out, p)
	}

	oldestFirst := opts.Sort == SortOldest
	slices.SortStableFunc(out, func(a, b *Post) int {
		c := InstantTime(a.PublishedAt).Compare(InstantTime(b.PublishedAt))
		if oldestFirst {
			return c
		}
		return -c
	})

	return out
}

func matchesText(p *Post, query string) bool {
	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Summary()), query)
}
