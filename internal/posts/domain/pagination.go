package domain

// Page is one slice of a result set.
type Page struct {
	Items      []*Post
	Page       int
	PerPage    int
	TotalItems int
	TotalPages int
}

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool { return p.Page < p.TotalPages }

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool { return p.Page > 1 }

const (
	DefaultPerPage  = 10
	MaxPerPage      = 100
	PageWindowWidth = 5
)

// Paginate cuts posts into pages of perPage items and returns the requested
// one. Out of range page numbers are clamped, and perPage falls back to
// DefaultPerPage when not positive.
func Paginate(posts []*Post, page, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	perPage = min(perPage, MaxPerPage)

	total := len(posts)
	totalPages := max(1, (total+perPage-1)/perPage)
	page = min(max(page, 1), totalPages)

	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)

	items := make([]*Post, end-start)
	copy(items, posts[start:end])

	return Page{
		Items:      items,
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// PageWindow returns up to width consecutive page numbers centred on current
// where possible, shifted to stay within 1..total.
func PageWindow(current, total, width int) []int {
	if total <= 0 || width <= 0 {
		return []int{}
	}
	current = min(max(current, 1), total)
	width = min(width, total)

	start := max(1, current-width/2)
	if start+width-1 > total {
		start = total - width + 1
	}

	window := make([]int, width)
	for i := range window {
		window[i] = start + i
	}
	return window
}
