package domain

import (
	"errors"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/philly/folio/internal/platform/markdown"
	"github.com/philly/folio/internal/platform/textutil"
	"github.com/philly/folio/internal/platform/validator"
)

// Post represents a blog post in the domain
type Post struct {
	ID      uuid.UUID
	Title   string
	Content string // Markdown source
	Excerpt *string
	Slug    string
	Tags    []string

	Category  *string
	Published bool

	PublishedAt Instant
	UpdatedAt   Instant

	// Identity from the external auth provider
	AuthorID    string
	AuthorName  string
	AuthorEmail string

	FeaturedImage  *string
	SEOTitle       *string
	SEODescription *string
	SEOKeywords    []string
}

// Author identifies who writes a post.
type Author struct {
	ID    string
	Name  string
	Email string
}

// PostInput carries the author-editable fields of a post.
type PostInput struct {
	Title          string
	Content        string
	Excerpt        *string
	Tags           []string
	Category       *string
	Published      bool
	FeaturedImage  *string
	SEOTitle       *string
	SEODescription *string
	SEOKeywords    []string
}

// Business rule constants
const (
	MaxTitleLength      = 200
	MaxSlugLength       = 250
	MaxExcerptLength    = 500
	ReadingCharsPerMin  = 500
	fallbackSlugIDChars = 8
)

// Validation errors
var (
	ErrInvalidTitle    = errors.New("title is required and must not exceed 200 characters")
	ErrInvalidSlug     = errors.New("slug is invalid or too long")
	ErrInvalidExcerpt  = errors.New("excerpt must not exceed 500 characters")
	ErrInvalidAuthorID = errors.New("author ID is required")
)

// NewPost creates a post from author input. The slug is derived from the
// title and the excerpt from the content when none is given. New posts carry
// now as both publication and update time.
func NewPost(input PostInput, author Author, now time.Time) (*Post, error) {
	if textutil.TrimSpace(author.ID) == "" {
		return nil, ErrInvalidAuthorID
	}

	p := &Post{
		ID:          uuid.New(),
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		AuthorEmail: author.Email,
		Published:   input.Published,
		PublishedAt: At(now),
	}
	if err := p.apply(input, now); err != nil {
		return nil, err
	}

	p.Slug = validator.NormalizeSlug(p.Title)
	if p.Slug == "" {
		// Titles without ASCII word characters normalize to nothing
		p.Slug = "post-" + p.ID.String()[:fallbackSlugIDChars]
	}
	if len(p.Slug) > MaxSlugLength {
		return nil, ErrInvalidSlug
	}

	return p, nil
}

// Update replaces the editable fields. The slug is left as assigned.
func (p *Post) Update(input PostInput, now time.Time) error {
	published := p.Published
	if err := p.apply(input, now); err != nil {
		return err
	}
	p.Published = published
	return nil
}

// UpdateSlug sets a new slug
// Note: uniqueness must be checked by the service layer before calling this
func (p *Post) UpdateSlug(slug string, now time.Time) error {
	if slug == "" || len(slug) > MaxSlugLength {
		return ErrInvalidSlug
	}

	p.Slug = slug
	p.UpdatedAt = At(now)
	return nil
}

// SetPublished flips the published flag. Publishing restamps PublishedAt;
// moving back to draft keeps the previous publication time.
func (p *Post) SetPublished(published bool, now time.Time) {
	p.Published = published
	if published {
		p.PublishedAt = At(now)
	}
	p.UpdatedAt = At(now)
}

// ReadingTime estimates reading minutes from the content length, at least 1.
func (p *Post) ReadingTime() int {
	chars := utf8.RuneCountInString(p.Content)
	minutes := (chars + ReadingCharsPerMin - 1) / ReadingCharsPerMin
	return max(1, minutes)
}

// Summary is the text searched and shown in lists: the excerpt when one is
// set, otherwise the full content.
func (p *Post) Summary() string {
	if p.Excerpt != nil && *p.Excerpt != "" {
		return *p.Excerpt
	}
	return p.Content
}

// HasTag reports whether tag is one of the post's tags, compared exactly.
func (p *Post) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}

// InCategory reports whether the post is filed under exactly category. A
// post without a category is in none.
func (p *Post) InCategory(category string) bool {
	return p.Category != nil && *p.Category == category
}

// LastModified is the update time, falling back to the publication time.
func (p *Post) LastModified() time.Time {
	if t := InstantTime(p.UpdatedAt); !t.IsZero() {
		return t
	}
	return InstantTime(p.PublishedAt)
}

// Clone returns a deep copy of the post.
func (p *Post) Clone() *Post {
	c := *p
	c.Excerpt = cloneString(p.Excerpt)
	c.Category = cloneString(p.Category)
	c.FeaturedImage = cloneString(p.FeaturedImage)
	c.SEOTitle = cloneString(p.SEOTitle)
	c.SEODescription = cloneString(p.SEODescription)
	c.Tags = slices.Clone(p.Tags)
	c.SEOKeywords = slices.Clone(p.SEOKeywords)
	return &c
}

func (p *Post) apply(input PostInput, now time.Time) error {
	if err := validateTitle(input.Title); err != nil {
		return err
	}

	excerpt := deriveExcerpt(input.Excerpt, input.Content)
	if utf8.RuneCountInString(excerpt) > MaxExcerptLength {
		return ErrInvalidExcerpt
	}

	p.Title = input.Title
	p.Content = input.Content
	p.Excerpt = optional(excerpt)
	p.Tags = normalizeList(input.Tags)
	p.Category = optional(trimmed(input.Category))
	p.Published = input.Published
	p.FeaturedImage = optional(trimmed(input.FeaturedImage))
	p.SEOKeywords = normalizeList(input.SEOKeywords)

	seoTitle := trimmed(input.SEOTitle)
	if seoTitle == "" {
		seoTitle = textutil.TrimSpace(input.Title)
	}
	p.SEOTitle = optional(seoTitle)

	seoDescription := trimmed(input.SEODescription)
	if seoDescription == "" {
		seoDescription = excerpt
	}
	p.SEODescription = optional(seoDescription)

	p.UpdatedAt = At(now)
	return nil
}

// Validation helpers

func validateTitle(title string) error {
	if textutil.TrimSpace(title) == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrInvalidTitle
	}
	return nil
}

func deriveExcerpt(given *string, content string) string {
	if excerpt := trimmed(given); excerpt != "" {
		return excerpt
	}
	return markdown.ExtractExcerpt(content, markdown.DefaultExcerptLength)
}

// normalizeList trims entries, drops empties and duplicates, keeping order.
func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = textutil.TrimSpace(v)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return textutil.TrimSpace(*s)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
