package domain

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/philly/folio/internal/platform/textutil"
	"github.com/philly/folio/internal/platform/validator"
)

// Term holds what tags and categories have in common
type Term struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description string
	Count       int // published posts filed under the term
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tag is a managed post tag
type Tag struct {
	Term
}

// Category is a managed post category. Categories nest through ParentID.
type Category struct {
	Term
	ParentID  *uuid.UUID
	SortOrder int
}

// TermInput carries the editable fields of a tag. An empty Slug means the
// slug is derived from the name.
type TermInput struct {
	Name        string
	Slug        string
	Description string
}

// CategoryInput carries the editable fields of a category
type CategoryInput struct {
	TermInput
	ParentID  *uuid.UUID
	SortOrder *int // nil means DefaultSortOrder
}

// Business rule constants
const (
	MaxNameLength        = 100
	MaxSlugLength        = 150
	MaxDescriptionLength = 1000
	DefaultSortOrder     = 99
	fallbackSlugIDChars  = 8
)

// Validation errors
var (
	ErrInvalidName        = errors.New("name is required and must not exceed 100 characters")
	ErrInvalidSlug        = errors.New("slug is invalid or too long")
	ErrInvalidDescription = errors.New("description must not exceed 1000 characters")
	ErrInvalidParent      = errors.New("category cannot be its own ancestor")
)

// GenerateSlug derives a term slug from its name
func GenerateSlug(name string) string {
	return validator.NormalizeTermSlug(name)
}

// NewTag creates a tag from input
func NewTag(input TermInput, now time.Time) (*Tag, error) {
	t := &Tag{Term: Term{ID: uuid.New(), CreatedAt: now}}
	if err := t.apply(input, "tag", now); err != nil {
		return nil, err
	}
	return t, nil
}

// Update replaces the tag's editable fields
func (t *Tag) Update(input TermInput, now time.Time) error {
	return t.apply(input, "tag", now)
}

// Clone returns a copy of the tag
func (t *Tag) Clone() *Tag {
	c := *t
	return &c
}

// NewCategory creates a category from input
func NewCategory(input CategoryInput, now time.Time) (*Category, error) {
	c := &Category{Term: Term{ID: uuid.New(), CreatedAt: now}}
	if err := c.Update(input, now); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the category's editable fields. Only a direct
// self-reference is caught here; deeper cycles need the whole category set,
// see WouldCycle.
func (c *Category) Update(input CategoryInput, now time.Time) error {
	if input.ParentID != nil && *input.ParentID == c.ID {
		return ErrInvalidParent
	}
	if err := c.apply(input.TermInput, "category", now); err != nil {
		return err
	}

	c.ParentID = nil
	if input.ParentID != nil {
		parent := *input.ParentID
		c.ParentID = &parent
	}
	c.SortOrder = DefaultSortOrder
	if input.SortOrder != nil {
		c.SortOrder = *input.SortOrder
	}
	return nil
}

// Clone returns a deep copy of the category
func (c *Category) Clone() *Category {
	cp := *c
	if c.ParentID != nil {
		parent := *c.ParentID
		cp.ParentID = &parent
	}
	return &cp
}

// AdjustCount moves the post count by delta, never below zero
func (t *Term) AdjustCount(delta int, now time.Time) {
	t.SetCount(t.Count+delta, now)
}

// SetCount sets the post count, never below zero
func (t *Term) SetCount(n int, now time.Time) {
	t.Count = max(0, n)
	t.UpdatedAt = now
}

// Matches reports whether label, as written on a post, names the term: its
// name or its slug, compared exactly.
func (t *Term) Matches(label string) bool {
	return label != "" && (label == t.Name || label == t.Slug)
}

// apply validates input and copies it onto the term. The slug is the given
// one normalized, or derived from the name; a name with nothing usable for a
// slug gets "<kind>-<id prefix>".
func (t *Term) apply(input TermInput, kind string, now time.Time) error {
	name := textutil.TrimSpace(input.Name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return ErrInvalidName
	}
	if utf8.RuneCountInString(input.Description) > MaxDescriptionLength {
		return ErrInvalidDescription
	}

	slug := GenerateSlug(name)
	if input.Slug != "" {
		slug = GenerateSlug(input.Slug)
		if slug == "" {
			return ErrInvalidSlug
		}
	}
	if slug == "" {
		slug = kind + "-" + t.ID.String()[:fallbackSlugIDChars]
	}
	if utf8.RuneCountInString(slug) > MaxSlugLength {
		return ErrInvalidSlug
	}

	t.Name = name
	t.Slug = slug
	t.Description = textutil.TrimSpace(input.Description)
	t.UpdatedAt = now
	return nil
}

// UpdateSlug sets a new slug
// Note: uniqueness must be checked by the service layer before calling this
func (t *Term) UpdateSlug(slug string, now time.Time) error {
	if slug == "" || utf8.RuneCountInString(slug) > MaxSlugLength {
		return ErrInvalidSlug
	}
	t.Slug = slug
	t.UpdatedAt = now
	return nil
}
