package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/philly/folio/internal/taxonomy/domain"
)

// Repository errors returned by every TagRepository and CategoryRepository
// implementation.
var (
	ErrTagNotFound      = errors.New("tag not found")
	ErrCategoryNotFound = errors.New("category not found")

	// ErrSlugConflict is returned when a write would give two terms of the
	// same kind one slug
	ErrSlugConflict = errors.New("term slug already in use")

	// ErrTermExists is returned when Create is given an ID already stored
	ErrTermExists = errors.New("term already exists")
)

// TagRepository defines tag persistence
type TagRepository interface {
	Create(ctx context.Context, tag *domain.Tag) error
	Update(ctx context.Context, tag *domain.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Tag, error)

	// List returns every tag ordered by name
	List(ctx context.Context) ([]*domain.Tag, error)

	// SlugExists checks if a slug is already in use, optionally ignoring one
	// tag (for updates)
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
}

// CategoryRepository defines category persistence
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)

	// List returns every category ordered by sort order, then name
	List(ctx context.Context) ([]*domain.Category, error)

	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)
}

// PostTermsSource lists what published posts are filed under. Term counts
// are computed from it.
type PostTermsSource interface {
	PublishedTerms(ctx context.Context) ([]domain.PostTerms, error)
}
