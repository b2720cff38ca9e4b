package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/philly/folio/internal/posts/domain"
)

// Repository errors - these are the canonical errors that repository
// implementations should return. The PostgreSQL implementation will
// translate pgx.ErrNoRows to these errors.
var (
	// ErrPostNotFound is returned when a post cannot be found
	ErrPostNotFound = errors.New("post not found")

	// ErrSlugConflict is returned when a write would give two posts one slug
	ErrSlugConflict = errors.New("post slug already in use")

	// ErrPostExists is returned when Create is given an ID already stored
	ErrPostExists = errors.New("post already exists")
)

// PostRepository defines the interface for post persistence
type PostRepository interface {
	// Create saves a new post. Returns ErrPostExists or ErrSlugConflict
	// when the ID or slug is taken.
	Create(ctx context.Context, post *domain.Post) error

	// FindByID retrieves a full post by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// FindBySlug retrieves a full post by its slug
	FindBySlug(ctx context.Context, slug string) (*domain.Post, error)

	// Update modifies an existing post. Returns ErrSlugConflict when another
	// post holds the slug.
	Update(ctx context.Context, post *domain.Post) error

	// Delete removes a post
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns every post matching the filter in storage order. Filtering
	// by text, tag and category happens in the query engine, not here.
	List(ctx context.Context, filter ListFilter) ([]*domain.Post, error)

	// SlugExists checks if a slug is already in use
	// Optionally excludes a specific post ID (for updates)
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)

	// Ping reports whether the backing store is reachable
	Ping(ctx context.Context) error
}

// ListFilter narrows the collection a repository hands back
type ListFilter struct {
	// PublishedOnly drops drafts
	PublishedOnly bool

	// AuthorID filters by author (empty means all authors)
	AuthorID string
}
