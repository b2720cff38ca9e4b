package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/philly/folio/internal/posts/domain"
	"github.com/philly/folio/internal/posts/ports"
)

// Compile-time assertion that PostRepository implements ports.PostRepository.
var _ ports.PostRepository = (*PostRepository)(nil)

// PostRepository is an in-memory ports.PostRepository. Posts are copied on
// the way in and out, so callers never share state with the store. List
// returns posts in insertion order.
type PostRepository struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]*domain.Post
	order []uuid.UUID
}

// NewPostRepository creates an empty in-memory repository.
func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts: make(map[uuid.UUID]*domain.Post),
	}
}

// Create stores a new post. IDs and slugs must be unused.
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[post.ID]; ok {
		return fmt.Errorf("PostRepository.Create: id %s: %w", post.ID, ports.ErrPostExists)
	}
	if r.slugTaken(post.Slug, nil) {
		return fmt.Errorf("PostRepository.Create: slug %q: %w", post.Slug, ports.ErrSlugConflict)
	}

	r.posts[post.ID] = post.Clone()
	r.order = append(r.order, post.ID)
	return nil
}

// FindByID returns a copy of the post with id.
func (r *PostRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, ports.ErrPostNotFound
	}
	return p.Clone(), nil
}

// FindBySlug returns a copy of the post with slug.
func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if p := r.posts[id]; p.Slug == slug {
			return p.Clone(), nil
		}
	}
	return nil, ports.ErrPostNotFound
}

// Update replaces the stored post with the same ID.
func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[post.ID]; !ok {
		return ports.ErrPostNotFound
	}
	if r.slugTaken(post.Slug, &post.ID) {
		return fmt.Errorf("PostRepository.Update: slug %q: %w", post.Slug, ports.ErrSlugConflict)
	}

	r.posts[post.ID] = post.Clone()
	return nil
}

// Delete removes the post with id.
func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return ports.ErrPostNotFound
	}
	delete(r.posts, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns copies of the posts matching filter, oldest insert first.
func (r *PostRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Post, 0, len(r.order))
	for _, id := range r.order {
		p := r.posts[id]
		if filter.PublishedOnly && !p.Published {
			continue
		}
		if filter.AuthorID != "" && p.AuthorID != filter.AuthorID {
			continue
		}
		result = append(result, p.Clone())
	}
	return result, nil
}

// SlugExists reports whether slug is used by a post other than excludeID.
func (r *PostRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.slugTaken(slug, excludeID), nil
}

// Ping always succeeds.
func (r *PostRepository) Ping(ctx context.Context) error {
	return nil
}

// Count returns the number of stored posts.
func (r *PostRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// slugTaken must be called with the lock held.
func (r *PostRepository) slugTaken(slug string, excludeID *uuid.UUID) bool {
	for id, p := range r.posts {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if p.Slug == slug {
			return true
		}
	}
	return false
}
