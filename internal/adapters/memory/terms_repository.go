package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/philly/folio/internal/taxonomy/domain"
	"github.com/philly/folio/internal/taxonomy/ports"
)

var (
	_ ports.TagRepository      = (*TagRepository)(nil)
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
)

// termStore keeps copies of tags or categories keyed by ID. Slugs are
// unique within one store.
type termStore[T any] struct {
	name     string
	mu       sync.RWMutex
	items    map[uuid.UUID]T
	term     func(T) *domain.Term
	clone    func(T) T
	sort     func([]T)
	notFound error
}

func (s *termStore[T]) create(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.term(item)
	if _, ok := s.items[t.ID]; ok {
		return fmt.Errorf("%s.Create: id %s: %w", s.name, t.ID, ports.ErrTermExists)
	}
	if s.slugTaken(t.Slug, nil) {
		return fmt.Errorf("%s.Create: slug %q: %w", s.name, t.Slug, ports.ErrSlugConflict)
	}
	s.items[t.ID] = s.clone(item)
	return nil
}

func (s *termStore[T]) update(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.term(item)
	if _, ok := s.items[t.ID]; !ok {
		return s.notFound
	}
	if s.slugTaken(t.Slug, &t.ID) {
		return fmt.Errorf("%s.Update: slug %q: %w", s.name, t.Slug, ports.ErrSlugConflict)
	}
	s.items[t.ID] = s.clone(item)
	return nil
}

func (s *termStore[T]) delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return s.notFound
	}
	delete(s.items, id)
	return nil
}

func (s *termStore[T]) findByID(id uuid.UUID) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, s.notFound
	}
	return s.clone(item), nil
}

func (s *termStore[T]) findBySlug(slug string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if s.term(item).Slug == slug {
			return s.clone(item), nil
		}
	}
	var zero T
	return zero, s.notFound
}

func (s *termStore[T]) list() []T {
	s.mu.RLock()
	out := make([]T, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, s.clone(item))
	}
	s.mu.RUnlock()

	s.sort(out)
	return out
}

func (s *termStore[T]) slugExists(slug string, excludeID *uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slugTaken(slug, excludeID)
}

// slugTaken must be called with the lock held.
func (s *termStore[T]) slugTaken(slug string, excludeID *uuid.UUID) bool {
	for id, item := range s.items {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if s.term(item).Slug == slug {
			return true
		}
	}
	return false
}

// TagRepository is an in-memory ports.TagRepository
type TagRepository struct {
	store termStore[*domain.Tag]
}

// NewTagRepository creates an empty in-memory tag repository.
func NewTagRepository() *TagRepository {
	return &TagRepository{store: termStore[*domain.Tag]{
		name:     "TagRepository",
		items:    make(map[uuid.UUID]*domain.Tag),
		term:     func(t *domain.Tag) *domain.Term { return &t.Term },
		clone:    (*domain.Tag).Clone,
		sort:     domain.SortTags,
		notFound: ports.ErrTagNotFound,
	}}
}

func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	return r.store.create(tag)
}

func (r *TagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	return r.store.update(tag)
}

func (r *TagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.delete(id)
}

func (r *TagRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	return r.store.findByID(id)
}

func (r *TagRepository) FindBySlug(ctx context.Context, slug string) (*domain.Tag, error) {
	return r.store.findBySlug(slug)
}

// List returns copies of every tag ordered by name.
func (r *TagRepository) List(ctx context.Context) ([]*domain.Tag, error) {
	return r.store.list(), nil
}

func (r *TagRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	return r.store.slugExists(slug, excludeID), nil
}

// CategoryRepository is an in-memory ports.CategoryRepository
type CategoryRepository struct {
	store termStore[*domain.Category]
}

// NewCategoryRepository creates an empty in-memory category repository.
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{store: termStore[*domain.Category]{
		name:     "CategoryRepository",
		items:    make(map[uuid.UUID]*domain.Category),
		term:     func(c *domain.Category) *domain.Term { return &c.Term },
		clone:    (*domain.Category).Clone,
		sort:     domain.SortCategories,
		notFound: ports.ErrCategoryNotFound,
	}}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	return r.store.create(category)
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	return r.store.update(category)
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.delete(id)
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return r.store.findByID(id)
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return r.store.findBySlug(slug)
}

// List returns copies of every category ordered by sort order, then name.
func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	return r.store.list(), nil
}

func (r *CategoryRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	return r.store.slugExists(slug, excludeID), nil
}
