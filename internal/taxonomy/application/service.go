package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/philly/folio/internal/platform/apperror"
	"github.com/philly/folio/internal/platform/eventbus"
	"github.com/philly/folio/internal/platform/events"
	"github.com/philly/folio/internal/platform/logger"
	"github.com/philly/folio/internal/platform/metrics"
	"github.com/philly/folio/internal/platform/sanitize"
	"github.com/philly/folio/internal/taxonomy/domain"
	"github.com/philly/folio/internal/taxonomy/ports"
)

// maxSlugAttempts bounds the -N suffixes tried before giving up on a slug.
const maxSlugAttempts = 100

// TaxonomyService manages tags and categories. Post counts follow the
// published posts: every post event triggers a recount.
type TaxonomyService struct {
	tags       ports.TagRepository
	categories ports.CategoryRepository
	posts      ports.PostTermsSource
	logger     logger.Logger
	sanitizer  *sanitize.PlainText
	now        func() time.Time

	recountMu sync.Mutex
}

// NewTaxonomyService creates the service and subscribes it to post events
func NewTaxonomyService(
	tags ports.TagRepository,
	categories ports.CategoryRepository,
	posts ports.PostTermsSource,
	bus *eventbus.Bus,
	logger logger.Logger,
) *TaxonomyService {
	s := &TaxonomyService{
		tags:       tags,
		categories: categories,
		posts:      posts,
		logger:     logger,
		sanitizer:  sanitize.NewPlainText(),
		now:        time.Now,
	}
	for _, topic := range events.PostTopics {
		bus.Subscribe(topic, s.onPostChanged)
	}
	return s
}

// Tags

// CreateTag creates a tag. A given slug must be free; a slug derived from
// the name gets a -N suffix when taken.
func (s *TaxonomyService) CreateTag(ctx context.Context, input domain.TermInput) (*domain.Tag, error) {
	input = s.clean(input)
	tag, err := domain.NewTag(input, s.now())
	if err != nil {
		return nil, validationError(err)
	}
	if err := s.claimSlug(ctx, &tag.Term, input.Slug != "", s.tags.SlugExists); err != nil {
		return nil, err
	}

	if err := s.tags.Create(ctx, tag); err != nil {
		s.logger.Error(ctx, "failed to create tag", "error", err, "slug", tag.Slug)
		return nil, writeError(err, ErrTagNotFound, "failed to create tag")
	}
	return tag, nil
}

// UpdateTag replaces the editable fields of a tag. Without a given slug the
// slug is derived from the new name again.
func (s *TaxonomyService) UpdateTag(ctx context.Context, id uuid.UUID, input domain.TermInput) (*domain.Tag, error) {
	tag, err := s.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}

	input = s.clean(input)
	if err := tag.Update(input, s.now()); err != nil {
		return nil, validationError(err)
	}
	if err := s.claimSlug(ctx, &tag.Term, input.Slug != "", s.tags.SlugExists); err != nil {
		return nil, err
	}

	if err := s.tags.Update(ctx, tag); err != nil {
		s.logger.Error(ctx, "failed to update tag", "error", err, "tagID", id)
		return nil, writeError(err, ErrTagNotFound, "failed to update tag")
	}
	return tag, nil
}

// DeleteTag removes a tag no published post carries
func (s *TaxonomyService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	tag, err := s.GetTag(ctx, id)
	if err != nil {
		return err
	}
	if tag.Count > 0 {
		return ErrTermInUse.WithDetails(fmt.Sprintf("tag %q is on %d posts", tag.Name, tag.Count))
	}

	if err := s.tags.Delete(ctx, id); err != nil {
		s.logger.Error(ctx, "failed to delete tag", "error", err, "tagID", id)
		return writeError(err, ErrTagNotFound, "failed to delete tag")
	}
	return nil
}

// GetTag retrieves a tag by ID
func (s *TaxonomyService) GetTag(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	tag, err := s.tags.FindByID(ctx, id)
	return s.foundTag(ctx, tag, err, "tagID", id)
}

// GetTagBySlug retrieves a tag by slug
func (s *TaxonomyService) GetTagBySlug(ctx context.Context, slug string) (*domain.Tag, error) {
	tag, err := s.tags.FindBySlug(ctx, slug)
	return s.foundTag(ctx, tag, err, "slug", slug)
}

// ListTags returns every tag ordered by name
func (s *TaxonomyService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to list tags", "error", err)
		return nil, internalError(err, "failed to list tags")
	}
	return tags, nil
}

// TagsByIDs returns the tags with the given IDs in the order asked for.
// Unknown IDs are skipped.
func (s *TaxonomyService) TagsByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Tag, error) {
	tags, err := s.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*domain.Tag, len(tags))
	for _, t := range tags {
		byID[t.ID] = t
	}

	out := make([]*domain.Tag, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// TagOptions lists tags in the short form used by post editors
func (s *TaxonomyService) TagOptions(ctx context.Context) ([]domain.TagOption, error) {
	tags, err := s.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	return domain.TagOptions(tags), nil
}

// AdjustTagCount moves a tag's post count by delta, stopping at zero
func (s *TaxonomyService) AdjustTagCount(ctx context.Context, id uuid.UUID, delta int) (*domain.Tag, error) {
	tag, err := s.GetTag(ctx, id)
	if err != nil {
		return nil, err
	}
	tag.AdjustCount(delta, s.now())
	if err := s.tags.Update(ctx, tag); err != nil {
		s.logger.Error(ctx, "failed to update tag count", "error", err, "tagID", id)
		return nil, writeError(err, ErrTagNotFound, "failed to update tag count")
	}
	return tag, nil
}

// Categories

// CreateCategory creates a category. The parent, when given, must exist.
func (s *TaxonomyService) CreateCategory(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	input.TermInput = s.clean(input.TermInput)
	category, err := domain.NewCategory(input, s.now())
	if err != nil {
		return nil, validationError(err)
	}
	if err := s.checkParent(ctx, category); err != nil {
		return nil, err
	}
	if err := s.claimSlug(ctx, &category.Term, input.Slug != "", s.categories.SlugExists); err != nil {
		return nil, err
	}

	if err := s.categories.Create(ctx, category); err != nil {
		s.logger.Error(ctx, "failed to create category", "error", err, "slug", category.Slug)
		return nil, writeError(err, ErrCategoryNotFound, "failed to create category")
	}
	return category, nil
}

// UpdateCategory replaces the editable fields of a category. A parent that
// would make the category its own ancestor is rejected.
func (s *TaxonomyService) UpdateCategory(ctx context.Context, id uuid.UUID, input domain.CategoryInput) (*domain.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	input.TermInput = s.clean(input.TermInput)
	if err := category.Update(input, s.now()); err != nil {
		return nil, validationError(err)
	}
	if err := s.checkParent(ctx, category); err != nil {
		return nil, err
	}
	if err := s.claimSlug(ctx, &category.Term, input.Slug != "", s.categories.SlugExists); err != nil {
		return nil, err
	}

	if err := s.categories.Update(ctx, category); err != nil {
		s.logger.Error(ctx, "failed to update category", "error", err, "categoryID", id)
		return nil, writeError(err, ErrCategoryNotFound, "failed to update category")
	}
	return category, nil
}

// DeleteCategory removes a category with no published posts and no
// subcategories
func (s *TaxonomyService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if category.Count > 0 {
		return ErrTermInUse.WithDetails(fmt.Sprintf("category %q has %d posts", category.Name, category.Count))
	}

	all, err := s.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range all {
		if c.ParentID != nil && *c.ParentID == id {
			return ErrTermInUse.WithDetails(fmt.Sprintf("category %q has subcategories", category.Name))
		}
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		s.logger.Error(ctx, "failed to delete category", "error", err, "categoryID", id)
		return writeError(err, ErrCategoryNotFound, "failed to delete category")
	}
	return nil
}

// GetCategory retrieves a category by ID
func (s *TaxonomyService) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	return s.foundCategory(ctx, category, err, "categoryID", id)
}

// GetCategoryBySlug retrieves a category by slug
func (s *TaxonomyService) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	return s.foundCategory(ctx, category, err, "slug", slug)
}

// ListCategories returns every category ordered by sort order, then name
func (s *TaxonomyService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to list categories", "error", err)
		return nil, internalError(err, "failed to list categories")
	}
	return categories, nil
}

// CategoryTree nests the categories under their parents
func (s *TaxonomyService) CategoryTree(ctx context.Context) ([]*domain.CategoryNode, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return domain.BuildCategoryTree(categories), nil
}

// CategoryOptions lists categories in the short form used by post editors
func (s *TaxonomyService) CategoryOptions(ctx context.Context) ([]domain.CategoryOption, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return domain.CategoryOptions(categories), nil
}

// AdjustCategoryCount moves a category's post count by delta, stopping at
// zero
func (s *TaxonomyService) AdjustCategoryCount(ctx context.Context, id uuid.UUID, delta int) (*domain.Category, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.AdjustCount(delta, s.now())
	if err := s.categories.Update(ctx, category); err != nil {
		s.logger.Error(ctx, "failed to update category count", "error", err, "categoryID", id)
		return nil, writeError(err, ErrCategoryNotFound, "failed to update category count")
	}
	return category, nil
}

// RecountFromPosts sets every tag and category count from the published
// posts. Only terms whose count changed are written.
func (s *TaxonomyService) RecountFromPosts(ctx context.Context) error {
	s.recountMu.Lock()
	defer s.recountMu.Unlock()

	posts, err := s.posts.PublishedTerms(ctx)
	if err != nil {
		return fmt.Errorf("list published posts: %w", err)
	}
	tags, err := s.tags.List(ctx)
	if err != nil {
		return fmt.Errorf("list tags: %w", err)
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}

	now := s.now()
	var errs []error
	changed := 0
	for _, t := range tags {
		if n := domain.CountTagged(t, posts); n != t.Count {
			t.SetCount(n, now)
			if err := s.tags.Update(ctx, t); err != nil {
				errs = append(errs, fmt.Errorf("tag %s: %w", t.Slug, err))
				continue
			}
			metrics.TermCountChangesTotal.WithLabelValues("tag").Inc()
			changed++
		}
	}
	for _, c := range categories {
		if n := domain.CountFiled(c, posts); n != c.Count {
			c.SetCount(n, now)
			if err := s.categories.Update(ctx, c); err != nil {
				errs = append(errs, fmt.Errorf("category %s: %w", c.Slug, err))
				continue
			}
			metrics.TermCountChangesTotal.WithLabelValues("category").Inc()
			changed++
		}
	}

	s.logger.Debug(ctx, "term counts recomputed", "posts", len(posts), "changed", changed)
	return errors.Join(errs...)
}

func (s *TaxonomyService) onPostChanged(ctx context.Context, event eventbus.Event) error {
	return s.RecountFromPosts(ctx)
}

// Private helper methods

func (s *TaxonomyService) clean(input domain.TermInput) domain.TermInput {
	input.Name = s.sanitizer.Strip(input.Name)
	input.Slug = s.sanitizer.Strip(input.Slug)
	input.Description = s.sanitizer.Strip(input.Description)
	return input
}

type slugExistsFunc func(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)

// claimSlug makes the term's slug unique among its kind. A slug the caller
// chose is never rewritten; a taken one is a conflict.
func (s *TaxonomyService) claimSlug(ctx context.Context, term *domain.Term, chosen bool, exists slugExistsFunc) error {
	base := term.Slug
	slug := base
	for suffix := 1; ; suffix++ {
		taken, err := exists(ctx, slug, &term.ID)
		if err != nil {
			s.logger.Error(ctx, "failed to check slug existence", "error", err, "slug", slug)
			return internalError(err, "failed to validate slug")
		}
		if !taken {
			break
		}
		if chosen {
			return ErrSlugAlreadyExists.WithDetails(fmt.Sprintf("slug already in use: %s", base))
		}
		if suffix > maxSlugAttempts {
			return ErrSlugAlreadyExists.WithDetails(fmt.Sprintf("unable to generate unique slug for: %s", base))
		}
		slug = suffixed(base, suffix)
	}

	if slug != term.Slug {
		if err := term.UpdateSlug(slug, s.now()); err != nil {
			return validationError(err)
		}
	}
	return nil
}

// suffixed appends -N to base, cutting base by runes so the result stays
// within MaxSlugLength.
func suffixed(base string, suffix int) string {
	tail := "-" + strconv.Itoa(suffix)
	runes := []rune(base)
	if keep := domain.MaxSlugLength - len(tail); len(runes) > keep {
		base = strings.TrimRight(string(runes[:keep]), "-")
	}
	return base + tail
}

// checkParent verifies that the category's parent exists and is not one of
// its descendants.
func (s *TaxonomyService) checkParent(ctx context.Context, category *domain.Category) error {
	if category.ParentID == nil {
		return nil
	}
	parentID := *category.ParentID

	if _, err := s.categories.FindByID(ctx, parentID); err != nil {
		if errors.Is(err, ports.ErrCategoryNotFound) {
			return ErrInvalidParent.WithDetails(fmt.Sprintf("parent category %s does not exist", parentID))
		}
		s.logger.Error(ctx, "failed to find parent category", "error", err, "parentID", parentID)
		return internalError(err, "failed to validate parent category")
	}

	all, err := s.ListCategories(ctx)
	if err != nil {
		return err
	}
	if domain.WouldCycle(all, category.ID, parentID) {
		return ErrInvalidParent.WithDetails("category cannot be its own ancestor")
	}
	return nil
}

func (s *TaxonomyService) foundTag(ctx context.Context, tag *domain.Tag, err error, key string, value any) (*domain.Tag, error) {
	if err == nil {
		return tag, nil
	}
	return nil, s.lookupError(ctx, err, ports.ErrTagNotFound, ErrTagNotFound, "failed to find tag", key, value)
}

func (s *TaxonomyService) foundCategory(ctx context.Context, category *domain.Category, err error, key string, value any) (*domain.Category, error) {
	if err == nil {
		return category, nil
	}
	return nil, s.lookupError(ctx, err, ports.ErrCategoryNotFound, ErrCategoryNotFound, "failed to find category", key, value)
}

func (s *TaxonomyService) lookupError(ctx context.Context, err, missing error, notFound *apperror.AppError, msg, key string, value any) error {
	if errors.Is(err, missing) {
		return notFound
	}
	s.logger.Error(ctx, msg, "error", err, key, value)
	return internalError(err, msg)
}
