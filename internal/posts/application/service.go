package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/philly/folio/internal/platform/eventbus"
	"github.com/philly/folio/internal/platform/events"
	"github.com/philly/folio/internal/platform/logger"
	"github.com/philly/folio/internal/platform/metrics"
	"github.com/philly/folio/internal/platform/textutil"
	"github.com/philly/folio/internal/platform/validator"
	"github.com/philly/folio/internal/posts/domain"
	"github.com/philly/folio/internal/posts/ports"
)

// maxSlugAttempts bounds the -N suffixes tried before giving up on a slug.
const maxSlugAttempts = 100

// PostsService handles post-related business logic
type PostsService struct {
	repo      ports.PostRepository
	eventBus  *eventbus.Bus
	logger    logger.Logger
	sanitizer *textSanitizer
	site      domain.Site
	now       func() time.Time
}

// NewPostsService creates a new posts service
func NewPostsService(
	repo ports.PostRepository,
	eventBus *eventbus.Bus,
	logger logger.Logger,
	site domain.Site,
) *PostsService {
	return &PostsService{
		repo:      repo,
		eventBus:  eventBus,
		logger:    logger,
		sanitizer: newTextSanitizer(),
		site:      site,
		now:       time.Now,
	}
}

// CreatePost creates a new blog post written by author
func (s *PostsService) CreatePost(ctx context.Context, author domain.Author, input domain.PostInput) (*domain.Post, error) {
	post, err := domain.NewPost(s.sanitizer.input(input), author, s.now())
	if err != nil {
		return nil, validationError(err)
	}

	uniqueSlug, err := s.ensureUniqueSlug(ctx, post.Slug, nil)
	if err != nil {
		return nil, err
	}
	if uniqueSlug != post.Slug {
		if err := post.UpdateSlug(uniqueSlug, s.now()); err != nil {
			return nil, validationError(err)
		}
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.logger.Error(ctx, "failed to create post", "error", err, "slug", post.Slug)
		return nil, writeError(err, "failed to create post")
	}

	s.publish(ctx, events.PostCreatedTopic, post)
	return post, nil
}

// UpdatePost replaces the editable fields of a post. The slug is kept.
func (s *PostsService) UpdatePost(ctx context.Context, id uuid.UUID, input domain.PostInput) (*domain.Post, error) {
	post, err := s.getPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := post.Update(s.sanitizer.input(input), s.now()); err != nil {
		return nil, validationError(err)
	}

	if err := s.repo.Update(ctx, post); err != nil {
		s.logger.Error(ctx, "failed to update post", "error", err, "postID", id)
		return nil, writeError(err, "failed to update post")
	}

	s.publish(ctx, events.PostUpdatedTopic, post)
	return post, nil
}

// SetPublished publishes or unpublishes a post
func (s *PostsService) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*domain.Post, error) {
	post, err := s.getPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.SetPublished(published, s.now())

	if err := s.repo.Update(ctx, post); err != nil {
		s.logger.Error(ctx, "failed to change publish state", "error", err, "postID", id, "published", published)
		return nil, writeError(err, "failed to change publish state")
	}

	topic := events.PostUnpublishedTopic
	if published {
		topic = events.PostPublishedTopic
	}
	s.publish(ctx, topic, post)
	return post, nil
}

// DeletePost removes a post
func (s *PostsService) DeletePost(ctx context.Context, id uuid.UUID) error {
	post, err := s.getPostByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrPostNotFound) {
			return ErrPostNotFound
		}
		s.logger.Error(ctx, "failed to delete post", "error", err, "postID", id)
		return internalError(err, "failed to delete post")
	}

	s.publish(ctx, events.PostDeletedTopic, post)
	return nil
}

// GetPost retrieves a post by ID, drafts included
func (s *PostsService) GetPost(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return s.getPostByID(ctx, id)
}

// GetPublishedPostBySlug retrieves a published post by its slug. Drafts are
// reported as not found.
func (s *PostsService) GetPublishedPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ports.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Error(ctx, "failed to find post by slug", "error", err, "slug", slug)
		return nil, internalError(err, "failed to retrieve post")
	}
	if !post.Published {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// QueryParams selects and pages a post listing
type QueryParams struct {
	domain.QueryOptions
	Page          int
	PerPage       int
	IncludeDrafts bool
	AuthorID      string
}

// QueryPosts loads the post collection, runs it through the query engine
// and returns the requested page
func (s *PostsService) QueryPosts(ctx context.Context, params QueryParams) (domain.Page, error) {
	posts, err := s.repo.List(ctx, ports.ListFilter{
		PublishedOnly: !params.IncludeDrafts,
		AuthorID:      params.AuthorID,
	})
	if err != nil {
		s.logger.Error(ctx, "failed to list posts", "error", err)
		return domain.Page{}, internalError(err, "failed to list posts")
	}

	matched := domain.FilterAndSortPosts(posts, params.QueryOptions)
	metrics.QueryResultSize.Observe(float64(len(matched)))
	s.logger.Debug(ctx, "post query",
		"query", params.Query, "tag", params.Tag, "category", params.Category,
		"sort", params.Sort, "matched", len(matched))

	return domain.Paginate(matched, params.Page, params.PerPage), nil
}

// Taxonomy counts tags and categories over published posts
func (s *PostsService) Taxonomy(ctx context.Context) (domain.Taxonomy, error) {
	posts, err := s.repo.List(ctx, ports.ListFilter{PublishedOnly: true})
	if err != nil {
		s.logger.Error(ctx, "failed to list posts for taxonomy", "error", err)
		return domain.Taxonomy{}, internalError(err, "failed to build taxonomy")
	}
	return domain.BuildTaxonomy(posts), nil
}

// Metadata builds the page metadata of the published post at slug
func (s *PostsService) Metadata(ctx context.Context, slug string) (domain.Metadata, error) {
	post, err := s.GetPublishedPostBySlug(ctx, slug)
	if err != nil {
		return domain.Metadata{}, err
	}
	return domain.BuildMetadata(post, s.site), nil
}

// ImportOutcome tells whether an imported post was new or replaced one
type ImportOutcome string

const (
	ImportCreated ImportOutcome = "created"
	ImportUpdated ImportOutcome = "updated"
)

// ImportPost stores a post read from an export. An existing post with the
// same ID, or failing that the same slug, takes the imported fields;
// otherwise the post is created as given. Slugs go through the same
// normalizer as authored posts and plain-text fields are sanitized.
// Instants are stored as delivered.
func (s *PostsService) ImportPost(ctx context.Context, post *domain.Post) (ImportOutcome, error) {
	if post == nil {
		return "", ErrInvalidPostData.WithDetails("empty post")
	}
	s.sanitizer.post(post)
	if textutil.TrimSpace(post.Title) == "" {
		return "", validationError(domain.ErrInvalidTitle)
	}

	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	source := post.Slug
	if source == "" {
		source = post.Title
	}
	post.Slug = validator.NormalizeSlug(source)
	if post.Slug == "" {
		post.Slug = "post-" + post.ID.String()[:8]
	}
	if len(post.Slug) > domain.MaxSlugLength {
		return "", validationError(domain.ErrInvalidSlug)
	}

	existing, err := s.findImportTarget(ctx, post)
	if err != nil {
		s.logger.Error(ctx, "failed to look up imported post", "error", err, "slug", post.Slug)
		return "", internalError(err, "failed to import post")
	}

	outcome := ImportCreated
	if existing != nil {
		post.ID = existing.ID
		outcome = ImportUpdated
		err = s.repo.Update(ctx, post)
	} else {
		err = s.repo.Create(ctx, post)
	}
	if err != nil {
		s.logger.Error(ctx, "failed to store imported post", "error", err, "slug", post.Slug, "outcome", outcome)
		return "", writeError(err, "failed to import post")
	}

	s.publish(ctx, events.PostImportedTopic, post)
	return outcome, nil
}

// findImportTarget returns the stored post an import replaces, or nil.
func (s *PostsService) findImportTarget(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	existing, err := s.repo.FindByID(ctx, post.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ports.ErrPostNotFound) {
		return nil, err
	}

	existing, err = s.repo.FindBySlug(ctx, post.Slug)
	if errors.Is(err, ports.ErrPostNotFound) {
		return nil, nil
	}
	return existing, err
}

// Private helper methods

// getPostByID fetches a post and handles not-found errors consistently
func (s *PostsService) getPostByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		s.logger.Error(ctx, "failed to find post", "error", err, "postID", id)
		return nil, internalError(err, "failed to retrieve post")
	}
	return post, nil
}

func (s *PostsService) ensureUniqueSlug(ctx context.Context, baseSlug string, excludeID *uuid.UUID) (string, error) {
	slug := baseSlug
	for suffix := 1; ; suffix++ {
		exists, err := s.repo.SlugExists(ctx, slug, excludeID)
		if err != nil {
			s.logger.Error(ctx, "failed to check slug existence", "error", err, "slug", slug)
			return "", internalError(err, "failed to validate slug")
		}
		if !exists {
			return slug, nil
		}

		if suffix > maxSlugAttempts {
			return "", ErrSlugAlreadyExists.WithDetails(
				fmt.Sprintf("unable to generate unique slug for: %s", baseSlug),
			)
		}
		slug = validator.MakeSlugUniqueWithMaxLength(baseSlug, suffix, domain.MaxSlugLength)
	}
}

func (s *PostsService) publish(ctx context.Context, topic eventbus.Topic, post *domain.Post) {
	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: topic,
		Payload: events.PostChangedEvent{
			PostID:     post.ID,
			AuthorID:   post.AuthorID,
			Slug:       post.Slug,
			Published:  post.Published,
			OccurredAt: s.now(),
		},
	})
}
