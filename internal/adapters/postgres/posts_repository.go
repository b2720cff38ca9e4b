package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/philly/folio/internal/platform/postgres"
	"github.com/philly/folio/internal/posts/domain"
	"github.com/philly/folio/internal/posts/ports"
)

var _ ports.PostRepository = (*PostRepository)(nil)

// postColumns is the column order shared by writes and scanPost
var postColumns = []string{
	"id", "title", "content", "excerpt", "slug", "tags", "category",
	"published", "published_at", "updated_at",
	"author_id", "author_name", "author_email",
	"featured_image", "seo_title", "seo_description", "seo_keywords",
}

// PostRepository implements the posts.PostRepository interface using PostgreSQL
type PostRepository struct {
	postgres.BaseRepository // Embed the base repository for common functionality
}

// NewPostRepository creates a new PostgreSQL posts repository
func NewPostRepository(db postgres.Querier) *PostRepository {
	return &PostRepository{
		BaseRepository: postgres.NewBaseRepository(db),
	}
}

// Create inserts a new post into the database
func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	query, args, err := r.SB.
		Insert("posts").
		Columns(postColumns...).
		Values(postValues(post)...).
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepository.Create: build query: %w", err)
	}

	_, err = r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("PostRepository.Create: %w", conflictError(err))
	}

	return nil
}

// Update updates an existing post in the database
func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	values := postValues(post)
	qb := r.SB.Update("posts")
	// Skip the id column; it is the key
	for i, col := range postColumns[1:] {
		qb = qb.Set(col, values[i+1])
	}

	query, args, err := qb.
		Where(sq.Eq{"id": pgtype.UUID{Bytes: post.ID, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepository.Update: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("PostRepository.Update: %w", conflictError(err))
	}

	if result.RowsAffected() == 0 {
		return ports.ErrPostNotFound
	}

	return nil
}

// Delete removes a post from the database
func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.SB.
		Delete("posts").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("PostRepository.Delete: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("PostRepository.Delete: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrPostNotFound
	}

	return nil
}

// FindByID retrieves a post by its ID
func (r *PostRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	return r.findOne(ctx, "PostRepository.FindByID", sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}})
}

// FindBySlug retrieves a post by its URL slug
func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	return r.findOne(ctx, "PostRepository.FindBySlug", sq.Eq{"slug": slug})
}

// List retrieves the posts matching the filter, oldest publication first
func (r *PostRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Post, error) {
	qb := r.SB.Select(postColumns...).From("posts")

	if filter.PublishedOnly {
		qb = qb.Where(sq.Eq{"published": true})
	}
	if filter.AuthorID != "" {
		qb = qb.Where(sq.Eq{"author_id": filter.AuthorID})
	}

	query, args, err := qb.OrderBy("published_at ASC NULLS FIRST", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("PostRepository.List: build query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("PostRepository.List: %w", err)
	}
	defer rows.Close()

	posts := make([]*domain.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("PostRepository.List: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PostRepository.List: rows error: %w", err)
	}

	return posts, nil
}

// SlugExists checks if a slug already exists, optionally excluding a specific post ID
func (r *PostRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	subQuery := r.SB.Select("1").From("posts").Where(sq.Eq{"slug": slug})

	if excludeID != nil {
		subQuery = subQuery.Where(sq.NotEq{"id": pgtype.UUID{Bytes: *excludeID, Valid: true}})
	}

	subQuerySQL, subQueryArgs, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("PostRepository.SlugExists: build subquery: %w", err)
	}

	// Construct the EXISTS query manually since squirrel doesn't support it directly
	query := fmt.Sprintf("SELECT EXISTS(%s)", subQuerySQL)

	var exists bool
	err = r.DB.QueryRow(ctx, query, subQueryArgs...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("PostRepository.SlugExists: %w", err)
	}

	return exists, nil
}

// Ping checks the database connection
func (r *PostRepository) Ping(ctx context.Context) error {
	if err := r.DB.Ping(ctx); err != nil {
		return fmt.Errorf("PostRepository.Ping: %w", err)
	}
	return nil
}

// Helper methods

func (r *PostRepository) findOne(ctx context.Context, op string, where sq.Eq) (*domain.Post, error) {
	query, args, err := r.SB.
		Select(postColumns...).
		From("posts").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	post, err := scanPost(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrPostNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return post, nil
}

// conflictError maps unique violations on the posts table to the port's
// sentinels; other errors pass through.
func conflictError(err error) error {
	constraint, ok := postgres.UniqueViolation(err)
	switch {
	case !ok:
		return err
	case constraint == "posts_pkey":
		return fmt.Errorf("%w: %w", ports.ErrPostExists, err)
	default:
		return fmt.Errorf("%w: %w", ports.ErrSlugConflict, err)
	}
}

// postValues lists post's column values in postColumns order
func postValues(post *domain.Post) []any {
	return []any{
		pgtype.UUID{Bytes: post.ID, Valid: true},
		post.Title,
		post.Content,
		post.Excerpt,
		post.Slug,
		nonNil(post.Tags),
		post.Category,
		post.Published,
		timestamptz(post.PublishedAt),
		timestamptz(post.UpdatedAt),
		post.AuthorID,
		post.AuthorName,
		post.AuthorEmail,
		post.FeaturedImage,
		post.SEOTitle,
		post.SEODescription,
		nonNil(post.SEOKeywords),
	}
}

// timestamptz stores either Instant variant as a native timestamp. Absent
// instants become NULL.
func timestamptz(i domain.Instant) pgtype.Timestamptz {
	t := domain.InstantTime(i)
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func instant(ts pgtype.Timestamptz) domain.Instant {
	if !ts.Valid {
		return nil
	}
	return domain.At(ts.Time)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// scanPost scans a single post from a pgx.Row or pgx.Rows
func scanPost(row pgx.Row) (*domain.Post, error) {
	var post domain.Post
	var idBytes pgtype.UUID
	var publishedAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&idBytes,
		&post.Title,
		&post.Content,
		&post.Excerpt,
		&post.Slug,
		&post.Tags,
		&post.Category,
		&post.Published,
		&publishedAt,
		&updatedAt,
		&post.AuthorID,
		&post.AuthorName,
		&post.AuthorEmail,
		&post.FeaturedImage,
		&post.SEOTitle,
		&post.SEODescription,
		&post.SEOKeywords,
	)
	if err != nil {
		return nil, fmt.Errorf("scanPost: %w", err)
	}

	post.ID = uuid.UUID(idBytes.Bytes)
	post.PublishedAt = instant(publishedAt)
	post.UpdatedAt = instant(updatedAt)

	return &post, nil
}
