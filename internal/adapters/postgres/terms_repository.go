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
	"github.com/philly/folio/internal/taxonomy/domain"
	"github.com/philly/folio/internal/taxonomy/ports"
)

var (
	_ ports.TagRepository      = (*TagRepository)(nil)
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
)

// Column orders shared by writes and the scan helpers
var (
	tagColumns      = []string{"id", "name", "slug", "description", "count", "created_at", "updated_at"}
	categoryColumns = append(tagColumns[:len(tagColumns):len(tagColumns)], "parent_id", "sort_order")
)

// TagRepository implements ports.TagRepository using PostgreSQL
type TagRepository struct {
	postgres.BaseRepository
}

// NewTagRepository creates a new PostgreSQL tag repository
func NewTagRepository(db postgres.Querier) *TagRepository {
	return &TagRepository{BaseRepository: postgres.NewBaseRepository(db)}
}

// Create inserts a new tag
func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	return insert(ctx, r.BaseRepository, "TagRepository.Create", "tags", tagColumns, tagValues(tag))
}

// Update rewrites every column of the tag
func (r *TagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	return update(ctx, r.BaseRepository, "TagRepository.Update", "tags", tagColumns, tagValues(tag), ports.ErrTagNotFound)
}

// Delete removes a tag
func (r *TagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return remove(ctx, r.BaseRepository, "TagRepository.Delete", "tags", id, ports.ErrTagNotFound)
}

// FindByID retrieves a tag by its ID
func (r *TagRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	return r.findOne(ctx, "TagRepository.FindByID", sq.Eq{"id": pgUUID(id)})
}

// FindBySlug retrieves a tag by its slug
func (r *TagRepository) FindBySlug(ctx context.Context, slug string) (*domain.Tag, error) {
	return r.findOne(ctx, "TagRepository.FindBySlug", sq.Eq{"slug": slug})
}

// List retrieves every tag ordered by name
func (r *TagRepository) List(ctx context.Context) ([]*domain.Tag, error) {
	query, args, err := r.SB.Select(tagColumns...).From("tags").OrderBy("name", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("TagRepository.List: build query: %w", err)
	}
	return collect(ctx, r.DB, "TagRepository.List", query, args, scanTag)
}

// SlugExists checks if a slug already exists, optionally excluding one tag
func (r *TagRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	return slugExists(ctx, r.BaseRepository, "TagRepository.SlugExists", "tags", slug, excludeID)
}

func (r *TagRepository) findOne(ctx context.Context, op string, where sq.Eq) (*domain.Tag, error) {
	query, args, err := r.SB.Select(tagColumns...).From("tags").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}
	tag, err := scanTag(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrTagNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tag, nil
}

// CategoryRepository implements ports.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	postgres.BaseRepository
}

// NewCategoryRepository creates a new PostgreSQL category repository
func NewCategoryRepository(db postgres.Querier) *CategoryRepository {
	return &CategoryRepository{BaseRepository: postgres.NewBaseRepository(db)}
}

// Create inserts a new category
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	return insert(ctx, r.BaseRepository, "CategoryRepository.Create", "categories", categoryColumns, categoryValues(category))
}

// Update rewrites every column of the category
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	return update(ctx, r.BaseRepository, "CategoryRepository.Update", "categories", categoryColumns, categoryValues(category), ports.ErrCategoryNotFound)
}

// Delete removes a category
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return remove(ctx, r.BaseRepository, "CategoryRepository.Delete", "categories", id, ports.ErrCategoryNotFound)
}

// FindByID retrieves a category by its ID
func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	return r.findOne(ctx, "CategoryRepository.FindByID", sq.Eq{"id": pgUUID(id)})
}

// FindBySlug retrieves a category by its slug
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return r.findOne(ctx, "CategoryRepository.FindBySlug", sq.Eq{"slug": slug})
}

// List retrieves every category ordered by sort order, then name
func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	query, args, err := r.SB.Select(categoryColumns...).From("categories").OrderBy("sort_order", "name", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("CategoryRepository.List: build query: %w", err)
	}
	return collect(ctx, r.DB, "CategoryRepository.List", query, args, scanCategory)
}

// SlugExists checks if a slug already exists, optionally excluding one
// category
func (r *CategoryRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	return slugExists(ctx, r.BaseRepository, "CategoryRepository.SlugExists", "categories", slug, excludeID)
}

func (r *CategoryRepository) findOne(ctx context.Context, op string, where sq.Eq) (*domain.Category, error) {
	query, args, err := r.SB.Select(categoryColumns...).From("categories").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}
	category, err := scanCategory(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return category, nil
}

// Shared statements

func insert(ctx context.Context, r postgres.BaseRepository, op, table string, columns []string, values []any) error {
	query, args, err := r.SB.Insert(table).Columns(columns...).Values(values...).ToSql()
	if err != nil {
		return fmt.Errorf("%s: build query: %w", op, err)
	}
	if _, err := r.DB.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, termConflictError(table, err))
	}
	return nil
}

func update(ctx context.Context, r postgres.BaseRepository, op, table string, columns []string, values []any, notFound error) error {
	qb := r.SB.Update(table)
	// Skip the id column; it is the key
	for i, col := range columns[1:] {
		qb = qb.Set(col, values[i+1])
	}
	query, args, err := qb.Where(sq.Eq{"id": values[0]}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: build query: %w", op, err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, termConflictError(table, err))
	}
	if result.RowsAffected() == 0 {
		return notFound
	}
	return nil
}

func remove(ctx context.Context, r postgres.BaseRepository, op, table string, id uuid.UUID, notFound error) error {
	query, args, err := r.SB.Delete(table).Where(sq.Eq{"id": pgUUID(id)}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: build query: %w", op, err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if result.RowsAffected() == 0 {
		return notFound
	}
	return nil
}

func slugExists(ctx context.Context, r postgres.BaseRepository, op, table, slug string, excludeID *uuid.UUID) (bool, error) {
	subQuery := r.SB.Select("1").From(table).Where(sq.Eq{"slug": slug})
	if excludeID != nil {
		subQuery = subQuery.Where(sq.NotEq{"id": pgUUID(*excludeID)})
	}
	subQuerySQL, subQueryArgs, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("%s: build subquery: %w", op, err)
	}

	var exists bool
	if err := r.DB.QueryRow(ctx, fmt.Sprintf("SELECT EXISTS(%s)", subQuerySQL), subQueryArgs...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

func collect[T any](ctx context.Context, db postgres.Querier, op, query string, args []any, scan func(pgx.Row) (T, error)) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}
	return out, nil
}

// termConflictError maps unique violations on a term table to the port's
// sentinels; other errors pass through.
func termConflictError(table string, err error) error {
	constraint, ok := postgres.UniqueViolation(err)
	switch {
	case !ok:
		return err
	case constraint == table+"_pkey":
		return fmt.Errorf("%w: %w", ports.ErrTermExists, err)
	default:
		return fmt.Errorf("%w: %w", ports.ErrSlugConflict, err)
	}
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func tagValues(tag *domain.Tag) []any {
	return termValues(&tag.Term)
}

func categoryValues(category *domain.Category) []any {
	parent := pgtype.UUID{}
	if category.ParentID != nil {
		parent = pgUUID(*category.ParentID)
	}
	return append(termValues(&category.Term), parent, category.SortOrder)
}

// termValues lists the shared columns in tagColumns order
func termValues(t *domain.Term) []any {
	return []any{
		pgUUID(t.ID),
		t.Name,
		t.Slug,
		t.Description,
		t.Count,
		pgtype.Timestamptz{Time: t.CreatedAt, Valid: true},
		pgtype.Timestamptz{Time: t.UpdatedAt, Valid: true},
	}
}

func scanTag(row pgx.Row) (*domain.Tag, error) {
	var tag domain.Tag
	var id pgtype.UUID
	var createdAt, updatedAt pgtype.Timestamptz

	if err := row.Scan(&id, &tag.Name, &tag.Slug, &tag.Description, &tag.Count, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scanTag: %w", err)
	}
	tag.ID = uuid.UUID(id.Bytes)
	tag.CreatedAt = createdAt.Time
	tag.UpdatedAt = updatedAt.Time
	return &tag, nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	var id, parent pgtype.UUID
	var createdAt, updatedAt pgtype.Timestamptz

	if err := row.Scan(&id, &c.Name, &c.Slug, &c.Description, &c.Count, &createdAt, &updatedAt, &parent, &c.SortOrder); err != nil {
		return nil, fmt.Errorf("scanCategory: %w", err)
	}
	c.ID = uuid.UUID(id.Bytes)
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	if parent.Valid {
		p := uuid.UUID(parent.Bytes)
		c.ParentID = &p
	}
	return &c, nil
}
