package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/philly/folio/internal/adapters/memory"
	"github.com/philly/folio/internal/taxonomy/domain"
	"github.com/philly/folio/internal/taxonomy/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var termTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTag(t *testing.T, name string) *domain.Tag {
	t.Helper()
	tag, err := domain.NewTag(domain.TermInput{Name: name}, termTime)
	require.NoError(t, err)
	return tag
}

func newCategory(t *testing.T, name string, order int, parent *uuid.UUID) *domain.Category {
	t.Helper()
	c, err := domain.NewCategory(domain.CategoryInput{
		TermInput: domain.TermInput{Name: name},
		ParentID:  parent,
		SortOrder: &order,
	}, termTime)
	require.NoError(t, err)
	return c
}

func TestTagRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTagRepository()

	tag := newTag(t, "Go")
	require.NoError(t, repo.Create(ctx, tag))

	got, err := repo.FindByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, tag, got)

	got, err = repo.FindBySlug(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, got.ID)

	got.Count = 3
	require.NoError(t, repo.Update(ctx, got))
	again, err := repo.FindByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Count)

	require.NoError(t, repo.Delete(ctx, tag.ID))
	_, err = repo.FindByID(ctx, tag.ID)
	assert.ErrorIs(t, err, ports.ErrTagNotFound)
	_, err = repo.FindBySlug(ctx, "go")
	assert.ErrorIs(t, err, ports.ErrTagNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, tag.ID), ports.ErrTagNotFound)
	assert.ErrorIs(t, repo.Update(ctx, tag), ports.ErrTagNotFound)
}

func TestTagRepository_Conflicts(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTagRepository()

	first := newTag(t, "Go")
	second := newTag(t, "Rust")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.ErrorIs(t, repo.Create(ctx, first), ports.ErrTermExists)
	clash := newTag(t, "Go")
	assert.ErrorIs(t, repo.Create(ctx, clash), ports.ErrSlugConflict)

	second.Slug = "go"
	assert.ErrorIs(t, repo.Update(ctx, second), ports.ErrSlugConflict)

	exists, err := repo.SlugExists(ctx, "go", nil)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.SlugExists(ctx, "go", &first.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTagRepository_ListByNameAndCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTagRepository()
	for _, name := range []string{"Rust", "Go", "Zig", "C"} {
		require.NoError(t, repo.Create(ctx, newTag(t, name)))
	}

	tags, err := repo.List(ctx)
	require.NoError(t, err)
	names := make([]string, len(tags))
	for i, tag := range tags {
		names[i] = tag.Name
	}
	assert.Equal(t, []string{"C", "Go", "Rust", "Zig"}, names)

	tags[0].Name = "changed"
	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "C", again[0].Name)
}

func TestCategoryRepository_ListOrderAndParentCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCategoryRepository()

	tech := newCategory(t, "Tech", 2, nil)
	life := newCategory(t, "Life", 1, nil)
	golang := newCategory(t, "Go", 2, &tech.ID)
	for _, c := range []*domain.Category{tech, life, golang} {
		require.NoError(t, repo.Create(ctx, c))
	}

	categories, err := repo.List(ctx)
	require.NoError(t, err)
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Life", "Go", "Tech"}, names)

	*golang.ParentID = uuid.New()
	stored, err := repo.FindByID(ctx, golang.ID)
	require.NoError(t, err)
	assert.Equal(t, tech.ID, *stored.ParentID, "stored parent is not shared with the caller")

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), ports.ErrCategoryNotFound)
}
