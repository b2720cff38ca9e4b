package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/philly/folio/internal/taxonomy/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestNewTag(t *testing.T) {
	tests := []struct {
		name     string
		input    domain.TermInput
		wantSlug string
		wantErr  error
	}{
		{name: "slug from name", input: domain.TermInput{Name: "Web Development"}, wantSlug: "web-development"},
		{name: "japanese name", input: domain.TermInput{Name: "Go\u8a00\u8a9e"}, wantSlug: "go\u8a00\u8a9e"},
		{name: "given slug is normalized", input: domain.TermInput{Name: "Go", Slug: "Go Lang"}, wantSlug: "go-lang"},
		{name: "name is trimmed", input: domain.TermInput{Name: "  Rust  "}, wantSlug: "rust"},
		{name: "blank name", input: domain.TermInput{Name: "   "}, wantErr: domain.ErrInvalidName},
		{name: "long name", input: domain.TermInput{Name: strings.Repeat("n", domain.MaxNameLength+1)}, wantErr: domain.ErrInvalidName},
		{name: "long description", input: domain.TermInput{Name: "ok", Description: strings.Repeat("d", domain.MaxDescriptionLength+1)}, wantErr: domain.ErrInvalidDescription},
		{name: "given slug with nothing usable", input: domain.TermInput{Name: "ok", Slug: "!!!"}, wantErr: domain.ErrInvalidSlug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, err := domain.NewTag(tt.input, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tag)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSlug, tag.Slug)
			assert.Zero(t, tag.Count)
			assert.Equal(t, now, tag.CreatedAt)
			assert.Equal(t, now, tag.UpdatedAt)
		})
	}
}

func TestNewTag_FallbackSlug(t *testing.T) {
	tag, err := domain.NewTag(domain.TermInput{Name: "!!!"}, now)
	require.NoError(t, err)
	assert.Equal(t, "tag-"+tag.ID.String()[:8], tag.Slug)
}

func TestTag_UpdateRederivesSlug(t *testing.T) {
	tag, err := domain.NewTag(domain.TermInput{Name: "Golang"}, now)
	require.NoError(t, err)

	later := now.Add(time.Hour)
	require.NoError(t, tag.Update(domain.TermInput{Name: "Go Language", Description: " about go "}, later))

	assert.Equal(t, "go-language", tag.Slug)
	assert.Equal(t, "about go", tag.Description)
	assert.Equal(t, now, tag.CreatedAt)
	assert.Equal(t, later, tag.UpdatedAt)

	assert.ErrorIs(t, tag.Update(domain.TermInput{Name: ""}, later), domain.ErrInvalidName)
	assert.Equal(t, "Go Language", tag.Name, "a failed update changes nothing")
}

func TestNewCategory(t *testing.T) {
	parent := uuid.New()
	order := 0

	c, err := domain.NewCategory(domain.CategoryInput{TermInput: domain.TermInput{Name: "Tech"}}, now)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSortOrder, c.SortOrder)
	assert.Nil(t, c.ParentID)

	child, err := domain.NewCategory(domain.CategoryInput{
		TermInput: domain.TermInput{Name: "Go"},
		ParentID:  &parent,
		SortOrder: &order,
	}, now)
	require.NoError(t, err)
	assert.Equal(t, 0, child.SortOrder, "an explicit zero is kept")
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent, *child.ParentID)

	assert.ErrorIs(t, child.Update(domain.CategoryInput{
		TermInput: domain.TermInput{Name: "Go"},
		ParentID:  &child.ID,
	}, now), domain.ErrInvalidParent)
}

func TestCategory_CloneDetachesParent(t *testing.T) {
	parent := uuid.New()
	c, err := domain.NewCategory(domain.CategoryInput{TermInput: domain.TermInput{Name: "Go"}, ParentID: &parent}, now)
	require.NoError(t, err)

	clone := c.Clone()
	*clone.ParentID = uuid.New()
	assert.Equal(t, parent, *c.ParentID)
}

func TestTerm_Counts(t *testing.T) {
	tag, err := domain.NewTag(domain.TermInput{Name: "Go"}, now)
	require.NoError(t, err)

	tag.AdjustCount(2, now)
	assert.Equal(t, 2, tag.Count)
	tag.AdjustCount(-5, now)
	assert.Equal(t, 0, tag.Count, "counts never go negative")
	tag.SetCount(-1, now)
	assert.Equal(t, 0, tag.Count)
}

func TestCountTaggedAndFiled(t *testing.T) {
	tag, err := domain.NewTag(domain.TermInput{Name: "Go", Slug: "golang"}, now)
	require.NoError(t, err)
	category, err := domain.NewCategory(domain.CategoryInput{TermInput: domain.TermInput{Name: "Tech"}}, now)
	require.NoError(t, err)

	posts := []domain.PostTerms{
		{Tags: []string{"Go", "golang"}, Category: "Tech"},
		{Tags: []string{"golang"}, Category: "tech"},
		{Tags: []string{"go"}, Category: "Life"},
		{},
	}

	assert.Equal(t, 2, domain.CountTagged(tag, posts), "a post naming the tag twice counts once")
	assert.Equal(t, 2, domain.CountFiled(category, posts))
}

func TestOptions(t *testing.T) {
	tag, err := domain.NewTag(domain.TermInput{Name: "Go"}, now)
	require.NoError(t, err)
	assert.Equal(t, []domain.TagOption{{ID: tag.ID, Name: "Go", Slug: "go"}}, domain.TagOptions([]*domain.Tag{tag}))

	parent := uuid.New()
	c, err := domain.NewCategory(domain.CategoryInput{TermInput: domain.TermInput{Name: "Sub"}, ParentID: &parent}, now)
	require.NoError(t, err)
	assert.Equal(t, []domain.CategoryOption{{ID: c.ID, Name: "Sub", Slug: "sub", ParentID: &parent}}, domain.CategoryOptions([]*domain.Category{c}))
}
