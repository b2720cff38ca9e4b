package domain

import "github.com/google/uuid"

// TagOption is the short form of a tag offered when editing a post
type TagOption struct {
	ID   uuid.UUID
	Name string
	Slug string
}

// CategoryOption is the short form of a category offered when editing a post
type CategoryOption struct {
	ID       uuid.UUID
	Name     string
	Slug     string
	ParentID *uuid.UUID
}

// TagOptions maps tags to options, keeping their order
func TagOptions(tags []*Tag) []TagOption {
	out := make([]TagOption, len(tags))
	for i, t := range tags {
		out[i] = TagOption{ID: t.ID, Name: t.Name, Slug: t.Slug}
	}
	return out
}

// CategoryOptions maps categories to options, keeping their order
func CategoryOptions(categories []*Category) []CategoryOption {
	out := make([]CategoryOption, len(categories))
	for i, c := range categories {
		out[i] = CategoryOption{ID: c.ID, Name: c.Name, Slug: c.Slug, ParentID: c.ParentID}
	}
	return out
}

// PostTerms is what one published post is filed under
type PostTerms struct {
	Tags     []string
	Category string
}

// CountTagged counts the posts carrying tag
func CountTagged(tag *Tag, posts []PostTerms) int {
	n := 0
	for _, p := range posts {
		for _, label := range p.Tags {
			if tag.Matches(label) {
				n++
				break
			}
		}
	}
	return n
}

// CountFiled counts the posts filed directly under category. Posts in its
// subcategories are not included.
func CountFiled(category *Category, posts []PostTerms) int {
	n := 0
	for _, p := range posts {
		if category.Matches(p.Category) {
			n++
		}
	}
	return n
}
