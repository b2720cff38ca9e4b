package domain

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// CategoryNode is a category with its subcategories
type CategoryNode struct {
	*Category
	Children []*CategoryNode
}

// SortCategories orders categories by SortOrder, then name
func SortCategories(categories []*Category) {
	slices.SortStableFunc(categories, func(a, b *Category) int {
		if c := cmp.Compare(a.SortOrder, b.SortOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

// SortTags orders tags by name
func SortTags(tags []*Tag) {
	slices.SortStableFunc(tags, func(a, b *Tag) int {
		return cmp.Compare(a.Name, b.Name)
	})
}

// BuildCategoryTree nests categories under their parents. Siblings keep the
// order of categories. A category whose parent is unknown, or whose ancestry
// loops back to itself, is placed at the root.
func BuildCategoryTree(categories []*Category) []*CategoryNode {
	nodes := make(map[uuid.UUID]*CategoryNode, len(categories))
	parents := make(map[uuid.UUID]uuid.UUID, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &CategoryNode{Category: c, Children: []*CategoryNode{}}
		if c.ParentID != nil {
			parents[c.ID] = *c.ParentID
		}
	}

	roots := make([]*CategoryNode, 0)
	for _, c := range categories {
		node := nodes[c.ID]
		parent, ok := nodes[parents[c.ID]]
		if c.ParentID == nil || !ok || inCycle(parents, c.ID) {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}

// WouldCycle reports whether giving category id the parent parentID makes
// the category its own ancestor.
func WouldCycle(categories []*Category, id, parentID uuid.UUID) bool {
	parents := make(map[uuid.UUID]uuid.UUID, len(categories))
	for _, c := range categories {
		if c.ParentID != nil {
			parents[c.ID] = *c.ParentID
		}
	}
	parents[id] = parentID
	return inCycle(parents, id)
}

// inCycle walks up from id and reports whether it comes back to id.
func inCycle(parents map[uuid.UUID]uuid.UUID, id uuid.UUID) bool {
	current := id
	for range len(parents) {
		next, ok := parents[current]
		if !ok {
			return false
		}
		if next == id {
			return true
		}
		current = next
	}
	return false
}
