package domain

import (
	"cmp"
	"slices"
)

// TermCount is a tag or category with the number of posts filed under it.
type TermCount struct {
	Name  string
	Count int
}

// Taxonomy lists the tags and categories in use, most used first and then
// by name.
type Taxonomy struct {
	Tags       []TermCount
	Categories []TermCount
}

// BuildTaxonomy counts tags and categories over posts.
func BuildTaxonomy(posts []*Post) Taxonomy {
	tags := map[string]int{}
	categories := map[string]int{}
	for _, p := range posts {
		if p == nil {
			continue
		}
		for _, t := range p.Tags {
			tags[t]++
		}
		if p.Category != nil && *p.Category != "" {
			categories[*p.Category]++
		}
	}

	return Taxonomy{
		Tags:       sortedTerms(tags),
		Categories: sortedTerms(categories),
	}
}

func sortedTerms(counts map[string]int) []TermCount {
	terms := make([]TermCount, 0, len(counts))
	for name, n := range counts {
		terms = append(terms, TermCount{Name: name, Count: n})
	}
	slices.SortFunc(terms, func(a, b TermCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return terms
}
