package application

import (
	"context"

	postsdomain "github.com/philly/folio/internal/posts/domain"
	postsports "github.com/philly/folio/internal/posts/ports"
	"github.com/philly/folio/internal/taxonomy/domain"
	"github.com/philly/folio/internal/taxonomy/ports"
)

// PostTermsAdapter reads post labels from the posts repository
type PostTermsAdapter struct {
	repo postsports.PostRepository
}

var _ ports.PostTermsSource = (*PostTermsAdapter)(nil)

// NewPostTermsAdapter creates a new adapter over the posts repository
func NewPostTermsAdapter(repo postsports.PostRepository) *PostTermsAdapter {
	return &PostTermsAdapter{repo: repo}
}

// PublishedTerms returns the tags and category of every published post
func (a *PostTermsAdapter) PublishedTerms(ctx context.Context) ([]domain.PostTerms, error) {
	posts, err := a.repo.List(ctx, postsports.ListFilter{PublishedOnly: true})
	if err != nil {
		return nil, err
	}
	out := make([]domain.PostTerms, len(posts))
	for i, p := range posts {
		out[i] = termsOf(p)
	}
	return out, nil
}

func termsOf(p *postsdomain.Post) domain.PostTerms {
	t := domain.PostTerms{Tags: p.Tags}
	if p.Category != nil {
		t.Category = *p.Category
	}
	return t
}
