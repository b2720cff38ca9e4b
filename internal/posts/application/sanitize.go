package application

import (
	"github.com/philly/folio/internal/platform/sanitize"
	"github.com/philly/folio/internal/posts/domain"
)

// textSanitizer removes markup from fields that are shown as plain text.
// Markdown content is left alone; it is rendered and sanitized by the
// frontend, and HTML-escaping it here would corrupt code samples.
type textSanitizer struct {
	*sanitize.PlainText
}

func newTextSanitizer() *textSanitizer {
	return &textSanitizer{PlainText: sanitize.NewPlainText()}
}

func (s *textSanitizer) input(in domain.PostInput) domain.PostInput {
	in.Title = s.Strip(in.Title)
	in.Excerpt = s.StripPtr(in.Excerpt)
	in.Tags = s.StripAll(in.Tags)
	in.Category = s.StripPtr(in.Category)
	in.SEOTitle = s.StripPtr(in.SEOTitle)
	in.SEODescription = s.StripPtr(in.SEODescription)
	in.SEOKeywords = s.StripAll(in.SEOKeywords)
	return in
}

// post strips the plain-text fields of an imported post in place.
func (s *textSanitizer) post(p *domain.Post) {
	p.Title = s.Strip(p.Title)
	p.Excerpt = s.StripPtr(p.Excerpt)
	p.Tags = s.StripAll(p.Tags)
	p.Category = s.StripPtr(p.Category)
	p.AuthorName = s.Strip(p.AuthorName)
	p.SEOTitle = s.StripPtr(p.SEOTitle)
	p.SEODescription = s.StripPtr(p.SEODescription)
	p.SEOKeywords = s.StripAll(p.SEOKeywords)
}
