package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/philly/folio/internal/platform/textutil"
	"github.com/philly/folio/internal/platform/validator"
	"github.com/philly/folio/internal/posts/domain"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// frontMatterDelimiter opens and closes the YAML block of a markdown post
const frontMatterDelimiter = "---"

var errNoFrontMatter = errors.New("missing front matter")

// MarkdownSource reads a directory of markdown files, each starting with a
// YAML front matter block. The file name without extension is the slug
// when the front matter does not name one.
type MarkdownSource struct {
	Dir string
	// Author is used for files whose front matter names no author
	Author domain.Author
}

func (s *MarkdownSource) Name() string { return "markdown" }

type frontMatter struct {
	Title          string    `yaml:"title"`
	Slug           string    `yaml:"slug"`
	Excerpt        string    `yaml:"excerpt"`
	Tags           []string  `yaml:"tags"`
	Category       string    `yaml:"category"`
	Draft          bool      `yaml:"draft"`
	Date           time.Time `yaml:"date"`
	Updated        time.Time `yaml:"updated"`
	AuthorID       string    `yaml:"author_id"`
	Author         string    `yaml:"author"`
	AuthorEmail    string    `yaml:"author_email"`
	Image          string    `yaml:"image"`
	SEOTitle       string    `yaml:"seo_title"`
	SEODescription string    `yaml:"seo_description"`
	Keywords       []string  `yaml:"keywords"`
}

// Load parses the files concurrently and returns the posts in file name order.
func (s *MarkdownSource) Load(ctx context.Context) ([]*domain.Post, error) {
	paths, err := filepath.Glob(filepath.Join(s.Dir, "*.md"))
	if err != nil {
		return nil, err
	}

	posts := make([]*domain.Post, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			post, err := s.parse(strings.TrimSuffix(filepath.Base(path), ".md"), data)
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(path), err)
			}
			posts[i] = post
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *MarkdownSource) parse(name string, data []byte) (*domain.Post, error) {
	header, body, err := splitFrontMatter(data)
	if err != nil {
		return nil, err
	}

	var fm frontMatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return nil, fmt.Errorf("front matter: %w", err)
	}

	// File names are not slugs; "My Post.md" becomes "my-post". A name with
	// nothing left after normalizing leaves the slug to the title.
	slug := validator.NormalizeSlug(fm.Slug)
	if slug == "" {
		slug = validator.NormalizeSlug(name)
	}

	post := &domain.Post{
		Title:          fm.Title,
		Content:        string(body),
		Excerpt:        optional(fm.Excerpt),
		Slug:           slug,
		Tags:           nonNil(fm.Tags),
		Category:       optional(fm.Category),
		Published:      !fm.Draft,
		AuthorID:       s.Author.ID,
		AuthorName:     s.Author.Name,
		AuthorEmail:    s.Author.Email,
		FeaturedImage:  optional(fm.Image),
		SEOTitle:       optional(fm.SEOTitle),
		SEODescription: optional(fm.SEODescription),
		SEOKeywords:    nonNil(fm.Keywords),
	}
	if fm.AuthorID != "" {
		post.AuthorID, post.AuthorName, post.AuthorEmail = fm.AuthorID, fm.Author, fm.AuthorEmail
	}
	if !fm.Date.IsZero() {
		post.PublishedAt = domain.At(fm.Date)
	}
	if !fm.Updated.IsZero() {
		post.UpdatedAt = domain.At(fm.Updated)
	}
	return post, nil
}

// splitFrontMatter separates the YAML block from the markdown body. The
// block must start on the first line.
func splitFrontMatter(data []byte) (header, body []byte, err error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	lines := bytes.SplitAfter(data, []byte("\n"))
	if len(lines) == 0 || string(bytes.TrimRight(lines[0], "\r\n")) != frontMatterDelimiter {
		return nil, nil, errNoFrontMatter
	}

	offset := len(lines[0])
	for _, line := range lines[1:] {
		if string(bytes.TrimRight(line, "\r\n")) == frontMatterDelimiter {
			header = data[len(lines[0]):offset]
			body = bytes.TrimLeft(data[offset+len(line):], "\r\n")
			return header, body, nil
		}
		offset += len(line)
	}
	return nil, nil, errNoFrontMatter
}

func optional(s string) *string {
	s = textutil.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
