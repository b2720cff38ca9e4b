package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/philly/folio/internal/importer"
	"github.com/philly/folio/internal/posts/domain"
	"github.com/spf13/cobra"
)

type sourceFlags struct {
	firestore  string
	markdown   string
	authorID   string
	authorName string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.firestore, "firestore", "", "JSON export of the firestore posts collection")
	cmd.Flags().StringVar(&f.markdown, "markdown", "", "directory of markdown files with YAML front matter")
	cmd.Flags().StringVar(&f.authorID, "author-id", "", "author of markdown posts that name none")
	cmd.Flags().StringVar(&f.authorName, "author-name", "", "display name of --author-id")
}

func (f *sourceFlags) sources() ([]importer.Source, error) {
	var sources []importer.Source
	if f.firestore != "" {
		sources = append(sources, &importer.FirestoreSource{Path: f.firestore})
	}
	if f.markdown != "" {
		sources = append(sources, &importer.MarkdownSource{
			Dir:    f.markdown,
			Author: domain.Author{ID: f.authorID, Name: f.authorName},
		})
	}
	if len(sources) == 0 {
		return nil, errors.New("no source given: use --firestore and/or --markdown")
	}
	return sources, nil
}

func newQueryCmd() *cobra.Command {
	var (
		src           sourceFlags
		opts          domain.QueryOptions
		sort          string
		page, perPage int
		includeDrafts bool
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter, sort and page posts of an export without a server",
		Example: `  folioctl query --firestore posts.json --tag go --sort old
  folioctl query --markdown content/posts --q generics --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := src.sources()
			if err != nil {
				return err
			}

			var posts []*domain.Post
			for _, s := range sources {
				loaded, err := s.Load(cmd.Context())
				if err != nil {
					return fmt.Errorf("load %s: %w", s.Name(), err)
				}
				posts = append(posts, loaded...)
			}
			if !includeDrafts {
				posts = publishedOnly(posts)
			}

			opts.Sort = domain.ParseSortOrder(sort)
			result := domain.Paginate(domain.FilterAndSortPosts(posts, opts), page, min(perPage, domain.MaxPerPage))

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return writeTable(cmd.OutOrStdout(), result)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&opts.Query, "q", "", "case-insensitive text matched against title and excerpt or content")
	cmd.Flags().StringVar(&opts.Tag, "tag", "", "exact tag")
	cmd.Flags().StringVar(&opts.Category, "category", "", "exact category")
	cmd.Flags().StringVar(&sort, "sort", string(domain.SortNewest), `"new" or "old"`)
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "limit", domain.DefaultPerPage, "posts per page")
	cmd.Flags().BoolVar(&includeDrafts, "drafts", false, "include unpublished posts")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func publishedOnly(posts []*domain.Post) []*domain.Post {
	out := posts[:0:0]
	for _, p := range posts {
		if p != nil && p.Published {
			out = append(out, p)
		}
	}
	return out
}

type queryRow struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	PublishedAt string   `json:"publishedAt,omitempty"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category,omitempty"`
	Published   bool     `json:"published"`
}

type queryResult struct {
	Posts      []queryRow `json:"posts"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
	TotalItems int        `json:"totalItems"`
}

func rows(page domain.Page) []queryRow {
	out := make([]queryRow, len(page.Items))
	for i, p := range page.Items {
		row := queryRow{Slug: p.Slug, Title: p.Title, Tags: p.Tags, Published: p.Published}
		if t := domain.InstantTime(p.PublishedAt); !t.IsZero() {
			row.PublishedAt = t.UTC().Format("2006-01-02")
		}
		if p.Category != nil {
			row.Category = *p.Category
		}
		out[i] = row
	}
	return out
}

func writeJSON(w io.Writer, page domain.Page) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(queryResult{
		Posts:      rows(page),
		Page:       page.Page,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalItems,
	})
}

func writeTable(w io.Writer, page domain.Page) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PUBLISHED\tSLUG\tTITLE\tCATEGORY")
	for _, r := range rows(page) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.PublishedAt, r.Slug, r.Title, r.Category)
	}
	fmt.Fprintf(tw, "\npage %d of %d (%d posts)\n", page.Page, page.TotalPages, page.TotalItems)
	return tw.Flush()
}
