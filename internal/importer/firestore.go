package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/philly/folio/internal/posts/domain"
)

// firestoreNamespace derives stable post IDs from document IDs that are not
// UUIDs themselves.
var firestoreNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("folio:firestore"))

// FirestoreSource reads a JSON export of the posts collection. The file
// holds either an array of documents or an object keyed by document ID.
// Timestamps keep their {"_seconds","_nanoseconds"} shape.
type FirestoreSource struct {
	Path string
}

func (s *FirestoreSource) Name() string { return "firestore" }

type firestoreDoc struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Content        string        `json:"content"`
	Excerpt        *string       `json:"excerpt"`
	Slug           string        `json:"slug"`
	Tags           []string      `json:"tags"`
	Category       *string       `json:"category"`
	Published      bool          `json:"published"`
	PublishedAt    firestoreTime `json:"publishedAt"`
	UpdatedAt      firestoreTime `json:"updatedAt"`
	AuthorID       string        `json:"authorId"`
	AuthorName     string        `json:"authorName"`
	AuthorEmail    string        `json:"authorEmail"`
	FeaturedImage  *string       `json:"featuredImage"`
	SEOTitle       *string       `json:"seoTitle"`
	SEODescription *string       `json:"seoDescription"`
	SEOKeywords    []string      `json:"seoKeywords"`
}

// firestoreTime accepts a Timestamp object, an RFC 3339 string or null.
type firestoreTime struct {
	instant domain.Instant
}

func (t *firestoreTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		t.instant = nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("invalid time %q: %w", s, err)
		}
		t.instant = domain.At(parsed)
	default:
		var ts domain.Timestamp
		if err := json.Unmarshal(data, &ts); err != nil {
			return fmt.Errorf("invalid timestamp: %w", err)
		}
		t.instant = domain.From(ts)
	}
	return nil
}

func (s *FirestoreSource) Load(ctx context.Context) ([]*domain.Post, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	docs, err := decodeFirestoreExport(data)
	if err != nil {
		return nil, fmt.Errorf("decode export %s: %w", s.Path, err)
	}

	posts := make([]*domain.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, doc.toPost())
	}
	return posts, nil
}

func decodeFirestoreExport(data []byte) ([]firestoreDoc, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var docs []firestoreDoc
		if err := json.Unmarshal(data, &docs); err != nil {
			return nil, err
		}
		return docs, nil
	}

	var byID map[string]firestoreDoc
	if err := json.Unmarshal(data, &byID); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	docs := make([]firestoreDoc, 0, len(ids))
	for _, id := range ids {
		doc := byID[id]
		if doc.ID == "" {
			doc.ID = id
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (d firestoreDoc) toPost() *domain.Post {
	return &domain.Post{
		ID:             documentID(d.ID),
		Title:          d.Title,
		Content:        d.Content,
		Excerpt:        d.Excerpt,
		Slug:           d.Slug,
		Tags:           nonNil(d.Tags),
		Category:       d.Category,
		Published:      d.Published,
		PublishedAt:    d.PublishedAt.instant,
		UpdatedAt:      d.UpdatedAt.instant,
		AuthorID:       d.AuthorID,
		AuthorName:     d.AuthorName,
		AuthorEmail:    d.AuthorEmail,
		FeaturedImage:  d.FeaturedImage,
		SEOTitle:       d.SEOTitle,
		SEODescription: d.SEODescription,
		SEOKeywords:    nonNil(d.SEOKeywords),
	}
}

func documentID(id string) uuid.UUID {
	if id == "" {
		return uuid.Nil
	}
	if parsed, err := uuid.Parse(id); err == nil {
		return parsed
	}
	return uuid.NewSHA1(firestoreNamespace, []byte(id))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
