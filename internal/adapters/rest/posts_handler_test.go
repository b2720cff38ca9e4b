package rest_test

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/philly/folio/internal/adapters/api"
	"github.com/philly/folio/internal/adapters/memory"
	"github.com/philly/folio/internal/adapters/rest"
	"github.com/philly/folio/internal/adapters/rest/middleware"
	"github.com/philly/folio/internal/platform/eventbus"
	"github.com/philly/folio/internal/posts/application"
	"github.com/philly/folio/internal/posts/domain"
	taxonomyapp "github.com/philly/folio/internal/taxonomy/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testAPI struct {
	handler http.Handler
	bus     *eventbus.Bus
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log := &mockLogger{}
	site := domain.Site{URL: "https://example.com", DefaultOGImage: "/og.png"}

	repo := memory.NewPostRepository()
	bus := eventbus.NewBus(log)
	posts := application.NewPostsService(repo, bus, log, site)
	sitemap := application.NewSitemapService(repo, bus, log, site)
	taxonomy := taxonomyapp.NewTaxonomyService(
		memory.NewTagRepository(),
		memory.NewCategoryRepository(),
		taxonomyapp.NewPostTermsAdapter(repo),
		bus,
		log,
	)

	base := rest.NewBaseHandler(log)
	server := rest.NewServer(
		rest.NewHealthHandler(base, rest.HealthConfig{Version: "test"}, repo),
		rest.NewPostsHandler(base, posts),
		rest.NewTaxonomyHandler(base, taxonomy),
	)

	r := chi.NewRouter()
	r.Method(http.MethodGet, "/sitemap.xml", rest.NewSitemapHandler(base, sitemap))
	api.HandlerWithOptions(server, api.ChiServerOptions{
		BaseURL:          "/api/v1",
		BaseRouter:       r,
		ErrorHandlerFunc: middleware.ParamErrorHandler,
	})

	t.Cleanup(bus.Wait)
	return &testAPI{handler: r, bus: bus}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) createPost(t *testing.T, req map[string]any) api.Post {
	t.Helper()
	if _, ok := req["author"]; !ok {
		req["author"] = map[string]any{"id": "u1", "name": "Ada"}
	}
	rec := a.do(t, http.MethodPost, "/api/v1/posts", req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var post api.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))
	return post
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCreateAndFetchPost(t *testing.T) {
	a := newTestAPI(t)

	created := a.createPost(t, map[string]any{
		"title":   "Hello World!",
		"content": "# Heading\n\nSome **bold** text.",
		"tags":    []string{"go", " go ", ""},
	})

	assert.Equal(t, "hello-world", created.Slug)
	assert.False(t, created.Published)
	assert.Equal(t, []string{"go"}, created.Tags)
	require.NotNil(t, created.Excerpt)
	assert.Equal(t, "Heading Some bold text.", *created.Excerpt)
	assert.Equal(t, 1, created.ReadingTime)

	rec := a.do(t, http.MethodGet, "/api/v1/posts/"+created.Id.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created.Id, decode[api.Post](t, rec).Id)

	// Drafts are hidden from slug lookups
	rec = a.do(t, http.MethodGet, "/api/v1/posts/slug/hello-world", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	errResp := decode[api.Error](t, rec)
	assert.Equal(t, "NOT_FOUND", errResp.Error)
	require.NotNil(t, errResp.BusinessCode)
	assert.Equal(t, "POST_NOT_FOUND", *errResp.BusinessCode)

	rec = a.do(t, http.MethodPost, "/api/v1/posts/"+created.Id.String()+"/publish", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[api.Post](t, rec).Published)

	rec = a.do(t, http.MethodGet, "/api/v1/posts/slug/hello-world", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreatePostValidation(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		expectedError  string
		expectedBizErr string
	}{
		{
			name:           "missing title",
			body:           map[string]any{"content": "x", "author": map[string]any{"id": "u1"}},
			expectedError:  "VALIDATION_FAILED",
			expectedBizErr: "INVALID_FORMAT",
		},
		{
			name:           "missing author",
			body:           map[string]any{"title": "T", "content": "x"},
			expectedError:  "VALIDATION_FAILED",
			expectedBizErr: "INVALID_FORMAT",
		},
		{
			name:           "whitespace title",
			body:           map[string]any{"title": "   ", "author": map[string]any{"id": "u1"}},
			expectedError:  "VALIDATION_FAILED",
			expectedBizErr: "INVALID_TITLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAPI(t)

			rec := a.do(t, http.MethodPost, "/api/v1/posts", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			errResp := decode[api.Error](t, rec)
			assert.Equal(t, tt.expectedError, errResp.Error)
			require.NotNil(t, errResp.BusinessCode)
			assert.Equal(t, tt.expectedBizErr, *errResp.BusinessCode)
		})
	}
}

func TestInvalidPathParameter(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/api/v1/posts/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decode[api.Error](t, rec).Error)
}

func TestUpdateAndDeletePost(t *testing.T) {
	a := newTestAPI(t)
	created := a.createPost(t, map[string]any{"title": "Original", "content": "body"})
	path := "/api/v1/posts/" + created.Id.String()

	rec := a.do(t, http.MethodPut, path, map[string]any{
		"title":    "Renamed",
		"content":  "new body",
		"category": "notes",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[api.Post](t, rec)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "original", updated.Slug, "slug is kept on update")
	require.NotNil(t, updated.Category)
	assert.Equal(t, "notes", *updated.Category)

	rec = a.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = a.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = a.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPosts(t *testing.T) {
	a := newTestAPI(t)
	for _, p := range []map[string]any{
		{"title": "Go Generics", "content": "type params", "tags": []string{"go"}, "category": "lang", "published": true},
		{"title": "Go Channels", "content": "csp", "tags": []string{"go", "concurrency"}, "published": true},
		{"title": "Rust Traits", "content": "traits", "tags": []string{"rust"}, "category": "lang", "published": true},
		{"title": "Draft Post", "content": "wip", "tags": []string{"go"}},
	} {
		a.createPost(t, p)
	}

	tests := []struct {
		name          string
		query         string
		expectedSlugs []string
		expectedTotal int
		expectedPages int
	}{
		{
			name:          "newest first over published posts",
			query:         "",
			expectedSlugs: []string{"rust-traits", "go-channels", "go-generics"},
			expectedTotal: 3,
			expectedPages: 1,
		},
		{
			name:          "oldest first",
			query:         "?sort=old",
			expectedSlugs: []string{"go-generics", "go-channels", "rust-traits"},
			expectedTotal: 3,
			expectedPages: 1,
		},
		{
			name:          "text query matches title case-insensitively",
			query:         "?q=GO",
			expectedSlugs: []string{"go-channels", "go-generics"},
			expectedTotal: 2,
			expectedPages: 1,
		},
		{
			name:          "tag and category filters combine",
			query:         "?tag=go&category=lang",
			expectedSlugs: []string{"go-generics"},
			expectedTotal: 1,
			expectedPages: 1,
		},
		{
			name:          "pagination",
			query:         "?limit=2&page=2",
			expectedSlugs: []string{"go-generics"},
			expectedTotal: 3,
			expectedPages: 2,
		},
		{
			name:          "drafts on request",
			query:         "?drafts=true&tag=go",
			expectedSlugs: []string{"draft-post", "go-channels", "go-generics"},
			expectedTotal: 3,
			expectedPages: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(t, http.MethodGet, "/api/v1/posts"+tt.query, nil)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			page := decode[api.PaginatedPosts](t, rec)
			slugs := make([]string, len(page.Data))
			for i, p := range page.Data {
				slugs[i] = p.Slug
			}
			assert.Equal(t, tt.expectedSlugs, slugs)
			assert.Equal(t, tt.expectedTotal, page.Meta.TotalItems)
			assert.Equal(t, tt.expectedPages, page.Meta.TotalPages)
		})
	}
}

func TestListPostsRejectsMalformedPage(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/api/v1/posts?page=abc", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPostMetadata(t *testing.T) {
	a := newTestAPI(t)
	a.createPost(t, map[string]any{
		"title":         "SEO Post",
		"content":       "body",
		"excerpt":       "Short summary",
		"tags":          []string{"seo"},
		"featuredImage": "/img/cover.png",
		"published":     true,
	})

	rec := a.do(t, http.MethodGet, "/api/v1/posts/slug/seo-post/metadata", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	meta := decode[api.PostMetadata](t, rec)
	assert.Equal(t, "SEO Post", meta.Title)
	assert.Equal(t, "Short summary", meta.Description)
	assert.Equal(t, []string{"seo"}, meta.Keywords)
	assert.Equal(t, "https://example.com/blog/seo-post", meta.Canonical)
	assert.Equal(t, []string{"https://example.com/img/cover.png"}, meta.OpenGraph.Images)
	require.NotNil(t, meta.OpenGraph.SiteName)
	assert.Equal(t, "example.com", *meta.OpenGraph.SiteName)

	rec = a.do(t, http.MethodGet, "/api/v1/posts/slug/missing/metadata", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTaxonomy(t *testing.T) {
	a := newTestAPI(t)
	a.createPost(t, map[string]any{"title": "A", "tags": []string{"go", "web"}, "category": "dev", "published": true})
	a.createPost(t, map[string]any{"title": "B", "tags": []string{"go"}, "published": true})
	a.createPost(t, map[string]any{"title": "C", "tags": []string{"draft-only"}})

	rec := a.do(t, http.MethodGet, "/api/v1/taxonomy", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	taxonomy := decode[api.Taxonomy](t, rec)
	assert.Equal(t, []api.TermCount{{Name: "go", Count: 2}, {Name: "web", Count: 1}}, taxonomy.Tags)
	assert.Equal(t, []api.TermCount{{Name: "dev", Count: 1}}, taxonomy.Categories)
}

func TestHealthProbes(t *testing.T) {
	a := newTestAPI(t)

	rec := a.do(t, http.MethodGet, "/api/v1/health/live", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, api.Healthy, decode[api.HealthStatus](t, rec).Status)

	rec = a.do(t, http.MethodGet, "/api/v1/health/ready", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decode[api.HealthStatus](t, rec)
	assert.Equal(t, api.Degraded, status.Status, "in-memory storage is not durable")
	require.NotNil(t, status.Checks)
	require.NotNil(t, status.Checks.Database)
	assert.Equal(t, api.Up, *status.Checks.Database)
}

func TestSitemap(t *testing.T) {
	a := newTestAPI(t)
	a.createPost(t, map[string]any{"title": "Mapped", "published": true})
	a.createPost(t, map[string]any{"title": "Hidden"})
	a.bus.Wait()

	rec := a.do(t, http.MethodGet, "/sitemap.xml", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/xml")

	var set struct {
		URLs []struct {
			Loc     string `xml:"loc"`
			LastMod string `xml:"lastmod"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &set))

	locs := make([]string, len(set.URLs))
	for i, u := range set.URLs {
		locs[i] = u.Loc
		assert.NotEmpty(t, u.LastMod)
	}
	assert.Equal(t, []string{
		"https://example.com",
		"https://example.com/blog",
		"https://example.com/blog/mapped",
	}, locs)
}
