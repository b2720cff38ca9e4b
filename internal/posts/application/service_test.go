package application_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/philly/folio/internal/adapters/memory"
	"github.com/philly/folio/internal/platform/apperror"
	"github.com/philly/folio/internal/platform/eventbus"
	"github.com/philly/folio/internal/platform/events"
	"github.com/philly/folio/internal/posts/application"
	"github.com/philly/folio/internal/posts/domain"
	"github.com/philly/folio/internal/posts/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements the logger.Logger interface for testing
type mockLogger struct {
	mu     sync.Mutex
	errors []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

// failingRepo wraps a repository and fails List and FindBySlug on demand.
// With hideSlugs set it reports every slug as free, the view of a writer
// that lost a race for it.
type failingRepo struct {
	ports.PostRepository
	fail      bool
	hideSlugs bool
}

func (f *failingRepo) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	if f.hideSlugs {
		return false, nil
	}
	return f.PostRepository.SlugExists(ctx, slug, excludeID)
}

var errStoreDown = errors.New("store down")

func (f *failingRepo) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Post, error) {
	if f.fail {
		return nil, errStoreDown
	}
	return f.PostRepository.List(ctx, filter)
}

func (f *failingRepo) FindBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	if f.fail {
		return nil, errStoreDown
	}
	return f.PostRepository.FindBySlug(ctx, slug)
}

var (
	author = domain.Author{ID: "u1", Name: "User", Email: "user@example.com"}
	site   = domain.Site{URL: "https://example.com", DefaultOGImage: "/og.png"}
)

type fixture struct {
	repo    *failingRepo
	bus     *eventbus.Bus
	service *application.PostsService
	sitemap *application.SitemapService

	mu     sync.Mutex
	topics []eventbus.Topic
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := &mockLogger{}
	f := &fixture{
		repo: &failingRepo{PostRepository: memory.NewPostRepository()},
		bus:  eventbus.NewBus(log),
	}
	for _, topic := range events.PostTopics {
		f.bus.Subscribe(topic, func(ctx context.Context, event eventbus.Event) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.topics = append(f.topics, event.Topic)
			return nil
		})
	}
	f.service = application.NewPostsService(f.repo, f.bus, log, site)
	f.sitemap = application.NewSitemapService(f.repo, f.bus, log, site)
	return f
}

func (f *fixture) publishedTopics() []eventbus.Topic {
	f.bus.Wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]eventbus.Topic(nil), f.topics...)
}

func (f *fixture) create(t *testing.T, title string, published bool, opts ...func(*domain.PostInput)) *domain.Post {
	t.Helper()
	in := domain.PostInput{Title: title, Content: title + " body", Published: published}
	for _, opt := range opts {
		opt(&in)
	}
	post, err := f.service.CreatePost(context.Background(), author, in)
	require.NoError(t, err)
	return post
}

func assertAppError(t *testing.T, err error, code apperror.ErrorCode, bizCode apperror.BusinessCode) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, bizCode, appErr.BusinessCode)
}

func TestPostsService_CreatePost(t *testing.T) {
	f := newFixture(t)

	post := f.create(t, "Hello <b>World</b>", true)

	assert.Equal(t, "Hello World", post.Title)
	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, []eventbus.Topic{events.PostCreatedTopic}, f.publishedTopics())

	stored, err := f.service.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Slug, stored.Slug)
}

func TestPostsService_CreatePost_StripsEncodedMarkup(t *testing.T) {
	f := newFixture(t)

	post := f.create(t, "&lt;script&gt;alert(1)&lt;/script&gt;Hi", true, func(in *domain.PostInput) {
		in.Tags = []string{"&lt;img src=x onerror=alert(1)&gt;go"}
	})

	assert.Equal(t, "Hi", post.Title)
	assert.Equal(t, []string{"go"}, post.Tags)

	stored, err := f.service.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.NotContains(t, stored.Title, "<")
}

func TestPostsService_CreatePost_SlugRace(t *testing.T) {
	f := newFixture(t)
	f.create(t, "Same Title", true)
	f.repo.hideSlugs = true

	_, err := f.service.CreatePost(context.Background(), author, domain.PostInput{Title: "Same Title"})
	assertAppError(t, err, apperror.CodeConflict, apperror.BusinessCodeSlugAlreadyExists)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
}

func TestPostsService_CreatePost_KeepsMarkdownContent(t *testing.T) {
	f := newFixture(t)
	content := "> quote\n\n```go\nif a < b && c > d {}\n```"

	post := f.create(t, "Code", true, func(in *domain.PostInput) { in.Content = content })
	assert.Equal(t, content, post.Content)
}

func TestPostsService_CreatePost_UniqueSlugs(t *testing.T) {
	f := newFixture(t)

	first := f.create(t, "Same Title", true)
	second := f.create(t, "Same Title", true)
	third := f.create(t, "Same Title", false)

	assert.Equal(t, "same-title", first.Slug)
	assert.Equal(t, "same-title-1", second.Slug)
	assert.Equal(t, "same-title-2", third.Slug)
}

func TestPostsService_CreatePost_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreatePost(context.Background(), author, domain.PostInput{Title: "   "})
	assertAppError(t, err, apperror.CodeValidationFailed, apperror.BusinessCodeInvalidTitle)

	_, err = f.service.CreatePost(context.Background(), domain.Author{}, domain.PostInput{Title: "ok"})
	assertAppError(t, err, apperror.CodeValidationFailed, apperror.BusinessCodeInvalidAuthor)

	assert.Empty(t, f.publishedTopics())
}

func TestPostsService_UpdatePost(t *testing.T) {
	f := newFixture(t)
	post := f.create(t, "Original", true)

	updated, err := f.service.UpdatePost(context.Background(), post.ID, domain.PostInput{Title: "Renamed", Content: "new body"})
	require.NoError(t, err)

	assert.Equal(t, "original", updated.Slug)
	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, updated.Published)

	_, err = f.service.UpdatePost(context.Background(), uuid.New(), domain.PostInput{Title: "x"})
	assert.ErrorIs(t, err, application.ErrPostNotFound)

	assert.Equal(t, []eventbus.Topic{events.PostCreatedTopic, events.PostUpdatedTopic}, f.publishedTopics())
}

func TestPostsService_SetPublished(t *testing.T) {
	f := newFixture(t)
	post := f.create(t, "Draft", false)

	_, err := f.service.GetPublishedPostBySlug(context.Background(), "draft")
	assert.ErrorIs(t, err, application.ErrPostNotFound)

	published, err := f.service.SetPublished(context.Background(), post.ID, true)
	require.NoError(t, err)
	assert.True(t, published.Published)

	got, err := f.service.GetPublishedPostBySlug(context.Background(), "draft")
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)

	_, err = f.service.SetPublished(context.Background(), post.ID, false)
	require.NoError(t, err)

	assert.Equal(t, []eventbus.Topic{
		events.PostCreatedTopic,
		events.PostPublishedTopic,
		events.PostUnpublishedTopic,
	}, f.publishedTopics())
}

func TestPostsService_DeletePost(t *testing.T) {
	f := newFixture(t)
	post := f.create(t, "Gone", true)

	require.NoError(t, f.service.DeletePost(context.Background(), post.ID))

	_, err := f.service.GetPost(context.Background(), post.ID)
	assertAppError(t, err, apperror.CodeNotFound, apperror.BusinessCodePostNotFound)
	assert.ErrorIs(t, f.service.DeletePost(context.Background(), post.ID), application.ErrPostNotFound)
}

func TestPostsService_QueryPosts(t *testing.T) {
	f := newFixture(t)
	f.create(t, "Hello World", true, func(in *domain.PostInput) { in.Tags = []string{"news"} })
	f.create(t, "Next.js Tips", true, func(in *domain.PostInput) { in.Tags = []string{"tech", "next"} })
	f.create(t, "Hello Draft", false)

	page, err := f.service.QueryPosts(context.Background(), application.QueryParams{
		QueryOptions: domain.QueryOptions{Query: "hello"},
		Page:         1,
		PerPage:      10,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Hello World", page.Items[0].Title)

	page, err = f.service.QueryPosts(context.Background(), application.QueryParams{
		QueryOptions:  domain.QueryOptions{Query: "hello"},
		IncludeDrafts: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalItems)

	page, err = f.service.QueryPosts(context.Background(), application.QueryParams{
		QueryOptions: domain.QueryOptions{Tag: "next"},
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "nextjs-tips", page.Items[0].Slug)
}

func TestPostsService_QueryPosts_RepositoryFailure(t *testing.T) {
	f := newFixture(t)
	f.repo.fail = true

	_, err := f.service.QueryPosts(context.Background(), application.QueryParams{})
	assertAppError(t, err, apperror.CodeInternalError, apperror.BusinessCodeGeneral)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestPostsService_Taxonomy(t *testing.T) {
	f := newFixture(t)
	cat := "Tech"
	f.create(t, "One", true, func(in *domain.PostInput) { in.Tags = []string{"go", "web"}; in.Category = &cat })
	f.create(t, "Two", true, func(in *domain.PostInput) { in.Tags = []string{"go"} })
	f.create(t, "Three", false, func(in *domain.PostInput) { in.Tags = []string{"draft"} })

	tax, err := f.service.Taxonomy(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.TermCount{{Name: "go", Count: 2}, {Name: "web", Count: 1}}, tax.Tags)
	assert.Equal(t, []domain.TermCount{{Name: "Tech", Count: 1}}, tax.Categories)
}

func TestPostsService_Metadata(t *testing.T) {
	f := newFixture(t)
	f.create(t, "Hello World", true, func(in *domain.PostInput) { in.Content = "Some *text* here." })

	meta, err := f.service.Metadata(context.Background(), "hello-world")
	require.NoError(t, err)

	assert.Equal(t, "Hello World", meta.Title)
	assert.Equal(t, "Some text here.", meta.Description)
	assert.Equal(t, "https://example.com/blog/hello-world", meta.Canonical)
	assert.Equal(t, "https://example.com/og.png", meta.OGImage)

	_, err = f.service.Metadata(context.Background(), "missing")
	assert.ErrorIs(t, err, application.ErrPostNotFound)
}

func TestPostsService_ImportPost(t *testing.T) {
	f := newFixture(t)
	ts := domain.Timestamp{Seconds: 1700000000}

	imported := &domain.Post{
		Title:       "Imported",
		Content:     "from export",
		Published:   true,
		AuthorID:    "u9",
		PublishedAt: domain.From(ts),
	}
	outcome, err := f.service.ImportPost(context.Background(), imported)
	require.NoError(t, err)
	assert.Equal(t, application.ImportCreated, outcome)
	assert.Equal(t, "imported", imported.Slug)

	got, err := f.service.GetPublishedPostBySlug(context.Background(), "imported")
	require.NoError(t, err)
	assert.Equal(t, ts.ToTime(), domain.InstantTime(got.PublishedAt))

	again := &domain.Post{Title: "Imported", Content: "second pass", Published: true, AuthorID: "u9"}
	outcome, err = f.service.ImportPost(context.Background(), again)
	require.NoError(t, err)
	assert.Equal(t, application.ImportUpdated, outcome)
	assert.Equal(t, got.ID, again.ID)

	_, err = f.service.ImportPost(context.Background(), nil)
	assert.ErrorIs(t, err, application.ErrInvalidPostData)

	_, err = f.service.ImportPost(context.Background(), &domain.Post{Title: "  ", AuthorID: "u9"})
	assertAppError(t, err, apperror.CodeValidationFailed, apperror.BusinessCodeInvalidTitle)
}

func TestPostsService_ImportPost_NormalizesAndSanitizes(t *testing.T) {
	f := newFixture(t)

	post := &domain.Post{
		Title:    "&lt;b&gt;Bold&lt;/b&gt; Move",
		Slug:     "My Post",
		Tags:     []string{"<i>go</i>"},
		AuthorID: "u9",
	}
	_, err := f.service.ImportPost(context.Background(), post)
	require.NoError(t, err)

	got, err := f.service.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "my-post", got.Slug)
	assert.Equal(t, "Bold Move", got.Title)
	assert.Equal(t, []string{"go"}, got.Tags)

	long := &domain.Post{Title: "Long", Slug: strings.Repeat("a", domain.MaxSlugLength+1), AuthorID: "u9"}
	_, err = f.service.ImportPost(context.Background(), long)
	assertAppError(t, err, apperror.CodeValidationFailed, apperror.BusinessCodeInvalidSlug)
}

func TestPostsService_ImportPost_MatchesByIDBeforeSlug(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	outcome, err := f.service.ImportPost(context.Background(), &domain.Post{ID: id, Title: "Doc", Slug: "old-slug", AuthorID: "u9"})
	require.NoError(t, err)
	assert.Equal(t, application.ImportCreated, outcome)

	// The document was renamed at the source; its ID is unchanged.
	outcome, err = f.service.ImportPost(context.Background(), &domain.Post{ID: id, Title: "Doc", Slug: "new-slug", AuthorID: "u9"})
	require.NoError(t, err)
	assert.Equal(t, application.ImportUpdated, outcome)

	got, err := f.service.GetPost(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "new-slug", got.Slug)

	f.create(t, "Taken", true)
	_, err = f.service.ImportPost(context.Background(), &domain.Post{ID: id, Title: "Doc", Slug: "taken", AuthorID: "u9"})
	assertAppError(t, err, apperror.CodeConflict, apperror.BusinessCodeSlugAlreadyExists)
}

func TestSitemapService(t *testing.T) {
	f := newFixture(t)
	f.create(t, "First", true)

	entries := f.sitemap.Entries(context.Background())
	require.Len(t, entries, 3)
	assert.Equal(t, "https://example.com", entries[0].URL)
	assert.Equal(t, "https://example.com/blog", entries[1].URL)
	assert.Equal(t, "https://example.com/blog/first", entries[2].URL)

	f.create(t, "Second", true)
	f.bus.Wait()

	entries = f.sitemap.Entries(context.Background())
	assert.Len(t, entries, 4)
}

func TestSitemapService_ReturnsCopies(t *testing.T) {
	f := newFixture(t)
	f.create(t, "First", true)
	f.bus.Wait()

	entries := f.sitemap.Entries(context.Background())
	require.Len(t, entries, 3)
	entries[2].URL = "https://evil.example"

	again := f.sitemap.Entries(context.Background())
	assert.Equal(t, "https://example.com/blog/first", again[2].URL)
}

func TestSitemapService_FallbackIsNotCached(t *testing.T) {
	f := newFixture(t)
	f.create(t, "First", true)
	f.bus.Wait()

	f.repo.fail = true
	assert.Len(t, f.sitemap.Entries(context.Background()), 2)

	f.repo.fail = false
	assert.Len(t, f.sitemap.Entries(context.Background()), 3)
}

func TestSitemapService_ConcurrentReaders(t *testing.T) {
	f := newFixture(t)
	f.create(t, "First", true)
	f.bus.Wait()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, f.sitemap.Entries(context.Background()), 3)
		}()
	}
	wg.Wait()
}

// gatedRepo snapshots List and then holds it until release is closed.
// Cancelling the caller's context unblocks it with the context error.
type gatedRepo struct {
	ports.PostRepository
	started chan struct{}
	release chan struct{}
}

func newGatedRepo() *gatedRepo {
	return &gatedRepo{
		PostRepository: memory.NewPostRepository(),
		started:        make(chan struct{}, 8),
		release:        make(chan struct{}),
	}
}

func (g *gatedRepo) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Post, error) {
	posts, err := g.PostRepository.List(ctx, filter)
	g.started <- struct{}{}
	select {
	case <-g.release:
		return posts, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gatedRepo) waitStarted(t *testing.T) {
	t.Helper()
	select {
	case <-g.started:
	case <-time.After(2 * time.Second):
		t.Fatal("sitemap build did not reach the repository")
	}
}

func (g *gatedRepo) add(t *testing.T, slug string) {
	t.Helper()
	post := &domain.Post{ID: uuid.New(), Title: slug, Slug: slug, Published: true, AuthorID: "u1"}
	require.NoError(t, g.Create(context.Background(), post))
}

func TestSitemapService_BuildSurvivesCallerCancel(t *testing.T) {
	repo := newGatedRepo()
	repo.add(t, "first")
	log := &mockLogger{}
	sitemap := application.NewSitemapService(repo, eventbus.NewBus(log), log, site)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan []domain.SitemapEntry, 1)
	go func() { first <- sitemap.Entries(ctx) }()
	repo.waitStarted(t)

	second := make(chan []domain.SitemapEntry, 1)
	go func() { second <- sitemap.Entries(context.Background()) }()

	cancel()
	close(repo.release)

	assert.Len(t, <-first, 3)
	assert.Len(t, <-second, 3)
}

func TestSitemapService_InvalidateDuringBuild(t *testing.T) {
	repo := newGatedRepo()
	repo.add(t, "first")
	log := &mockLogger{}
	sitemap := application.NewSitemapService(repo, eventbus.NewBus(log), log, site)

	stale := make(chan []domain.SitemapEntry, 1)
	go func() { stale <- sitemap.Entries(context.Background()) }()
	repo.waitStarted(t)

	repo.add(t, "second")
	sitemap.Invalidate()

	fresh := make(chan []domain.SitemapEntry, 1)
	go func() { fresh <- sitemap.Entries(context.Background()) }()
	repo.waitStarted(t)
	close(repo.release)

	assert.Len(t, <-stale, 3)
	assert.Len(t, <-fresh, 4)
	assert.Len(t, sitemap.Entries(context.Background()), 4, "only the build after the invalidation is cached")
}
