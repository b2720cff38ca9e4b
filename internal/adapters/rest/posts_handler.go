package rest

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/philly/folio/internal/adapters/api"
	"github.com/philly/folio/internal/posts/application"
	"github.com/philly/folio/internal/posts/domain"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// PostsHandler handles HTTP requests for posts
type PostsHandler struct {
	*BaseHandler
	service *application.PostsService
}

// NewPostsHandler creates a new posts handler
func NewPostsHandler(base *BaseHandler, service *application.PostsService) *PostsHandler {
	return &PostsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// CreatePost creates a new blog post
func (h *PostsHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req api.CreatePostRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	author := domain.Author{
		ID:   req.Author.Id,
		Name: req.Author.Name,
	}
	if req.Author.Email != nil {
		author.Email = *req.Author.Email
	}

	input := domain.PostInput{
		Title:          req.Title,
		Content:        req.Content,
		Excerpt:        req.Excerpt,
		Tags:           req.Tags,
		Category:       req.Category,
		Published:      req.Published != nil && *req.Published,
		FeaturedImage:  req.FeaturedImage,
		SEOTitle:       req.SeoTitle,
		SEODescription: req.SeoDescription,
		SEOKeywords:    req.SeoKeywords,
	}

	post, err := h.service.CreatePost(r.Context(), author, input)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainPostToAPI(post), http.StatusCreated)
}

// GetPost retrieves a single post by ID, drafts included
func (h *PostsHandler) GetPost(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	post, err := h.service.GetPost(r.Context(), uuid.UUID(id))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainPostToAPI(post), http.StatusOK)
}

// GetPostBySlug retrieves a published post by its slug
func (h *PostsHandler) GetPostBySlug(w http.ResponseWriter, r *http.Request, slug string) {
	post, err := h.service.GetPublishedPostBySlug(r.Context(), slug)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainPostToAPI(post), http.StatusOK)
}

// GetPostMetadata returns the page metadata of a published post
func (h *PostsHandler) GetPostMetadata(w http.ResponseWriter, r *http.Request, slug string) {
	meta, err := h.service.Metadata(r.Context(), slug)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainMetadataToAPI(meta), http.StatusOK)
}

// UpdatePost updates an existing post
func (h *PostsHandler) UpdatePost(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	var req api.UpdatePostRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	input := domain.PostInput{
		Title:          req.Title,
		Content:        req.Content,
		Excerpt:        req.Excerpt,
		Tags:           req.Tags,
		Category:       req.Category,
		FeaturedImage:  req.FeaturedImage,
		SEOTitle:       req.SeoTitle,
		SEODescription: req.SeoDescription,
		SEOKeywords:    req.SeoKeywords,
	}

	post, err := h.service.UpdatePost(r.Context(), uuid.UUID(id), input)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainPostToAPI(post), http.StatusOK)
}

// PublishPost publishes a draft post
func (h *PostsHandler) PublishPost(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	h.setPublished(w, r, id, true)
}

// UnpublishPost unpublishes a published post (back to draft)
func (h *PostsHandler) UnpublishPost(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	h.setPublished(w, r, id, false)
}

func (h *PostsHandler) setPublished(w http.ResponseWriter, r *http.Request, id openapi_types.UUID, published bool) {
	post, err := h.service.SetPublished(r.Context(), uuid.UUID(id), published)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, domainPostToAPI(post), http.StatusOK)
}

// DeletePost deletes a post
func (h *PostsHandler) DeletePost(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	if err := h.service.DeletePost(r.Context(), uuid.UUID(id)); err != nil {
		h.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListPosts returns one page of posts matching the query parameters
// NOTE: drafts are only listed when explicitly requested
func (h *PostsHandler) ListPosts(w http.ResponseWriter, r *http.Request, params api.ListPostsParams) {
	page, err := h.service.QueryPosts(r.Context(), buildQueryParams(params))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, buildPaginatedPostsResponse(page), http.StatusOK)
}

// GetTaxonomy returns tag and category counts over published posts
func (h *PostsHandler) GetTaxonomy(w http.ResponseWriter, r *http.Request) {
	taxonomy, err := h.service.Taxonomy(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, api.Taxonomy{
		Tags:       termsToAPI(taxonomy.Tags),
		Categories: termsToAPI(taxonomy.Categories),
	}, http.StatusOK)
}

// Helper functions

func buildQueryParams(params api.ListPostsParams) application.QueryParams {
	q := application.QueryParams{
		QueryOptions: domain.QueryOptions{
			Query:    deref(params.Q),
			Tag:      deref(params.Tag),
			Category: deref(params.Category),
			Sort:     domain.SortNewest,
		},
		Page:     1,
		PerPage:  domain.DefaultPerPage,
		AuthorID: deref(params.AuthorId),
	}

	if params.Sort != nil {
		q.Sort = domain.ParseSortOrder(string(*params.Sort))
	}
	if params.Page != nil {
		q.Page = *params.Page
	}
	if params.Limit != nil {
		q.PerPage = min(*params.Limit, domain.MaxPerPage)
	}
	if params.Drafts != nil {
		q.IncludeDrafts = *params.Drafts
	}

	return q
}

func buildPaginatedPostsResponse(page domain.Page) api.PaginatedPosts {
	summaries := make([]api.PostSummary, len(page.Items))
	for i, post := range page.Items {
		summaries[i] = domainSummaryToAPI(post)
	}

	return api.PaginatedPosts{
		Data: summaries,
		Meta: api.PaginationMeta{
			TotalItems:   page.TotalItems,
			ItemsPerPage: page.PerPage,
			CurrentPage:  page.Page,
			TotalPages:   page.TotalPages,
			Pages:        domain.PageWindow(page.Page, page.TotalPages, domain.PageWindowWidth),
		},
	}
}

func domainPostToAPI(post *domain.Post) api.Post {
	return api.Post{
		Id:             openapi_types.UUID(post.ID),
		Title:          post.Title,
		Content:        post.Content,
		Excerpt:        post.Excerpt,
		Slug:           post.Slug,
		Tags:           nonNilStrings(post.Tags),
		Category:       post.Category,
		Published:      post.Published,
		PublishedAt:    instantToAPI(post.PublishedAt),
		UpdatedAt:      instantToAPI(post.UpdatedAt),
		AuthorId:       post.AuthorID,
		AuthorName:     post.AuthorName,
		AuthorEmail:    post.AuthorEmail,
		FeaturedImage:  post.FeaturedImage,
		SeoTitle:       post.SEOTitle,
		SeoDescription: post.SEODescription,
		SeoKeywords:    nonNilStrings(post.SEOKeywords),
		ReadingTime:    post.ReadingTime(),
	}
}

func domainSummaryToAPI(post *domain.Post) api.PostSummary {
	return api.PostSummary{
		Id:            openapi_types.UUID(post.ID),
		Title:         post.Title,
		Excerpt:       post.Excerpt,
		Slug:          post.Slug,
		Tags:          nonNilStrings(post.Tags),
		Category:      post.Category,
		Published:     post.Published,
		PublishedAt:   instantToAPI(post.PublishedAt),
		AuthorName:    post.AuthorName,
		FeaturedImage: post.FeaturedImage,
		ReadingTime:   post.ReadingTime(),
	}
}

func domainMetadataToAPI(meta domain.Metadata) api.PostMetadata {
	var images []string
	if meta.OGImage != "" {
		images = []string{meta.OGImage}
	}
	var siteName *string
	if meta.SiteName != "" {
		siteName = &meta.SiteName
	}

	return api.PostMetadata{
		Title:       meta.Title,
		Description: meta.Description,
		Keywords:    nonNilStrings(meta.Keywords),
		Canonical:   meta.Canonical,
		OpenGraph: api.OpenGraph{
			Type:        "article",
			Title:       meta.Title,
			Description: meta.Description,
			Url:         meta.Canonical,
			SiteName:    siteName,
			Images:      images,
			Tags:        nonNilStrings(meta.Tags),
		},
		Twitter: api.TwitterCard{
			Card:        "summary_large_image",
			Title:       meta.Title,
			Description: meta.Description,
			Images:      images,
		},
		JsonLd: meta.JSONLD,
	}
}

func termsToAPI(terms []domain.TermCount) []api.TermCount {
	out := make([]api.TermCount, len(terms))
	for i, t := range terms {
		out[i] = api.TermCount{Name: t.Name, Count: t.Count}
	}
	return out
}

// instantToAPI renders an instant in UTC; unset instants are omitted.
func instantToAPI(i domain.Instant) *time.Time {
	t := domain.InstantTime(i)
	if t.IsZero() {
		return nil
	}
	t = t.UTC()
	return &t
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
