package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Liveness probe
	// (GET /health/live)
	GetLiveness(w http.ResponseWriter, r *http.Request)
	// Readiness probe
	// (GET /health/ready)
	GetReadiness(w http.ResponseWriter, r *http.Request)
	// List posts
	// (GET /posts)
	ListPosts(w http.ResponseWriter, r *http.Request, params ListPostsParams)
	// Create a post
	// (POST /posts)
	CreatePost(w http.ResponseWriter, r *http.Request)
	// Get a published post by slug
	// (GET /posts/slug/{slug})
	GetPostBySlug(w http.ResponseWriter, r *http.Request, slug string)
	// Page metadata of a published post
	// (GET /posts/slug/{slug}/metadata)
	GetPostMetadata(w http.ResponseWriter, r *http.Request, slug string)
	// Delete a post
	// (DELETE /posts/{id})
	DeletePost(w http.ResponseWriter, r *http.Request, id openapi_types.UUID)
	// Get a post by ID
	// (GET /posts/{id})
	GetPost(w http.ResponseWriter, r *http.Request, id openapi_types.UUID)
	// Update a post
	// (PUT /posts/{id})
	UpdatePost(w http.ResponseWriter, r *http.Request, id openapi_types.UUID)
	// Publish a post
	// (POST /posts/{id}/publish)
	PublishPost(w http.ResponseWriter, r *http.Request, id openapi_types.UUID)
	// Move a post back to draft
	// (POST /posts/{id}/unpublish)
	UnpublishPost(w http.ResponseWriter, r *http.Request, id openapi_types.UUID)
	// Tag and category counts
	// (GET /taxonomy)
	GetTaxonomy(w http.ResponseWriter, r *http.Request)
	// List categories
	// (GET /categories)
	ListCategories(w http.ResponseWriter, r *http.Request)
	// Create a category
	// (POST /categories)
	CreateCategory(w http.ResponseWriter, r *http.Request)
	// Category choices for post editors
	// (GET /categories/options)
	GetCategoryOptions(w http.ResponseWriter, r *http.Request)
	// Get a category by slug
	// (GET /categories/slug/{slug})
	GetCategoryBySlug(w http.ResponseWriter, r *http.Request, slug string)
	// Categories nested under their parents
	// (GET /categories/tree)
	GetCategoryTree(w http.ResponseWriter, r *http.Request)
	// Delete a category
	// (DELETE /categories/{id})
	DeleteCategory(w http.ResponseWriter, r *http.Request, id openapi_types.UUID)
	// Get a category by ID
	// (GET /categories/{id})
	GetCategory(w http.ResponseWriter, r *http.Request, id openapi_types.UUID)
	// Update a category
	// (PUT /categories/{id})
	UpdateCategory(w http.ResponseWriter, r *http.Request, id openapi_types.UUID)
	// List tags
	// (GET /tags)
	ListTags(w http.ResponseWriter, r *http.Request, params ListTagsParams)
	// Create a tag
	// (POST /tags)
	CreateTag(w http.ResponseWriter, r *http.Request)
	// Tag choices for post editors
	// (GET /tags/options)
	GetTagOptions(w http.ResponseWriter, r *http.Request)
	// Get a tag by slug
	// (GET /tags/slug/{slug})
	GetTagBySlug(w http.ResponseWriter, r *http.Request, slug string)
	// Delete a tag
	// (DELETE /tags/{id})
	DeleteTag(w http.ResponseWriter, r *http.Request, id openapi_types.UUID)
	// Get a tag by ID
	// (GET /tags/{id})
	GetTag(w http.ResponseWriter, r *http.Request, id openapi_types.UUID)
	// Update a tag
	// (PUT /tags/{id})
	UpdateTag(w http.ResponseWriter, r *http.Request, id openapi_types.UUID)
}

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

// MiddlewareFunc wraps a handler.
type MiddlewareFunc func(http.Handler) http.Handler

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, handler http.Handler) {
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

// GetLiveness operation middleware
func (siw *ServerInterfaceWrapper) GetLiveness(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.GetLiveness))
}

// GetReadiness operation middleware
func (siw *ServerInterfaceWrapper) GetReadiness(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.GetReadiness))
}

// ListPosts operation middleware
func (siw *ServerInterfaceWrapper) ListPosts(w http.ResponseWriter, r *http.Request) {
	var err error
	var params ListPostsParams
	query := r.URL.Query()

	if err = runtime.BindQueryParameter("form", true, false, "q", query, &params.Q); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "q", Err: err})
		return
	}
	if err = runtime.BindQueryParameter("form", true, false, "tag", query, &params.Tag); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "tag", Err: err})
		return
	}
	if err = runtime.BindQueryParameter("form", true, false, "category", query, &params.Category); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "category", Err: err})
		return
	}
	if err = runtime.BindQueryParameter("form", true, false, "sort", query, &params.Sort); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "sort", Err: err})
		return
	}
	if err = runtime.BindQueryParameter("form", true, false, "page", query, &params.Page); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "page", Err: err})
		return
	}
	if err = runtime.BindQueryParameter("form", true, false, "limit", query, &params.Limit); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}
	if err = runtime.BindQueryParameter("form", true, false, "drafts", query, &params.Drafts); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "drafts", Err: err})
		return
	}
	if err = runtime.BindQueryParameter("form", true, false, "authorId", query, &params.AuthorId); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "authorId", Err: err})
		return
	}

	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListPosts(w, r, params)
	}))
}

// CreatePost operation middleware
func (siw *ServerInterfaceWrapper) CreatePost(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.CreatePost))
}

// GetPostBySlug operation middleware
func (siw *ServerInterfaceWrapper) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	slug, ok := siw.bindSlug(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetPostBySlug(w, r, slug)
	}))
}

// GetPostMetadata operation middleware
func (siw *ServerInterfaceWrapper) GetPostMetadata(w http.ResponseWriter, r *http.Request) {
	slug, ok := siw.bindSlug(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetPostMetadata(w, r, slug)
	}))
}

// DeletePost operation middleware
func (siw *ServerInterfaceWrapper) DeletePost(w http.ResponseWriter, r *http.Request) {
	siw.withID(w, r, siw.Handler.DeletePost)
}

// GetPost operation middleware
func (siw *ServerInterfaceWrapper) GetPost(w http.ResponseWriter, r *http.Request) {
	siw.withID(w, r, siw.Handler.GetPost)
}

// UpdatePost operation middleware
func (siw *ServerInterfaceWrapper) UpdatePost(w http.ResponseWriter, r *http.Request) {
	siw.withID(w, r, siw.Handler.UpdatePost)
}

// PublishPost operation middleware
func (siw *ServerInterfaceWrapper) PublishPost(w http.ResponseWriter, r *http.Request) {
	siw.withID(w, r, siw.Handler.PublishPost)
}

// UnpublishPost operation middleware
func (siw *ServerInterfaceWrapper) UnpublishPost(w http.ResponseWriter, r *http.Request) {
	siw.withID(w, r, siw.Handler.UnpublishPost)
}

// GetTaxonomy operation middleware
func (siw *ServerInterfaceWrapper) GetTaxonomy(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.GetTaxonomy))
}

// ListCategories operation middleware
func (siw *ServerInterfaceWrapper) ListCategories(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.ListCategories))
}

// CreateCategory operation middleware
func (siw *ServerInterfaceWrapper) CreateCategory(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.CreateCategory))
}

// GetCategoryOptions operation middleware
func (siw *ServerInterfaceWrapper) GetCategoryOptions(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.GetCategoryOptions))
}

// GetCategoryBySlug operation middleware
func (siw *ServerInterfaceWrapper) GetCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	slug, ok := siw.bindSlug(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetCategoryBySlug(w, r, slug)
	}))
}

// GetCategoryTree operation middleware
func (siw *ServerInterfaceWrapper) GetCategoryTree(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.GetCategoryTree))
}

// DeleteCategory operation middleware
func (siw *ServerInterfaceWrapper) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	siw.withID(w, r, siw.Handler.DeleteCategory)
}

// GetCategory operation middleware
func (siw *ServerInterfaceWrapper) GetCategory(w http.ResponseWriter, r *http.Request) {
	siw.withID(w, r, siw.Handler.GetCategory)
}

// UpdateCategory operation middleware
func (siw *ServerInterfaceWrapper) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	siw.withID(w, r, siw.Handler.UpdateCategory)
}

// ListTags operation middleware
func (siw *ServerInterfaceWrapper) ListTags(w http.ResponseWriter, r *http.Request) {
	var params ListTagsParams

	if err := runtime.BindQueryParameter("form", true, false, "ids", r.URL.Query(), &params.Ids); err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "ids", Err: err})
		return
	}

	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListTags(w, r, params)
	}))
}

// CreateTag operation middleware
func (siw *ServerInterfaceWrapper) CreateTag(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.CreateTag))
}

// GetTagOptions operation middleware
func (siw *ServerInterfaceWrapper) GetTagOptions(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.GetTagOptions))
}

// GetTagBySlug operation middleware
func (siw *ServerInterfaceWrapper) GetTagBySlug(w http.ResponseWriter, r *http.Request) {
	slug, ok := siw.bindSlug(w, r)
	if !ok {
		return
	}
	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetTagBySlug(w, r, slug)
	}))
}

// DeleteTag operation middleware
func (siw *ServerInterfaceWrapper) DeleteTag(w http.ResponseWriter, r *http.Request) {
	siw.withID(w, r, siw.Handler.DeleteTag)
}

// GetTag operation middleware
func (siw *ServerInterfaceWrapper) GetTag(w http.ResponseWriter, r *http.Request) {
	siw.withID(w, r, siw.Handler.GetTag)
}

// UpdateTag operation middleware
func (siw *ServerInterfaceWrapper) UpdateTag(w http.ResponseWriter, r *http.Request) {
	siw.withID(w, r, siw.Handler.UpdateTag)
}

func (siw *ServerInterfaceWrapper) bindSlug(w http.ResponseWriter, r *http.Request) (string, bool) {
	var slug string
	err := runtime.BindStyledParameterWithOptions("simple", "slug", chi.URLParam(r, "slug"), &slug,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "slug", Err: err})
		return "", false
	}
	return slug, true
}

func (siw *ServerInterfaceWrapper) withID(
	w http.ResponseWriter,
	r *http.Request,
	handle func(http.ResponseWriter, *http.Request, openapi_types.UUID),
) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}
	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handle(w, r, id)
	}))
}

// InvalidParamFormatError reports a parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler creates http.Handler with routing matching the API paths.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerWithOptions creates http.Handler with additional options
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/health/live", wrapper.GetLiveness)
		r.Get(options.BaseURL+"/health/ready", wrapper.GetReadiness)
		r.Get(options.BaseURL+"/posts", wrapper.ListPosts)
		r.Post(options.BaseURL+"/posts", wrapper.CreatePost)
		r.Get(options.BaseURL+"/posts/slug/{slug}", wrapper.GetPostBySlug)
		r.Get(options.BaseURL+"/posts/slug/{slug}/metadata", wrapper.GetPostMetadata)
		r.Delete(options.BaseURL+"/posts/{id}", wrapper.DeletePost)
		r.Get(options.BaseURL+"/posts/{id}", wrapper.GetPost)
		r.Put(options.BaseURL+"/posts/{id}", wrapper.UpdatePost)
		r.Post(options.BaseURL+"/posts/{id}/publish", wrapper.PublishPost)
		r.Post(options.BaseURL+"/posts/{id}/unpublish", wrapper.UnpublishPost)
		r.Get(options.BaseURL+"/taxonomy", wrapper.GetTaxonomy)
		r.Get(options.BaseURL+"/categories", wrapper.ListCategories)
		r.Post(options.BaseURL+"/categories", wrapper.CreateCategory)
		r.Get(options.BaseURL+"/categories/options", wrapper.GetCategoryOptions)
		r.Get(options.BaseURL+"/categories/slug/{slug}", wrapper.GetCategoryBySlug)
		r.Get(options.BaseURL+"/categories/tree", wrapper.GetCategoryTree)
		r.Delete(options.BaseURL+"/categories/{id}", wrapper.DeleteCategory)
		r.Get(options.BaseURL+"/categories/{id}", wrapper.GetCategory)
		r.Put(options.BaseURL+"/categories/{id}", wrapper.UpdateCategory)
		r.Get(options.BaseURL+"/tags", wrapper.ListTags)
		r.Post(options.BaseURL+"/tags", wrapper.CreateTag)
		r.Get(options.BaseURL+"/tags/options", wrapper.GetTagOptions)
		r.Get(options.BaseURL+"/tags/slug/{slug}", wrapper.GetTagBySlug)
		r.Delete(options.BaseURL+"/tags/{id}", wrapper.DeleteTag)
		r.Get(options.BaseURL+"/tags/{id}", wrapper.GetTag)
		r.Put(options.BaseURL+"/tags/{id}", wrapper.UpdateTag)
	})

	return r
}
