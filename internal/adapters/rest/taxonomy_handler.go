package rest

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/philly/folio/internal/adapters/api"
	taxonomyapp "github.com/philly/folio/internal/taxonomy/application"
	taxdomain "github.com/philly/folio/internal/taxonomy/domain"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// TaxonomyHandler handles HTTP requests for managed tags and categories
type TaxonomyHandler struct {
	*BaseHandler
	service *taxonomyapp.TaxonomyService
}

// NewTaxonomyHandler creates a new taxonomy handler
func NewTaxonomyHandler(base *BaseHandler, service *taxonomyapp.TaxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Tags

// ListTags returns every tag, or the tags named by ids in that order
func (h *TaxonomyHandler) ListTags(w http.ResponseWriter, r *http.Request, params api.ListTagsParams) {
	var (
		tags []*taxdomain.Tag
		err  error
	)
	if params.Ids != nil {
		ids := make([]uuid.UUID, len(*params.Ids))
		for i, id := range *params.Ids {
			ids[i] = uuid.UUID(id)
		}
		tags, err = h.service.TagsByIDs(r.Context(), ids)
	} else {
		tags, err = h.service.ListTags(r.Context())
	}
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	out := make([]api.Tag, len(tags))
	for i, t := range tags {
		out[i] = tagToAPI(t)
	}
	h.WriteJSONResponse(w, r, out, http.StatusOK)
}

// CreateTag creates a tag
func (h *TaxonomyHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req api.TagRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	tag, err := h.service.CreateTag(r.Context(), tagInput(req))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, tagToAPI(tag), http.StatusCreated)
}

// GetTagOptions lists tags for post editors
func (h *TaxonomyHandler) GetTagOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.TagOptions(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	out := make([]api.TagOption, len(options))
	for i, o := range options {
		out[i] = api.TagOption{Id: o.ID, Name: o.Name, Slug: o.Slug}
	}
	h.WriteJSONResponse(w, r, out, http.StatusOK)
}

// GetTagBySlug retrieves a tag by slug
func (h *TaxonomyHandler) GetTagBySlug(w http.ResponseWriter, r *http.Request, slug string) {
	tag, err := h.service.GetTagBySlug(r.Context(), slug)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, tagToAPI(tag), http.StatusOK)
}

// GetTag retrieves a tag by ID
func (h *TaxonomyHandler) GetTag(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	tag, err := h.service.GetTag(r.Context(), uuid.UUID(id))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, tagToAPI(tag), http.StatusOK)
}

// UpdateTag updates a tag
func (h *TaxonomyHandler) UpdateTag(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	var req api.TagRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	tag, err := h.service.UpdateTag(r.Context(), uuid.UUID(id), tagInput(req))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, tagToAPI(tag), http.StatusOK)
}

// DeleteTag deletes a tag no published post carries
func (h *TaxonomyHandler) DeleteTag(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	if err := h.service.DeleteTag(r.Context(), uuid.UUID(id)); err != nil {
		h.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Categories

// ListCategories returns every category ordered by sort order, then name
func (h *TaxonomyHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	out := make([]api.Category, len(categories))
	for i, c := range categories {
		out[i] = categoryToAPI(c)
	}
	h.WriteJSONResponse(w, r, out, http.StatusOK)
}

// CreateCategory creates a category
func (h *TaxonomyHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req api.CategoryRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	category, err := h.service.CreateCategory(r.Context(), categoryInput(req))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, categoryToAPI(category), http.StatusCreated)
}

// GetCategoryOptions lists categories for post editors
func (h *TaxonomyHandler) GetCategoryOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.CategoryOptions(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	out := make([]api.CategoryOption, len(options))
	for i, o := range options {
		out[i] = api.CategoryOption{Id: o.ID, Name: o.Name, Slug: o.Slug, ParentId: o.ParentID}
	}
	h.WriteJSONResponse(w, r, out, http.StatusOK)
}

// GetCategoryTree returns the categories nested under their parents
func (h *TaxonomyHandler) GetCategoryTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.service.CategoryTree(r.Context())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, categoryTreeToAPI(tree), http.StatusOK)
}

// GetCategoryBySlug retrieves a category by slug
func (h *TaxonomyHandler) GetCategoryBySlug(w http.ResponseWriter, r *http.Request, slug string) {
	category, err := h.service.GetCategoryBySlug(r.Context(), slug)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, categoryToAPI(category), http.StatusOK)
}

// GetCategory retrieves a category by ID
func (h *TaxonomyHandler) GetCategory(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	category, err := h.service.GetCategory(r.Context(), uuid.UUID(id))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, categoryToAPI(category), http.StatusOK)
}

// UpdateCategory updates a category
func (h *TaxonomyHandler) UpdateCategory(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	var req api.CategoryRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	category, err := h.service.UpdateCategory(r.Context(), uuid.UUID(id), categoryInput(req))
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	h.WriteJSONResponse(w, r, categoryToAPI(category), http.StatusOK)
}

// DeleteCategory deletes an empty category without subcategories
func (h *TaxonomyHandler) DeleteCategory(w http.ResponseWriter, r *http.Request, id openapi_types.UUID) {
	if err := h.service.DeleteCategory(r.Context(), uuid.UUID(id)); err != nil {
		h.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Helper functions

func tagInput(req api.TagRequest) taxdomain.TermInput {
	return taxdomain.TermInput{
		Name:        req.Name,
		Slug:        deref(req.Slug),
		Description: deref(req.Description),
	}
}

func categoryInput(req api.CategoryRequest) taxdomain.CategoryInput {
	input := taxdomain.CategoryInput{
		TermInput: taxdomain.TermInput{
			Name:        req.Name,
			Slug:        deref(req.Slug),
			Description: deref(req.Description),
		},
		SortOrder: req.SortOrder,
	}
	if req.ParentId != nil {
		parent := uuid.UUID(*req.ParentId)
		input.ParentID = &parent
	}
	return input
}

func tagToAPI(t *taxdomain.Tag) api.Tag {
	return api.Tag{
		Id:          t.ID,
		Name:        t.Name,
		Slug:        t.Slug,
		Description: t.Description,
		Count:       t.Count,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func categoryToAPI(c *taxdomain.Category) api.Category {
	return api.Category{
		Id:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Count:       c.Count,
		ParentId:    c.ParentID,
		SortOrder:   c.SortOrder,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func categoryTreeToAPI(nodes []*taxdomain.CategoryNode) []api.CategoryTreeNode {
	out := make([]api.CategoryTreeNode, len(nodes))
	for i, n := range nodes {
		out[i] = api.CategoryTreeNode{
			Category: categoryToAPI(n.Category),
			Children: categoryTreeToAPI(n.Children),
		}
	}
	return out
}
