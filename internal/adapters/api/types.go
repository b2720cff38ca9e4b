// Package api holds the HTTP contract of the service: request and response
// bodies, query parameters and the ServerInterface the REST handlers
// implement.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for HealthStatusStatus.
const (
	Degraded  HealthStatusStatus = "degraded"
	Healthy   HealthStatusStatus = "healthy"
	Unhealthy HealthStatusStatus = "unhealthy"
)

// Defines values for HealthStatusChecksDatabase.
const (
	Down HealthStatusChecksDatabase = "down"
	Up   HealthStatusChecksDatabase = "up"
)

// Defines values for ListPostsParamsSort.
const (
	ListPostsParamsSortNew ListPostsParamsSort = "new"
	ListPostsParamsSortOld ListPostsParamsSort = "old"
)

// AuthorInput identifies the author of a new post.
type AuthorInput struct {
	Id    string  `json:"id" validate:"required,max=128"`
	Name  string  `json:"name" validate:"max=200"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// CreatePostRequest defines model for CreatePostRequest.
type CreatePostRequest struct {
	Author         AuthorInput `json:"author"`
	Title          string      `json:"title" validate:"required,max=200"`
	Content        string      `json:"content"`
	Excerpt        *string     `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Tags           []string    `json:"tags,omitempty" validate:"max=50,dive,max=100"`
	Category       *string     `json:"category,omitempty" validate:"omitempty,max=100"`
	Published      *bool       `json:"published,omitempty"`
	FeaturedImage  *string     `json:"featuredImage,omitempty" validate:"omitempty,max=2048"`
	SeoTitle       *string     `json:"seoTitle,omitempty" validate:"omitempty,max=200"`
	SeoDescription *string     `json:"seoDescription,omitempty" validate:"omitempty,max=500"`
	SeoKeywords    []string    `json:"seoKeywords,omitempty" validate:"max=50,dive,max=100"`
}

// UpdatePostRequest defines model for UpdatePostRequest.
type UpdatePostRequest struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Content        string   `json:"content"`
	Excerpt        *string  `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Tags           []string `json:"tags,omitempty" validate:"max=50,dive,max=100"`
	Category       *string  `json:"category,omitempty" validate:"omitempty,max=100"`
	FeaturedImage  *string  `json:"featuredImage,omitempty" validate:"omitempty,max=2048"`
	SeoTitle       *string  `json:"seoTitle,omitempty" validate:"omitempty,max=200"`
	SeoDescription *string  `json:"seoDescription,omitempty" validate:"omitempty,max=500"`
	SeoKeywords    []string `json:"seoKeywords,omitempty" validate:"max=50,dive,max=100"`
}

// Error defines model for Error.
type Error struct {
	Error        string  `json:"error"`
	BusinessCode *string `json:"business_code,omitempty"`
	Message      string  `json:"message"`
	Context      any     `json:"context,omitempty"`
}

// HealthStatus defines model for HealthStatus.
type HealthStatus struct {
	Checks *struct {
		Database *HealthStatusChecksDatabase `json:"database,omitempty"`
	} `json:"checks,omitempty"`
	Status    HealthStatusStatus `json:"status"`
	Timestamp time.Time          `json:"timestamp"`
	Version   *string            `json:"version,omitempty"`
}

// HealthStatusStatus defines model for HealthStatus.Status.
type HealthStatusStatus string

// HealthStatusChecksDatabase defines model for HealthStatus.Checks.Database.
type HealthStatusChecksDatabase string

// Post defines model for Post.
type Post struct {
	Id             openapi_types.UUID `json:"id"`
	Title          string             `json:"title"`
	Content        string             `json:"content"`
	Excerpt        *string            `json:"excerpt,omitempty"`
	Slug           string             `json:"slug"`
	Tags           []string           `json:"tags"`
	Category       *string            `json:"category,omitempty"`
	Published      bool               `json:"published"`
	PublishedAt    *time.Time         `json:"publishedAt,omitempty"`
	UpdatedAt      *time.Time         `json:"updatedAt,omitempty"`
	AuthorId       string             `json:"authorId"`
	AuthorName     string             `json:"authorName"`
	AuthorEmail    string             `json:"authorEmail,omitempty"`
	FeaturedImage  *string            `json:"featuredImage,omitempty"`
	SeoTitle       *string            `json:"seoTitle,omitempty"`
	SeoDescription *string            `json:"seoDescription,omitempty"`
	SeoKeywords    []string           `json:"seoKeywords"`
	ReadingTime    int                `json:"readingTime"`
}

// PostSummary defines model for PostSummary.
type PostSummary struct {
	Id            openapi_types.UUID `json:"id"`
	Title         string             `json:"title"`
	Excerpt       *string            `json:"excerpt,omitempty"`
	Slug          string             `json:"slug"`
	Tags          []string           `json:"tags"`
	Category      *string            `json:"category,omitempty"`
	Published     bool               `json:"published"`
	PublishedAt   *time.Time         `json:"publishedAt,omitempty"`
	AuthorName    string             `json:"authorName"`
	FeaturedImage *string            `json:"featuredImage,omitempty"`
	ReadingTime   int                `json:"readingTime"`
}

// PaginationMeta defines model for PaginationMeta.
type PaginationMeta struct {
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalItems   int   `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	Pages        []int `json:"pages"`
}

// PaginatedPosts defines model for PaginatedPosts.
type PaginatedPosts struct {
	Data []PostSummary  `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// OpenGraph defines model for OpenGraph.
type OpenGraph struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Url         string   `json:"url"`
	SiteName    *string  `json:"siteName,omitempty"`
	Images      []string `json:"images,omitempty"`
	Tags        []string `json:"tags"`
}

// TwitterCard defines model for TwitterCard.
type TwitterCard struct {
	Card        string   `json:"card"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images,omitempty"`
}

// PostMetadata defines model for PostMetadata.
type PostMetadata struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Keywords    []string    `json:"keywords"`
	Canonical   string      `json:"canonical"`
	OpenGraph   OpenGraph   `json:"openGraph"`
	Twitter     TwitterCard `json:"twitter"`
	JsonLd      any         `json:"jsonLd"`
}

// TermCount defines model for TermCount.
type TermCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Taxonomy defines model for Taxonomy.
type Taxonomy struct {
	Tags       []TermCount `json:"tags"`
	Categories []TermCount `json:"categories"`
}

// Tag defines model for Tag.
type Tag struct {
	Id          openapi_types.UUID `json:"id"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"`
	Count       int                `json:"count"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// Category defines model for Category.
type Category struct {
	Id          openapi_types.UUID  `json:"id"`
	Name        string              `json:"name"`
	Slug        string              `json:"slug"`
	Description string              `json:"description"`
	Count       int                 `json:"count"`
	ParentId    *openapi_types.UUID `json:"parentId,omitempty"`
	SortOrder   int                 `json:"sortOrder"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// CategoryTreeNode defines model for CategoryTreeNode.
type CategoryTreeNode struct {
	Category
	Children []CategoryTreeNode `json:"children"`
}

// TagOption defines model for TagOption.
type TagOption struct {
	Id   openapi_types.UUID `json:"id"`
	Name string             `json:"name"`
	Slug string             `json:"slug"`
}

// CategoryOption defines model for CategoryOption.
type CategoryOption struct {
	Id       openapi_types.UUID  `json:"id"`
	Name     string              `json:"name"`
	Slug     string              `json:"slug"`
	ParentId *openapi_types.UUID `json:"parentId,omitempty"`
}

// TagRequest defines model for TagRequest.
type TagRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Slug        *string `json:"slug,omitempty" validate:"omitempty,max=150"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// CategoryRequest defines model for CategoryRequest.
type CategoryRequest struct {
	Name        string              `json:"name" validate:"required,max=100"`
	Slug        *string             `json:"slug,omitempty" validate:"omitempty,max=150"`
	Description *string             `json:"description,omitempty" validate:"omitempty,max=1000"`
	ParentId    *openapi_types.UUID `json:"parentId,omitempty"`
	SortOrder   *int                `json:"sortOrder,omitempty" validate:"omitempty,min=0"`
}

// ListTagsParams defines parameters for ListTags.
type ListTagsParams struct {
	// Ids restricts the listing to these tags, in this order
	Ids *[]openapi_types.UUID `form:"ids,omitempty" json:"ids,omitempty"`
}

// ListPostsParams defines parameters for ListPosts.
type ListPostsParams struct {
	// Q is a free-text query matched against title and excerpt or content
	Q        *string              `form:"q,omitempty" json:"q,omitempty"`
	Tag      *string              `form:"tag,omitempty" json:"tag,omitempty"`
	Category *string              `form:"category,omitempty" json:"category,omitempty"`
	Sort     *ListPostsParamsSort `form:"sort,omitempty" json:"sort,omitempty"`
	Page     *int                 `form:"page,omitempty" json:"page,omitempty"`
	Limit    *int                 `form:"limit,omitempty" json:"limit,omitempty"`
	// Drafts includes unpublished posts (admin listing)
	Drafts   *bool   `form:"drafts,omitempty" json:"drafts,omitempty"`
	AuthorId *string `form:"authorId,omitempty" json:"authorId,omitempty"`
}

// ListPostsParamsSort defines parameters for ListPosts.
type ListPostsParamsSort string

// CreatePostJSONRequestBody defines body for CreatePost for application/json ContentType.
type CreatePostJSONRequestBody = CreatePostRequest

// UpdatePostJSONRequestBody defines body for UpdatePost for application/json ContentType.
type UpdatePostJSONRequestBody = UpdatePostRequest

// CreateTagJSONRequestBody defines body for CreateTag for application/json ContentType.
type CreateTagJSONRequestBody = TagRequest

// UpdateTagJSONRequestBody defines body for UpdateTag for application/json ContentType.
type UpdateTagJSONRequestBody = TagRequest

// CreateCategoryJSONRequestBody defines body for CreateCategory for application/json ContentType.
type CreateCategoryJSONRequestBody = CategoryRequest

// UpdateCategoryJSONRequestBody defines body for UpdateCategory for application/json ContentType.
type UpdateCategoryJSONRequestBody = CategoryRequest
