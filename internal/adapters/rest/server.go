package rest

import (
	"github.com/philly/folio/internal/adapters/api"
)

// Server combines all handlers to implement api.ServerInterface
type Server struct {
	*HealthHandler
	*PostsHandler
	*TaxonomyHandler
}

// NewServer creates a new server that implements api.ServerInterface
func NewServer(
	healthHandler *HealthHandler,
	postsHandler *PostsHandler,
	taxonomyHandler *TaxonomyHandler,
) api.ServerInterface {
	return &Server{
		HealthHandler:   healthHandler,
		PostsHandler:    postsHandler,
		TaxonomyHandler: taxonomyHandler,
	}
}

// Ensure Server implements api.ServerInterface
var _ api.ServerInterface = (*Server)(nil)

// The methods are already implemented by the embedded handlers:
// - GetLiveness, GetReadiness (from HealthHandler)
// - ListPosts, CreatePost, GetPost, GetPostBySlug, GetPostMetadata, UpdatePost,
//   PublishPost, UnpublishPost, DeletePost, GetTaxonomy (from PostsHandler)
// - the tag and category endpoints (from TaxonomyHandler)
