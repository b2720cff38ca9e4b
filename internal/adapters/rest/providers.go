package rest

import (
	"github.com/google/wire"
	"github.com/philly/folio/internal/posts/application"
)

// ProviderSet is the wire provider set for REST handlers
var ProviderSet = wire.NewSet(
	NewBaseHandler,
	NewHealthHandler,
	NewPostsHandler,
	NewTaxonomyHandler,
	NewSitemapHandler,
	wire.Bind(new(SitemapSource), new(*application.SitemapService)),
	NewServer, // Combined server that implements api.ServerInterface
)
