//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/google/wire"
	"github.com/philly/folio/internal/adapters/rest"
	"github.com/philly/folio/internal/platform/eventbus"
	"github.com/philly/folio/internal/platform/logger"
	"github.com/philly/folio/internal/posts/application"
	taxonomyapp "github.com/philly/folio/internal/taxonomy/application"
)

// InitializeApp creates a fully configured App with all dependencies
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		// Bootstrap phase
		logger.NewBootstrapLogger,
		LoadConfig,

		// Logger configuration
		provideLoggerConfig,
		logger.ProviderSet,

		// Storage selected by STORAGE_DRIVER
		OpenStorage,
		provideRepository,
		provideTagRepository,
		provideCategoryRepository,

		// Platform services
		eventbus.ProviderSet,

		// Application services
		provideSite,
		application.ProviderSet,
		taxonomyapp.ProviderSet,

		// REST handlers
		rest.ProviderSet,
		provideHealthConfig,

		// HTTP Server
		NewHTTPServer,

		// App
		NewApp,
	)

	return nil, nil, nil
}
