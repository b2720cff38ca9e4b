package server

import (
	"github.com/philly/folio/internal/adapters/rest"
	"github.com/philly/folio/internal/platform/logger"
	"github.com/philly/folio/internal/posts/domain"
	"github.com/philly/folio/internal/posts/ports"
	taxonomyports "github.com/philly/folio/internal/taxonomy/ports"
)

// Version is the build version reported by the health probes, set with
// -ldflags "-X github.com/philly/folio/internal/server.Version=..."
var Version = "dev"

// provideLoggerConfig creates logger config from server config
func provideLoggerConfig(config Config) logger.Config {
	return logger.Config{
		Environment: config.Environment,
		LogLevel:    config.LogLevel,
		Backend:     config.LogBackend,
		File:        config.LogFile,
	}
}

// provideRepository exposes the post repository of the opened storage
func provideRepository(storage Storage) ports.PostRepository {
	return storage.Posts
}

// provideTagRepository exposes the tag repository of the opened storage
func provideTagRepository(storage Storage) taxonomyports.TagRepository {
	return storage.Tags
}

// provideCategoryRepository exposes the category repository of the opened
// storage
func provideCategoryRepository(storage Storage) taxonomyports.CategoryRepository {
	return storage.Categories
}

// provideHealthConfig describes the build and storage to the health probes
func provideHealthConfig(storage Storage) rest.HealthConfig {
	return rest.HealthConfig{
		Version: Version,
		Durable: storage.Durable,
	}
}

// provideSite describes the public site metadata and sitemaps point at
func provideSite(config Config) domain.Site {
	return domain.Site{
		URL:            config.SiteURL,
		DefaultOGImage: config.OGDefaultImage,
	}
}
