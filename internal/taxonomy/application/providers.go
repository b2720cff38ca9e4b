package application

import (
	"github.com/google/wire"
	"github.com/philly/folio/internal/taxonomy/ports"
)

// ProviderSet is the wire provider set for the taxonomy application layer
var ProviderSet = wire.NewSet(
	NewTaxonomyService,
	NewPostTermsAdapter,
	wire.Bind(new(ports.PostTermsSource), new(*PostTermsAdapter)),
)
