package application

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/philly/folio/internal/platform/eventbus"
	"github.com/philly/folio/internal/platform/events"
	"github.com/philly/folio/internal/platform/logger"
	"github.com/philly/folio/internal/platform/metrics"
	"github.com/philly/folio/internal/posts/domain"
	"github.com/philly/folio/internal/posts/ports"
	"golang.org/x/sync/singleflight"
)

// SitemapService serves the public sitemap. The entry list is cached until a
// post event arrives; concurrent rebuilds share one repository read.
type SitemapService struct {
	repo   ports.PostRepository
	logger logger.Logger
	site   domain.Site
	now    func() time.Time

	group   singleflight.Group
	mu      sync.RWMutex
	cached  []domain.SitemapEntry
	version uint64
}

// NewSitemapService creates the service and subscribes it to post events
func NewSitemapService(repo ports.PostRepository, bus *eventbus.Bus, logger logger.Logger, site domain.Site) *SitemapService {
	s := &SitemapService{
		repo:   repo,
		logger: logger,
		site:   site,
		now:    time.Now,
	}
	for _, topic := range events.PostTopics {
		bus.Subscribe(topic, s.onPostChanged)
	}
	return s
}

// Entries returns the sitemap. When the repository cannot be read the base
// entries are returned and nothing is cached. Callers get their own copy.
func (s *SitemapService) Entries(ctx context.Context) []domain.SitemapEntry {
	s.mu.RLock()
	cached, version := s.cached, s.version
	s.mu.RUnlock()
	if cached != nil {
		return slices.Clone(cached)
	}

	// Keyed by version so callers arriving after an invalidation never join
	// a build that started before it.
	key := strconv.FormatUint(version, 10)
	v, _, _ := s.group.Do(key, func() (any, error) {
		// Shared by every waiter; one caller going away must not fail the rest.
		ctx := context.WithoutCancel(ctx)

		posts, err := s.repo.List(ctx, ports.ListFilter{PublishedOnly: true})
		if err != nil {
			metrics.SitemapBuildsTotal.WithLabelValues("fallback").Inc()
			s.logger.Warn(ctx, "sitemap falling back to base entries", "error", err)
			return domain.BaseSitemap(s.site.URL, s.now()), nil
		}

		entries := domain.BuildSitemap(s.site.URL, posts, s.now())
		metrics.SitemapBuildsTotal.WithLabelValues("ok").Inc()

		s.mu.Lock()
		// A post event during the build makes this result stale.
		if s.version == version {
			s.cached = entries
		}
		s.mu.Unlock()
		return entries, nil
	})
	return slices.Clone(v.([]domain.SitemapEntry))
}

// Invalidate drops the cached sitemap
func (s *SitemapService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = nil
	s.version++
}

func (s *SitemapService) onPostChanged(ctx context.Context, event eventbus.Event) error {
	s.Invalidate()
	return nil
}
