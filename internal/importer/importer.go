// Package importer loads posts from exports of other blog backends and
// stores them through the posts service.
package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/philly/folio/internal/platform/logger"
	"github.com/philly/folio/internal/platform/metrics"
	"github.com/philly/folio/internal/posts/application"
	"github.com/philly/folio/internal/posts/domain"
)

// Source defines the interface for all post sources
type Source interface {
	// Name returns the name of the source for logging and metrics
	Name() string

	// Load reads every post of the source. Instants are returned in the
	// shape the source delivers them.
	Load(ctx context.Context) ([]*domain.Post, error)
}

// Sink stores imported posts. Importing the same export twice must update
// rather than duplicate.
type Sink interface {
	ImportPost(ctx context.Context, post *domain.Post) (application.ImportOutcome, error)
}

// Report counts what an import run did per outcome
type Report struct {
	Created int
	Updated int
	Failed  int
}

// Total is the number of posts the run processed
func (r Report) Total() int { return r.Created + r.Updated + r.Failed }

const outcomeFailed = "failed"

// Orchestrator manages and runs multiple sources in order
type Orchestrator struct {
	sources []Source
	sink    Sink
	logger  logger.Logger
}

// NewOrchestrator creates a new import orchestrator
func NewOrchestrator(logger logger.Logger, sink Sink, sources []Source) *Orchestrator {
	return &Orchestrator{
		sources: sources,
		sink:    sink,
		logger:  logger,
	}
}

// RunAll imports every source in order. A source that cannot be read stops
// the run; posts that fail to store are counted and reported together once
// all sources are done.
func (o *Orchestrator) RunAll(ctx context.Context) (Report, error) {
	o.logger.Info(ctx, "starting import", "source_count", len(o.sources))

	var report Report
	var failures []error
	for _, source := range o.sources {
		o.logger.Info(ctx, "loading source", "source", source.Name())

		posts, err := source.Load(ctx)
		if err != nil {
			o.logger.Error(ctx, "source failed", "source", source.Name(), "error", err)
			return report, fmt.Errorf("source %s failed: %w", source.Name(), err)
		}

		for _, post := range posts {
			if err := ctx.Err(); err != nil {
				return report, err
			}

			outcome, err := o.sink.ImportPost(ctx, post)
			if err != nil {
				report.Failed++
				metrics.ImportedPostsTotal.WithLabelValues(source.Name(), outcomeFailed).Inc()
				o.logger.Warn(ctx, "post import failed", "source", source.Name(), "slug", post.Slug, "error", err)
				failures = append(failures, fmt.Errorf("%s: %q: %w", source.Name(), post.Title, err))
				continue
			}

			switch outcome {
			case application.ImportCreated:
				report.Created++
			case application.ImportUpdated:
				report.Updated++
			}
			metrics.ImportedPostsTotal.WithLabelValues(source.Name(), string(outcome)).Inc()
		}

		o.logger.Info(ctx, "source imported", "source", source.Name(), "posts", len(posts))
	}

	o.logger.Info(ctx, "import finished",
		"created", report.Created,
		"updated", report.Updated,
		"failed", report.Failed,
	)
	return report, errors.Join(failures...)
}
