// Package explorer implements the search and lookup operations shared by
// the HTTP API and the MCP tool server.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/helixir/openalex-explorer/internal/domain"
	"github.com/helixir/openalex-explorer/internal/observability"
	"github.com/helixir/openalex-explorer/internal/openalex"
)

// Catalog defines the OpenAlex operations the service depends on.
// This decouples the service from the concrete openalex.Client, enabling
// straightforward testing with mock implementations.
type Catalog interface {
	SearchWorks(ctx context.Context, query string, filters openalex.Filters, limit int) (*openalex.WorksPage, error)
	GetWork(ctx context.Context, id string) (*domain.Publication, error)
	SearchAuthors(ctx context.Context, query string, limit int) (*openalex.AuthorsPage, error)
	SearchConcepts(ctx context.Context, query string, limit int) (*openalex.ConceptsPage, error)
}

// PublicationResults holds one page of publication search results.
type PublicationResults struct {
	Publications []domain.Publication
	TotalCount   int
}

// AuthorResults holds one page of author search results.
type AuthorResults struct {
	Authors    []domain.AuthorProfile
	TotalCount int
}

// ConceptResults holds one page of concept search results.
type ConceptResults struct {
	Concepts   []domain.Concept
	TotalCount int
}

// Service coordinates searches and lookups against the OpenAlex catalog.
type Service struct {
	catalog Catalog
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// NewService creates a new explorer service with the given dependencies.
// The metrics parameter may be nil (metrics recording will be skipped).
func NewService(catalog Catalog, logger zerolog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		catalog: catalog,
		logger:  observability.WithComponent(logger, "explorer"),
		metrics: metrics,
	}
}

// SearchPublications searches works matching the criteria. The criteria are
// validated before any network request; year bounds and presets become
// filter clauses.
func (s *Service) SearchPublications(ctx context.Context, criteria domain.SearchCriteria) (*PublicationResults, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	filters, err := openalex.SearchFilters(criteria, time.Now())
	if err != nil {
		return nil, err
	}

	limit := criteria.LimitOrDefault(domain.EntityPublications)
	logger := observability.WithSearchContext(s.logger, criteria.Query, string(domain.EntityPublications))
	logger.Info().
		Int("limit", limit).
		Str("preset", criteria.Preset).
		Str("filter", filters.Encode()).
		Msg("searching publications")

	if s.metrics != nil {
		s.metrics.RecordSearchStarted(string(domain.EntityPublications))
	}
	start := time.Now()

	page, err := s.catalog.SearchWorks(ctx, criteria.Query, filters, limit)
	if err != nil {
		s.recordSearchFailed(domain.EntityPublications, "works_search", start, err)
		logger.Warn().Err(err).Msg("publication search failed")
		return nil, err
	}

	s.recordSearchCompleted(domain.EntityPublications, "works_search", len(page.Publications), page.Skipped, start)
	logger.Info().
		Int("results", len(page.Publications)).
		Int("total", page.TotalCount).
		Int("skipped", page.Skipped).
		Dur("duration", time.Since(start)).
		Msg("publication search completed")

	return &PublicationResults{
		Publications: page.Publications,
		TotalCount:   page.TotalCount,
	}, nil
}

// GetPublication retrieves one publication by OpenAlex ID or DOI.
func (s *Service) GetPublication(ctx context.Context, id string) (*domain.Publication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("id", "must not be empty")
	}

	logger := observability.WithEntityContext(s.logger, "publication", id)
	logger.Info().Msg("looking up publication")

	if s.metrics != nil {
		s.metrics.RecordLookupStarted("publication")
	}
	start := time.Now()

	publication, err := s.catalog.GetWork(ctx, id)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordLookupFailed("publication", time.Since(start).Seconds())
			s.metrics.RecordUpstreamRequestFailed("works_get", errorType(err))
			if errors.Is(err, domain.ErrRateLimited) {
				s.metrics.RecordUpstreamRateLimited()
			}
		}
		logger.Warn().Err(err).Msg("publication lookup failed")
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordLookupCompleted("publication", time.Since(start).Seconds())
		s.metrics.RecordUpstreamRequest("works_get", time.Since(start).Seconds())
	}
	logger.Info().
		Str("openalex_id", publication.OpenAlexID).
		Dur("duration", time.Since(start)).
		Msg("publication lookup completed")

	return publication, nil
}

// SearchAuthors searches author profiles matching the criteria query.
func (s *Service) SearchAuthors(ctx context.Context, criteria domain.SearchCriteria) (*AuthorResults, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	limit := criteria.LimitOrDefault(domain.EntityAuthors)
	logger := observability.WithSearchContext(s.logger, criteria.Query, string(domain.EntityAuthors))
	logger.Info().Int("limit", limit).Msg("searching authors")

	if s.metrics != nil {
		s.metrics.RecordSearchStarted(string(domain.EntityAuthors))
	}
	start := time.Now()

	page, err := s.catalog.SearchAuthors(ctx, criteria.Query, limit)
	if err != nil {
		s.recordSearchFailed(domain.EntityAuthors, "authors_search", start, err)
		logger.Warn().Err(err).Msg("author search failed")
		return nil, err
	}

	s.recordSearchCompleted(domain.EntityAuthors, "authors_search", len(page.Authors), page.Skipped, start)
	logger.Info().
		Int("results", len(page.Authors)).
		Int("total", page.TotalCount).
		Dur("duration", time.Since(start)).
		Msg("author search completed")

	return &AuthorResults{
		Authors:    page.Authors,
		TotalCount: page.TotalCount,
	}, nil
}

// SearchConcepts searches concepts matching the criteria query. When the
// criteria carry a level, concepts at other hierarchy levels are dropped
// after retrieval; the upstream total count is returned unchanged.
func (s *Service) SearchConcepts(ctx context.Context, criteria domain.SearchCriteria) (*ConceptResults, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	limit := criteria.LimitOrDefault(domain.EntityConcepts)
	logger := observability.WithSearchContext(s.logger, criteria.Query, string(domain.EntityConcepts))
	logger.Info().Int("limit", limit).Msg("searching concepts")

	if s.metrics != nil {
		s.metrics.RecordSearchStarted(string(domain.EntityConcepts))
	}
	start := time.Now()

	page, err := s.catalog.SearchConcepts(ctx, criteria.Query, limit)
	if err != nil {
		s.recordSearchFailed(domain.EntityConcepts, "concepts_search", start, err)
		logger.Warn().Err(err).Msg("concept search failed")
		return nil, err
	}

	concepts := page.Concepts
	if criteria.Level != nil {
		filtered := make([]domain.Concept, 0, len(concepts))
		for _, concept := range concepts {
			if concept.Level == *criteria.Level {
				filtered = append(filtered, concept)
			}
		}
		concepts = filtered
	}

	s.recordSearchCompleted(domain.EntityConcepts, "concepts_search", len(concepts), page.Skipped, start)
	logger.Info().
		Int("results", len(concepts)).
		Int("total", page.TotalCount).
		Dur("duration", time.Since(start)).
		Msg("concept search completed")

	return &ConceptResults{
		Concepts:   concepts,
		TotalCount: page.TotalCount,
	}, nil
}

func (s *Service) recordSearchFailed(entity domain.EntityType, endpoint string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordSearchFailed(string(entity), time.Since(start).Seconds())
	s.metrics.RecordUpstreamRequestFailed(endpoint, errorType(err))
	if errors.Is(err, domain.ErrRateLimited) {
		s.metrics.RecordUpstreamRateLimited()
	}
}

func (s *Service) recordSearchCompleted(entity domain.EntityType, endpoint string, results, skipped int, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordSearchCompleted(string(entity), results, time.Since(start).Seconds())
	s.metrics.RecordUpstreamRequest(endpoint, time.Since(start).Seconds())
	for i := 0; i < skipped; i++ {
		s.metrics.RecordNormalizationFailure(singular(entity))
	}
}

// singular maps an entity collection to the per-record label used by the
// normalization failure metric.
func singular(entity domain.EntityType) string {
	switch entity {
	case domain.EntityAuthors:
		return "author"
	case domain.EntityConcepts:
		return "concept"
	default:
		return "publication"
	}
}

// errorType classifies an error for the upstream failure metric label.
func errorType(err error) string {
	var rateErr *domain.RateLimitError
	if errors.As(err, &rateErr) {
		return "rate_limited"
	}
	var apiErr *domain.ExternalAPIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode > 0 {
			return fmt.Sprintf("http_%d", apiErr.StatusCode)
		}
		return "network"
	}
	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		return "not_found"
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return "unknown"
}
