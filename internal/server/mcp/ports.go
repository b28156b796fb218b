package mcp

import (
	"context"

	"github.com/helixir/openalex-explorer/internal/domain"
	"github.com/helixir/openalex-explorer/internal/explorer"
)

// ExplorerService is the subset of explorer operations the tool handlers
// call.
type ExplorerService interface {
	SearchPublications(ctx context.Context, criteria domain.SearchCriteria) (*explorer.PublicationResults, error)
	GetPublication(ctx context.Context, id string) (*domain.Publication, error)
	SearchAuthors(ctx context.Context, criteria domain.SearchCriteria) (*explorer.AuthorResults, error)
	SearchConcepts(ctx context.Context, criteria domain.SearchCriteria) (*explorer.ConceptResults, error)
}

// Ports aggregates the services required by the MCP server. This provides a
// single injection point for dependency injection.
type Ports struct {
	// Explorer provides publication, author, and concept search.
	Explorer ExplorerService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Explorer == nil {
		return ErrMissingExplorer
	}
	return nil
}
