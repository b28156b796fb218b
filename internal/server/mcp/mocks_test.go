package mcp

import (
	"context"

	"github.com/helixir/openalex-explorer/internal/domain"
	"github.com/helixir/openalex-explorer/internal/explorer"
)

// mockExplorerService is a mock implementation of ExplorerService.
type mockExplorerService struct {
	publications *explorer.PublicationResults
	publication  *domain.Publication
	authors      *explorer.AuthorResults
	concepts     *explorer.ConceptResults
	err          error

	lastCriteria domain.SearchCriteria
	lastID       string
}

func (m *mockExplorerService) SearchPublications(_ context.Context, criteria domain.SearchCriteria) (*explorer.PublicationResults, error) {
	m.lastCriteria = criteria
	if m.err != nil {
		return nil, m.err
	}
	if m.publications == nil {
		return &explorer.PublicationResults{Publications: []domain.Publication{}}, nil
	}
	return m.publications, nil
}

func (m *mockExplorerService) GetPublication(_ context.Context, id string) (*domain.Publication, error) {
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return m.publication, nil
}

func (m *mockExplorerService) SearchAuthors(_ context.Context, criteria domain.SearchCriteria) (*explorer.AuthorResults, error) {
	m.lastCriteria = criteria
	if m.err != nil {
		return nil, m.err
	}
	if m.authors == nil {
		return &explorer.AuthorResults{Authors: []domain.AuthorProfile{}}, nil
	}
	return m.authors, nil
}

func (m *mockExplorerService) SearchConcepts(_ context.Context, criteria domain.SearchCriteria) (*explorer.ConceptResults, error) {
	m.lastCriteria = criteria
	if m.err != nil {
		return nil, m.err
	}
	if m.concepts == nil {
		return &explorer.ConceptResults{Concepts: []domain.Concept{}}, nil
	}
	return m.concepts, nil
}
