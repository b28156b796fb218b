package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/helixir/openalex-explorer/internal/domain"
	"github.com/helixir/openalex-explorer/internal/format"
)

// SearchPapersInput is the input schema for the paper search tool.
type SearchPapersInput struct {
	Query      string `json:"query" jsonschema:"the search query to find academic papers"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of papers to return (default 3, max 50)"`
	StartYear  int    `json:"start_year,omitempty" jsonschema:"only include papers published in or after this year"`
	EndYear    int    `json:"end_year,omitempty" jsonschema:"only include papers published in or before this year"`
	Preset     string `json:"preset,omitempty" jsonschema:"named filter preset: recent_papers, highly_cited, open_access, last_decade, or peer_reviewed"`
}

// SearchPapersOutput is the output schema for the paper search tool.
type SearchPapersOutput struct {
	Papers     []PaperOutput `json:"papers"`
	TotalCount int           `json:"total_count"`
}

// PaperOutput represents a single publication result.
type PaperOutput struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	DOI             string            `json:"doi,omitempty"`
	PublicationYear int               `json:"publication_year,omitempty"`
	Type            string            `json:"type,omitempty"`
	Abstract        string            `json:"abstract,omitempty"`
	Authors         []PaperAuthorInfo `json:"authors,omitempty"`
	Venue           string            `json:"venue,omitempty"`
	CitationCount   int               `json:"citation_count"`
	IsOpenAccess    bool              `json:"is_open_access,omitempty"`
	OpenAccessURL   string            `json:"open_access_url,omitempty"`
	Keywords        []string          `json:"keywords,omitempty"`
}

// PaperAuthorInfo represents an author entry on a publication.
type PaperAuthorInfo struct {
	Name        string `json:"name"`
	ORCID       string `json:"orcid,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
}

// GetPublicationInput is the input schema for the publication lookup tool.
type GetPublicationInput struct {
	DOI string `json:"doi" jsonschema:"the DOI or OpenAlex ID of the publication to fetch"`
}

// SearchAuthorsInput is the input schema for the author search tool.
type SearchAuthorsInput struct {
	Name       string `json:"name" jsonschema:"the author name to search for"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of authors to return (default 5, max 50)"`
}

// SearchAuthorsOutput is the output schema for the author search tool.
type SearchAuthorsOutput struct {
	Authors    []AuthorOutput `json:"authors"`
	TotalCount int            `json:"total_count"`
}

// AuthorOutput represents a single author profile result.
type AuthorOutput struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ORCID         string   `json:"orcid,omitempty"`
	Affiliation   string   `json:"affiliation,omitempty"`
	WorksCount    int      `json:"works_count"`
	CitationCount int      `json:"citation_count"`
	HIndex        int      `json:"h_index,omitempty"`
	ResearchAreas []string `json:"research_areas,omitempty"`
}

// SearchConceptsInput is the input schema for the concept search tool.
type SearchConceptsInput struct {
	Name       string `json:"name" jsonschema:"the concept or field of study to search for"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"maximum number of concepts to return (default 5, max 50)"`
	Level      *int   `json:"level,omitempty" jsonschema:"only include concepts at this hierarchy level (0 is a root discipline, up to 5)"`
}

// SearchConceptsOutput is the output schema for the concept search tool.
type SearchConceptsOutput struct {
	Concepts   []ConceptOutput `json:"concepts"`
	TotalCount int             `json:"total_count"`
}

// ConceptOutput represents a single concept result.
type ConceptOutput struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Level         int    `json:"level"`
	WorksCount    int    `json:"works_count"`
	CitationCount int    `json:"citation_count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_openalex_papers",
		Description: "Search OpenAlex for academic papers matching a query, with optional year range and filter presets",
	}, s.handleSearchPapers)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_publication_by_doi",
		Description: "Fetch one publication from OpenAlex by DOI or OpenAlex ID, including its reconstructed abstract",
	}, s.handleGetPublication)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_openalex_authors",
		Description: "Search OpenAlex for author profiles by name",
	}, s.handleSearchAuthors)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_openalex_concepts",
		Description: "Search OpenAlex for research concepts and fields of study, optionally restricted to one hierarchy level",
	}, s.handleSearchConcepts)
}

// handleSearchPapers handles the paper search tool invocation.
func (s *Server) handleSearchPapers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchPapersInput,
) (*mcp.CallToolResult, SearchPapersOutput, error) {
	criteria := domain.SearchCriteria{
		Query:     input.Query,
		StartYear: input.StartYear,
		EndYear:   input.EndYear,
		Limit:     input.MaxResults,
		Preset:    input.Preset,
	}

	results, err := s.ports.Explorer.SearchPublications(ctx, criteria)
	if err != nil {
		return nil, SearchPapersOutput{}, err
	}

	output := SearchPapersOutput{
		Papers:     make([]PaperOutput, len(results.Publications)),
		TotalCount: results.TotalCount,
	}
	for i := range results.Publications {
		output.Papers[i] = paperToOutput(results.Publications[i])
	}

	return textResult(format.Publications(results.Publications, results.TotalCount)), output, nil
}

// handleGetPublication handles the publication lookup tool invocation.
func (s *Server) handleGetPublication(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetPublicationInput,
) (*mcp.CallToolResult, PaperOutput, error) {
	publication, err := s.ports.Explorer.GetPublication(ctx, input.DOI)
	if err != nil {
		return nil, PaperOutput{}, err
	}

	text := format.Publications([]domain.Publication{*publication}, 1)
	return textResult(text), paperToOutput(*publication), nil
}

// handleSearchAuthors handles the author search tool invocation.
func (s *Server) handleSearchAuthors(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchAuthorsInput,
) (*mcp.CallToolResult, SearchAuthorsOutput, error) {
	criteria := domain.SearchCriteria{
		Query: input.Name,
		Limit: input.MaxResults,
	}

	results, err := s.ports.Explorer.SearchAuthors(ctx, criteria)
	if err != nil {
		return nil, SearchAuthorsOutput{}, err
	}

	output := SearchAuthorsOutput{
		Authors:    make([]AuthorOutput, len(results.Authors)),
		TotalCount: results.TotalCount,
	}
	for i := range results.Authors {
		output.Authors[i] = authorToOutput(results.Authors[i])
	}

	return textResult(format.Authors(results.Authors, results.TotalCount)), output, nil
}

// handleSearchConcepts handles the concept search tool invocation.
func (s *Server) handleSearchConcepts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchConceptsInput,
) (*mcp.CallToolResult, SearchConceptsOutput, error) {
	criteria := domain.SearchCriteria{
		Query: input.Name,
		Limit: input.MaxResults,
		Level: input.Level,
	}

	results, err := s.ports.Explorer.SearchConcepts(ctx, criteria)
	if err != nil {
		return nil, SearchConceptsOutput{}, err
	}

	output := SearchConceptsOutput{
		Concepts:   make([]ConceptOutput, len(results.Concepts)),
		TotalCount: results.TotalCount,
	}
	for i := range results.Concepts {
		output.Concepts[i] = conceptToOutput(results.Concepts[i])
	}

	return textResult(format.Concepts(results.Concepts, results.TotalCount)), output, nil
}

// textResult wraps display text in a tool result alongside the structured
// output the SDK serializes separately.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func paperToOutput(p domain.Publication) PaperOutput {
	out := PaperOutput{
		ID:              p.OpenAlexID,
		Title:           p.Title,
		DOI:             p.DOI,
		PublicationYear: p.PublicationYear,
		Type:            p.Type,
		Abstract:        p.Abstract,
		Venue:           p.Venue.Name,
		CitationCount:   p.CitationCount,
		IsOpenAccess:    p.OpenAccess.IsOpenAccess,
		OpenAccessURL:   p.OpenAccess.URL,
		Keywords:        p.Keywords,
	}

	if len(p.Authors) > 0 {
		out.Authors = make([]PaperAuthorInfo, len(p.Authors))
		for i, a := range p.Authors {
			out.Authors[i] = PaperAuthorInfo{
				Name:        a.Name,
				ORCID:       a.ORCID,
				Affiliation: a.Affiliation,
			}
		}
	}

	return out
}

func authorToOutput(a domain.AuthorProfile) AuthorOutput {
	return AuthorOutput{
		ID:            a.OpenAlexID,
		Name:          a.Name,
		ORCID:         a.ORCID,
		Affiliation:   a.Affiliation,
		WorksCount:    a.WorksCount,
		CitationCount: a.CitationCount,
		HIndex:        a.HIndex,
		ResearchAreas: a.ResearchAreas,
	}
}

func conceptToOutput(c domain.Concept) ConceptOutput {
	return ConceptOutput{
		ID:            c.OpenAlexID,
		Name:          c.Name,
		Description:   c.Description,
		Level:         c.Level,
		WorksCount:    c.WorksCount,
		CitationCount: c.CitationCount,
	}
}
