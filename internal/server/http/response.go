package httpserver

import (
	"github.com/helixir/openalex-explorer/internal/domain"
)

// Response types for JSON serialization.

type publicationResponse struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	DOI             string              `json:"doi,omitempty"`
	PublicationYear int                 `json:"publication_year,omitempty"`
	PublicationDate string              `json:"publication_date,omitempty"`
	Type            string              `json:"type,omitempty"`
	Abstract        string              `json:"abstract,omitempty"`
	Authors         []authorResponse    `json:"authors,omitempty"`
	Venue           *venueResponse      `json:"venue,omitempty"`
	CitationCount   int                 `json:"citation_count"`
	ReferenceCount  int                 `json:"reference_count,omitempty"`
	RelatedCount    int                 `json:"related_count,omitempty"`
	Keywords        []string            `json:"keywords,omitempty"`
	OpenAccess      *openAccessResponse `json:"open_access,omitempty"`
	Language        string              `json:"language,omitempty"`
	IsRetracted     bool                `json:"is_retracted,omitempty"`
}

type authorResponse struct {
	Name        string `json:"name"`
	OpenAlexID  string `json:"openalex_id,omitempty"`
	ORCID       string `json:"orcid,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
	Position    string `json:"position,omitempty"`
}

type venueResponse struct {
	Name         string `json:"name"`
	Type         string `json:"type,omitempty"`
	ISSN         string `json:"issn,omitempty"`
	IsOpenAccess bool   `json:"is_open_access,omitempty"`
}

type openAccessResponse struct {
	IsOpenAccess bool   `json:"is_open_access"`
	Status       string `json:"status,omitempty"`
	URL          string `json:"url,omitempty"`
}

type searchPublicationsResponse struct {
	Publications []publicationResponse `json:"publications"`
	TotalCount   int                   `json:"total_count"`
	Message      string                `json:"message,omitempty"`
}

type authorProfileResponse struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	ORCID                 string   `json:"orcid,omitempty"`
	Affiliation           string   `json:"affiliation,omitempty"`
	Country               string   `json:"country,omitempty"`
	WorksCount            int      `json:"works_count"`
	CitationCount         int      `json:"citation_count"`
	HIndex                int      `json:"h_index,omitempty"`
	I10Index              int      `json:"i10_index,omitempty"`
	AlternativeNames      []string `json:"alternative_names,omitempty"`
	ResearchAreas         []string `json:"research_areas,omitempty"`
	FirstPublicationYear  int      `json:"first_publication_year,omitempty"`
	LatestPublicationYear int      `json:"latest_publication_year,omitempty"`
}

type searchAuthorsResponse struct {
	Authors    []authorProfileResponse `json:"authors"`
	TotalCount int                     `json:"total_count"`
	Message    string                  `json:"message,omitempty"`
}

type conceptRefResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type conceptResponse struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description,omitempty"`
	Level         int                  `json:"level"`
	WorksCount    int                  `json:"works_count"`
	CitationCount int                  `json:"citation_count"`
	WikidataID    string               `json:"wikidata_id,omitempty"`
	WikipediaURL  string               `json:"wikipedia_url,omitempty"`
	Ancestors     []conceptRefResponse `json:"ancestors,omitempty"`
	Related       []conceptRefResponse `json:"related,omitempty"`
}

type searchConceptsResponse struct {
	Concepts   []conceptResponse `json:"concepts"`
	TotalCount int               `json:"total_count"`
	Message    string            `json:"message,omitempty"`
}

// Converter functions

func domainPublicationToResponse(p domain.Publication) publicationResponse {
	resp := publicationResponse{
		ID:              p.OpenAlexID,
		Title:           p.Title,
		DOI:             p.DOI,
		PublicationYear: p.PublicationYear,
		PublicationDate: p.PublicationDate,
		Type:            p.Type,
		Abstract:        p.Abstract,
		CitationCount:   p.CitationCount,
		ReferenceCount:  p.ReferenceCount,
		RelatedCount:    p.RelatedCount,
		Keywords:        p.Keywords,
		Language:        p.Language,
		IsRetracted:     p.IsRetracted,
	}

	if len(p.Authors) > 0 {
		authors := make([]authorResponse, len(p.Authors))
		for i, a := range p.Authors {
			authors[i] = authorResponse{
				Name:        a.Name,
				OpenAlexID:  a.OpenAlexID,
				ORCID:       a.ORCID,
				Affiliation: a.Affiliation,
				Position:    a.Position,
			}
		}
		resp.Authors = authors
	}

	if p.Venue.Name != "" || p.Venue.Type != "" {
		resp.Venue = &venueResponse{
			Name:         p.Venue.Name,
			Type:         p.Venue.Type,
			ISSN:         p.Venue.ISSN,
			IsOpenAccess: p.Venue.IsOpenAccess,
		}
	}

	if p.OpenAccess.IsOpenAccess || p.OpenAccess.Status != "" {
		resp.OpenAccess = &openAccessResponse{
			IsOpenAccess: p.OpenAccess.IsOpenAccess,
			Status:       p.OpenAccess.Status,
			URL:          p.OpenAccess.URL,
		}
	}

	return resp
}

func domainAuthorToResponse(a domain.AuthorProfile) authorProfileResponse {
	return authorProfileResponse{
		ID:                    a.OpenAlexID,
		Name:                  a.Name,
		ORCID:                 a.ORCID,
		Affiliation:           a.Affiliation,
		Country:               a.Country,
		WorksCount:            a.WorksCount,
		CitationCount:         a.CitationCount,
		HIndex:                a.HIndex,
		I10Index:              a.I10Index,
		AlternativeNames:      a.AlternativeNames,
		ResearchAreas:         a.ResearchAreas,
		FirstPublicationYear:  a.FirstPublicationYear,
		LatestPublicationYear: a.LatestPublicationYear,
	}
}

func domainConceptToResponse(c domain.Concept) conceptResponse {
	return conceptResponse{
		ID:            c.OpenAlexID,
		Name:          c.Name,
		Description:   c.Description,
		Level:         c.Level,
		WorksCount:    c.WorksCount,
		CitationCount: c.CitationCount,
		WikidataID:    c.WikidataID,
		WikipediaURL:  c.WikipediaURL,
		Ancestors:     conceptRefsToResponse(c.Ancestors),
		Related:       conceptRefsToResponse(c.Related),
	}
}

func conceptRefsToResponse(refs []domain.ConceptRef) []conceptRefResponse {
	if len(refs) == 0 {
		return nil
	}
	out := make([]conceptRefResponse, len(refs))
	for i, ref := range refs {
		out[i] = conceptRefResponse{
			ID:    ref.OpenAlexID,
			Name:  ref.Name,
			Level: ref.Level,
		}
	}
	return out
}
