// Package openalex provides a client for the OpenAlex API.
//
// OpenAlex is a free, open catalog of scholarly works, authors, venues,
// institutions, and concepts. This package implements search and lookup
// for works, authors, and concepts, and normalizes the raw API payloads
// into the domain types used by the rest of the service.
//
// API Documentation: https://docs.openalex.org/
package openalex

// WorksResponse represents the top-level response from the works search endpoint.
type WorksResponse struct {
	Meta    Meta   `json:"meta"`
	Results []Work `json:"results"`
}

// AuthorsResponse represents the top-level response from the authors search endpoint.
type AuthorsResponse struct {
	Meta    Meta           `json:"meta"`
	Results []AuthorRecord `json:"results"`
}

// ConceptsResponse represents the top-level response from the concepts search endpoint.
type ConceptsResponse struct {
	Meta    Meta            `json:"meta"`
	Results []ConceptRecord `json:"results"`
}

// Meta contains metadata about the search results including pagination info.
type Meta struct {
	Count      int    `json:"count"`
	DBTime     int    `json:"db_response_time_ms"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	NextCursor string `json:"next_cursor"`
}

// Work represents an academic work (publication) in OpenAlex.
type Work struct {
	ID              string         `json:"id"`
	DOI             string         `json:"doi"`
	Title           string         `json:"title"`
	DisplayName     string         `json:"display_name"`
	PublicationYear int            `json:"publication_year"`
	PublicationDate string         `json:"publication_date"`
	Type            string         `json:"type"`
	Language        string         `json:"language"`
	CitedByCount    int            `json:"cited_by_count"`
	IsRetracted     bool           `json:"is_retracted"`
	IsParatext      bool           `json:"is_paratext"`
	IsOpenAccess    bool           `json:"is_oa"`
	OpenAccess      *OpenAccess    `json:"open_access"`
	Authorships     []Authorship   `json:"authorships"`
	PrimaryLocation *Location      `json:"primary_location"`
	BestOALocation  *Location      `json:"best_oa_location"`
	Concepts        []ConceptScore `json:"concepts"`
	IDs             WorkIDs        `json:"ids"`
	ReferencedWorks []string       `json:"referenced_works"`
	RelatedWorks    []string       `json:"related_works"`

	// Abstract is stored as an inverted index - we will reconstruct it
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
}

// OpenAccess contains open access information for a work.
type OpenAccess struct {
	IsOA     bool   `json:"is_oa"`
	OAURL    string `json:"oa_url"`
	OAStatus string `json:"oa_status"`
}

// Authorship represents an author's contribution to a work.
type Authorship struct {
	AuthorPosition string        `json:"author_position"`
	Author         AuthorInfo    `json:"author"`
	Institutions   []Institution `json:"institutions"`
}

// AuthorInfo contains basic author information embedded in a work.
type AuthorInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Orcid       string `json:"orcid"`
}

// Institution represents an academic institution.
type Institution struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	CountryCode string `json:"country_code"`
	Type        string `json:"type"`
}

// Location represents where a work is available.
type Location struct {
	Source         *Source `json:"source"`
	PDFURL         string  `json:"pdf_url"`
	LandingPageURL string  `json:"landing_page_url"`
	Version        string  `json:"version"`
}

// Source represents a publication venue (journal, repository, etc.).
type Source struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
	ISSNL       string `json:"issn_l"`
	IsOA        bool   `json:"is_oa"`
}

// ConceptScore is a concept tag attached to a work or author, with a
// relevance score.
type ConceptScore struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Level       int     `json:"level"`
	Score       float64 `json:"score"`
}

// WorkIDs contains the external identifiers of a work.
type WorkIDs struct {
	OpenAlex string `json:"openalex"`
	DOI      string `json:"doi"`
	MAG      string `json:"mag"`
	PMID     string `json:"pmid"`
	PMCID    string `json:"pmcid"`
}

// AuthorRecord represents an author profile in OpenAlex.
type AuthorRecord struct {
	ID                      string         `json:"id"`
	DisplayName             string         `json:"display_name"`
	DisplayNameAlternatives []string       `json:"display_name_alternatives"`
	Orcid                   string         `json:"orcid"`
	WorksCount              int            `json:"works_count"`
	CitedByCount            int            `json:"cited_by_count"`
	SummaryStats            SummaryStats   `json:"summary_stats"`
	LastKnownInstitution    *Institution   `json:"last_known_institution"`
	XConcepts               []ConceptScore `json:"x_concepts"`
	CountsByYear            []YearCount    `json:"counts_by_year"`
}

// SummaryStats contains citation metrics for an author.
type SummaryStats struct {
	HIndex   int `json:"h_index"`
	I10Index int `json:"i10_index"`
}

// YearCount is a per-year activity entry for an author or concept.
type YearCount struct {
	Year         int `json:"year"`
	WorksCount   int `json:"works_count"`
	CitedByCount int `json:"cited_by_count"`
}

// ConceptRecord represents a concept (field of study) in OpenAlex.
type ConceptRecord struct {
	ID              string         `json:"id"`
	DisplayName     string         `json:"display_name"`
	Description     string         `json:"description"`
	Level           int            `json:"level"`
	WorksCount      int            `json:"works_count"`
	CitedByCount    int            `json:"cited_by_count"`
	Wikidata        string         `json:"wikidata"`
	IDs             ConceptIDs     `json:"ids"`
	Ancestors       []ConceptScore `json:"ancestors"`
	RelatedConcepts []ConceptScore `json:"related_concepts"`
	CountsByYear    []YearCount    `json:"counts_by_year"`
}

// ConceptIDs contains the external identifiers of a concept.
type ConceptIDs struct {
	OpenAlex  string `json:"openalex"`
	Wikidata  string `json:"wikidata"`
	Wikipedia string `json:"wikipedia"`
	MAG       string `json:"mag"`
}
