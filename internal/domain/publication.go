// Package domain provides domain models and business logic for the OpenAlex
// Explorer service.
package domain

import "strings"

// Author represents a work author with optional affiliation and ORCID.
// An author with no known affiliation carries an empty Affiliation field.
type Author struct {
	Name        string `json:"name"`
	OpenAlexID  string `json:"openalex_id,omitempty"`
	ORCID       string `json:"orcid,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
	Position    string `json:"position,omitempty"`
}

// String returns a formatted string representation of the author.
func (a Author) String() string {
	var sb strings.Builder
	sb.WriteString(a.Name)

	if a.Affiliation != "" {
		sb.WriteString(" (")
		sb.WriteString(a.Affiliation)
		sb.WriteString(")")
	}

	if a.ORCID != "" {
		sb.WriteString(" [")
		sb.WriteString(a.ORCID)
		sb.WriteString("]")
	}

	return sb.String()
}

// Venue describes where a work was published.
type Venue struct {
	Name         string
	Type         string
	ISSN         string
	IsOpenAccess bool
}

// OpenAccessInfo describes the open access state of a work.
type OpenAccessInfo struct {
	IsOpenAccess bool
	Status       string
	URL          string
}

// Publication is a normalized OpenAlex work.
type Publication struct {
	OpenAlexID      string
	Title           string
	DOI             string
	PublicationYear int
	PublicationDate string
	Type            string
	Abstract        string
	Authors         []Author
	Venue           Venue
	CitationCount   int
	ReferenceCount  int
	RelatedCount    int
	Keywords        []string
	OpenAccess      OpenAccessInfo
	Language        string
	IsRetracted     bool
}

// HasAbstract returns true if the work carries a reconstructed abstract.
func (p *Publication) HasAbstract() bool {
	return p.Abstract != ""
}
