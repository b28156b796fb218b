// Package format renders search results as human-readable text blocks for
// display surfaces (MCP text content, HTTP message fields). Structured
// responses never go through this package.
package format

import (
	"fmt"
	"strings"

	"github.com/helixir/openalex-explorer/internal/domain"
)

const (
	// maxDisplayAuthors is how many author names are spelled out before the
	// rest collapse into an "and N others" suffix.
	maxDisplayAuthors = 3

	// abstractDisplayLimit caps displayed abstracts, in runes.
	abstractDisplayLimit = 300
)

// Publications renders a numbered block per publication. An empty list
// yields an explicit indicator, distinct from an error.
func Publications(publications []domain.Publication, total int) string {
	if len(publications) == 0 {
		return "No publications found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Showing %d of %d publications.\n", len(publications), total)

	for i, publication := range publications {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%d. %s\n", i+1, publication.Title)
		if publication.DOI != "" {
			fmt.Fprintf(&b, "   DOI: %s\n", publication.DOI)
		}
		if publication.PublicationYear != 0 {
			fmt.Fprintf(&b, "   Year: %d\n", publication.PublicationYear)
		}
		if len(publication.Authors) > 0 {
			fmt.Fprintf(&b, "   Authors: %s\n", authorLine(publication.Authors))
		}
		if publication.Venue.Name != "" {
			fmt.Fprintf(&b, "   Venue: %s\n", publication.Venue.Name)
		}
		fmt.Fprintf(&b, "   Citations: %d\n", publication.CitationCount)
		if publication.HasAbstract() {
			fmt.Fprintf(&b, "   Abstract: %s\n", truncate(publication.Abstract, abstractDisplayLimit))
		}
	}

	return b.String()
}

// Authors renders a numbered block per author profile.
func Authors(authors []domain.AuthorProfile, total int) string {
	if len(authors) == 0 {
		return "No authors found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Showing %d of %d authors.\n", len(authors), total)

	for i, author := range authors {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%d. %s\n", i+1, author.Name)
		if author.ORCID != "" {
			fmt.Fprintf(&b, "   ORCID: %s\n", author.ORCID)
		}
		if author.Affiliation != "" {
			fmt.Fprintf(&b, "   Affiliation: %s\n", author.Affiliation)
		}
		fmt.Fprintf(&b, "   Works count: %d\n", author.WorksCount)
		fmt.Fprintf(&b, "   Citations: %d\n", author.CitationCount)
		if author.HIndex > 0 {
			fmt.Fprintf(&b, "   h-index: %d\n", author.HIndex)
		}
	}

	return b.String()
}

// Concepts renders a numbered block per concept.
func Concepts(concepts []domain.Concept, total int) string {
	if len(concepts) == 0 {
		return "No concepts found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Showing %d of %d concepts.\n", len(concepts), total)

	for i, concept := range concepts {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%d. %s\n", i+1, concept.Name)
		fmt.Fprintf(&b, "   Level: %d\n", concept.Level)
		fmt.Fprintf(&b, "   Works count: %d\n", concept.WorksCount)
		if concept.Description != "" {
			fmt.Fprintf(&b, "   Description: %s\n", concept.Description)
		}
	}

	return b.String()
}

// authorLine spells out the first author names and collapses the rest.
func authorLine(authors []domain.Author) string {
	shown := min(len(authors), maxDisplayAuthors)
	names := make([]string, shown)
	for i := 0; i < shown; i++ {
		names[i] = authors[i].Name
	}

	line := strings.Join(names, ", ")
	if rest := len(authors) - shown; rest > 0 {
		line += fmt.Sprintf(" and %d others", rest)
	}
	return line
}

// truncate shortens s to at most limit runes, marking the cut with an
// ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
