package domain

// ConceptRef is a lightweight reference to a related or ancestor concept.
type ConceptRef struct {
	OpenAlexID string
	Name       string
	Level      int
}

// Concept is a normalized OpenAlex concept entity. Level places the concept
// in the hierarchy: 0 is a root discipline, higher levels are more specific.
type Concept struct {
	OpenAlexID    string
	Name          string
	Description   string
	Level         int
	WorksCount    int
	CitationCount int
	WikidataID    string
	WikipediaURL  string
	Ancestors     []ConceptRef
	Related       []ConceptRef
}
