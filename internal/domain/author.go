package domain

// AuthorProfile is a normalized OpenAlex author entity with citation
// statistics and affiliation data.
type AuthorProfile struct {
	OpenAlexID       string
	Name             string
	ORCID            string
	Affiliation      string
	Country          string
	WorksCount       int
	CitationCount    int
	HIndex           int
	I10Index         int
	AlternativeNames []string
	ResearchAreas    []string

	// FirstPublicationYear and LatestPublicationYear are derived from the
	// author's counts-by-year records. Zero means unknown.
	FirstPublicationYear  int
	LatestPublicationYear int
}

// CitationsPerWork returns the mean citation count across the author's works.
func (a *AuthorProfile) CitationsPerWork() float64 {
	if a.WorksCount == 0 {
		return 0
	}
	return float64(a.CitationCount) / float64(a.WorksCount)
}
