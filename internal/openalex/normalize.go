package openalex

import (
	"errors"
	"regexp"
	"strings"

	"github.com/helixir/openalex-explorer/internal/domain"
)

const (
	// doiPrefix is the URL prefix that OpenAlex uses for DOIs.
	doiPrefix = "https://doi.org/"

	// openAlexIDPrefix is the URL prefix for OpenAlex IDs.
	openAlexIDPrefix = "https://openalex.org/"

	// maxKeywords bounds how many concept names become publication keywords.
	maxKeywords = 10

	// maxRelated bounds how many related concepts a normalized concept keeps.
	maxRelated = 10

	// maxResearchAreas bounds how many concepts become author research areas.
	maxResearchAreas = 10
)

var (
	errNilRecord       = errors.New("nil record")
	errMissingIdentity = errors.New("record has neither identifier nor name")

	shortIDPattern = regexp.MustCompile(`^[A-Z]\d+$`)
	urlIDPattern   = regexp.MustCompile(`/([A-Z]\d+)/?$`)
)

// ExtractEntityID extracts a short OpenAlex ID (such as "W2741809807") from
// an OpenAlex URL. Short IDs pass through unchanged. Input that carries no
// short ID yields an empty string, never the raw input.
func ExtractEntityID(raw string) string {
	raw = strings.TrimSpace(raw)
	if shortIDPattern.MatchString(raw) {
		return raw
	}
	if m := urlIDPattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return ""
}

// normalizeDOI strips the https://doi.org/ prefix from DOIs and returns lowercase.
func normalizeDOI(doi string) string {
	if doi == "" {
		return ""
	}
	// Trim whitespace first
	doi = strings.TrimSpace(doi)
	// Strip the URL prefix if present
	doi = strings.TrimPrefix(doi, doiPrefix)
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(strings.TrimSpace(doi))
}

// normalizeORCID strips any URL prefixes from ORCID identifiers.
func normalizeORCID(orcid string) string {
	if orcid == "" {
		return ""
	}
	orcid = strings.TrimPrefix(orcid, "https://orcid.org/")
	orcid = strings.TrimPrefix(orcid, "orcid:")
	return strings.TrimSpace(orcid)
}

// workToPublication converts a raw OpenAlex work into a domain Publication.
// A work that carries neither an OpenAlex ID nor a title cannot be
// represented and yields a NormalizationError.
func workToPublication(work *Work) (domain.Publication, error) {
	if work == nil {
		return domain.Publication{}, domain.NewNormalizationError("publication", "work", errNilRecord)
	}

	openAlexID := ExtractEntityID(work.ID)
	if openAlexID == "" {
		openAlexID = ExtractEntityID(work.IDs.OpenAlex)
	}

	// Prefer display_name as it is usually cleaner
	title := work.DisplayName
	if title == "" {
		title = work.Title
	}

	if openAlexID == "" && title == "" {
		return domain.Publication{}, domain.NewNormalizationError("publication", "id", errMissingIdentity)
	}

	doi := normalizeDOI(work.DOI)
	if doi == "" {
		doi = normalizeDOI(work.IDs.DOI)
	}

	authors := make([]domain.Author, 0, len(work.Authorships))
	for _, authorship := range work.Authorships {
		author := domain.Author{
			Name:       authorship.Author.DisplayName,
			OpenAlexID: ExtractEntityID(authorship.Author.ID),
			ORCID:      normalizeORCID(authorship.Author.Orcid),
			Position:   authorship.AuthorPosition,
		}
		if author.Name == "" {
			author.Name = "Unknown Author"
		}
		// Authors without institution records keep an empty affiliation.
		if len(authorship.Institutions) > 0 {
			author.Affiliation = authorship.Institutions[0].DisplayName
		}
		authors = append(authors, author)
	}

	return domain.Publication{
		OpenAlexID:      openAlexID,
		Title:           title,
		DOI:             doi,
		PublicationYear: work.PublicationYear,
		PublicationDate: work.PublicationDate,
		Type:            work.Type,
		Abstract:        reconstructAbstract(work.AbstractInvertedIndex),
		Authors:         authors,
		Venue:           venueFromWork(work),
		CitationCount:   work.CitedByCount,
		ReferenceCount:  len(work.ReferencedWorks),
		RelatedCount:    len(work.RelatedWorks),
		Keywords:        keywordsFromConcepts(work.Concepts),
		OpenAccess:      openAccessFromWork(work),
		Language:        work.Language,
		IsRetracted:     work.IsRetracted,
	}, nil
}

// venueFromWork extracts venue information, preferring the primary location
// and falling back to the best open access location.
func venueFromWork(work *Work) domain.Venue {
	var venue domain.Venue
	if work.PrimaryLocation != nil && work.PrimaryLocation.Source != nil {
		source := work.PrimaryLocation.Source
		venue.Name = source.DisplayName
		venue.Type = source.Type
		venue.ISSN = source.ISSNL
		venue.IsOpenAccess = source.IsOA
	}
	if venue.Name == "" && work.BestOALocation != nil && work.BestOALocation.Source != nil {
		source := work.BestOALocation.Source
		venue.Name = source.DisplayName
		venue.Type = source.Type
	}
	return venue
}

// openAccessFromWork extracts open access state. The URL prefers the oa_url,
// then the best OA location's PDF and landing page.
func openAccessFromWork(work *Work) domain.OpenAccessInfo {
	info := domain.OpenAccessInfo{IsOpenAccess: work.IsOpenAccess}
	if work.OpenAccess != nil {
		info.IsOpenAccess = work.OpenAccess.IsOA
		info.Status = work.OpenAccess.OAStatus
		info.URL = work.OpenAccess.OAURL
	}
	if info.URL == "" && work.BestOALocation != nil {
		if work.BestOALocation.PDFURL != "" {
			info.URL = work.BestOALocation.PDFURL
		} else {
			info.URL = work.BestOALocation.LandingPageURL
		}
	}
	return info
}

// keywordsFromConcepts returns the display names of the leading concepts.
func keywordsFromConcepts(concepts []ConceptScore) []string {
	if len(concepts) == 0 {
		return nil
	}
	keywords := make([]string, 0, min(len(concepts), maxKeywords))
	for _, concept := range concepts {
		if len(keywords) == maxKeywords {
			break
		}
		if concept.DisplayName != "" {
			keywords = append(keywords, concept.DisplayName)
		}
	}
	return keywords
}

// authorToProfile converts a raw OpenAlex author record into a domain
// AuthorProfile.
func authorToProfile(record *AuthorRecord) (domain.AuthorProfile, error) {
	if record == nil {
		return domain.AuthorProfile{}, domain.NewNormalizationError("author", "record", errNilRecord)
	}

	openAlexID := ExtractEntityID(record.ID)
	if openAlexID == "" && record.DisplayName == "" {
		return domain.AuthorProfile{}, domain.NewNormalizationError("author", "id", errMissingIdentity)
	}

	profile := domain.AuthorProfile{
		OpenAlexID:       openAlexID,
		Name:             record.DisplayName,
		ORCID:            normalizeORCID(record.Orcid),
		WorksCount:       record.WorksCount,
		CitationCount:    record.CitedByCount,
		HIndex:           record.SummaryStats.HIndex,
		I10Index:         record.SummaryStats.I10Index,
		AlternativeNames: record.DisplayNameAlternatives,
	}

	if record.LastKnownInstitution != nil {
		profile.Affiliation = record.LastKnownInstitution.DisplayName
		profile.Country = record.LastKnownInstitution.CountryCode
	}

	if len(record.XConcepts) > 0 {
		areas := make([]string, 0, min(len(record.XConcepts), maxResearchAreas))
		for _, concept := range record.XConcepts {
			if len(areas) == maxResearchAreas {
				break
			}
			if concept.DisplayName != "" {
				areas = append(areas, concept.DisplayName)
			}
		}
		profile.ResearchAreas = areas
	}

	for _, entry := range record.CountsByYear {
		if entry.Year == 0 {
			continue
		}
		if profile.FirstPublicationYear == 0 || entry.Year < profile.FirstPublicationYear {
			profile.FirstPublicationYear = entry.Year
		}
		if entry.Year > profile.LatestPublicationYear {
			profile.LatestPublicationYear = entry.Year
		}
	}

	return profile, nil
}

// conceptToConcept converts a raw OpenAlex concept record into a domain
// Concept.
func conceptToConcept(record *ConceptRecord) (domain.Concept, error) {
	if record == nil {
		return domain.Concept{}, domain.NewNormalizationError("concept", "record", errNilRecord)
	}

	openAlexID := ExtractEntityID(record.ID)
	if openAlexID == "" {
		openAlexID = ExtractEntityID(record.IDs.OpenAlex)
	}
	if openAlexID == "" && record.DisplayName == "" {
		return domain.Concept{}, domain.NewNormalizationError("concept", "id", errMissingIdentity)
	}

	wikidata := record.Wikidata
	if wikidata == "" {
		wikidata = record.IDs.Wikidata
	}

	concept := domain.Concept{
		OpenAlexID:    openAlexID,
		Name:          record.DisplayName,
		Description:   record.Description,
		Level:         record.Level,
		WorksCount:    record.WorksCount,
		CitationCount: record.CitedByCount,
		WikidataID:    wikidata,
		WikipediaURL:  record.IDs.Wikipedia,
	}

	if len(record.Ancestors) > 0 {
		concept.Ancestors = make([]domain.ConceptRef, 0, len(record.Ancestors))
		for _, ancestor := range record.Ancestors {
			concept.Ancestors = append(concept.Ancestors, domain.ConceptRef{
				OpenAlexID: ExtractEntityID(ancestor.ID),
				Name:       ancestor.DisplayName,
				Level:      ancestor.Level,
			})
		}
	}

	if len(record.RelatedConcepts) > 0 {
		limit := min(len(record.RelatedConcepts), maxRelated)
		concept.Related = make([]domain.ConceptRef, 0, limit)
		for _, related := range record.RelatedConcepts[:limit] {
			concept.Related = append(concept.Related, domain.ConceptRef{
				OpenAlexID: ExtractEntityID(related.ID),
				Name:       related.DisplayName,
				Level:      related.Level,
			})
		}
	}

	return concept, nil
}

// worksToPublications normalizes a result page of works. Records that fail
// normalization are skipped; the second return value reports how many.
func worksToPublications(works []Work) ([]domain.Publication, int) {
	publications := make([]domain.Publication, 0, len(works))
	skipped := 0
	for i := range works {
		publication, err := workToPublication(&works[i])
		if err != nil {
			skipped++
			continue
		}
		publications = append(publications, publication)
	}
	return publications, skipped
}

// authorsToProfiles normalizes a result page of author records with the same
// skip-and-continue policy as worksToPublications.
func authorsToProfiles(records []AuthorRecord) ([]domain.AuthorProfile, int) {
	profiles := make([]domain.AuthorProfile, 0, len(records))
	skipped := 0
	for i := range records {
		profile, err := authorToProfile(&records[i])
		if err != nil {
			skipped++
			continue
		}
		profiles = append(profiles, profile)
	}
	return profiles, skipped
}

// conceptsToConcepts normalizes a result page of concept records with the
// same skip-and-continue policy as worksToPublications.
func conceptsToConcepts(records []ConceptRecord) ([]domain.Concept, int) {
	concepts := make([]domain.Concept, 0, len(records))
	skipped := 0
	for i := range records {
		concept, err := conceptToConcept(&records[i])
		if err != nil {
			skipped++
			continue
		}
		concepts = append(concepts, concept)
	}
	return concepts, skipped
}
