package format

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helixir/openalex-explorer/internal/domain"
)

func TestPublications(t *testing.T) {
	t.Run("empty list returns indicator", func(t *testing.T) {
		assert.Equal(t, "No publications found.", Publications(nil, 0))
		assert.Equal(t, "No publications found.", Publications([]domain.Publication{}, 17))
	})

	t.Run("renders complete record", func(t *testing.T) {
		publications := []domain.Publication{
			{
				Title:           "CRISPR-Cas9 gene editing for sickle cell disease",
				DOI:             "10.1038/nbt.3834",
				PublicationYear: 2017,
				Authors: []domain.Author{
					{Name: "John Smith"},
					{Name: "Jane Doe"},
				},
				Venue:         domain.Venue{Name: "Nature Biotechnology"},
				CitationCount: 342,
				Abstract:      "Gene editing with CRISPR shows promise.",
			},
		}

		want := strings.Join([]string{
			"Showing 1 of 42 publications.",
			"",
			"1. CRISPR-Cas9 gene editing for sickle cell disease",
			"   DOI: 10.1038/nbt.3834",
			"   Year: 2017",
			"   Authors: John Smith, Jane Doe",
			"   Venue: Nature Biotechnology",
			"   Citations: 342",
			"   Abstract: Gene editing with CRISPR shows promise.",
			"",
		}, "\n")
		assert.Equal(t, want, Publications(publications, 42))
	})

	t.Run("omits lines for missing fields", func(t *testing.T) {
		publications := []domain.Publication{
			{Title: "Untitled preprint", CitationCount: 0},
		}

		got := Publications(publications, 1)
		assert.Contains(t, got, "1. Untitled preprint\n")
		assert.Contains(t, got, "   Citations: 0\n")
		assert.NotContains(t, got, "DOI:")
		assert.NotContains(t, got, "Year:")
		assert.NotContains(t, got, "Authors:")
		assert.NotContains(t, got, "Venue:")
		assert.NotContains(t, got, "Abstract:")
	})

	t.Run("numbers multiple records", func(t *testing.T) {
		publications := []domain.Publication{
			{Title: "First"},
			{Title: "Second"},
			{Title: "Third"},
		}

		got := Publications(publications, 3)
		assert.Contains(t, got, "Showing 3 of 3 publications.")
		assert.Contains(t, got, "1. First\n")
		assert.Contains(t, got, "2. Second\n")
		assert.Contains(t, got, "3. Third\n")
	})

	t.Run("collapses long author lists", func(t *testing.T) {
		authors := make([]domain.Author, 10)
		for i := range authors {
			authors[i] = domain.Author{Name: fmt.Sprintf("Author %d", i)}
		}
		publications := []domain.Publication{
			{Title: "Consortium paper", Authors: authors},
		}

		got := Publications(publications, 1)
		assert.Contains(t, got, "   Authors: Author 0, Author 1, Author 2 and 7 others\n")
	})

	t.Run("truncates long abstracts at rune boundary", func(t *testing.T) {
		abstract := strings.Repeat("ü", 301)
		publications := []domain.Publication{
			{Title: "Verbose", Abstract: abstract},
		}

		got := Publications(publications, 1)
		assert.Contains(t, got, "   Abstract: "+strings.Repeat("ü", 300)+"...\n")
		assert.NotContains(t, got, abstract)
	})

	t.Run("keeps abstracts at the limit intact", func(t *testing.T) {
		abstract := strings.Repeat("a", 300)
		publications := []domain.Publication{
			{Title: "Exact", Abstract: abstract},
		}

		got := Publications(publications, 1)
		assert.Contains(t, got, "   Abstract: "+abstract+"\n")
		assert.NotContains(t, got, "...")
	})
}

func TestAuthors(t *testing.T) {
	t.Run("empty list returns indicator", func(t *testing.T) {
		assert.Equal(t, "No authors found.", Authors(nil, 0))
	})

	t.Run("renders complete profile", func(t *testing.T) {
		authors := []domain.AuthorProfile{
			{
				Name:          "Jennifer A. Doudna",
				ORCID:         "0000-0001-9161-999X",
				Affiliation:   "University of California, Berkeley",
				WorksCount:    689,
				CitationCount: 120543,
				HIndex:        141,
			},
		}

		want := strings.Join([]string{
			"Showing 1 of 8 authors.",
			"",
			"1. Jennifer A. Doudna",
			"   ORCID: 0000-0001-9161-999X",
			"   Affiliation: University of California, Berkeley",
			"   Works count: 689",
			"   Citations: 120543",
			"   h-index: 141",
			"",
		}, "\n")
		assert.Equal(t, want, Authors(authors, 8))
	})

	t.Run("omits lines for missing fields", func(t *testing.T) {
		authors := []domain.AuthorProfile{
			{Name: "A. Nonymous", WorksCount: 3},
		}

		got := Authors(authors, 1)
		assert.Contains(t, got, "1. A. Nonymous\n")
		assert.Contains(t, got, "   Works count: 3\n")
		assert.Contains(t, got, "   Citations: 0\n")
		assert.NotContains(t, got, "ORCID:")
		assert.NotContains(t, got, "Affiliation:")
		assert.NotContains(t, got, "h-index:")
	})
}

func TestConcepts(t *testing.T) {
	t.Run("empty list returns indicator", func(t *testing.T) {
		assert.Equal(t, "No concepts found.", Concepts(nil, 0))
	})

	t.Run("renders complete concept", func(t *testing.T) {
		concepts := []domain.Concept{
			{
				Name:        "Medicine",
				Level:       0,
				WorksCount:  52340921,
				Description: "field of study for diagnosing and treating disease",
			},
		}

		want := strings.Join([]string{
			"Showing 1 of 3 concepts.",
			"",
			"1. Medicine",
			"   Level: 0",
			"   Works count: 52340921",
			"   Description: field of study for diagnosing and treating disease",
			"",
		}, "\n")
		assert.Equal(t, want, Concepts(concepts, 3))
	})

	t.Run("omits description when absent", func(t *testing.T) {
		concepts := []domain.Concept{
			{Name: "Genetics", Level: 1, WorksCount: 100},
		}

		got := Concepts(concepts, 1)
		assert.Contains(t, got, "   Level: 1\n")
		assert.NotContains(t, got, "Description:")
	})
}

func TestAuthorLine(t *testing.T) {
	tests := []struct {
		name    string
		authors []string
		want    string
	}{
		{"single author", []string{"Ada Lovelace"}, "Ada Lovelace"},
		{"two authors", []string{"A", "B"}, "A, B"},
		{"three authors fully spelled", []string{"A", "B", "C"}, "A, B, C"},
		{"four authors collapse one", []string{"A", "B", "C", "D"}, "A, B, C and 1 others"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			authors := make([]domain.Author, len(tc.authors))
			for i, name := range tc.authors {
				authors[i] = domain.Author{Name: name}
			}
			assert.Equal(t, tc.want, authorLine(authors))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact limit unchanged", "hello", 5, "hello"},
		{"over limit cut with ellipsis", "hello world", 5, "hello..."},
		{"multibyte runes counted once", "héllo wörld", 7, "héllo w..."},
		{"empty string", "", 5, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, truncate(tc.input, tc.limit))
		})
	}
}
