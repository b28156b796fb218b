package openalex

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/helixir/openalex-explorer/internal/domain"
)

// Filter grammar per the OpenAlex API: the filter query parameter is a
// comma-separated list of key:value clauses, and multiple values for one
// key are OR-joined with a pipe.
// See: https://docs.openalex.org/how-to-use-the-api/get-lists-of-entities/filter-entity-lists

type filterKind int

const (
	filterScalar filterKind = iota
	filterAnyOf
	filterYearRange
)

// FilterValue is the value of a single filter clause. It is one of a plain
// scalar, an OR-joined list, or a publication year range with optional
// bounds. Construct values with ScalarFilter, OrFilter, YearRangeFilter, or
// LegacyYearFilter.
type FilterValue struct {
	kind   filterKind
	scalar string
	values []string
	start  int
	end    int
}

// ScalarFilter returns a plain single-value filter clause.
func ScalarFilter(value string) FilterValue {
	return FilterValue{kind: filterScalar, scalar: value}
}

// OrFilter returns a clause matching any of the given values.
func OrFilter(values ...string) FilterValue {
	return FilterValue{kind: filterAnyOf, values: values}
}

// YearRangeFilter returns a publication year clause. A zero bound is open:
// both bounds encode as "start-end", only a start year as ">=start", and
// only an end year as "<=end". Bounds must be within the supported year
// window and the start must not be after the end.
func YearRangeFilter(startYear, endYear int) (FilterValue, error) {
	if startYear == 0 && endYear == 0 {
		return FilterValue{}, domain.NewValidationError("publication_year",
			"at least one of start or end year is required")
	}
	if startYear != 0 && (startYear < domain.MinYear || startYear > domain.MaxYear) {
		return FilterValue{}, domain.NewValidationError("publication_year",
			fmt.Sprintf("start year must be between %d and %d", domain.MinYear, domain.MaxYear))
	}
	if endYear != 0 && (endYear < domain.MinYear || endYear > domain.MaxYear) {
		return FilterValue{}, domain.NewValidationError("publication_year",
			fmt.Sprintf("end year must be between %d and %d", domain.MinYear, domain.MaxYear))
	}
	if startYear != 0 && endYear != 0 && startYear > endYear {
		return FilterValue{}, domain.NewValidationError("publication_year",
			"start year must not be after end year")
	}
	return FilterValue{kind: filterYearRange, start: startYear, end: endYear}, nil
}

// LegacyYearFilter normalizes the list-of-bounds form that earlier clients
// sent for publication years ([">=2020", "<=2024"]) into the canonical range
// clause ("2020-2024"). Already canonical values pass through unchanged, so
// normalizing twice is safe. A single bare year becomes an exact-year range.
func LegacyYearFilter(parts []string) (FilterValue, error) {
	var startYear, endYear int
	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, ">="):
			year, err := parseYear(strings.TrimPrefix(part, ">="))
			if err != nil {
				return FilterValue{}, err
			}
			startYear = year
		case strings.HasPrefix(part, "<="):
			year, err := parseYear(strings.TrimPrefix(part, "<="))
			if err != nil {
				return FilterValue{}, err
			}
			endYear = year
		case strings.Contains(part, "-"):
			bounds := strings.SplitN(part, "-", 2)
			start, err := parseYear(bounds[0])
			if err != nil {
				return FilterValue{}, err
			}
			end, err := parseYear(bounds[1])
			if err != nil {
				return FilterValue{}, err
			}
			startYear, endYear = start, end
		default:
			year, err := parseYear(part)
			if err != nil {
				return FilterValue{}, err
			}
			startYear, endYear = year, year
		}
	}
	return YearRangeFilter(startYear, endYear)
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, domain.NewValidationError("publication_year", fmt.Sprintf("invalid year %q", s))
	}
	return year, nil
}

// Encode renders the clause value in OpenAlex filter syntax.
func (v FilterValue) Encode() string {
	switch v.kind {
	case filterAnyOf:
		return strings.Join(v.values, "|")
	case filterYearRange:
		switch {
		case v.start != 0 && v.end != 0:
			return fmt.Sprintf("%d-%d", v.start, v.end)
		case v.start != 0:
			return fmt.Sprintf(">=%d", v.start)
		default:
			return fmt.Sprintf("<=%d", v.end)
		}
	default:
		return v.scalar
	}
}

// Filters is a set of filter clauses keyed by filter name.
type Filters map[string]FilterValue

// Encode renders the filter set as the value of the filter query parameter.
// Clauses are sorted by key so the same set always serializes identically.
func (f Filters) Encode() string {
	if len(f) == 0 {
		return ""
	}
	keys := make([]string, 0, len(f))
	for key := range f {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	clauses := make([]string, 0, len(keys))
	for _, key := range keys {
		clauses = append(clauses, key+":"+f[key].Encode())
	}
	return strings.Join(clauses, ",")
}

// PresetFilters returns the filter clauses for a named preset. Relative year
// windows are anchored on now. An empty preset returns no filters.
func PresetFilters(preset string, now time.Time) (Filters, error) {
	year := now.Year()
	switch preset {
	case "":
		return nil, nil
	case domain.PresetRecentPapers:
		value, err := YearRangeFilter(year-5, 0)
		if err != nil {
			return nil, err
		}
		return Filters{"publication_year": value}, nil
	case domain.PresetHighlyCited:
		return Filters{"cited_by_count": ScalarFilter(">100")}, nil
	case domain.PresetOpenAccess:
		return Filters{"is_oa": ScalarFilter("true")}, nil
	case domain.PresetLastDecade:
		value, err := YearRangeFilter(year-10, year)
		if err != nil {
			return nil, err
		}
		return Filters{"publication_year": value}, nil
	case domain.PresetPeerReviewed:
		return Filters{"type": ScalarFilter("article")}, nil
	default:
		return nil, domain.NewValidationError("preset", fmt.Sprintf("unknown preset %q", preset))
	}
}

// SearchFilters builds the works filter set for the given criteria. Preset
// clauses are applied first; clauses derived from explicit criteria fields
// win on key conflicts.
func SearchFilters(criteria domain.SearchCriteria, now time.Time) (Filters, error) {
	filters, err := PresetFilters(criteria.Preset, now)
	if err != nil {
		return nil, err
	}
	if filters == nil {
		filters = Filters{}
	}

	if criteria.HasYearRange() {
		value, err := YearRangeFilter(criteria.StartYear, criteria.EndYear)
		if err != nil {
			return nil, err
		}
		filters["publication_year"] = value
	}

	if len(filters) == 0 {
		return nil, nil
	}
	return filters, nil
}
