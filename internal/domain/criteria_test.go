package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestSearchCriteria_Validate(t *testing.T) {
	tests := []struct {
		name      string
		criteria  SearchCriteria
		wantErr   bool
		wantField string
	}{
		{
			name:     "query only",
			criteria: SearchCriteria{Query: "CRISPR gene editing"},
			wantErr:  false,
		},
		{
			name: "all fields set",
			criteria: SearchCriteria{
				Query:     "machine learning",
				StartYear: 2020,
				EndYear:   2024,
				Limit:     10,
				Preset:    PresetOpenAccess,
				Level:     intPtr(2),
			},
			wantErr: false,
		},
		{
			name:      "empty query",
			criteria:  SearchCriteria{},
			wantErr:   true,
			wantField: "query",
		},
		{
			name:      "whitespace only query",
			criteria:  SearchCriteria{Query: "   \t  "},
			wantErr:   true,
			wantField: "query",
		},
		{
			name:      "start year before 1950",
			criteria:  SearchCriteria{Query: "q", StartYear: 1949},
			wantErr:   true,
			wantField: "start_year",
		},
		{
			name:      "start year after 2030",
			criteria:  SearchCriteria{Query: "q", StartYear: 2031},
			wantErr:   true,
			wantField: "start_year",
		},
		{
			name:      "end year before 1950",
			criteria:  SearchCriteria{Query: "q", EndYear: 1890},
			wantErr:   true,
			wantField: "end_year",
		},
		{
			name:      "end year after 2030",
			criteria:  SearchCriteria{Query: "q", EndYear: 2100},
			wantErr:   true,
			wantField: "end_year",
		},
		{
			name:      "start year after end year",
			criteria:  SearchCriteria{Query: "q", StartYear: 2024, EndYear: 2020},
			wantErr:   true,
			wantField: "end_year",
		},
		{
			name:     "equal start and end year",
			criteria: SearchCriteria{Query: "q", StartYear: 2022, EndYear: 2022},
			wantErr:  false,
		},
		{
			name:     "only start year",
			criteria: SearchCriteria{Query: "q", StartYear: 2020},
			wantErr:  false,
		},
		{
			name:     "only end year",
			criteria: SearchCriteria{Query: "q", EndYear: 2024},
			wantErr:  false,
		},
		{
			name:     "year bounds inclusive",
			criteria: SearchCriteria{Query: "q", StartYear: 1950, EndYear: 2030},
			wantErr:  false,
		},
		{
			name:     "zero limit means default",
			criteria: SearchCriteria{Query: "q", Limit: 0},
			wantErr:  false,
		},
		{
			name:      "limit above maximum",
			criteria:  SearchCriteria{Query: "q", Limit: 51},
			wantErr:   true,
			wantField: "limit",
		},
		{
			name:      "negative limit",
			criteria:  SearchCriteria{Query: "q", Limit: -1},
			wantErr:   true,
			wantField: "limit",
		},
		{
			name:     "limit at maximum",
			criteria: SearchCriteria{Query: "q", Limit: 50},
			wantErr:  false,
		},
		{
			name:      "unknown preset",
			criteria:  SearchCriteria{Query: "q", Preset: "trending"},
			wantErr:   true,
			wantField: "preset",
		},
		{
			name:     "known preset",
			criteria: SearchCriteria{Query: "q", Preset: PresetHighlyCited},
			wantErr:  false,
		},
		{
			name:     "level zero is a valid root level",
			criteria: SearchCriteria{Query: "q", Level: intPtr(0)},
			wantErr:  false,
		},
		{
			name:      "negative level",
			criteria:  SearchCriteria{Query: "q", Level: intPtr(-1)},
			wantErr:   true,
			wantField: "level",
		},
		{
			name:      "level above maximum",
			criteria:  SearchCriteria{Query: "q", Level: intPtr(6)},
			wantErr:   true,
			wantField: "level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected a ValidationError, got %T", err)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestSearchCriteria_LimitOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		criteria SearchCriteria
		entity   EntityType
		want     int
	}{
		{
			name:     "publications default",
			criteria: SearchCriteria{Query: "q"},
			entity:   EntityPublications,
			want:     DefaultPublicationLimit,
		},
		{
			name:     "authors default",
			criteria: SearchCriteria{Query: "q"},
			entity:   EntityAuthors,
			want:     DefaultAuthorLimit,
		},
		{
			name:     "concepts default",
			criteria: SearchCriteria{Query: "q"},
			entity:   EntityConcepts,
			want:     DefaultConceptLimit,
		},
		{
			name:     "explicit limit wins",
			criteria: SearchCriteria{Query: "q", Limit: 25},
			entity:   EntityPublications,
			want:     25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.criteria.LimitOrDefault(tt.entity))
		})
	}
}

func TestSearchCriteria_HasYearRange(t *testing.T) {
	assert.False(t, SearchCriteria{Query: "q"}.HasYearRange())
	assert.True(t, SearchCriteria{Query: "q", StartYear: 2020}.HasYearRange())
	assert.True(t, SearchCriteria{Query: "q", EndYear: 2024}.HasYearRange())
	assert.True(t, SearchCriteria{Query: "q", StartYear: 2020, EndYear: 2024}.HasYearRange())
}

func TestSearchCriteria_ValidationHappensBeforeAnyNetworkUse(t *testing.T) {
	// A criteria value that fails validation must be rejected purely in
	// memory. The zero value is the simplest such case.
	var c SearchCriteria
	err := c.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
