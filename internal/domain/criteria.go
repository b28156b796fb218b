package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EntityType identifies which OpenAlex entity collection an operation targets.
type EntityType string

const (
	EntityPublications EntityType = "publications"
	EntityAuthors      EntityType = "authors"
	EntityConcepts     EntityType = "concepts"
)

// Publication year bounds accepted in search criteria.
const (
	MinYear = 1950
	MaxYear = 2030
)

// Result limit bounds and per-entity defaults applied when a criteria
// carries no explicit limit.
const (
	MaxLimit                = 50
	DefaultPublicationLimit = 3
	DefaultAuthorLimit      = 5
	DefaultConceptLimit     = 5
)

// Named filter presets accepted on publication searches.
const (
	PresetRecentPapers = "recent_papers"
	PresetHighlyCited  = "highly_cited"
	PresetOpenAccess   = "open_access"
	PresetLastDecade   = "last_decade"
	PresetPeerReviewed = "peer_reviewed"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report field names as they appear in requests.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// SearchCriteria describes a search against one of the OpenAlex entity
// collections. A criteria value is validated once, before any network
// request, and is not mutated afterwards.
type SearchCriteria struct {
	// Query is the free-text search term.
	Query string `json:"query" validate:"required"`

	// StartYear and EndYear bound the publication year. Zero means unset.
	StartYear int `json:"start_year" validate:"omitempty,min=1950,max=2030"`
	EndYear   int `json:"end_year" validate:"omitempty,min=1950,max=2030,gtefield=StartYear"`

	// Limit caps the number of returned results. Zero means the per-entity
	// default.
	Limit int `json:"limit" validate:"omitempty,min=1,max=50"`

	// Preset names an optional filter preset merged into the request.
	// Only meaningful for publication searches.
	Preset string `json:"preset" validate:"omitempty,oneof=recent_papers highly_cited open_access last_decade peer_reviewed"`

	// Level restricts concepts to a single hierarchy level. Nil means no
	// restriction. Only meaningful for concept searches.
	Level *int `json:"level" validate:"omitempty,min=0,max=5"`
}

// Validate checks the criteria and returns a ValidationError naming the
// first violated constraint.
func (c SearchCriteria) Validate() error {
	if strings.TrimSpace(c.Query) == "" {
		return NewValidationError("query", "must not be empty")
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return NewValidationError(verrs[0].Field(), constraintMessage(verrs[0]))
		}
		return NewValidationError("criteria", err.Error())
	}

	return nil
}

// LimitOrDefault returns the explicit limit, or the default for the entity
// when no limit was set.
func (c SearchCriteria) LimitOrDefault(entity EntityType) int {
	if c.Limit > 0 {
		return c.Limit
	}

	switch entity {
	case EntityAuthors:
		return DefaultAuthorLimit
	case EntityConcepts:
		return DefaultConceptLimit
	default:
		return DefaultPublicationLimit
	}
}

// HasYearRange returns true if at least one year bound is set.
func (c SearchCriteria) HasYearRange() bool {
	return c.StartYear != 0 || c.EndYear != 0
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gtefield":
		return "must not be before start_year"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("failed %s constraint", fe.Tag())
	}
}
