package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/helixir/openalex-explorer/internal/domain"
	"github.com/helixir/openalex-explorer/internal/format"
)

// searchPublications handles GET /api/v1/publications.
// Query parameters: query (required), start_year, end_year, limit, preset.
func (s *Server) searchPublications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	criteria := domain.SearchCriteria{
		Query:  r.URL.Query().Get("query"),
		Preset: r.URL.Query().Get("preset"),
	}

	var ok bool
	if criteria.StartYear, ok = parseIntParam(w, r, "start_year"); !ok {
		return
	}
	if criteria.EndYear, ok = parseIntParam(w, r, "end_year"); !ok {
		return
	}
	if criteria.Limit, ok = parseIntParam(w, r, "limit"); !ok {
		return
	}

	results, err := s.explorer.SearchPublications(ctx, criteria)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	publications := make([]publicationResponse, len(results.Publications))
	for i, p := range results.Publications {
		publications[i] = domainPublicationToResponse(p)
	}

	resp := searchPublicationsResponse{
		Publications: publications,
		TotalCount:   results.TotalCount,
	}
	if len(publications) == 0 {
		resp.Message = format.Publications(nil, 0)
	}

	writeJSON(w, http.StatusOK, resp)
}

// getPublication handles GET /api/v1/publications/{id}.
// The identifier is the rest of the path, so DOIs with slashes pass through
// without escaping.
func (s *Server) getPublication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id := chi.URLParam(r, "*")
	publication, err := s.explorer.GetPublication(ctx, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domainPublicationToResponse(*publication))
}

// searchAuthors handles GET /api/v1/authors.
// Query parameters: query (required), limit.
func (s *Server) searchAuthors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	criteria := domain.SearchCriteria{
		Query: r.URL.Query().Get("query"),
	}

	var ok bool
	if criteria.Limit, ok = parseIntParam(w, r, "limit"); !ok {
		return
	}

	results, err := s.explorer.SearchAuthors(ctx, criteria)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	authors := make([]authorProfileResponse, len(results.Authors))
	for i, a := range results.Authors {
		authors[i] = domainAuthorToResponse(a)
	}

	resp := searchAuthorsResponse{
		Authors:    authors,
		TotalCount: results.TotalCount,
	}
	if len(authors) == 0 {
		resp.Message = format.Authors(nil, 0)
	}

	writeJSON(w, http.StatusOK, resp)
}

// searchConcepts handles GET /api/v1/concepts.
// Query parameters: query (required), limit, level.
func (s *Server) searchConcepts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	criteria := domain.SearchCriteria{
		Query: r.URL.Query().Get("query"),
	}

	var ok bool
	if criteria.Limit, ok = parseIntParam(w, r, "limit"); !ok {
		return
	}
	if levelStr := r.URL.Query().Get("level"); levelStr != "" {
		level, err := strconv.Atoi(levelStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "level must be an integer")
			return
		}
		criteria.Level = &level
	}

	results, err := s.explorer.SearchConcepts(ctx, criteria)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	concepts := make([]conceptResponse, len(results.Concepts))
	for i, c := range results.Concepts {
		concepts[i] = domainConceptToResponse(c)
	}

	resp := searchConceptsResponse{
		Concepts:   concepts,
		TotalCount: results.TotalCount,
	}
	if len(concepts) == 0 {
		resp.Message = format.Concepts(nil, 0)
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeDomainError maps domain errors to appropriate HTTP status codes and
// writes a JSON error response. Internal error details are not leaked to
// clients.
func writeDomainError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrInvalidInput):
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
		} else {
			writeError(w, http.StatusBadRequest, "invalid input")
		}
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "rate limited by upstream API")
	case errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "upstream API unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseIntParam reads an optional integer query parameter, writing a 400
// error response when the value is present but not an integer. The zero
// value means the parameter was absent.
func parseIntParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must be an integer", name))
		return 0, false
	}
	return v, true
}
