package httpapi

import (
	"errors"
	"net/http"

	"spacebook/internal/catalog"
	"spacebook/internal/search"
)

func (s *Server) handleListSpaces(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sortBy := search.ParseSortBy(query.Get("sort"))
	bucket := search.ParsePriceBucket(query.Get("price"))

	spaces, err := s.spaces.List(r.Context(), query.Get("q"), sortBy, bucket)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Spaces []catalog.Space `json:"spaces"`
	}{Spaces: spaces})
}

// spaceDetailResponse adds the first-render pricing to the detail
// view: the preselected slot and the price shown before the client
// picks anything.
type spaceDetailResponse struct {
	catalog.Space
	DefaultTimeSlot string  `json:"defaultTimeSlot,omitempty"`
	DefaultPrice    float64 `json:"defaultPrice"`
}

func (s *Server) handleGetSpace(w http.ResponseWriter, r *http.Request) {
	id := catalog.ParseSpaceID(r.PathValue("id"))

	space, err := s.spaces.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrSpaceNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Space not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	resp := spaceDetailResponse{
		Space:        space,
		DefaultPrice: space.DefaultPrice(),
	}
	if slot, ok := space.DefaultSlot(); ok {
		resp.DefaultTimeSlot = slot.Name
	}

	writeJSON(w, http.StatusOK, resp)
}
