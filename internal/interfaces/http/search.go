package http

import (
	"net/http"

	"centime/internal/domain/search"
)

// SearchHandler serves the cross-entity quick search box.
type SearchHandler struct {
	service *search.Service
}

func NewSearchHandler(service *search.Service) *SearchHandler {
	return &SearchHandler{service: service}
}

func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	results, err := h.service.Search(r.Context(), p.Email, r.URL.Query().Get("q"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}
