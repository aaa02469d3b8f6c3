package http

import (
	"net/http"

	"centime/internal/domain/preferences"
)

// PreferencesHandler exposes the single per-user preference record.
type PreferencesHandler struct {
	repo preferences.Repository
}

func NewPreferencesHandler(repo preferences.Repository) *PreferencesHandler {
	return &PreferencesHandler{repo: repo}
}

func (h *PreferencesHandler) HandlePreferences(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		prefs, err := h.repo.GetOrCreate(r.Context(), p.Email)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, prefs)

	case http.MethodPut:
		var params preferences.UpdateParams
		if !decodeBody(w, r, &params) {
			return
		}
		prefs, err := h.repo.GetOrCreate(r.Context(), p.Email)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		params.Apply(prefs)
		if err := h.repo.Update(r.Context(), prefs); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, prefs)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
