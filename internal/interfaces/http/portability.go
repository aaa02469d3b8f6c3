package http

import (
	"net/http"

	"centime/internal/domain/portability"
)

// PortabilityHandler covers whole-account export, import and wipe.
type PortabilityHandler struct {
	repo portability.Repository
}

func NewPortabilityHandler(repo portability.Repository) *PortabilityHandler {
	return &PortabilityHandler{repo: repo}
}

func (h *PortabilityHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	archive, err := h.repo.ExportAll(r.Context(), p.Email)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, archive)
}

func (h *PortabilityHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var archive portability.Archive
	if !decodeBody(w, r, &archive) {
		return
	}

	counts, err := h.repo.ImportAll(r.Context(), p.Email, &archive)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":  "Data imported successfully",
		"imported": counts,
	})
}

func (h *PortabilityHandler) HandleWipe(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodDelete {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if err := h.repo.WipeAll(r.Context(), p.Email); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message":    "All user data deleted successfully",
		"user_email": p.Email,
	})
}
