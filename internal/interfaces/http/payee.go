package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"centime/internal/domain/payee"
)

// PayeeHandler exposes payee CRUD.
type PayeeHandler struct {
	repo payee.Repository
}

func NewPayeeHandler(repo payee.Repository) *PayeeHandler {
	return &PayeeHandler{repo: repo}
}

func (h *PayeeHandler) HandlePayees(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		payees, err := h.repo.ListByOwner(r.Context(), p.Email)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, payees)

	case http.MethodPost:
		var params payee.CreateParams
		if !decodeBody(w, r, &params) {
			return
		}
		params.Defaults()

		e := &payee.Payee{
			ID:                uuid.NewString(),
			Name:              params.Name,
			Type:              params.Type,
			DefaultCategoryID: params.DefaultCategoryID,
			Notes:             params.Notes,
			CreatedAt:         time.Now().UTC(),
			OwnerEmail:        p.Email,
		}
		if err := h.repo.Create(r.Context(), e); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, e)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *PayeeHandler) HandlePayeeByID(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		e, err := h.repo.GetByID(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, e)

	case http.MethodPut:
		var params payee.UpdateParams
		if !decodeBody(w, r, &params) {
			return
		}
		e, err := h.repo.GetByID(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		params.Apply(e)
		if err := h.repo.Update(r.Context(), e); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, e)

	case http.MethodDelete:
		if err := h.repo.Delete(r.Context(), p.Email, id); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Payee deleted successfully"})

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
