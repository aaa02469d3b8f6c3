package http

import (
	"net/http"

	"centime/internal/domain/account"
)

// AccountHandler exposes account CRUD, transfers and the static
// currency rate table.
type AccountHandler struct {
	service *account.Service
}

func NewAccountHandler(service *account.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

func (h *AccountHandler) HandleAccounts(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		accounts, err := h.service.List(r.Context(), p.Email)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, accounts)

	case http.MethodPost:
		var params account.CreateParams
		if !decodeBody(w, r, &params) {
			return
		}
		a, err := h.service.Create(r.Context(), p.Email, params)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, a)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *AccountHandler) HandleAccountByID(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		a, err := h.service.Get(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, a)

	case http.MethodPut:
		var params account.UpdateParams
		if !decodeBody(w, r, &params) {
			return
		}
		a, err := h.service.Update(r.Context(), p.Email, id, params)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, a)

	case http.MethodDelete:
		if err := h.service.Delete(r.Context(), p.Email, id); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Account deleted successfully"})

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *AccountHandler) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var params account.TransferParams
	if !decodeBody(w, r, &params) {
		return
	}

	result, err := h.service.Transfer(r.Context(), p.Email, params)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// HandleCurrencyRates returns the static rate table rebased on ?base=.
func (h *AccountHandler) HandleCurrencyRates(w http.ResponseWriter, r *http.Request) {
	base := r.URL.Query().Get("base")
	if base == "" {
		base = "EUR"
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"base":  base,
		"rates": account.Rates(base),
	})
}
