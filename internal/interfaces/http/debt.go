package http

import (
	"net/http"
	"strconv"

	"centime/internal/domain/debt"
)

// DebtHandler exposes debts and their payment logs.
type DebtHandler struct {
	service *debt.Service
}

func NewDebtHandler(service *debt.Service) *DebtHandler {
	return &DebtHandler{service: service}
}

func (h *DebtHandler) HandleDebts(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		debts, err := h.service.List(r.Context(), p.Email)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, debts)

	case http.MethodPost:
		var params debt.CreateParams
		if !decodeBody(w, r, &params) {
			return
		}
		d, err := h.service.Create(r.Context(), p.Email, params)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, d)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *DebtHandler) HandleDebtByID(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		d, err := h.service.Get(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, d)

	case http.MethodPut:
		var params debt.UpdateParams
		if !decodeBody(w, r, &params) {
			return
		}
		d, err := h.service.Update(r.Context(), p.Email, id, params)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, d)

	case http.MethodDelete:
		if err := h.service.Delete(r.Context(), p.Email, id); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Debt deleted successfully"})

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *DebtHandler) HandlePayments(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var params debt.PaymentParams
	if !decodeBody(w, r, &params) {
		return
	}
	d, err := h.service.AddPayment(r.Context(), p.Email, r.PathValue("id"), params)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

func (h *DebtHandler) HandlePaymentByIndex(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "payment index must be an integer")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var params debt.PaymentParams
		if !decodeBody(w, r, &params) {
			return
		}
		d, err := h.service.UpdatePayment(r.Context(), p.Email, id, index, params)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, d)

	case http.MethodDelete:
		d, err := h.service.DeletePayment(r.Context(), p.Email, id, index)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, d)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
