package http

import (
	"net/http"
	"strconv"

	"centime/internal/domain/receivable"
)

// ReceivableHandler mirrors the debt surface for money owed to the user.
type ReceivableHandler struct {
	service *receivable.Service
}

func NewReceivableHandler(service *receivable.Service) *ReceivableHandler {
	return &ReceivableHandler{service: service}
}

func (h *ReceivableHandler) HandleReceivables(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		receivables, err := h.service.List(r.Context(), p.Email)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, receivables)

	case http.MethodPost:
		var params receivable.CreateParams
		if !decodeBody(w, r, &params) {
			return
		}
		rec, err := h.service.Create(r.Context(), p.Email, params)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, rec)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *ReceivableHandler) HandleReceivableByID(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		rec, err := h.service.Get(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, rec)

	case http.MethodPut:
		var params receivable.UpdateParams
		if !decodeBody(w, r, &params) {
			return
		}
		rec, err := h.service.Update(r.Context(), p.Email, id, params)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, rec)

	case http.MethodDelete:
		if err := h.service.Delete(r.Context(), p.Email, id); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Receivable deleted successfully"})

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *ReceivableHandler) HandlePayments(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var params receivable.PaymentParams
	if !decodeBody(w, r, &params) {
		return
	}
	rec, err := h.service.AddPayment(r.Context(), p.Email, r.PathValue("id"), params)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (h *ReceivableHandler) HandlePaymentByIndex(w http.ResponseWriter, r *http.Request) {
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
		var params receivable.PaymentParams
		if !decodeBody(w, r, &params) {
			return
		}
		rec, err := h.service.UpdatePayment(r.Context(), p.Email, id, index, params)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, rec)

	case http.MethodDelete:
		rec, err := h.service.DeletePayment(r.Context(), p.Email, id, index)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, rec)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
