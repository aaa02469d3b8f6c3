package http

import (
	"net/http"
	"strconv"

	"centime/internal/domain/investment"
)

// InvestmentHandler exposes investments and their operation logs.
type InvestmentHandler struct {
	service *investment.Service
}

func NewInvestmentHandler(service *investment.Service) *InvestmentHandler {
	return &InvestmentHandler{service: service}
}

func (h *InvestmentHandler) HandleInvestments(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		investments, err := h.service.List(r.Context(), p.Email)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, investments)

	case http.MethodPost:
		var params investment.CreateParams
		if !decodeBody(w, r, &params) {
			return
		}
		i, err := h.service.Create(r.Context(), p.Email, params)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, i)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *InvestmentHandler) HandleInvestmentByID(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		i, err := h.service.Get(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, i)

	case http.MethodPut:
		var params investment.UpdateParams
		if !decodeBody(w, r, &params) {
			return
		}
		i, err := h.service.Update(r.Context(), p.Email, id, params)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, i)

	case http.MethodDelete:
		if err := h.service.Delete(r.Context(), p.Email, id); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Investment deleted successfully"})

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleOperations appends an operation to the log.
func (h *InvestmentHandler) HandleOperations(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var params investment.OperationParams
	if !decodeBody(w, r, &params) {
		return
	}
	i, err := h.service.AddOperation(r.Context(), p.Email, r.PathValue("id"), params)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, i)
}

// HandleOperationByIndex updates or deletes one operation by its
// position in the log.
func (h *InvestmentHandler) HandleOperationByIndex(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "operation index must be an integer")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var params investment.OperationParams
		if !decodeBody(w, r, &params) {
			return
		}
		i, err := h.service.UpdateOperation(r.Context(), p.Email, id, index, params)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, i)

	case http.MethodDelete:
		i, err := h.service.DeleteOperation(r.Context(), p.Email, id, index)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, i)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
