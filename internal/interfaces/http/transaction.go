package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"centime/internal/domain/transaction"
)

// TransactionHandler exposes the transaction ledger.
type TransactionHandler struct {
	repo transaction.Repository
}

func NewTransactionHandler(repo transaction.Repository) *TransactionHandler {
	return &TransactionHandler{repo: repo}
}

func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		filter := transaction.Filter{
			AccountID: r.URL.Query().Get("account_id"),
			Type:      r.URL.Query().Get("type"),
		}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				respondError(w, http.StatusUnprocessableEntity, "limit must be an integer")
				return
			}
			filter.Limit = limit
		}

		transactions, err := h.repo.List(r.Context(), p.Email, filter)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, transactions)

	case http.MethodPost:
		var t transaction.Transaction
		if !decodeBody(w, r, &t) {
			return
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		now := time.Now().UTC()
		if t.Date.IsZero() {
			t.Date = now
		}
		if t.Tags == nil {
			t.Tags = []string{}
		}
		t.CreatedAt = now
		t.OwnerEmail = p.Email

		created, err := h.repo.Create(r.Context(), &t)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, created)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		t, err := h.repo.GetByID(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, t)

	case http.MethodPut:
		existing, err := h.repo.GetByID(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}

		updated := *existing
		if !decodeBody(w, r, &updated) {
			return
		}
		// Identity and ownership are immutable.
		updated.ID = existing.ID
		updated.OwnerEmail = existing.OwnerEmail
		updated.CreatedAt = existing.CreatedAt
		if updated.Tags == nil {
			updated.Tags = []string{}
		}

		if err := h.repo.Update(r.Context(), &updated); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := h.repo.Delete(r.Context(), p.Email, id); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
