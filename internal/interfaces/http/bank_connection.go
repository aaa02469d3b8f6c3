package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"centime/internal/domain/bankconnection"
	"centime/internal/domain/transaction"
)

// BankConnectionHandler exposes bank connections, the sync stamp and the
// CSV statement import.
type BankConnectionHandler struct {
	connections  bankconnection.Repository
	transactions transaction.Repository
}

func NewBankConnectionHandler(connections bankconnection.Repository, transactions transaction.Repository) *BankConnectionHandler {
	return &BankConnectionHandler{connections: connections, transactions: transactions}
}

func (h *BankConnectionHandler) HandleConnections(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		connections, err := h.connections.ListByOwner(r.Context(), p.Email)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, connections)

	case http.MethodPost:
		var params bankconnection.CreateParams
		if !decodeBody(w, r, &params) {
			return
		}

		c := &bankconnection.Connection{
			ID:               uuid.NewString(),
			BankName:         params.BankName,
			AccountID:        params.AccountID,
			ConnectionStatus: bankconnection.StatusActive,
			AccessToken:      params.AccessToken,
			CreatedAt:        time.Now().UTC(),
			OwnerEmail:       p.Email,
		}
		if err := h.connections.Create(r.Context(), c); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, c)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *BankConnectionHandler) HandleConnectionByID(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		c, err := h.connections.GetByID(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, c)

	case http.MethodDelete:
		if err := h.connections.Delete(r.Context(), p.Email, id); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Bank connection deleted successfully"})

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleSync stamps last_sync. Real bank integration is out of scope.
func (h *BankConnectionHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if err := h.connections.MarkSynced(r.Context(), p.Email, r.PathValue("id"), time.Now().UTC()); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Bank sync initiated",
		"status":  "success",
	})
}

// HandleImportCSV loads statement rows onto the connection's linked
// account, skipping rows whose statement identity was seen before.
func (h *BankConnectionHandler) HandleImportCSV(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	c, err := h.connections.GetByID(r.Context(), p.Email, r.PathValue("id"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if c.AccountID == "" {
		respondDomainError(w, r, bankconnection.ErrNoLinkedAccount)
		return
	}

	var req bankconnection.ImportRequest
	if !decodeBody(w, r, &req) {
		return
	}

	now := time.Now().UTC()
	imported := 0
	for _, row := range req.Transactions {
		t := bankconnection.RowToTransaction(row, c.AccountID, p.Email, now)
		inserted, err := h.transactions.CreateIfAbsent(r.Context(), &t)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		if inserted {
			imported++
		}
	}

	if err := h.connections.MarkSynced(r.Context(), p.Email, c.ID, now); err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, bankconnection.ImportResult{
		Message:       fmt.Sprintf("%d transactions imported successfully", imported),
		ImportedCount: imported,
		TotalRows:     len(req.Transactions),
	})
}
