// Package http carries the JSON handlers behind the /api surface.
package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"centime/internal/domain/account"
	"centime/internal/domain/bankconnection"
	"centime/internal/domain/category"
	"centime/internal/domain/debt"
	"centime/internal/domain/goal"
	"centime/internal/domain/investment"
	"centime/internal/domain/payee"
	"centime/internal/domain/product"
	"centime/internal/domain/receivable"
	"centime/internal/domain/session"
	"centime/internal/domain/shoppinglist"
	"centime/internal/domain/task"
	"centime/internal/domain/transaction"
	"centime/internal/domain/user"
	"centime/internal/shared/auth"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// respondError writes the {"detail": ...} error shape used across the API.
func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

var notFoundErrors = []error{
	account.ErrAccountNotFound,
	transaction.ErrTransactionNotFound,
	investment.ErrInvestmentNotFound,
	investment.ErrOperationNotFound,
	goal.ErrGoalNotFound,
	debt.ErrDebtNotFound,
	debt.ErrPaymentNotFound,
	receivable.ErrReceivableNotFound,
	receivable.ErrPaymentNotFound,
	category.ErrCategoryNotFound,
	payee.ErrPayeeNotFound,
	product.ErrProductNotFound,
	shoppinglist.ErrListNotFound,
	task.ErrTaskNotFound,
	bankconnection.ErrConnectionNotFound,
	user.ErrUserNotFound,
}

// respondDomainError maps domain sentinels onto the HTTP error taxonomy.
// Anything unrecognized is a 500 and gets logged.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "Not authenticated")
		return
	case errors.Is(err, account.ErrSameAccount),
		errors.Is(err, task.ErrInvalidQuadrant),
		errors.Is(err, bankconnection.ErrNoLinkedAccount),
		errors.Is(err, user.ErrUserExists):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	for _, sentinel := range notFoundErrors {
		if errors.Is(err, sentinel) {
			respondError(w, http.StatusNotFound, sentinel.Error())
			return
		}
	}
	log.Printf("Error handling %s %s: %v", r.Method, r.URL.Path, err)
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

// decodeBody parses a JSON request body, answering 422 on malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Printf("Malformed body on %s %s: %v", r.Method, r.URL.Path, err)
		respondError(w, http.StatusUnprocessableEntity, "Malformed request body")
		return false
	}
	return true
}

// principal returns the authenticated principal. The auth middleware
// guarantees one; a missing principal is a wiring bug, answered with 401.
func principal(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Authentication required")
	}
	return p, ok
}
