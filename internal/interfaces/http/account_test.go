package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"centime/internal/domain/account"
	"centime/internal/domain/transaction"
	"centime/internal/shared/auth"
)

// MockAccountRepo implements account.Repository for testing
type MockAccountRepo struct {
	CreateFunc        func(ctx context.Context, a *account.Account) error
	ListByOwnerFunc   func(ctx context.Context, owner string) ([]account.Account, error)
	GetByIDFunc       func(ctx context.Context, owner, id string) (*account.Account, error)
	UpdateFunc        func(ctx context.Context, a *account.Account) error
	DeleteFunc        func(ctx context.Context, owner, id string) error
	ApplyTransferFunc func(ctx context.Context, from, to *account.Account, legs [2]transaction.Transaction) error
}

func (m *MockAccountRepo) Create(ctx context.Context, a *account.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	return nil
}

func (m *MockAccountRepo) ListByOwner(ctx context.Context, owner string) ([]account.Account, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, owner)
	}
	return nil, nil
}

func (m *MockAccountRepo) GetByID(ctx context.Context, owner, id string) (*account.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, owner, id)
	}
	return nil, account.ErrAccountNotFound
}

func (m *MockAccountRepo) Update(ctx context.Context, a *account.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, a)
	}
	return nil
}

func (m *MockAccountRepo) Delete(ctx context.Context, owner, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, owner, id)
	}
	return nil
}

func (m *MockAccountRepo) ApplyTransfer(ctx context.Context, from, to *account.Account, legs [2]transaction.Transaction) error {
	if m.ApplyTransferFunc != nil {
		return m.ApplyTransferFunc(ctx, from, to, legs)
	}
	return nil
}

func authenticatedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := auth.WithPrincipal(req.Context(), auth.Principal{Email: "user@example.com", Name: "Test User"})
	return req.WithContext(ctx)
}

func TestHandleAccountsList(t *testing.T) {
	tests := []struct {
		name           string
		mockRepo       func() *MockAccountRepo
		expectedStatus int
	}{
		{
			name: "Success",
			mockRepo: func() *MockAccountRepo {
				return &MockAccountRepo{
					ListByOwnerFunc: func(ctx context.Context, owner string) ([]account.Account, error) {
						return []account.Account{{ID: "acc-1", Name: "Checking", Currency: "EUR"}}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Empty List",
			mockRepo: func() *MockAccountRepo {
				return &MockAccountRepo{
					ListByOwnerFunc: func(ctx context.Context, owner string) ([]account.Account, error) {
						return []account.Account{}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Repository Error",
			mockRepo: func() *MockAccountRepo {
				return &MockAccountRepo{
					ListByOwnerFunc: func(ctx context.Context, owner string) ([]account.Account, error) {
						return nil, errors.New("db error")
					},
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAccountHandler(account.NewService(tt.mockRepo()))

			req := authenticatedRequest(http.MethodGet, "/api/accounts", nil)
			rr := httptest.NewRecorder()
			handler.HandleAccounts(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleAccountsUnauthenticated(t *testing.T) {
	handler := NewAccountHandler(account.NewService(&MockAccountRepo{}))

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	rr := httptest.NewRecorder()
	handler.HandleAccounts(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusUnauthorized)
	}
}

func TestHandleTransfer(t *testing.T) {
	accounts := map[string]*account.Account{
		"acc-1": {ID: "acc-1", Name: "Checking", Currency: "EUR", CurrentBalance: 1000},
		"acc-2": {ID: "acc-2", Name: "Savings", Currency: "EUR", CurrentBalance: 500},
	}
	var appliedLegs [2]transaction.Transaction
	repo := &MockAccountRepo{
		GetByIDFunc: func(ctx context.Context, owner, id string) (*account.Account, error) {
			a, ok := accounts[id]
			if !ok {
				return nil, account.ErrAccountNotFound
			}
			copied := *a
			return &copied, nil
		},
		ApplyTransferFunc: func(ctx context.Context, from, to *account.Account, legs [2]transaction.Transaction) error {
			appliedLegs = legs
			accounts[from.ID] = from
			accounts[to.ID] = to
			return nil
		},
	}
	handler := NewAccountHandler(account.NewService(repo))

	body, _ := json.Marshal(account.TransferParams{
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
		Amount:        250,
		Description:   "Monthly savings",
	})
	req := authenticatedRequest(http.MethodPost, "/api/accounts/transfer", body)
	rr := httptest.NewRecorder()
	handler.HandleTransfer(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v, body %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	if got := accounts["acc-1"].CurrentBalance; got != 750 {
		t.Errorf("source balance = %v, want 750", got)
	}
	if got := accounts["acc-2"].CurrentBalance; got != 750 {
		t.Errorf("destination balance = %v, want 750", got)
	}
	if appliedLegs[0].Type != transaction.TypeTransfer || appliedLegs[1].Type != transaction.TypeTransfer {
		t.Errorf("legs should both be transfers, got %q and %q", appliedLegs[0].Type, appliedLegs[1].Type)
	}
	if appliedLegs[0].AccountID != "acc-1" || appliedLegs[1].AccountID != "acc-2" {
		t.Errorf("legs landed on wrong accounts: %q and %q", appliedLegs[0].AccountID, appliedLegs[1].AccountID)
	}

	var result account.TransferResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.Amount != 250 || result.ConvertedAmount != 250 {
		t.Errorf("result amounts = %v / %v, want 250 / 250", result.Amount, result.ConvertedAmount)
	}
}

func TestHandleTransferSameAccount(t *testing.T) {
	handler := NewAccountHandler(account.NewService(&MockAccountRepo{}))

	body, _ := json.Marshal(account.TransferParams{
		FromAccountID: "acc-1",
		ToAccountID:   "acc-1",
		Amount:        100,
	})
	req := authenticatedRequest(http.MethodPost, "/api/accounts/transfer", body)
	rr := httptest.NewRecorder()
	handler.HandleTransfer(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusUnprocessableEntity)
	}
}

func TestHandleTransferMissingAccount(t *testing.T) {
	handler := NewAccountHandler(account.NewService(&MockAccountRepo{}))

	body, _ := json.Marshal(account.TransferParams{
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
		Amount:        100,
	})
	req := authenticatedRequest(http.MethodPost, "/api/accounts/transfer", body)
	rr := httptest.NewRecorder()
	handler.HandleTransfer(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusNotFound)
	}
}

func TestHandleCurrencyRates(t *testing.T) {
	handler := NewAccountHandler(account.NewService(&MockAccountRepo{}))

	req := httptest.NewRequest(http.MethodGet, "/api/currency/rates", nil)
	rr := httptest.NewRecorder()
	handler.HandleCurrencyRates(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}

	var payload struct {
		Base  string             `json:"base"`
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if payload.Base != "EUR" {
		t.Errorf("default base = %q, want EUR", payload.Base)
	}
	if payload.Rates["EUR"] != 1 {
		t.Errorf("base rate = %v, want 1", payload.Rates["EUR"])
	}
}
