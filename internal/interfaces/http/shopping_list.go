package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"centime/internal/domain/shoppinglist"
)

// ShoppingListHandler exposes shopping lists, their items and the
// plain-text download.
type ShoppingListHandler struct {
	repo shoppinglist.Repository
}

func NewShoppingListHandler(repo shoppinglist.Repository) *ShoppingListHandler {
	return &ShoppingListHandler{repo: repo}
}

func (h *ShoppingListHandler) HandleLists(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		lists, err := h.repo.ListByOwner(r.Context(), p.Email)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, lists)

	case http.MethodPost:
		var params shoppinglist.CreateParams
		if !decodeBody(w, r, &params) {
			return
		}
		items := params.Items
		if items == nil {
			items = []shoppinglist.Item{}
		}

		l := &shoppinglist.List{
			ID:         uuid.NewString(),
			Name:       params.Name,
			Items:      items,
			CreatedAt:  time.Now().UTC(),
			OwnerEmail: p.Email,
		}
		if err := h.repo.Create(r.Context(), l); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, l)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *ShoppingListHandler) HandleListByID(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		l, err := h.repo.GetByID(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, l)

	case http.MethodPut:
		var params shoppinglist.UpdateParams
		if !decodeBody(w, r, &params) {
			return
		}
		l, err := h.repo.GetByID(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		params.Apply(l)
		if err := h.repo.Update(r.Context(), l); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, l)

	case http.MethodDelete:
		if err := h.repo.Delete(r.Context(), p.Email, id); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Shopping list deleted successfully"})

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleAddItem adds a product to the list or bumps its quantity.
// Parameters come from the query string: ?product_id=&product_name=&quantity=.
func (h *ShoppingListHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	productID := r.URL.Query().Get("product_id")
	if productID == "" {
		respondError(w, http.StatusUnprocessableEntity, "product_id is required")
		return
	}
	quantity := 1
	if raw := r.URL.Query().Get("quantity"); raw != "" {
		q, err := strconv.Atoi(raw)
		if err != nil || q < 1 {
			respondError(w, http.StatusUnprocessableEntity, "quantity must be a positive integer")
			return
		}
		quantity = q
	}

	l, err := h.repo.GetByID(r.Context(), p.Email, r.PathValue("id"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	count := l.AddItem(productID, r.URL.Query().Get("product_name"), quantity)
	if err := h.repo.Update(r.Context(), l); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":     "Item added to list",
		"items_count": count,
	})
}

func (h *ShoppingListHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	l, err := h.repo.GetByID(r.Context(), p.Email, r.PathValue("id"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	count := l.RemoveItem(r.PathValue("product_id"))
	if err := h.repo.Update(r.Context(), l); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":     "Item removed from list",
		"items_count": count,
	})
}

// HandleDownload renders the list as a text attachment.
func (h *ShoppingListHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	l, err := h.repo.GetByID(r.Context(), p.Email, r.PathValue("id"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=liste-courses-%s.txt", l.ID))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(l.RenderText()))
}
