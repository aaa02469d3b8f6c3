package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"centime/internal/domain/product"
)

// ProductHandler exposes grocery products and purchase recording.
type ProductHandler struct {
	repo product.Repository
}

func NewProductHandler(repo product.Repository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

func (h *ProductHandler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		products, err := h.repo.ListByOwner(r.Context(), p.Email)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		if cat := r.URL.Query().Get("category"); cat != "" {
			filtered := products[:0]
			for _, prod := range products {
				if prod.Category == cat {
					filtered = append(filtered, prod)
				}
			}
			products = filtered
		}
		respondJSON(w, http.StatusOK, products)

	case http.MethodPost:
		var params product.CreateParams
		if !decodeBody(w, r, &params) {
			return
		}
		params.Defaults()

		prod := &product.Product{
			ID:                    uuid.NewString(),
			Name:                  params.Name,
			Category:              params.Category,
			UsualPrice:            params.UsualPrice,
			CurrentPrice:          params.CurrentPrice,
			IsOnSale:              params.IsOnSale,
			LastPurchasedLocation: params.LastPurchasedLocation,
			Locations:             params.Locations,
			PurchaseHistory:       []product.Purchase{},
			PriceAlertThreshold:   params.PriceAlertThreshold,
			Notes:                 params.Notes,
			CreatedAt:             time.Now().UTC(),
			OwnerEmail:            p.Email,
		}
		if err := h.repo.Create(r.Context(), prod); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, prod)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *ProductHandler) HandleProductByID(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		prod, err := h.repo.GetByID(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, prod)

	case http.MethodPut:
		var params product.UpdateParams
		if !decodeBody(w, r, &params) {
			return
		}
		prod, err := h.repo.GetByID(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		params.Apply(prod)
		if err := h.repo.Update(r.Context(), prod); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, prod)

	case http.MethodDelete:
		if err := h.repo.Delete(r.Context(), p.Email, id); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandlePurchase records a purchase from ?location=&price=.
func (h *ProductHandler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	location := r.URL.Query().Get("location")
	if location == "" {
		respondError(w, http.StatusUnprocessableEntity, "location is required")
		return
	}
	price, err := strconv.ParseFloat(r.URL.Query().Get("price"), 64)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "price must be a number")
		return
	}

	prod, err := h.repo.GetByID(r.Context(), p.Email, r.PathValue("id"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	prod.RecordPurchase(location, price, time.Now().UTC())
	if err := h.repo.Update(r.Context(), prod); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, prod)
}
