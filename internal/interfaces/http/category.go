package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"centime/internal/domain/category"
)

// CategoryHandler exposes category CRUD with an optional type filter.
type CategoryHandler struct {
	repo category.Repository
}

func NewCategoryHandler(repo category.Repository) *CategoryHandler {
	return &CategoryHandler{repo: repo}
}

func (h *CategoryHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		categories, err := h.repo.ListByOwner(r.Context(), p.Email)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		if typ := r.URL.Query().Get("type"); typ != "" {
			filtered := categories[:0]
			for _, c := range categories {
				if c.Type == typ {
					filtered = append(filtered, c)
				}
			}
			categories = filtered
		}
		respondJSON(w, http.StatusOK, categories)

	case http.MethodPost:
		var params category.CreateParams
		if !decodeBody(w, r, &params) {
			return
		}
		params.Defaults()

		c := &category.Category{
			ID:         uuid.NewString(),
			Name:       params.Name,
			Type:       params.Type,
			Icon:       params.Icon,
			Color:      params.Color,
			Budget:     params.Budget,
			ParentID:   params.ParentID,
			CreatedAt:  time.Now().UTC(),
			OwnerEmail: p.Email,
		}
		if err := h.repo.Create(r.Context(), c); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, c)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *CategoryHandler) HandleCategoryByID(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		c, err := h.repo.GetByID(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, c)

	case http.MethodPut:
		var params category.UpdateParams
		if !decodeBody(w, r, &params) {
			return
		}
		c, err := h.repo.GetByID(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		params.Apply(c)
		if err := h.repo.Update(r.Context(), c); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, c)

	case http.MethodDelete:
		if err := h.repo.Delete(r.Context(), p.Email, id); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Category deleted successfully"})

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
