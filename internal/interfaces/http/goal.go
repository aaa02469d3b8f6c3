package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"centime/internal/domain/goal"
)

// GoalHandler exposes savings goal CRUD.
type GoalHandler struct {
	repo goal.Repository
}

func NewGoalHandler(repo goal.Repository) *GoalHandler {
	return &GoalHandler{repo: repo}
}

func (h *GoalHandler) HandleGoals(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		goals, err := h.repo.ListByOwner(r.Context(), p.Email)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, goals)

	case http.MethodPost:
		var params goal.CreateParams
		if !decodeBody(w, r, &params) {
			return
		}
		params.Defaults()

		g := &goal.Goal{
			ID:            uuid.NewString(),
			Name:          params.Name,
			TargetAmount:  params.TargetAmount,
			CurrentAmount: params.CurrentAmount,
			Deadline:      params.Deadline,
			Category:      params.Category,
			Color:         params.Color,
			CreatedAt:     time.Now().UTC(),
			OwnerEmail:    p.Email,
		}
		if err := h.repo.Create(r.Context(), g); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, g)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *GoalHandler) HandleGoalByID(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		g, err := h.repo.GetByID(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, g)

	case http.MethodPut:
		var params goal.UpdateParams
		if !decodeBody(w, r, &params) {
			return
		}
		g, err := h.repo.GetByID(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		params.Apply(g)
		if err := h.repo.Update(r.Context(), g); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, g)

	case http.MethodDelete:
		if err := h.repo.Delete(r.Context(), p.Email, id); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Goal deleted successfully"})

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
