package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"centime/internal/domain/task"
)

// TaskHandler exposes Eisenhower matrix tasks.
type TaskHandler struct {
	repo task.Repository
}

func NewTaskHandler(repo task.Repository) *TaskHandler {
	return &TaskHandler{repo: repo}
}

func (h *TaskHandler) HandleTasks(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		tasks, err := h.repo.ListByOwner(r.Context(), p.Email)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}

		quadrant := r.URL.Query().Get("quadrant")
		completedRaw := r.URL.Query().Get("completed")
		if quadrant != "" || completedRaw != "" {
			var completed bool
			if completedRaw != "" {
				parsed, err := strconv.ParseBool(completedRaw)
				if err != nil {
					respondError(w, http.StatusUnprocessableEntity, "completed must be a boolean")
					return
				}
				completed = parsed
			}

			filtered := tasks[:0]
			for _, t := range tasks {
				if quadrant != "" && (t.Quadrant == nil || *t.Quadrant != quadrant) {
					continue
				}
				if completedRaw != "" && t.Completed != completed {
					continue
				}
				filtered = append(filtered, t)
			}
			tasks = filtered
		}
		respondJSON(w, http.StatusOK, tasks)

	case http.MethodPost:
		var params task.CreateParams
		if !decodeBody(w, r, &params) {
			return
		}
		if params.Quadrant != nil && !task.ValidQuadrant(*params.Quadrant) {
			respondDomainError(w, r, task.ErrInvalidQuadrant)
			return
		}
		tags := params.Tags
		if tags == nil {
			tags = []string{}
		}

		t := &task.Task{
			ID:            uuid.NewString(),
			Title:         params.Title,
			Description:   params.Description,
			Quadrant:      params.Quadrant,
			EstimatedCost: params.EstimatedCost,
			Priority:      params.Priority,
			DueDate:       params.DueDate,
			Tags:          tags,
			CreatedAt:     time.Now().UTC(),
			OwnerEmail:    p.Email,
		}
		if err := h.repo.Create(r.Context(), t); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, t)

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *TaskHandler) HandleTaskByID(w http.ResponseWriter, r *http.Request) {
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
		var params task.UpdateParams
		if !decodeBody(w, r, &params) {
			return
		}
		if params.Quadrant != nil && !task.ValidQuadrant(*params.Quadrant) {
			respondDomainError(w, r, task.ErrInvalidQuadrant)
			return
		}
		t, err := h.repo.GetByID(r.Context(), p.Email, id)
		if err != nil {
			respondDomainError(w, r, err)
			return
		}
		params.Apply(t)
		if err := h.repo.Update(r.Context(), t); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, t)

	case http.MethodDelete:
		if err := h.repo.Delete(r.Context(), p.Email, id); err != nil {
			respondDomainError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})

	default:
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleComplete toggles the completed flag.
func (h *TaskHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	t, err := h.repo.GetByID(r.Context(), p.Email, r.PathValue("id"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	t.Completed = !t.Completed
	if err := h.repo.Update(r.Context(), t); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// HandleMove reassigns the task to ?quadrant=.
func (h *TaskHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	quadrant := r.URL.Query().Get("quadrant")
	if !task.ValidQuadrant(quadrant) {
		respondDomainError(w, r, task.ErrInvalidQuadrant)
		return
	}

	t, err := h.repo.GetByID(r.Context(), p.Email, r.PathValue("id"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	t.Quadrant = &quadrant
	if err := h.repo.Update(r.Context(), t); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}
