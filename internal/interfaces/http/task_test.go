package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"centime/internal/domain/task"
)

// MockTaskRepo implements task.Repository over an in-memory map.
type MockTaskRepo struct {
	tasks map[string]*task.Task
}

func NewMockTaskRepo(tasks ...*task.Task) *MockTaskRepo {
	m := &MockTaskRepo{tasks: map[string]*task.Task{}}
	for _, t := range tasks {
		m.tasks[t.ID] = t
	}
	return m
}

func (m *MockTaskRepo) Create(ctx context.Context, t *task.Task) error {
	m.tasks[t.ID] = t
	return nil
}

func (m *MockTaskRepo) ListByOwner(ctx context.Context, owner string) ([]task.Task, error) {
	out := []task.Task{}
	for _, t := range m.tasks {
		out = append(out, *t)
	}
	return out, nil
}

func (m *MockTaskRepo) GetByID(ctx context.Context, owner, id string) (*task.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	copied := *t
	return &copied, nil
}

func (m *MockTaskRepo) Update(ctx context.Context, t *task.Task) error {
	if _, ok := m.tasks[t.ID]; !ok {
		return task.ErrTaskNotFound
	}
	m.tasks[t.ID] = t
	return nil
}

func (m *MockTaskRepo) Delete(ctx context.Context, owner, id string) error {
	if _, ok := m.tasks[id]; !ok {
		return task.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

func strPtr(s string) *string { return &s }

func TestHandleTasksCreateQuadrant(t *testing.T) {
	tests := []struct {
		name           string
		quadrant       *string
		expectedStatus int
	}{
		{"Valid Quadrant", strPtr(task.QuadrantUrgentImportant), http.StatusOK},
		{"No Quadrant", nil, http.StatusOK},
		{"Invalid Quadrant", strPtr("someday-maybe"), http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTaskHandler(NewMockTaskRepo())

			body, _ := json.Marshal(task.CreateParams{
				Title:    "Pay electricity bill",
				Quadrant: tt.quadrant,
			})
			req := authenticatedRequest(http.MethodPost, "/api/tasks", body)
			rr := httptest.NewRecorder()
			handler.HandleTasks(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleTasksListFilters(t *testing.T) {
	repo := NewMockTaskRepo(
		&task.Task{ID: "t-1", Title: "Call bank", Quadrant: strPtr(task.QuadrantUrgentImportant), Completed: false, Tags: []string{}},
		&task.Task{ID: "t-2", Title: "Plan budget", Quadrant: strPtr(task.QuadrantNotUrgentImportant), Completed: false, Tags: []string{}},
		&task.Task{ID: "t-3", Title: "Archive receipts", Quadrant: strPtr(task.QuadrantUrgentImportant), Completed: true, Tags: []string{}},
	)
	handler := NewTaskHandler(repo)

	list := func(target string) ([]task.Task, int) {
		req := authenticatedRequest(http.MethodGet, target, nil)
		rr := httptest.NewRecorder()
		handler.HandleTasks(rr, req)
		var tasks []task.Task
		_ = json.Unmarshal(rr.Body.Bytes(), &tasks)
		return tasks, rr.Code
	}

	tasks, code := list("/api/tasks?quadrant=" + task.QuadrantUrgentImportant)
	if code != http.StatusOK || len(tasks) != 2 {
		t.Errorf("quadrant filter: code %v, %d tasks, want 200 and 2", code, len(tasks))
	}

	tasks, code = list("/api/tasks?quadrant=" + task.QuadrantUrgentImportant + "&completed=false")
	if code != http.StatusOK || len(tasks) != 1 || tasks[0].ID != "t-1" {
		t.Errorf("combined filter: code %v, tasks %+v, want only t-1", code, tasks)
	}

	_, code = list("/api/tasks?completed=maybe")
	if code != http.StatusUnprocessableEntity {
		t.Errorf("bad completed flag: code %v, want %v", code, http.StatusUnprocessableEntity)
	}
}

func TestHandleCompleteToggles(t *testing.T) {
	repo := NewMockTaskRepo(&task.Task{ID: "t-1", Title: "Call bank", Tags: []string{}})
	handler := NewTaskHandler(repo)

	toggle := func() task.Task {
		req := authenticatedRequest(http.MethodPatch, "/api/tasks/t-1/complete", nil)
		req.SetPathValue("id", "t-1")
		rr := httptest.NewRecorder()
		handler.HandleComplete(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
		}
		var out task.Task
		if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		return out
	}

	if out := toggle(); !out.Completed {
		t.Error("first toggle should complete the task")
	}
	if out := toggle(); out.Completed {
		t.Error("second toggle should reopen the task")
	}
}

func TestHandleMove(t *testing.T) {
	repo := NewMockTaskRepo(&task.Task{ID: "t-1", Title: "Call bank", Tags: []string{}})
	handler := NewTaskHandler(repo)

	req := authenticatedRequest(http.MethodPatch, "/api/tasks/t-1/move?quadrant="+task.QuadrantUrgentNotImportant, nil)
	req.SetPathValue("id", "t-1")
	rr := httptest.NewRecorder()
	handler.HandleMove(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	var out task.Task
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if out.Quadrant == nil || *out.Quadrant != task.QuadrantUrgentNotImportant {
		t.Errorf("quadrant = %v, want %q", out.Quadrant, task.QuadrantUrgentNotImportant)
	}

	req = authenticatedRequest(http.MethodPatch, "/api/tasks/t-1/move?quadrant=bogus", nil)
	req.SetPathValue("id", "t-1")
	rr = httptest.NewRecorder()
	handler.HandleMove(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid quadrant: got %v want %v", rr.Code, http.StatusUnprocessableEntity)
	}
}
