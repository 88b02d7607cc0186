package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest/internal/application/todolist/dto"
	domaintodolist "github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/interfaces/http/handlers/testutil"
	"github.com/tasknest/tasknest/internal/shared/errors"
)

// =====================================================================
// Mock todolist service
// =====================================================================

type mockTodolistService struct {
	list    *dto.TodolistResponse
	lists   []*dto.TodolistResponse
	task    *dto.TaskResponse
	tasks   []*dto.TaskResponse
	err     error
	gotUser string
	gotID   string
	gotQ    dto.ListTasksQuery
}

func (m *mockTodolistService) CreateTodolist(ctx context.Context, userID string, req dto.CreateTodolistRequest) (*dto.TodolistResponse, error) {
	m.gotUser = userID
	return m.list, m.err
}

func (m *mockTodolistService) ListTodolists(ctx context.Context, userID string) ([]*dto.TodolistResponse, error) {
	m.gotUser = userID
	return m.lists, m.err
}

func (m *mockTodolistService) GetTodolist(ctx context.Context, userID, todolistID string) (*dto.TodolistResponse, error) {
	m.gotUser, m.gotID = userID, todolistID
	return m.list, m.err
}

func (m *mockTodolistService) UpdateTodolist(ctx context.Context, userID, todolistID string, req dto.UpdateTodolistRequest) (*dto.TodolistResponse, error) {
	m.gotUser, m.gotID = userID, todolistID
	return m.list, m.err
}

func (m *mockTodolistService) DeleteTodolist(ctx context.Context, userID, todolistID string) error {
	m.gotUser, m.gotID = userID, todolistID
	return m.err
}

func (m *mockTodolistService) CreateTask(ctx context.Context, userID string, req dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	m.gotUser = userID
	return m.task, m.err
}

func (m *mockTodolistService) ListTasks(ctx context.Context, userID, todolistID string, q dto.ListTasksQuery) ([]*dto.TaskResponse, error) {
	m.gotUser, m.gotID, m.gotQ = userID, todolistID, q
	return m.tasks, m.err
}

func (m *mockTodolistService) GetTask(ctx context.Context, userID, taskID string) (*dto.TaskResponse, error) {
	m.gotUser, m.gotID = userID, taskID
	return m.task, m.err
}

func (m *mockTodolistService) UpdateTask(ctx context.Context, userID, taskID string, req dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	m.gotUser, m.gotID = userID, taskID
	return m.task, m.err
}

func (m *mockTodolistService) DeleteTask(ctx context.Context, userID, taskID string) error {
	m.gotUser, m.gotID = userID, taskID
	return m.err
}

// =====================================================================
// Tests
// =====================================================================

func TestTodolistHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		svcErr     error
		wantStatus int
	}{
		{
			name:       "success",
			body:       dto.CreateTodolistRequest{Title: "Groceries"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "blank title",
			body:       map[string]string{"title": "     "},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "title too short",
			body:       dto.CreateTodolistRequest{Title: "ab"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "per-user limit reached",
			body:       dto.CreateTodolistRequest{Title: "Groceries"},
			svcErr:     domaintodolist.NewTooManyTodolistsError(10),
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockTodolistService{list: &dto.TodolistResponse{ID: "tdl_1", Title: "Groceries"}, err: tt.svcErr}
			handler := NewTodolistHandler(svc, testutil.NewMockLogger())

			c, w := testutil.NewTestContext(http.MethodPost, "/api/v1/todolists", tt.body)
			testutil.SetAuthContext(c, "usr_1")
			handler.Create(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, "usr_1", svc.gotUser)
			}
		})
	}
}

func TestTodolistHandler_List(t *testing.T) {
	svc := &mockTodolistService{lists: []*dto.TodolistResponse{{ID: "tdl_1"}, {ID: "tdl_2"}}}
	handler := NewTodolistHandler(svc, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/todolists", nil)
	testutil.SetAuthContext(c, "usr_1")
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var lists []dto.TodolistResponse
	require.NoError(t, json.Unmarshal(resp.Data, &lists))
	assert.Len(t, lists, 2)
}

func TestTodolistHandler_Get(t *testing.T) {
	t.Run("malformed id", func(t *testing.T) {
		svc := &mockTodolistService{}
		handler := NewTodolistHandler(svc, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/todolists/tsk_1", nil)
		testutil.SetAuthContext(c, "usr_1")
		testutil.SetURLParam(c, "id", "tsk_1")
		handler.Get(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, svc.gotID)
	})

	t.Run("foreign list is forbidden", func(t *testing.T) {
		svc := &mockTodolistService{err: domaintodolist.NewNotOwnerError("todolist")}
		handler := NewTodolistHandler(svc, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/todolists/tdl_abc", nil)
		testutil.SetAuthContext(c, "usr_2")
		testutil.SetURLParam(c, "id", "tdl_abc")
		handler.Get(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "tdl_abc", svc.gotID)
	})

	t.Run("missing list", func(t *testing.T) {
		handler := NewTodolistHandler(&mockTodolistService{err: errors.NewNotFoundError("todolist not found")}, testutil.NewMockLogger())

		c, w := testutil.NewTestContext(http.MethodGet, "/api/v1/todolists/tdl_abc", nil)
		testutil.SetAuthContext(c, "usr_1")
		testutil.SetURLParam(c, "id", "tdl_abc")
		handler.Get(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTodolistHandler_UpdateAndDelete(t *testing.T) {
	svc := &mockTodolistService{list: &dto.TodolistResponse{ID: "tdl_abc", Title: "Renamed"}}
	handler := NewTodolistHandler(svc, testutil.NewMockLogger())

	title := "Renamed"
	c, w := testutil.NewTestContext(http.MethodPatch, "/api/v1/todolists/tdl_abc", dto.UpdateTodolistRequest{Title: &title})
	testutil.SetAuthContext(c, "usr_1")
	testutil.SetURLParam(c, "id", "tdl_abc")
	handler.Update(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, _ = testutil.NewTestContext(http.MethodDelete, "/api/v1/todolists/tdl_abc", nil)
	testutil.SetAuthContext(c, "usr_1")
	testutil.SetURLParam(c, "id", "tdl_abc")
	handler.Delete(c)
	// c.Status does not flush the header to the recorder outside the engine.
	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
}
