package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest/internal/domain/todolist"
	"github.com/tasknest/tasknest/internal/infrastructure/repository"
	"github.com/tasknest/tasknest/internal/shared/biztime"
	"github.com/tasknest/tasknest/internal/shared/db"
	"github.com/tasknest/tasknest/internal/shared/errors"
	"github.com/tasknest/tasknest/internal/shared/logger"
	"github.com/tasknest/tasknest/internal/shared/services/sanitize"
	"github.com/tasknest/tasknest/internal/shared/testutil"
)

const (
	alice = "usr_alice"
	bob   = "usr_bob"
)

type todoFixture struct {
	createList *CreateTodolistUseCase
	listLists  *ListTodolistsUseCase
	getList    *GetTodolistUseCase
	updateList *UpdateTodolistUseCase
	deleteList *DeleteTodolistUseCase
	createTask *CreateTaskUseCase
	listTasks  *ListTasksUseCase
	getTask    *GetTaskUseCase
	updateTask *UpdateTaskUseCase
	deleteTask *DeleteTaskUseCase
}

func newTodoFixture(t *testing.T, maxPerUser int) *todoFixture {
	t.Helper()
	gdb := testutil.NewSQLiteDB(t)
	log := logger.NewNop()
	lists := repository.NewTodolistRepository(gdb, log)
	tasks := repository.NewTaskRepository(gdb)
	s := sanitize.NewTextSanitizer()

	return &todoFixture{
		createList: NewCreateTodolistUseCase(lists, db.NewTransactionManager(gdb), s, maxPerUser, log),
		listLists:  NewListTodolistsUseCase(lists, log),
		getList:    NewGetTodolistUseCase(lists, log),
		updateList: NewUpdateTodolistUseCase(lists, s, log),
		deleteList: NewDeleteTodolistUseCase(lists, log),
		createTask: NewCreateTaskUseCase(tasks, lists, s, log),
		listTasks:  NewListTasksUseCase(tasks, lists, log),
		getTask:    NewGetTaskUseCase(tasks, lists, log),
		updateTask: NewUpdateTaskUseCase(tasks, lists, s, log),
		deleteTask: NewDeleteTaskUseCase(tasks, lists, log),
	}
}

func (f *todoFixture) mustList(t *testing.T, owner, title string) *todolist.Todolist {
	t.Helper()
	list, err := f.createList.Execute(context.Background(), CreateTodolistCommand{OwnerID: owner, Title: title})
	require.NoError(t, err)
	return list
}

func (f *todoFixture) mustTask(t *testing.T, owner, listID, title string, priority, order int, due *time.Time) *todolist.Task {
	t.Helper()
	task, err := f.createTask.Execute(context.Background(), CreateTaskCommand{
		UserID: owner, TodolistID: listID, Title: title, Priority: priority, Order: order, DueDate: due,
	})
	require.NoError(t, err)
	return task
}

func ptr[T any](v T) *T { return &v }

func TestCreateTodolist_EnforcesLimitPerOwner(t *testing.T) {
	f := newTodoFixture(t, 2)
	ctx := context.Background()

	f.mustList(t, alice, "First list")
	f.mustList(t, alice, "Second list")

	_, err := f.createList.Execute(ctx, CreateTodolistCommand{OwnerID: alice, Title: "Third list"})
	assert.True(t, errors.IsLimitExceededError(err), "got %v", err)

	// The limit is per owner.
	f.mustList(t, bob, "Bob's list")
}

func TestCreateTodolist_SanitizesAndValidates(t *testing.T) {
	f := newTodoFixture(t, 10)
	ctx := context.Background()

	list, err := f.createList.Execute(ctx, CreateTodolistCommand{
		OwnerID:     alice,
		Title:       "<b>Groceries</b>",
		Description: `<script>x()</script>Milk and bread`,
	})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", list.Title())
	assert.Equal(t, "Milk and bread", list.Description())

	_, err = f.createList.Execute(ctx, CreateTodolistCommand{OwnerID: alice, Title: "<i></i>ab"})
	assert.True(t, errors.IsValidationError(err), "got %v", err)
}

func TestTodolist_OwnershipIsEnforced(t *testing.T) {
	f := newTodoFixture(t, 10)
	ctx := context.Background()
	list := f.mustList(t, alice, "Groceries")

	_, err := f.getList.Execute(ctx, GetTodolistQuery{TodolistID: list.ID(), UserID: bob})
	assert.True(t, errors.IsForbiddenError(err), "got %v", err)

	_, err = f.updateList.Execute(ctx, UpdateTodolistCommand{TodolistID: list.ID(), UserID: bob, Title: ptr("Stolen")})
	assert.True(t, errors.IsForbiddenError(err), "got %v", err)

	err = f.deleteList.Execute(ctx, DeleteTodolistCommand{TodolistID: list.ID(), UserID: bob})
	assert.True(t, errors.IsForbiddenError(err), "got %v", err)

	_, err = f.getList.Execute(ctx, GetTodolistQuery{TodolistID: "tdl_missing", UserID: alice})
	assert.True(t, errors.IsNotFoundError(err), "got %v", err)

	bobs, err := f.listLists.Execute(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobs)
}

func TestUpdateTodolist(t *testing.T) {
	f := newTodoFixture(t, 10)
	ctx := context.Background()
	list := f.mustList(t, alice, "Groceries")

	updated, err := f.updateList.Execute(ctx, UpdateTodolistCommand{
		TodolistID:  list.ID(),
		UserID:      alice,
		Description: ptr("Weekly shopping"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", updated.Title())
	assert.Equal(t, "Weekly shopping", updated.Description())

	got, err := f.getList.Execute(ctx, GetTodolistQuery{TodolistID: list.ID(), UserID: alice})
	require.NoError(t, err)
	assert.Equal(t, "Weekly shopping", got.Description())
}

func TestDeleteTodolist_RemovesTasks(t *testing.T) {
	f := newTodoFixture(t, 10)
	ctx := context.Background()
	list := f.mustList(t, alice, "Groceries")
	task := f.mustTask(t, alice, list.ID(), "Buy milk", 1, 0, nil)

	require.NoError(t, f.deleteList.Execute(ctx, DeleteTodolistCommand{TodolistID: list.ID(), UserID: alice}))

	_, err := f.getTask.Execute(ctx, GetTaskQuery{TaskID: task.ID(), UserID: alice})
	assert.True(t, errors.IsNotFoundError(err), "got %v", err)
}

func TestTasks_OwnershipViaParentList(t *testing.T) {
	f := newTodoFixture(t, 10)
	ctx := context.Background()
	list := f.mustList(t, alice, "Groceries")
	task := f.mustTask(t, alice, list.ID(), "Buy milk", 1, 0, nil)

	_, err := f.createTask.Execute(ctx, CreateTaskCommand{UserID: bob, TodolistID: list.ID(), Title: "Sneaky"})
	assert.True(t, errors.IsForbiddenError(err), "got %v", err)

	_, err = f.getTask.Execute(ctx, GetTaskQuery{TaskID: task.ID(), UserID: bob})
	assert.True(t, errors.IsForbiddenError(err), "got %v", err)

	_, err = f.updateTask.Execute(ctx, UpdateTaskCommand{TaskID: task.ID(), UserID: bob, Completed: ptr(true)})
	assert.True(t, errors.IsForbiddenError(err), "got %v", err)

	err = f.deleteTask.Execute(ctx, DeleteTaskCommand{TaskID: task.ID(), UserID: bob})
	assert.True(t, errors.IsForbiddenError(err), "got %v", err)

	_, err = f.listTasks.Execute(ctx, ListTasksQuery{UserID: bob, TodolistID: list.ID()})
	assert.True(t, errors.IsForbiddenError(err), "got %v", err)
}

func TestUpdateTask(t *testing.T) {
	f := newTodoFixture(t, 10)
	ctx := context.Background()
	list := f.mustList(t, alice, "Groceries")
	task := f.mustTask(t, alice, list.ID(), "Buy milk", 1, 0, nil)

	updated, err := f.updateTask.Execute(ctx, UpdateTaskCommand{
		TaskID:    task.ID(),
		UserID:    alice,
		Completed: ptr(true),
		Tags:      &[]string{"<b>home</b>", "shop"},
	})
	require.NoError(t, err)
	assert.True(t, updated.Completed())
	assert.Equal(t, []string{"home", "shop"}, updated.Tags())

	got, err := f.getTask.Execute(ctx, GetTaskQuery{TaskID: task.ID(), UserID: alice})
	require.NoError(t, err)
	assert.True(t, got.Completed())
	assert.Equal(t, "Buy milk", got.Title())

	require.NoError(t, f.deleteTask.Execute(ctx, DeleteTaskCommand{TaskID: task.ID(), UserID: alice}))
	_, err = f.getTask.Execute(ctx, GetTaskQuery{TaskID: task.ID(), UserID: alice})
	assert.True(t, errors.IsNotFoundError(err), "got %v", err)
}

func TestListTasks_OrderAndFilters(t *testing.T) {
	now := time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)
	restore := biztime.SetClock(func() time.Time { return now })
	defer restore()

	f := newTodoFixture(t, 10)
	ctx := context.Background()
	list := f.mustList(t, alice, "Groceries")

	soon := now.Add(24 * time.Hour)
	later := now.Add(10 * 24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	f.mustTask(t, alice, list.ID(), "Third", 5, 3, &later)
	f.mustTask(t, alice, list.ID(), "First", 1, 1, &soon)
	f.mustTask(t, alice, list.ID(), "Second", 3, 2, &past)
	f.mustTask(t, alice, list.ID(), "Fourth", 4, 4, nil)

	titles := func(tasks []*todolist.Task) []string {
		out := make([]string, 0, len(tasks))
		for _, task := range tasks {
			out = append(out, task.Title())
		}
		return out
	}

	all, err := f.listTasks.Execute(ctx, ListTasksQuery{UserID: alice, TodolistID: list.ID()})
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Second", "Third", "Fourth"}, titles(all))

	high, err := f.listTasks.Execute(ctx, ListTasksQuery{UserID: alice, TodolistID: list.ID(), MinPriority: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, []string{"Second", "Third", "Fourth"}, titles(high))

	dueWeek, err := f.listTasks.Execute(ctx, ListTasksQuery{UserID: alice, TodolistID: list.ID(), DueInDays: ptr(7)})
	require.NoError(t, err)
	assert.Equal(t, []string{"First"}, titles(dueWeek))

	_, err = f.listTasks.Execute(ctx, ListTasksQuery{UserID: alice, TodolistID: list.ID(), MinPriority: ptr(-1)})
	assert.True(t, errors.IsValidationError(err), "got %v", err)
}
