package tasks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tejaworks/interndesk/internal/domain"
	"github.com/tejaworks/interndesk/internal/latency"
	"github.com/tejaworks/interndesk/internal/seed"
	"github.com/tejaworks/interndesk/internal/store"
)

// mockSessions implements SessionReader for testing.
type mockSessions struct {
	user *domain.User
}

func (m *mockSessions) CurrentUser(_ context.Context) (*domain.User, error) {
	return m.user, nil
}

func newTestService(t *testing.T, sessions *mockSessions) (*Service, store.Store) {
	t.Helper()

	s := store.NewMemory()
	require.NoError(t, seed.Ensure(context.Background(), s))
	if sessions == nil {
		sessions = &mockSessions{}
	}
	return NewService(s, sessions, latency.NewInjector(0)), s
}

func TestCreate_ForcesPendingStatusAndUniqueID(t *testing.T) {
	// Arrange
	service, _ := newTestService(t, nil)
	before, err := service.List(context.Background())
	require.NoError(t, err)

	existing := map[string]bool{}
	for _, task := range before {
		existing[task.ID] = true
	}

	// Act
	task, err := service.Create(context.Background(), CreateTaskInput{
		Title:       "T1",
		Description: "D1",
		Priority:    domain.TaskPriorityLow,
		Deadline:    "2026-03-01",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusPending, task.Status)
	assert.False(t, existing[task.ID], "id must not collide with existing tasks")
	assert.False(t, task.CreatedAt.IsZero())
	assert.Nil(t, task.AssignedTo)
}

func TestCreate_AppendsToSeededCollection(t *testing.T) {
	// Arrange
	service, _ := newTestService(t, nil)

	// Act
	created, err := service.Create(context.Background(), CreateTaskInput{
		Title:       "T1",
		Description: "D1",
		Priority:    domain.TaskPriorityLow,
		Deadline:    "2026-03-01",
	})
	require.NoError(t, err)

	// Assert — the 3 seeded tasks plus the new one, appended last.
	list, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, created.ID, list[3].ID)
	assert.Equal(t, domain.TaskStatusPending, list[3].Status)
}

func TestGetByID_NotFound(t *testing.T) {
	service, _ := newTestService(t, nil)

	task, err := service.GetByID(context.Background(), "does-not-exist")

	assert.Nil(t, task)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestUpdate_PatchesOnlyProvidedFields(t *testing.T) {
	// Arrange
	service, _ := newTestService(t, nil)
	original, err := service.GetByID(context.Background(), "1")
	require.NoError(t, err)

	// Act
	status := domain.TaskStatusCompleted
	updated, err := service.Update(context.Background(), "1", TaskPatch{Status: &status})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, updated.Status)
	assert.Equal(t, original.Title, updated.Title)
	assert.Equal(t, original.Description, updated.Description)
	assert.Equal(t, original.Priority, updated.Priority)
	assert.Equal(t, original.Deadline, updated.Deadline)
	assert.Equal(t, original.CreatedAt, updated.CreatedAt)

	fetched, err := service.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusCompleted, fetched.Status)
}

func TestUpdate_NotFound(t *testing.T) {
	service, _ := newTestService(t, nil)

	title := "new title"
	task, err := service.Update(context.Background(), "missing", TaskPatch{Title: &title})

	assert.Nil(t, task)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDelete_RemovesTask(t *testing.T) {
	// Arrange
	service, _ := newTestService(t, nil)

	// Act
	require.NoError(t, service.Delete(context.Background(), "1"))

	// Assert
	_, err := service.GetByID(context.Background(), "1")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDelete_UnknownIDIsNoop(t *testing.T) {
	// Arrange
	service, _ := newTestService(t, nil)

	// Act
	err := service.Delete(context.Background(), "does-not-exist")

	// Assert
	require.NoError(t, err)

	list, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3, "collection must be unchanged")
}

func TestListMine_NoSessionReturnsEmpty(t *testing.T) {
	service, _ := newTestService(t, &mockSessions{user: nil})

	mine, err := service.ListMine(context.Background())

	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestListMine_FiltersByAssignee(t *testing.T) {
	// Arrange — seeded tasks 2 and 3 are assigned to user "2".
	service, _ := newTestService(t, &mockSessions{
		user: &domain.User{ID: "2", Role: domain.RoleIntern},
	})

	// Act
	mine, err := service.ListMine(context.Background())

	// Assert
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, task := range mine {
		require.NotNil(t, task.AssignedTo)
		assert.Equal(t, "2", *task.AssignedTo)
	}
}

func TestAssign_SetsAssigneeAndInProgress(t *testing.T) {
	// Arrange
	service, _ := newTestService(t, nil)

	// Act
	task, err := service.Assign(context.Background(), "2", "2")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, task.AssignedTo)
	assert.Equal(t, "2", *task.AssignedTo)
	assert.Equal(t, domain.TaskStatusInProgress, task.Status)

	fetched, err := service.GetByID(context.Background(), "2")
	require.NoError(t, err)
	require.NotNil(t, fetched.AssignedTo)
	assert.Equal(t, "2", *fetched.AssignedTo)
	assert.Equal(t, domain.TaskStatusInProgress, fetched.Status)
}

func TestAssign_DoesNotValidateUserExists(t *testing.T) {
	service, _ := newTestService(t, nil)

	task, err := service.Assign(context.Background(), "1", "no-such-user")

	require.NoError(t, err)
	require.NotNil(t, task.AssignedTo)
	assert.Equal(t, "no-such-user", *task.AssignedTo)
}

func TestStats_CountsByStatus(t *testing.T) {
	// Arrange — seed holds one task in each state.
	service, _ := newTestService(t, nil)

	// Act
	stats, err := service.Stats(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 1, stats.Completed)
}

func TestList_EmptyStoreReturnsNoTasks(t *testing.T) {
	s := store.NewMemory()
	service := NewService(s, &mockSessions{}, latency.NewInjector(0))

	list, err := service.List(context.Background())

	require.NoError(t, err)
	require.NotNil(t, list, "must serialize as [], not null")
	assert.Empty(t, list)
}
