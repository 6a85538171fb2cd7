// Package tasks provides the task repository: CRUD and query operations over
// the task collection in the store.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tejaworks/interndesk/internal/domain"
	"github.com/tejaworks/interndesk/internal/latency"
	"github.com/tejaworks/interndesk/internal/store"
)

// SessionReader resolves the currently authenticated user.
// A nil user with a nil error means no session exists.
type SessionReader interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
}

// Service implements task business logic over the store.
type Service struct {
	store    store.Store
	sessions SessionReader
	delay    *latency.Injector
}

// NewService creates a new task service.
func NewService(st store.Store, sessions SessionReader, delay *latency.Injector) *Service {
	return &Service{store: st, sessions: sessions, delay: delay}
}

// CreateTaskInput holds data for creating a task.
// Status is not accepted: new tasks always start pending.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    domain.TaskPriority
	Deadline    string
	AssignedTo  *string
}

// TaskPatch is a partial update: each field is applied only when non-nil.
// Whether AssignedTo references an existing user is deliberately not checked.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *domain.TaskPriority
	Status      *domain.TaskStatus
	Deadline    *string
	AssignedTo  *string
}

// List returns all tasks in collection order. An absent collection is an
// empty slice, never nil, so it serializes as [].
func (s *Service) List(ctx context.Context) ([]domain.Task, error) {
	defer s.delay.Wait(ctx)

	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// GetByID returns the task with the given id or ErrTaskNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	defer s.delay.Wait(ctx)

	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}

	return nil, ErrTaskNotFound
}

// Create appends a new pending task with a fresh id and creation timestamp.
func (s *Service) Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	defer s.delay.Wait(ctx)

	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}

	task := domain.Task{
		ID:          nextID(tasks),
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Status:      domain.TaskStatusPending,
		Deadline:    input.Deadline,
		AssignedTo:  input.AssignedTo,
		CreatedAt:   time.Now().UTC(),
	}

	tasks = append(tasks, task)
	if err := store.SetJSON(ctx, s.store, store.KeyTasks, tasks); err != nil {
		return nil, fmt.Errorf("save tasks: %w", err)
	}

	return &task, nil
}

// Update applies the patch to the task with the given id, in place, and
// returns the merged task. Fields absent from the patch are untouched.
func (s *Service) Update(ctx context.Context, id string, patch TaskPatch) (*domain.Task, error) {
	defer s.delay.Wait(ctx)

	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range tasks {
		if tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrTaskNotFound
	}

	task := &tasks[idx]
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Deadline != nil {
		task.Deadline = *patch.Deadline
	}
	if patch.AssignedTo != nil {
		task.AssignedTo = patch.AssignedTo
	}

	if err := store.SetJSON(ctx, s.store, store.KeyTasks, tasks); err != nil {
		return nil, fmt.Errorf("save tasks: %w", err)
	}

	return task, nil
}

// Delete removes the task with the given id. Deleting an absent id succeeds
// without error so cleanup stays idempotent.
func (s *Service) Delete(ctx context.Context, id string) error {
	defer s.delay.Wait(ctx)

	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return err
	}

	filtered := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			filtered = append(filtered, t)
		}
	}

	if err := store.SetJSON(ctx, s.store, store.KeyTasks, filtered); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// ListMine returns the tasks assigned to the current session's user.
// Returns an empty slice when no session exists.
func (s *Service) ListMine(ctx context.Context) ([]domain.Task, error) {
	defer s.delay.Wait(ctx)

	user, err := s.sessions.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	if user == nil {
		return []domain.Task{}, nil
	}

	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}

	mine := make([]domain.Task, 0)
	for _, t := range tasks {
		if t.AssignedTo != nil && *t.AssignedTo == user.ID {
			mine = append(mine, t)
		}
	}
	return mine, nil
}

// Assign assigns the task to the given user and moves it to in_progress.
// The user id is not validated against the user collection.
func (s *Service) Assign(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	status := domain.TaskStatusInProgress
	return s.Update(ctx, taskID, TaskPatch{
		AssignedTo: &userID,
		Status:     &status,
	})
}

// Stats returns per-status task counts for the dashboards.
func (s *Service) Stats(ctx context.Context) (*domain.TaskStats, error) {
	defer s.delay.Wait(ctx)

	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}

	stats := &domain.TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case domain.TaskStatusPending:
			stats.Pending++
		case domain.TaskStatusInProgress:
			stats.InProgress++
		case domain.TaskStatusCompleted:
			stats.Completed++
		}
	}
	return stats, nil
}

func (s *Service) loadTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	err := store.GetJSON(ctx, s.store, store.KeyTasks, &tasks)
	if err != nil && !errors.Is(err, store.ErrKeyNotFound) {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return tasks, nil
}

// nextID derives a fresh identifier from the current timestamp, bumping past
// any identifier already present in the collection.
func nextID(tasks []domain.Task) string {
	taken := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		taken[t.ID] = true
	}

	n := time.Now().UnixMilli()
	id := strconv.FormatInt(n, 10)
	for taken[id] {
		n++
		id = strconv.FormatInt(n, 10)
	}
	return id
}
