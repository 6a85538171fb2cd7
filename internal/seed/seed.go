// Package seed writes the default dataset into an empty store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tejaworks/interndesk/internal/domain"
	"github.com/tejaworks/interndesk/internal/store"
)

// DefaultUsers returns the built-in accounts: one admin and one intern.
func DefaultUsers() []domain.User {
	return []domain.User{
		{
			ID:       "1",
			Email:    "admin@teja.com",
			Password: "admin123",
			Name:     "Admin User",
			Role:     domain.RoleAdmin,
		},
		{
			ID:       "2",
			Email:    "intern@teja.com",
			Password: "intern123",
			Name:     "Test Intern",
			Role:     domain.RoleIntern,
		},
	}
}

// DefaultTasks returns the built-in tasks, one per lifecycle state.
func DefaultTasks() []domain.Task {
	intern := "2"
	return []domain.Task{
		{
			ID:          "1",
			Title:       "Translate English to Spanish Document",
			Description: "Translate a 10-page business document from English to Spanish",
			Status:      domain.TaskStatusPending,
			Priority:    domain.TaskPriorityHigh,
			Deadline:    "2026-02-25",
			AssignedTo:  nil,
			CreatedAt:   time.Date(2026, 2, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:          "2",
			Title:       "Audio Transcription - Meeting Recording",
			Description: "Transcribe a 1-hour meeting recording to text",
			Status:      domain.TaskStatusInProgress,
			Priority:    domain.TaskPriorityMedium,
			Deadline:    "2026-02-28",
			AssignedTo:  &intern,
			CreatedAt:   time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:          "3",
			Title:       "Voice Over - Promotional Video",
			Description: "Record voice over for a 2-minute promotional video",
			Status:      domain.TaskStatusCompleted,
			Priority:    domain.TaskPriorityLow,
			Deadline:    "2026-02-20",
			AssignedTo:  &intern,
			CreatedAt:   time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC),
		},
	}
}

// Ensure writes the default users and tasks for any key that is absent.
// Idempotent: keys that already hold data are left untouched. It runs once
// at application startup; services assume a seeded store afterwards.
func Ensure(ctx context.Context, s store.Store) error {
	if err := ensureKey(ctx, s, store.KeyUsers, func() interface{} { return DefaultUsers() }); err != nil {
		return err
	}
	if err := ensureKey(ctx, s, store.KeyTasks, func() interface{} { return DefaultTasks() }); err != nil {
		return err
	}
	return nil
}

func ensureKey(ctx context.Context, s store.Store, key string, defaults func() interface{}) error {
	_, err := s.Get(ctx, key)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrKeyNotFound) {
		return fmt.Errorf("check %q: %w", key, err)
	}

	if err := store.SetJSON(ctx, s, key, defaults()); err != nil {
		return fmt.Errorf("seed %q: %w", key, err)
	}
	return nil
}
