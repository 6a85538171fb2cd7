package tasks

import "errors"

// Service errors.
var (
	ErrTaskNotFound = errors.New("task not found")
)
