package frame

import "errors"

// Store operation failures. Callers match these with errors.Is and turn
// them into user-facing messages; the store never prints or exits.
var (
	ErrAlreadyRunning   = errors.New("a project is already being tracked")
	ErrNoRunningProject = errors.New("no running project")
	ErrNoPriorProject   = errors.New("no prior project to restart")
	ErrEmptyProjectName = errors.New("project name must not be empty")
	ErrEmptyStore       = errors.New("no frames recorded")
	ErrInvalidRange     = errors.New("end time precedes start time")
	ErrFrameNotFound    = errors.New("no frame matches the selector")
)
