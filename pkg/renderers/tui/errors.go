package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoOptions is returned when a select has nothing to choose from.
	ErrNoOptions = errors.New("tui: select has no options")
)
