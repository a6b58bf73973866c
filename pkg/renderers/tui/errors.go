package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C) or declined to
	// generate.
	ErrAborted = errors.New("tui: aborted")
	// ErrBlocked is returned when the page cannot collect values because a
	// configured file is missing.
	ErrBlocked = errors.New("tui: generation blocked")
	// ErrNoTypes is returned when there is nothing to choose from.
	ErrNoTypes = errors.New("tui: no document types")
)
