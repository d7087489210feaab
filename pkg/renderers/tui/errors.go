package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (Ctrl+C or end of input).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when WithMaxAttempts is exhausted before
	// the form is accepted.
	ErrTooManyAttempts = errors.New("tui: too many invalid attempts")
	// ErrForeignWidget is returned when a handle holds widgets this package
	// did not create.
	ErrForeignWidget = errors.New("tui: handle was not built with the terminal factory")
)
