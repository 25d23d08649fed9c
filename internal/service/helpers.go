package service

import (
	"errors"
	"time"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrNotConnected         = errors.New("linkedin account is not connected")
	ErrForbidden            = errors.New("account does not belong to the current session")
	ErrGeneratorUnavailable = errors.New("text generator is not configured")
	ErrEmptyGeneration      = errors.New("text generator returned no text")
	ErrEmptyCaption         = errors.New("caption cannot be empty")
)

// dayBounds returns local midnight of t's day and the following midnight.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
