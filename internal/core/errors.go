package core

import "errors"

var (
	// ErrUnknownEventType is returned for a punch type outside the four
	// known values.
	ErrUnknownEventType = errors.New("unknown punch type")

	// ErrLocationRequired is returned when the day's shift demands
	// coordinates and the punch carries none. No entry is recorded.
	ErrLocationRequired = errors.New("location is required to punch on this shift")

	// ErrActionNotAllowed is returned when the requested punch type does
	// not match the single next action derived from today's events.
	ErrActionNotAllowed = errors.New("punch does not match the next allowed action")
)
