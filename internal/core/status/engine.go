// Package status derives an employee's daily work status from the raw
// punch events recorded for that day. The derivation is a pure
// reduction: it performs no I/O and recomputes everything from scratch
// on every call, so callers can re-invoke it freely on a timer tick or
// whenever the event set changes.
package status

import (
	"fmt"
	"sort"
	"time"

	"punchclock.service/internal/core/model"
)

// WorkStatus is the derived, non-persisted snapshot of a day.
// At most one of IsWorking/IsOnBreak is true at any instant.
type WorkStatus struct {
	IsWorking        bool            `json:"isWorking"`
	IsOnBreak        bool            `json:"isOnBreak"`
	WorkedTime       string          `json:"workedTime"`
	BreakTime        string          `json:"breakTime"`
	WorkedMinutes    int             `json:"workedMinutes"`
	BreakMinutes     int             `json:"breakMinutes"`
	NextAction       model.EventType `json:"nextAction,omitempty"`
	LocationRequired bool            `json:"locationRequired"`
}

// Compute reduces a day's punch events to a WorkStatus.
//
// Events may arrive in any order; a copy is stable-sorted by timestamp
// before processing, so ties keep their arrival order and the caller's
// slice is never mutated. now accounts for a still-open work or break
// interval. shift only feeds the location-requirement flag; it never
// gates which action comes next.
//
// Compute is total: any list, in any order, with any repetition
// produces a WorkStatus. Malformed sequences (a close with no matching
// open interval) no-op the close step and may degrade NextAction to
// none; they never panic and never return an error.
func Compute(entries []model.TimeEntry, now time.Time, shift *model.ShiftAssignment) WorkStatus {
	sorted := make([]model.TimeEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordedAt.Before(sorted[j].RecordedAt)
	})

	var (
		working, onBreak    bool
		workOpen, breakOpen bool
		workStart, brkStart time.Time
		workedDur, breakDur time.Duration
	)

	for _, e := range sorted {
		switch e.Type {
		case model.EventClockIn:
			working = true
			workStart, workOpen = e.RecordedAt, true
		case model.EventBreakStart:
			onBreak = true
			brkStart, breakOpen = e.RecordedAt, true
			if workOpen {
				workedDur += e.RecordedAt.Sub(workStart)
				workOpen = false
			}
		case model.EventBreakEnd:
			onBreak = false
			working = true
			if breakOpen {
				breakDur += e.RecordedAt.Sub(brkStart)
				breakOpen = false
			}
			workStart, workOpen = e.RecordedAt, true
		case model.EventClockOut:
			// Leaves the break flags alone: in a well-formed sequence a
			// clock-out only ever follows a working state.
			working = false
			if workOpen {
				workedDur += e.RecordedAt.Sub(workStart)
				workOpen = false
			}
		}
	}

	// Account the still-open interval against now, for display only.
	if working && workOpen {
		workedDur += now.Sub(workStart)
	}
	if onBreak && breakOpen {
		breakDur += now.Sub(brkStart)
	}

	workedMin := int(workedDur / time.Minute)
	breakMin := int(breakDur / time.Minute)

	return WorkStatus{
		IsWorking:        working && !onBreak,
		IsOnBreak:        onBreak,
		WorkedTime:       FormatDuration(workedDur),
		BreakTime:        FormatDuration(breakDur),
		WorkedMinutes:    workedMin,
		BreakMinutes:     breakMin,
		NextAction:       nextAction(sorted, working, onBreak),
		LocationRequired: shift.RequiresLocation(),
	}
}

// nextAction derives the single punch the employee may perform next.
// It is driven by presence tests over the already-seen event types, not
// by the interval bookkeeping, so a break may be started at any point
// after clocking in regardless of the scheduled break window.
func nextAction(sorted []model.TimeEntry, working, onBreak bool) model.EventType {
	var hasIn, hasBreakStart, hasBreakEnd, hasOut bool
	for _, e := range sorted {
		switch e.Type {
		case model.EventClockIn:
			hasIn = true
		case model.EventBreakStart:
			hasBreakStart = true
		case model.EventBreakEnd:
			hasBreakEnd = true
		case model.EventClockOut:
			hasOut = true
		}
	}

	switch {
	case !hasIn:
		return model.EventClockIn
	case !hasBreakStart && working && !onBreak:
		return model.EventBreakStart
	case hasBreakStart && !hasBreakEnd && onBreak:
		return model.EventBreakEnd
	case !onBreak && hasIn && !hasOut:
		return model.EventClockOut
	}
	return model.EventNone
}

// FormatDuration renders a duration as zero-padded HH:MM, minutes
// truncated rather than rounded.
func FormatDuration(d time.Duration) string {
	totalMinutes := int(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}
