package model

import (
	"time"
)

// DayFormat is the calendar-day bucket format used across the service.
const DayFormat = "2006-01-02"

// EventType is the closed set of punch types an employee can record.
type EventType string

const (
	EventClockIn    EventType = "clock_in"
	EventBreakStart EventType = "break_start"
	EventBreakEnd   EventType = "break_end"
	EventClockOut   EventType = "clock_out"

	// EventNone is only ever produced as a next-action value, meaning the
	// day is closed or the recorded sequence is ambiguous.
	EventNone EventType = ""
)

// KnownEventType reports whether t is one of the four punch types.
func KnownEventType(t EventType) bool {
	switch t {
	case EventClockIn, EventBreakStart, EventBreakEnd, EventClockOut:
		return true
	}
	return false
}

// PayrollStatus defines the state of the payroll hand-off processing.
type PayrollStatus string

const (
	StatusPayrollPending    PayrollStatus = "PENDING"
	StatusPayrollProcessing PayrollStatus = "PROCESSING"
	StatusPayrollCompleted  PayrollStatus = "COMPLETED"
	StatusPayrollFailed     PayrollStatus = "FAILED"
)

// EmailStatus defines the state of the summary-mail processing.
type EmailStatus string

const (
	StatusEmailPending    EmailStatus = "PENDING"
	StatusEmailProcessing EmailStatus = "PROCESSING"
	StatusEmailCompleted  EmailStatus = "COMPLETED"
	StatusEmailFailed     EmailStatus = "FAILED"
)

// TimeEntry is a single immutable punch recorded for an employee.
// Valid is set once at creation by policy checks; the status engine
// does not filter on it. The payroll/email columns only carry meaning
// on clock-out rows, where they track asynchronous post-processing.
type TimeEntry struct {
	ID                int64         `json:"id"`
	EmployeeID        string        `json:"employeeId"`
	Type              EventType     `json:"type"`
	RecordedAt        time.Time     `json:"recordedAt"`
	Day               string        `json:"day"`
	Valid             bool          `json:"valid"`
	Latitude          *float64      `json:"latitude,omitempty"`
	Longitude         *float64      `json:"longitude,omitempty"`
	SelfieURL         *string       `json:"selfieUrl,omitempty"`
	PayrollStatus     PayrollStatus `json:"payrollStatus,omitempty"`
	EmailStatus       EmailStatus   `json:"emailStatus,omitempty"`
	PayrollRetryCount int           `json:"payrollRetryCount,omitempty"`
	EmailRetryCount   int           `json:"emailRetryCount,omitempty"`
}

// ShiftAssignment is the read-only snapshot of an employee's schedule
// for one day. Absence of an assignment is a valid state.
type ShiftAssignment struct {
	ShiftName        string `json:"shiftName"`
	StartsAt         string `json:"startsAt"`
	EndsAt           string `json:"endsAt"`
	BreakMinutes     int    `json:"breakMinutes"`
	Remote           bool   `json:"remote"`
	LocationRequired bool   `json:"locationRequired"`
}

// RequiresLocation reports whether a punch against this assignment must
// carry coordinates. Remote shifts never require a location, and
// neither does a missing assignment.
func (s *ShiftAssignment) RequiresLocation() bool {
	return s != nil && s.LocationRequired && !s.Remote
}
