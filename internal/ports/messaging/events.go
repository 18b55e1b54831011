package messaging

import "time"

// PayrollEvent is the JSON payload sent via SQS when a day closes and
// must be handed off to the payroll system.
type PayrollEvent struct {
	EntryID       int64     `json:"entryId"`
	EmployeeID    string    `json:"employeeId"`
	Day           string    `json:"day"`
	WorkedMinutes int       `json:"workedMinutes"`
	BreakMinutes  int       `json:"breakMinutes"`
	ClockOutTime  time.Time `json:"clockOutTime"`
}

// EmailEvent is the JSON payload sent via SQS for the summary-mail queue.
type EmailEvent struct {
	EntryID       int64     `json:"entryId"`
	EmployeeID    string    `json:"employeeId"`
	Day           string    `json:"day"`
	WorkedMinutes int       `json:"workedMinutes"`
	BreakMinutes  int       `json:"breakMinutes"`
	OccurredAt    time.Time `json:"occurredAt"`
}
