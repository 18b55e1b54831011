package repository

import (
	"context"

	"punchclock.service/internal/core/model"
)

// Repository is the contract against the external time-entry store.
// Reads return a day's entries in chronological order; absence of a
// schedule row is reported as (nil, nil), not an error.
type Repository interface {
	InsertEntry(ctx context.Context, entry *model.TimeEntry) (int64, error)
	ListEntriesForDay(ctx context.Context, employeeID, day string) ([]model.TimeEntry, error)
	GetEntry(ctx context.Context, id int64) (*model.TimeEntry, error)
	GetScheduleForDay(ctx context.Context, employeeID, day string) (*model.ShiftAssignment, error)
	UpdatePayrollStatus(ctx context.Context, id int64, status model.PayrollStatus, retryCount int) error
	UpdateEmailStatus(ctx context.Context, id int64, status model.EmailStatus, retryCount int) error
}
