package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchclock.service/internal/core/model"
)

func TestInsertEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	recordedAt := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	lat, lng := 38.72, -9.14

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO time_entries")).
		WithArgs("emp-1", "clock_in", recordedAt, "2026-03-09", true, lat, lng, nil,
			"PENDING", "PENDING").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	repo := NewTimeEntryRepository(db)
	id, err := repo.InsertEntry(context.Background(), &model.TimeEntry{
		EmployeeID:    "emp-1",
		Type:          model.EventClockIn,
		RecordedAt:    recordedAt,
		Day:           "2026-03-09",
		Valid:         true,
		Latitude:      &lat,
		Longitude:     &lng,
		PayrollStatus: model.StatusPayrollPending,
		EmailStatus:   model.StatusEmailPending,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEntriesForDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	recordedAt := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	columns := []string{
		"id", "employee_id", "entry_type", "recorded_at", "day", "valid",
		"latitude", "longitude", "selfie_url",
		"payroll_status", "payroll_retry_count", "email_status", "email_retry_count",
	}

	mock.ExpectQuery(regexp.QuoteMeta("FROM time_entries")).
		WithArgs("emp-1", "2026-03-09").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, "emp-1", "clock_in", recordedAt, "2026-03-09", true,
				38.72, -9.14, nil, "PENDING", 0, "PENDING", 0).
			AddRow(2, "emp-1", "break_start", recordedAt.Add(4*time.Hour), "2026-03-09", true,
				nil, nil, nil, "PENDING", 0, "PENDING", 0))

	repo := NewTimeEntryRepository(db)
	entries, err := repo.ListEntriesForDay(context.Background(), "emp-1", "2026-03-09")

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, model.EventClockIn, entries[0].Type)
	require.NotNil(t, entries[0].Latitude)
	assert.Equal(t, 38.72, *entries[0].Latitude)
	assert.Nil(t, entries[1].Latitude)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetScheduleForDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM schedules")).
		WithArgs("emp-1", "2026-03-09").
		WillReturnRows(sqlmock.NewRows([]string{"name", "starts_at", "ends_at", "break_minutes", "remote", "location_required"}).
			AddRow("Morning", "08:00", "17:00", 60, false, true))

	repo := NewTimeEntryRepository(db)
	shift, err := repo.GetScheduleForDay(context.Background(), "emp-1", "2026-03-09")

	require.NoError(t, err)
	require.NotNil(t, shift)
	assert.Equal(t, "Morning", shift.ShiftName)
	assert.Equal(t, 60, shift.BreakMinutes)
	assert.True(t, shift.RequiresLocation())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetScheduleForDay_NoScheduleIsNotAnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM schedules")).
		WithArgs("emp-1", "2026-03-09").
		WillReturnRows(sqlmock.NewRows([]string{"name", "starts_at", "ends_at", "break_minutes", "remote", "location_required"}))

	repo := NewTimeEntryRepository(db)
	shift, err := repo.GetScheduleForDay(context.Background(), "emp-1", "2026-03-09")

	require.NoError(t, err)
	assert.Nil(t, shift)
}

func TestUpdatePayrollStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE time_entries")).
		WithArgs("COMPLETED", 0, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewTimeEntryRepository(db)
	err = repo.UpdatePayrollStatus(context.Background(), 7, model.StatusPayrollCompleted, 0)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
