package repository

import (
	"context"
	"database/sql"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"punchclock.service/internal/core/model"
)

// TimeEntryRepository is the concrete implementation for PostgreSQL.
type TimeEntryRepository struct {
	DB *sql.DB
}

// NewTimeEntryRepository create new instance
func NewTimeEntryRepository(db *sql.DB) Repository {
	return &TimeEntryRepository{DB: db}
}

// InsertEntry records one punch and returns its generated id.
func (r *TimeEntryRepository) InsertEntry(ctx context.Context, entry *model.TimeEntry) (int64, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee_id", entry.EmployeeID))

	var id int64
	query := `INSERT INTO time_entries
              (employee_id, entry_type, recorded_at, day, valid, latitude, longitude, selfie_url,
               payroll_status, payroll_retry_count, email_status, email_retry_count)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10, 0)
              RETURNING id`

	err := r.DB.QueryRowContext(ctx, query,
		entry.EmployeeID, entry.Type, entry.RecordedAt, entry.Day, entry.Valid,
		entry.Latitude, entry.Longitude, entry.SelfieURL,
		entry.PayrollStatus, entry.EmailStatus,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// ListEntriesForDay returns all punches for one employee day, ordered
// by timestamp ascending; id breaks ties in arrival order.
func (r *TimeEntryRepository) ListEntriesForDay(ctx context.Context, employeeID, day string) ([]model.TimeEntry, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee_id", employeeID))

	query := `SELECT id, employee_id, entry_type, recorded_at, day, valid, latitude, longitude, selfie_url,
                     payroll_status, payroll_retry_count, email_status, email_retry_count
              FROM time_entries
              WHERE employee_id = $1 AND day = $2
              ORDER BY recorded_at ASC, id ASC`

	rows, err := r.DB.QueryContext(ctx, query, employeeID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.TimeEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// GetEntry fetches a complete time_entries record by its ID.
func (r *TimeEntryRepository) GetEntry(ctx context.Context, id int64) (*model.TimeEntry, error) {
	query := `SELECT id, employee_id, entry_type, recorded_at, day, valid, latitude, longitude, selfie_url,
                     payroll_status, payroll_retry_count, email_status, email_retry_count
              FROM time_entries WHERE id = $1`

	return scanEntry(r.DB.QueryRowContext(ctx, query, id))
}

// GetScheduleForDay returns the employee's shift assignment for one
// day, joined to its shift definition. No assignment is a valid state
// and comes back as (nil, nil).
func (r *TimeEntryRepository) GetScheduleForDay(ctx context.Context, employeeID, day string) (*model.ShiftAssignment, error) {
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.employee_id", employeeID))

	query := `SELECT sh.name, sh.starts_at, sh.ends_at, sh.break_minutes, sc.remote, sc.location_required
              FROM schedules sc
              JOIN shifts sh ON sh.id = sc.shift_id
              WHERE sc.employee_id = $1 AND sc.day = $2
              LIMIT 1`

	shift := &model.ShiftAssignment{}
	row := r.DB.QueryRowContext(ctx, query, employeeID, day)
	err := row.Scan(&shift.ShiftName, &shift.StartsAt, &shift.EndsAt, &shift.BreakMinutes,
		&shift.Remote, &shift.LocationRequired)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return shift, nil
}

// UpdatePayrollStatus updates the status and retry count for the
// payroll hand-off of a clock-out row.
func (r *TimeEntryRepository) UpdatePayrollStatus(ctx context.Context, id int64, status model.PayrollStatus, retryCount int) error {
	query := `UPDATE time_entries
              SET payroll_status = $1,
                  payroll_retry_count = $2
              WHERE id = $3`

	_, err := r.DB.ExecContext(ctx, query, status, retryCount, id)

	return err
}

// UpdateEmailStatus updates the status and retry count for the summary
// mail of a clock-out row.
func (r *TimeEntryRepository) UpdateEmailStatus(ctx context.Context, id int64, status model.EmailStatus, retryCount int) error {
	query := `UPDATE time_entries SET email_status = $1, email_retry_count = $2 WHERE id = $3`
	_, err := r.DB.ExecContext(ctx, query, status, retryCount, id)
	return err
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*model.TimeEntry, error) {
	entry := &model.TimeEntry{}
	var (
		lat, lng sql.NullFloat64
		selfie   sql.NullString
	)

	err := row.Scan(
		&entry.ID, &entry.EmployeeID, &entry.Type, &entry.RecordedAt, &entry.Day, &entry.Valid,
		&lat, &lng, &selfie,
		&entry.PayrollStatus, &entry.PayrollRetryCount, &entry.EmailStatus, &entry.EmailRetryCount,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid {
		entry.Latitude = &lat.Float64
	}
	if lng.Valid {
		entry.Longitude = &lng.Float64
	}
	if selfie.Valid {
		entry.SelfieURL = &selfie.String
	}

	return entry, nil
}
