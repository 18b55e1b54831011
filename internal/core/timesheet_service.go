package core

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"punchclock.service/internal/core/model"
	"punchclock.service/internal/core/status"
	"punchclock.service/internal/ports/messaging"
	"punchclock.service/internal/ports/repository"
)

// Coordinates is a GPS fix attached to a punch.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// PunchRequest carries everything needed to record one punch.
type PunchRequest struct {
	EmployeeID  string
	Type        model.EventType
	Coordinates *Coordinates
	SelfieURL   *string
}

// DaySnapshot bundles a day's derived status with the raw entries and
// schedule it was computed from.
type DaySnapshot struct {
	Day     string                 `json:"day"`
	Now     time.Time              `json:"now"`
	Status  status.WorkStatus      `json:"status"`
	Shift   *model.ShiftAssignment `json:"shift,omitempty"`
	Entries []model.TimeEntry      `json:"entries"`
}

// TimesheetService is the main application service: it records punches
// against the external store and derives daily work status on demand.
type TimesheetService struct {
	repo     repository.Repository
	producer messaging.EventProducer
	loc      *time.Location
	now      func() time.Time
}

// NewTimesheetService wires up the repository, the queue producer, and
// the timezone used to bucket punches into calendar days.
func NewTimesheetService(repo repository.Repository, p messaging.EventProducer, loc *time.Location) *TimesheetService {
	if loc == nil {
		loc = time.UTC
	}
	return &TimesheetService{
		repo:     repo,
		producer: p,
		loc:      loc,
		now:      time.Now,
	}
}

// RegisterPunch records one punch for an employee. The punch is gated
// twice before anything is written: the day's shift may demand
// coordinates, and the punch type must match the single next action
// derived from the day's events so far. The insert is all-or-nothing;
// on any error the day's event list is unchanged and the caller may
// retry.
//
// A clock-out additionally fans out summary-mail and payroll hand-off
// events. Publish failures are logged but do not fail the punch: the
// entry is already durable and the workers re-drive from the queue.
func (s *TimesheetService) RegisterPunch(ctx context.Context, req PunchRequest) (*model.TimeEntry, error) {
	if !model.KnownEventType(req.Type) {
		return nil, ErrUnknownEventType
	}

	now := s.now().In(s.loc)
	day := now.Format(model.DayFormat)

	shift, err := s.repo.GetScheduleForDay(ctx, req.EmployeeID, day)
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}

	if shift.RequiresLocation() && req.Coordinates == nil {
		return nil, ErrLocationRequired
	}

	entries, err := s.repo.ListEntriesForDay(ctx, req.EmployeeID, day)
	if err != nil {
		return nil, fmt.Errorf("loading today's entries: %w", err)
	}

	current := status.Compute(entries, now, shift)
	if current.NextAction != req.Type {
		return nil, ErrActionNotAllowed
	}

	entry := model.TimeEntry{
		EmployeeID:    req.EmployeeID,
		Type:          req.Type,
		RecordedAt:    now,
		Day:           day,
		Valid:         true,
		SelfieURL:     req.SelfieURL,
		PayrollStatus: model.StatusPayrollPending,
		EmailStatus:   model.StatusEmailPending,
	}
	if req.Coordinates != nil {
		lat, lng := req.Coordinates.Latitude, req.Coordinates.Longitude
		entry.Latitude, entry.Longitude = &lat, &lng
	}

	id, err := s.repo.InsertEntry(ctx, &entry)
	if err != nil {
		return nil, fmt.Errorf("recording punch: %w", err)
	}
	entry.ID = id

	if req.Type == model.EventClockOut {
		s.publishDayClosed(ctx, &entry, append(entries, entry), now)
	}

	return &entry, nil
}

// DayStatus derives the work status for one employee day. day may be
// empty, meaning today. A missing schedule never blocks the
// derivation; it only means no location requirement.
func (s *TimesheetService) DayStatus(ctx context.Context, employeeID, day string) (*DaySnapshot, error) {
	now := s.now().In(s.loc)
	if day == "" {
		day = now.Format(model.DayFormat)
	} else if _, err := time.ParseInLocation(model.DayFormat, day, s.loc); err != nil {
		return nil, fmt.Errorf("invalid day %q: %w", day, err)
	}

	shift, err := s.repo.GetScheduleForDay(ctx, employeeID, day)
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}

	entries, err := s.repo.ListEntriesForDay(ctx, employeeID, day)
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}
	if entries == nil {
		entries = []model.TimeEntry{}
	}

	return &DaySnapshot{
		Day:     day,
		Now:     now,
		Status:  status.Compute(entries, now, shift),
		Shift:   shift,
		Entries: entries,
	}, nil
}

// UpdatePayrollStatus is used by the payroll worker to track the
// asynchronous hand-off of a closed day.
func (s *TimesheetService) UpdatePayrollStatus(ctx context.Context, entryID int64, st model.PayrollStatus, retryCount int) error {
	return s.repo.UpdatePayrollStatus(ctx, entryID, st, retryCount)
}

// UpdateEmailStatus is the email worker's counterpart.
func (s *TimesheetService) UpdateEmailStatus(ctx context.Context, entryID int64, st model.EmailStatus, retryCount int) error {
	return s.repo.UpdateEmailStatus(ctx, entryID, st, retryCount)
}

// publishDayClosed fans out the post-clock-out events with the day's
// final totals.
func (s *TimesheetService) publishDayClosed(ctx context.Context, entry *model.TimeEntry, entries []model.TimeEntry, now time.Time) {
	final := status.Compute(entries, now, nil)

	emailEvent := messaging.EmailEvent{
		EntryID:       entry.ID,
		EmployeeID:    entry.EmployeeID,
		Day:           entry.Day,
		WorkedMinutes: final.WorkedMinutes,
		BreakMinutes:  final.BreakMinutes,
		OccurredAt:    now,
	}
	if err := s.producer.PublishEmail(ctx, emailEvent); err != nil {
		log.Ctx(ctx).Error().Err(err).Int64("entry_id", entry.ID).Msg("Failed to publish summary mail event")
	}

	payrollEvent := messaging.PayrollEvent{
		EntryID:       entry.ID,
		EmployeeID:    entry.EmployeeID,
		Day:           entry.Day,
		WorkedMinutes: final.WorkedMinutes,
		BreakMinutes:  final.BreakMinutes,
		ClockOutTime:  now,
	}
	if err := s.producer.PublishPayroll(ctx, payrollEvent); err != nil {
		log.Ctx(ctx).Error().Err(err).Int64("entry_id", entry.ID).Msg("Failed to publish payroll hand-off event")
	}
}
