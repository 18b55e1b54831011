package email

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchclock.service/internal/core/model"
	"punchclock.service/internal/ports/messaging"
)

type fakeRepo struct {
	entry   *model.TimeEntry
	getErr  error
	updates []model.EmailStatus
	counts  []int
}

func (f *fakeRepo) InsertEntry(_ context.Context, _ *model.TimeEntry) (int64, error) {
	return 0, errors.New("not implemented")
}

func (f *fakeRepo) ListEntriesForDay(_ context.Context, _, _ string) ([]model.TimeEntry, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRepo) GetEntry(_ context.Context, _ int64) (*model.TimeEntry, error) {
	return f.entry, f.getErr
}

func (f *fakeRepo) GetScheduleForDay(_ context.Context, _, _ string) (*model.ShiftAssignment, error) {
	return nil, nil
}

func (f *fakeRepo) UpdatePayrollStatus(_ context.Context, _ int64, _ model.PayrollStatus, _ int) error {
	return nil
}

func (f *fakeRepo) UpdateEmailStatus(_ context.Context, _ int64, status model.EmailStatus, retryCount int) error {
	f.updates = append(f.updates, status)
	f.counts = append(f.counts, retryCount)
	return nil
}

type fakeMailer struct {
	err error

	to, day, worked, breakTime string
	calls                      int
}

func (f *fakeMailer) SendDaySummary(_ context.Context, to, day, worked, breakTime string) error {
	f.calls++
	f.to, f.day, f.worked, f.breakTime = to, day, worked, breakTime
	return f.err
}

func emailMessage(t *testing.T, event messaging.EmailEvent) types.Message {
	t.Helper()
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return types.Message{
		Body:      aws.String(string(body)),
		MessageId: aws.String("msg-1"),
	}
}

func TestProcess_SendsFormattedSummary(t *testing.T) {
	repo := &fakeRepo{entry: &model.TimeEntry{ID: 7, EmailStatus: model.StatusEmailPending}}
	mailer := &fakeMailer{}
	p := NewProcessor(mailer, repo, "factory.com")

	retry, _, err := p.Process(context.Background(), emailMessage(t, messaging.EmailEvent{
		EntryID:       7,
		EmployeeID:    "emp-1",
		Day:           "2026-03-09",
		WorkedMinutes: 480,
		BreakMinutes:  60,
	}))

	require.NoError(t, err)
	assert.False(t, retry)
	assert.Equal(t, "emp-1@factory.com", mailer.to)
	assert.Equal(t, "2026-03-09", mailer.day)
	assert.Equal(t, "08:00", mailer.worked)
	assert.Equal(t, "01:00", mailer.breakTime)
	require.Equal(t, []model.EmailStatus{model.StatusEmailCompleted}, repo.updates)
}

func TestProcess_AlreadySentIsSkipped(t *testing.T) {
	repo := &fakeRepo{entry: &model.TimeEntry{ID: 7, EmailStatus: model.StatusEmailCompleted}}
	mailer := &fakeMailer{}
	p := NewProcessor(mailer, repo, "factory.com")

	retry, _, err := p.Process(context.Background(), emailMessage(t, messaging.EmailEvent{EntryID: 7}))

	require.NoError(t, err)
	assert.False(t, retry)
	assert.Zero(t, mailer.calls)
}

func TestProcess_SendFailureSchedulesRetry(t *testing.T) {
	repo := &fakeRepo{entry: &model.TimeEntry{ID: 7, EmailStatus: model.StatusEmailPending}}
	mailer := &fakeMailer{err: errors.New("ses throttled")}
	p := NewProcessor(mailer, repo, "factory.com")

	retry, delay, err := p.Process(context.Background(), emailMessage(t, messaging.EmailEvent{EntryID: 7}))

	require.Error(t, err)
	assert.True(t, retry)
	assert.Equal(t, int32(20), delay) // 2^1 * 10
	require.Equal(t, []model.EmailStatus{model.StatusEmailPending}, repo.updates)
	require.Equal(t, []int{1}, repo.counts)
}

func TestProcess_MalformedMessageIsNotRetried(t *testing.T) {
	p := NewProcessor(&fakeMailer{}, &fakeRepo{}, "factory.com")

	retry, _, err := p.Process(context.Background(), types.Message{
		Body:      aws.String("{not json"),
		MessageId: aws.String("msg-1"),
	})

	require.Error(t, err)
	assert.False(t, retry)
}
