package payroll

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
	updates []model.PayrollStatus
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

func (f *fakeRepo) UpdatePayrollStatus(_ context.Context, _ int64, status model.PayrollStatus, retryCount int) error {
	f.updates = append(f.updates, status)
	f.counts = append(f.counts, retryCount)
	return nil
}

func (f *fakeRepo) UpdateEmailStatus(_ context.Context, _ int64, _ model.EmailStatus, _ int) error {
	return nil
}

type fakePayrollAPI struct {
	err   error
	calls int
}

func (f *fakePayrollAPI) RecordDay(_ context.Context, _ messaging.PayrollEvent) error {
	f.calls++
	return f.err
}

func payrollMessage(t *testing.T, event messaging.PayrollEvent) types.Message {
	t.Helper()
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return types.Message{
		Body:      aws.String(string(body)),
		MessageId: aws.String("msg-1"),
	}
}

func TestProcess_MalformedMessageIsNotRetried(t *testing.T) {
	p := NewProcessor(&fakeRepo{}, &fakePayrollAPI{})

	retry, _, err := p.Process(context.Background(), types.Message{
		Body:      aws.String("{not json"),
		MessageId: aws.String("msg-1"),
	})

	require.Error(t, err)
	assert.False(t, retry)
}

func TestProcess_CompletedRowIsSkipped(t *testing.T) {
	api := &fakePayrollAPI{}
	p := NewProcessor(&fakeRepo{
		entry: &model.TimeEntry{ID: 7, PayrollStatus: model.StatusPayrollCompleted},
	}, api)

	retry, _, err := p.Process(context.Background(), payrollMessage(t, messaging.PayrollEvent{EntryID: 7}))

	require.NoError(t, err)
	assert.False(t, retry)
	assert.Zero(t, api.calls, "completed rows must not hit the payroll API again")
}

func TestProcess_APIFailureSchedulesRetryWithBackoff(t *testing.T) {
	repo := &fakeRepo{
		entry: &model.TimeEntry{ID: 7, PayrollStatus: model.StatusPayrollPending, PayrollRetryCount: 1},
	}
	p := NewProcessor(repo, &fakePayrollAPI{err: errors.New("payroll down")})

	retry, delay, err := p.Process(context.Background(), payrollMessage(t, messaging.PayrollEvent{EntryID: 7}))

	require.Error(t, err)
	assert.True(t, retry)
	assert.Equal(t, int32(40), delay) // 2^2 * 10
	require.Equal(t, []model.PayrollStatus{model.StatusPayrollPending}, repo.updates)
	require.Equal(t, []int{2}, repo.counts)
}

func TestProcess_SuccessMarksCompleted(t *testing.T) {
	repo := &fakeRepo{
		entry: &model.TimeEntry{ID: 7, PayrollStatus: model.StatusPayrollPending},
	}
	api := &fakePayrollAPI{}
	p := NewProcessor(repo, api)

	retry, _, err := p.Process(context.Background(), payrollMessage(t, messaging.PayrollEvent{EntryID: 7}))

	require.NoError(t, err)
	assert.False(t, retry)
	assert.Equal(t, 1, api.calls)
	require.Equal(t, []model.PayrollStatus{model.StatusPayrollCompleted}, repo.updates)
	require.Equal(t, []int{0}, repo.counts)
}

func TestProcess_DBFailureIsRetried(t *testing.T) {
	p := NewProcessor(&fakeRepo{getErr: errors.New("db down")}, &fakePayrollAPI{})

	retry, delay, err := p.Process(context.Background(), payrollMessage(t, messaging.PayrollEvent{EntryID: 7}))

	require.Error(t, err)
	assert.True(t, retry)
	assert.Equal(t, int32(10), delay)
}
