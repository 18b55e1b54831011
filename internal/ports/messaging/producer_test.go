package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	destinations []string
	bodies       [][]byte
	err          error
}

func (f *fakeSender) SendMessage(_ context.Context, destination string, body []byte) error {
	if f.err != nil {
		return f.err
	}
	f.destinations = append(f.destinations, destination)
	f.bodies = append(f.bodies, body)
	return nil
}

func TestProducer_RoutesEventsToTheirQueues(t *testing.T) {
	sender := &fakeSender{}
	p := NewProducer(sender, "payroll-queue-url", "email-queue-url")

	clockOut := time.Date(2026, 3, 9, 17, 0, 0, 0, time.UTC)
	err := p.PublishPayroll(context.Background(), PayrollEvent{
		EntryID:       7,
		EmployeeID:    "emp-1",
		Day:           "2026-03-09",
		WorkedMinutes: 480,
		BreakMinutes:  60,
		ClockOutTime:  clockOut,
	})
	require.NoError(t, err)

	err = p.PublishEmail(context.Background(), EmailEvent{EntryID: 7, EmployeeID: "emp-1"})
	require.NoError(t, err)

	require.Equal(t, []string{"payroll-queue-url", "email-queue-url"}, sender.destinations)

	var decoded PayrollEvent
	require.NoError(t, json.Unmarshal(sender.bodies[0], &decoded))
	assert.Equal(t, int64(7), decoded.EntryID)
	assert.Equal(t, "emp-1", decoded.EmployeeID)
	assert.Equal(t, 480, decoded.WorkedMinutes)
	assert.True(t, clockOut.Equal(decoded.ClockOutTime))
}

func TestProducer_WrapsSenderFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("sqs unavailable")}
	p := NewProducer(sender, "payroll-queue-url", "email-queue-url")

	err := p.PublishPayroll(context.Background(), PayrollEvent{EntryID: 1})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send message")
}
