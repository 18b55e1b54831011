package payroll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"punchclock.service/internal/core/model"
	"punchclock.service/internal/ports/messaging"
	"punchclock.service/internal/ports/repository"
	"punchclock.service/internal/worker"
	"punchclock.service/internal/worker/payrollapi"
)

// Processor handles jobs from the payroll queue, which involves calling
// the legacy payroll API. It uses a circuit breaker to avoid hammering
// the legacy system if it's having issues.
type Processor struct {
	repo    repository.Repository
	payroll payrollapi.Client
	cb      *gobreaker.CircuitBreaker
}

// NewProcessor creates a new processor for the payroll queue. It sets up a
// circuit breaker to protect the payroll API from being overwhelmed.
func NewProcessor(r repository.Repository, payroll payrollapi.Client) *Processor {
	settings := gobreaker.Settings{
		Name:        "Payroll-API",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if the failure rate exceeds 50% after at least 10 requests
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
	}

	return &Processor{
		repo:    r,
		payroll: payroll,
		cb:      gobreaker.NewCircuitBreaker(settings),
	}
}

// Process handles one message from the payroll queue. It calls the
// payroll API through the circuit breaker and schedules retries with
// exponential backoff on failure. Already-completed rows are skipped so
// redelivered messages stay idempotent.
func (p *Processor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.PayrollEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal payroll event")
		return false, 0, err // Do not retry on malformed message
	}

	record, err := p.repo.GetEntry(ctx, event.EntryID)
	if err != nil {
		return true, 10, fmt.Errorf("failed to get entry from db: %w", err)
	}

	if record.PayrollStatus == model.StatusPayrollCompleted {
		return false, 0, nil
	}

	_, err = p.cb.Execute(func() (interface{}, error) {
		return nil, p.payroll.RecordDay(ctx, event)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			log.Ctx(ctx).Warn().Msg("Circuit Breaker is OPEN; skipping payroll API call")
		}
		newCount := record.PayrollRetryCount + 1
		p.repo.UpdatePayrollStatus(ctx, event.EntryID, model.StatusPayrollPending, newCount)

		delay := worker.CalculateBackoff(newCount)
		return true, delay, err
	}

	err = p.repo.UpdatePayrollStatus(ctx, event.EntryID, model.StatusPayrollCompleted, 0)
	return false, 0, err
}
