package email

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/rs/zerolog/log"

	"punchclock.service/internal/core"
	"punchclock.service/internal/core/model"
	"punchclock.service/internal/core/status"
	"punchclock.service/internal/ports/messaging"
	"punchclock.service/internal/ports/repository"
	"punchclock.service/internal/worker"
)

// Processor handles jobs from the email queue: one summary mail per
// clock-out, tracked by the entry's email status column.
type Processor struct {
	mailer     core.SummaryMailer
	repo       repository.Repository
	mailDomain string
}

// NewProcessor sets up a new processor for handling summary mails.
// mailDomain is appended to the employee ID to form the recipient.
func NewProcessor(mailer core.SummaryMailer, repo repository.Repository, mailDomain string) *Processor {
	return &Processor{
		mailer:     mailer,
		repo:       repo,
		mailDomain: mailDomain,
	}
}

// Process tries to send the day-summary mail and tells the worker to
// retry with backoff if sending fails. Rows already marked completed
// are skipped.
func (p *Processor) Process(ctx context.Context, msg types.Message) (bool, int32, error) {
	var event messaging.EmailEvent
	if err := json.Unmarshal([]byte(*msg.Body), &event); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to unmarshal email event")
		return false, 0, err // Do not retry on malformed message
	}

	record, err := p.repo.GetEntry(ctx, event.EntryID)
	if err != nil {
		return true, 10, fmt.Errorf("failed to get entry from db for email processing: %w", err)
	}

	if record.EmailStatus == model.StatusEmailCompleted {
		log.Ctx(ctx).Info().Int64("entry_id", event.EntryID).Msg("Summary mail already sent. Skipping.")
		return false, 0, nil
	}

	to := event.EmployeeID + "@" + p.mailDomain
	worked := status.FormatDuration(time.Duration(event.WorkedMinutes) * time.Minute)
	breakTime := status.FormatDuration(time.Duration(event.BreakMinutes) * time.Minute)

	err = p.mailer.SendDaySummary(ctx, to, event.Day, worked, breakTime)
	if err != nil {
		newCount := record.EmailRetryCount + 1
		p.repo.UpdateEmailStatus(ctx, event.EntryID, model.StatusEmailPending, newCount)

		delay := worker.CalculateBackoff(newCount)
		return true, delay, err
	}

	err = p.repo.UpdateEmailStatus(ctx, event.EntryID, model.StatusEmailCompleted, 0)
	return false, 0, err
}
