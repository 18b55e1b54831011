package core

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"punchclock.service/pkg/telemetry"
)

// SummaryMailer sends the end-of-day summary after a clock-out.
type SummaryMailer interface {
	SendDaySummary(ctx context.Context, to, day, worked, breakTime string) error
}

// SESSummaryMailer sends summaries through AWS SES.
type SESSummaryMailer struct {
	client *ses.Client
	sender string
}

func NewSESSummaryMailer(client *ses.Client, sender string) *SESSummaryMailer {
	return &SESSummaryMailer{client: client, sender: sender}
}

func (s *SESSummaryMailer) SendDaySummary(ctx context.Context, to, day, worked, breakTime string) error {
	tracer := otel.Tracer("ses-summary-mailer")
	ctx, span := tracer.Start(ctx, "send_email", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	if empID := telemetry.GetEmployeeIDFromContext(ctx); empID != "" {
		span.SetAttributes(attribute.String("app.employeeId", empID))
	}

	body := fmt.Sprintf(
		"Hello,\n\nYou have clocked out for %s.\nTime worked: %s\nBreak time: %s",
		day, worked, breakTime,
	)

	input := &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String("Daily Time Summary"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data: aws.String(body),
				},
			},
		},
	}

	_, err := s.client.SendEmail(ctx, input)
	return err
}
