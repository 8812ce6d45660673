package outreach

import (
	"context"
	"fmt"
	"time"

	"outreach/internal/domain/outreach"
	"outreach/internal/logger"
)

const (
	DefaultSubject = "Introduction: 180 Degrees Consulting, IIT Kharagpur"

	testSubject = "Test Connection"
	testBody    = "This is a test message to verify SMTP connection."
)

// SendEmailsUseCase delivers persisted emails one at a time after a
// self-addressed connectivity check.
type SendEmailsUseCase struct {
	transport MailTransport
	log       *logger.Logger
	sender    string
	cc        []string
	pause     time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewSendEmailsUseCase(transport MailTransport, log *logger.Logger, sender string, cc []string, pauseBetween time.Duration) *SendEmailsUseCase {
	return &SendEmailsUseCase{
		transport: transport,
		log:       log.WithComponent("sender"),
		sender:    sender,
		cc:        cc,
		pause:     pauseBetween,
		sleep:     pause,
	}
}

// CheckConnectivity sends a test message to the sender's own address.
func (uc *SendEmailsUseCase) CheckConnectivity(ctx context.Context) error {
	uc.log.Info().Str("to", uc.sender).Msg("Testing SMTP connection with a test email")

	err := uc.transport.Send(ctx, outreach.Message{
		From:    uc.sender,
		To:      uc.sender,
		Subject: testSubject,
		Body:    testBody,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", outreach.ErrConnectivity, err)
	}

	uc.log.Info().Msg("Test email sent successfully")
	return nil
}

func (uc *SendEmailsUseCase) Execute(ctx context.Context, emails []outreach.GeneratedEmail, confirm ConfirmFunc) (*outreach.SendReport, error) {
	report := &outreach.SendReport{Total: len(emails)}

	if err := uc.CheckConnectivity(ctx); err != nil {
		return report, err
	}

	if confirm != nil && !confirm(len(emails)) {
		uc.log.Info().Msg("Operation cancelled")
		report.Cancelled = true
		return report, nil
	}

	for i, e := range emails {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		subject := e.Subject
		if subject == "" {
			subject = DefaultSubject
		}

		uc.log.Info().
			Int("index", i+1).
			Int("total", len(emails)).
			Str("to", e.EmailAddress).
			Str("subject", subject).
			Msg("Sending email")

		err := uc.transport.Send(ctx, outreach.Message{
			From:    uc.sender,
			To:      e.EmailAddress,
			Cc:      uc.cc,
			Subject: subject,
			Body:    e.Body,
		})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			err = fmt.Errorf("%w: %w", outreach.ErrSend, err)
			uc.log.Error().Err(err).Str("to", e.Contact).Msg("Failed to send email")
			report.Failures = append(report.Failures, outreach.SendResult{
				Index: i,
				Name:  e.Contact,
				Email: e.EmailAddress,
				Error: err.Error(),
			})
		} else {
			uc.log.Info().Str("to", e.Contact).Msg("Email sent successfully")
			report.Succeeded++
		}

		if i < len(emails)-1 {
			if err := uc.sleep(ctx, uc.pause); err != nil {
				return report, err
			}
		}
	}

	uc.log.Info().
		Int("total", report.Total).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed()).
		Msg("Email sending summary")

	return report, nil
}
