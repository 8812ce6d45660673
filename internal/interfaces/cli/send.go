package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	app "outreach/internal/application/outreach"
	"outreach/internal/domain/outreach"
	"outreach/internal/infrastructure/credentials"
	"outreach/internal/infrastructure/gmail"
	"outreach/internal/infrastructure/persistence/jsonfile"
	"outreach/internal/infrastructure/smtp"
	"outreach/internal/logger"
)

// TransportFactory opens the configured mail transport and returns it with
// the sender address used for From and for the connectivity check.
type TransportFactory func(ctx context.Context) (app.MailTransport, string, error)

// SendCommand delivers a saved results file after a connectivity check and
// an explicit confirmation.
type SendCommand struct {
	Prompter    *Prompter
	Transport   TransportFactory
	Runs        app.RunRepository
	ResultsPath string
	CC          []string
	Pause       time.Duration
	Log         *logger.Logger
}

func (c *SendCommand) Run(ctx context.Context) error {
	p := c.Prompter
	p.Println(separator)
	p.Println("EMAIL SENDER")
	p.Println(separator)

	transport, sender, err := c.Transport(ctx)
	if err != nil {
		return err
	}

	emails, err := jsonfile.ReadResults(c.ResultsPath)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", c.ResultsPath, err)
	}
	p.Printf("\nFound %d emails to send.\n", len(emails))

	runID := outreach.NewRunID()
	log := c.Log.WithRun(runID)
	started := time.Now()

	uc := app.NewSendEmailsUseCase(transport, log, sender, c.CC, c.Pause)

	p.Println("\nTesting connection with a test email...")
	report, err := uc.Execute(ctx, emails, func(total int) bool {
		p.Println("Test email sent successfully! Proceeding with sending emails.")
		return p.Confirm(fmt.Sprintf("\nDo you want to send %d emails? (yes/no): ", total))
	})
	if errors.Is(err, outreach.ErrConnectivity) {
		p.Printf("Test email failed: %v\n", err)
		p.Println("Please check your credentials and try again.")
		return err
	}
	if report.Cancelled {
		p.Println("Operation cancelled.")
		recordRun(ctx, c.Runs, outreach.NewSendRun(runID, c.ResultsPath, started, emails, report), log)
		return nil
	}

	c.printReport(report)
	recordRun(ctx, c.Runs, outreach.NewSendRun(runID, c.ResultsPath, started, emails, report), log)
	return err
}

func (c *SendCommand) printReport(report *outreach.SendReport) {
	p := c.Prompter
	p.Printf("\n%s\n", separator[:40])
	p.Println("--- Email Sending Summary ---")
	p.Printf("Total emails: %d\n", report.Total)
	p.Printf("Successfully sent: %d\n", report.Succeeded)
	p.Printf("Failed: %d\n", report.Failed())

	if len(report.Failures) > 0 {
		p.Println("\nFailed recipients:")
		for _, f := range report.Failures {
			p.Printf("- %s <%s>: %s\n", f.Name, f.Email, f.Error)
		}
	}
}

// EnsureCredentials loads the SMTP credentials file, creating it
// interactively when it does not exist yet.
func EnsureCredentials(p *Prompter, path, defaultSender string) (*credentials.SMTP, error) {
	if credentials.Exists(path) {
		return credentials.Load(path)
	}

	p.Println("Creating credentials file...")
	address, err := p.AskDefault(fmt.Sprintf("Enter your Gmail address (%s): ", defaultSender), defaultSender)
	if err != nil {
		return nil, fmt.Errorf("read sender address: %w", err)
	}
	password, err := p.Ask("Enter your Gmail app password: ")
	if err != nil {
		return nil, fmt.Errorf("read app password: %w", err)
	}

	creds := credentials.SMTP{
		SenderEmail:    address,
		SenderPassword: password,
		SMTPServer:     smtp.DefaultHost,
		SMTPPort:       smtp.DefaultPort,
	}
	if err := credentials.Save(path, creds); err != nil {
		return nil, err
	}
	p.Printf("Credentials file %s created successfully!\n", path)
	return &creds, nil
}

// SMTPTransport returns a factory for the smtp transport backed by the
// credentials file at path.
func SMTPTransport(p *Prompter, path, defaultSender string) TransportFactory {
	return func(ctx context.Context) (app.MailTransport, string, error) {
		creds, err := EnsureCredentials(p, path, defaultSender)
		if err != nil {
			return nil, "", fmt.Errorf("credentials: %w", err)
		}
		t := smtp.NewTransport(creds.SMTPServer, creds.SMTPPort, creds.SenderEmail, creds.SenderPassword)
		return t, creds.SenderEmail, nil
	}
}

// GmailTransport returns a factory for the Gmail API transport. The OAuth
// consent flow runs through the prompter on first use, and the sender is the
// authorised account.
func GmailTransport(p *Prompter, credentialsPath, tokenPath string, log *logger.Logger) TransportFactory {
	return func(ctx context.Context) (app.MailTransport, string, error) {
		srv, err := gmail.NewService(ctx, credentialsPath, tokenPath, p.in, p.out, log.WithComponent("gmail"))
		if err != nil {
			return nil, "", fmt.Errorf("gmail service error: %w", err)
		}
		client := gmail.NewClient(srv)
		sender, err := client.SenderAddress(ctx)
		if err != nil {
			return nil, "", err
		}
		return client, sender, nil
	}
}
