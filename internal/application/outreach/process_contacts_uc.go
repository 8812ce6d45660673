package outreach

import (
	"context"
	"strings"
	"time"

	"outreach/internal/domain/outreach"
	"outreach/internal/logger"
)

// disqualifyingStatuses mark addresses that must not be contacted. Matched as
// case-insensitive substrings of the Email Status column.
var disqualifyingStatuses = []string{"invalid", "bounced", "undeliverable", "bad"}

// ProcessContactsUseCase runs the generator over every eligible contact of a sheet, in order.
type ProcessContactsUseCase struct {
	generator EmailGenerator
	log       *logger.Logger
	pause     time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewProcessContactsUseCase(generator EmailGenerator, log *logger.Logger, pauseAfterEach time.Duration) *ProcessContactsUseCase {
	return &ProcessContactsUseCase{
		generator: generator,
		log:       log.WithComponent("processor"),
		pause:     pauseAfterEach,
		sleep:     pause,
	}
}

func (uc *ProcessContactsUseCase) Execute(ctx context.Context, sheet *outreach.Sheet, info outreach.TemplateInfo) ([]outreach.GeneratedEmail, outreach.ProcessSummary, error) {
	summary := outreach.ProcessSummary{Total: len(sheet.Contacts)}

	if !sheet.HasColumn(outreach.ColumnEmail) {
		uc.log.Error().Strs("columns", sheet.Columns).Msg("'Email' column not found in the spreadsheet")
		return nil, summary, outreach.ErrMissingEmailColumn
	}

	hasStatus := sheet.HasColumn(outreach.ColumnEmailStatus)
	if hasStatus {
		statuses := distinctStatuses(sheet.Contacts)
		uc.log.Info().Strs("statuses", statuses).Msgf("Found %d unique email statuses", len(statuses))
	} else {
		uc.log.Info().Msg("'Email Status' column not found, status filtering disabled")
	}

	uc.log.Info().Int("total", summary.Total).Msg("Total contacts before filtering")
	if empty := countEmptyEmails(sheet.Contacts); empty > 0 {
		uc.log.Warn().Int("count", empty).Msg("Rows with missing email addresses")
	}

	var results []outreach.GeneratedEmail
	for idx, c := range sheet.Contacts {
		if err := ctx.Err(); err != nil {
			return results, summary, err
		}

		address := c.Email()
		if address == "" {
			uc.log.Info().Int("row", idx).Str("contact", c.FullName()).Msg("Skipping contact: no email address")
			summary.Skipped++
			continue
		}

		if hasStatus && isDisqualified(c.Status()) {
			uc.log.Info().Int("row", idx).Str("contact", c.FullName()).Str("status", c.Status()).Msg("Skipping contact: disqualifying status")
			summary.Skipped++
			continue
		}

		uc.log.Info().Str("contact", c.FullName()).Str("email", address).Msg("Generating email")

		subject, body, err := uc.generator.Execute(ctx, c, info)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return results, summary, ctxErr
			}
			uc.log.Error().Err(err).Str("contact", c.FullName()).Msg("Error generating email")
			summary.Skipped++
			continue
		}

		results = append(results, outreach.GeneratedEmail{
			Contact:      c.FullName(),
			EmailAddress: address,
			Subject:      subject,
			Body:         body,
		})
		summary.Processed++

		if err := uc.sleep(ctx, uc.pause); err != nil {
			return results, summary, err
		}
	}

	uc.log.Info().
		Int("total", summary.Total).
		Int("processed", summary.Processed).
		Int("skipped", summary.Skipped).
		Msg("Processing summary")

	return results, summary, nil
}

func isDisqualified(status string) bool {
	status = strings.ToLower(status)
	for _, bad := range disqualifyingStatuses {
		if strings.Contains(status, bad) {
			return true
		}
	}
	return false
}

func distinctStatuses(contacts []outreach.Contact) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range contacts {
		s := c.Get(outreach.ColumnEmailStatus)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

func countEmptyEmails(contacts []outreach.Contact) int {
	n := 0
	for _, c := range contacts {
		if c.Email() == "" {
			n++
		}
	}
	return n
}

