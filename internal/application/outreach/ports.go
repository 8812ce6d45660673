package outreach

import (
	"context"

	"outreach/internal/domain/outreach"
)

// TextGenerator answers a single prompt with model-generated text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// MailTransport delivers one message. Implementations open a fresh session per call.
type MailTransport interface {
	Send(ctx context.Context, msg outreach.Message) error
}

// ConfirmFunc gates the bulk send after the connectivity check.
type ConfirmFunc func(total int) bool

// EmailGenerator produces the subject and formatted body for one contact.
type EmailGenerator interface {
	Execute(ctx context.Context, c outreach.Contact, info outreach.TemplateInfo) (subject, body string, err error)
}

// RunRepository keeps the audit trail of generate and send runs.
type RunRepository interface {
	Save(ctx context.Context, run *outreach.Run) error
	ListRecent(ctx context.Context, limit int) ([]*outreach.Run, error)
	GetByID(ctx context.Context, id string) (*outreach.Run, error)
}
