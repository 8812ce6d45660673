package outreach

import "fmt"

// GeneratedEmail is one generated message, persisted verbatim.
type GeneratedEmail struct {
	Contact      string `json:"contact"`
	EmailAddress string `json:"email_address"`
	Subject      string `json:"subject"`
	Body         string `json:"generated_email"`
}

// ProcessSummary counts what happened to the contacts of one generate run.
type ProcessSummary struct {
	Total     int
	Processed int
	Skipped   int
}

func (s ProcessSummary) String() string {
	return fmt.Sprintf("Processing summary:\n- Total contacts: %d\n- Processed: %d\n- Skipped: %d",
		s.Total, s.Processed, s.Skipped)
}
