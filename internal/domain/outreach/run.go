package outreach

import (
	"time"

	"github.com/google/uuid"
)

type RunKind string

const (
	RunKindGenerate RunKind = "generate"
	RunKindSend     RunKind = "send"
)

type EntryStatus string

const (
	EntryGenerated EntryStatus = "generated"
	EntrySent      EntryStatus = "sent"
	EntryFailed    EntryStatus = "failed"
)

// Run is the audit record of one generate or send invocation.
type Run struct {
	ID         string
	Kind       RunKind
	Source     string
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int
	Succeeded  int
	Failed     int
	Entries    []RunEntry
}

type RunEntry struct {
	Position     int
	Contact      string
	EmailAddress string
	Subject      string
	Status       EntryStatus
	Error        string
}

func NewRunID() string {
	return uuid.NewString()
}

// NewGenerationRun records the emails produced from a sheet. Skipped contacts
// count towards Failed.
func NewGenerationRun(id, source string, started time.Time, results []GeneratedEmail, summary ProcessSummary) *Run {
	run := &Run{
		ID:         id,
		Kind:       RunKindGenerate,
		Source:     source,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Total:      summary.Total,
		Succeeded:  summary.Processed,
		Failed:     summary.Skipped,
	}
	for i, r := range results {
		run.Entries = append(run.Entries, RunEntry{
			Position:     i,
			Contact:      r.Contact,
			EmailAddress: r.EmailAddress,
			Subject:      r.Subject,
			Status:       EntryGenerated,
		})
	}
	return run
}

// NewSendRun records the outcome of a send batch. Entries are only attached
// when the batch was not cancelled at the confirmation gate.
func NewSendRun(id, source string, started time.Time, emails []GeneratedEmail, report *SendReport) *Run {
	run := &Run{
		ID:         id,
		Kind:       RunKindSend,
		Source:     source,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Total:      report.Total,
		Succeeded:  report.Succeeded,
		Failed:     report.Failed(),
	}
	if report.Cancelled {
		return run
	}

	failed := make(map[int]SendResult, len(report.Failures))
	for _, f := range report.Failures {
		failed[f.Index] = f
	}
	for i, e := range emails {
		entry := RunEntry{
			Position:     i,
			Contact:      e.Contact,
			EmailAddress: e.EmailAddress,
			Subject:      e.Subject,
			Status:       EntrySent,
		}
		if f, ok := failed[i]; ok {
			entry.Status = EntryFailed
			entry.Error = f.Error
		}
		run.Entries = append(run.Entries, entry)
	}
	return run
}
