package outreach

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"outreach/internal/domain/outreach"
	"outreach/internal/logger"
)

func contactRow(first, email, status string) outreach.Contact {
	return outreach.Contact{
		outreach.ColumnFirstName:   first,
		outreach.ColumnLastName:    "Doe",
		outreach.ColumnEmail:       email,
		outreach.ColumnEmailStatus: status,
	}
}

func sheetOf(contacts ...outreach.Contact) *outreach.Sheet {
	return &outreach.Sheet{
		Columns: []string{
			outreach.ColumnFirstName, outreach.ColumnLastName,
			outreach.ColumnEmail, outreach.ColumnEmailStatus,
		},
		Contacts: contacts,
	}
}

func TestProcessContactsSkipsMissingEmails(t *testing.T) {
	gen := new(MockEmailGenerator)
	gen.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return("subject", "body", nil)

	sheet := sheetOf(
		contactRow("Ann", "ann@x.test", "Verified"),
		contactRow("Bob", "", "Verified"),
		contactRow("Cid", "   ", "Verified"),
		contactRow("Dee", "dee@x.test", ""),
	)

	uc := NewProcessContactsUseCase(gen, logger.Nop(), 0)
	results, summary, err := uc.Execute(context.Background(), sheet, bodyOnlyTemplate())

	require.NoError(t, err)
	assert.Equal(t, outreach.ProcessSummary{Total: 4, Processed: 2, Skipped: 2}, summary)
	require.Len(t, results, 2)
	assert.Equal(t, "Ann Doe", results[0].Contact)
	assert.Equal(t, "ann@x.test", results[0].EmailAddress)
	assert.Equal(t, "dee@x.test", results[1].EmailAddress)
	gen.AssertNumberOfCalls(t, "Execute", 2)
}

func TestProcessContactsSkipsDisqualifyingStatuses(t *testing.T) {
	gen := new(MockEmailGenerator)
	gen.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return("subject", "body", nil)

	sheet := sheetOf(
		contactRow("Ann", "ann@x.test", "INVALID"),
		contactRow("Bob", "bob@x.test", "Hard Bounced"),
		contactRow("Cid", "cid@x.test", "undeliverable"),
		contactRow("Dee", "dee@x.test", "Bad address"),
		contactRow("Eve", "eve@x.test", "Verified"),
		contactRow("Fay", "fay@x.test", "Unavailable"),
	)

	uc := NewProcessContactsUseCase(gen, logger.Nop(), 0)
	results, summary, err := uc.Execute(context.Background(), sheet, bodyOnlyTemplate())

	require.NoError(t, err)
	assert.Equal(t, 4, summary.Skipped)
	require.Len(t, results, 2)
	assert.Equal(t, "eve@x.test", results[0].EmailAddress)
	assert.Equal(t, "fay@x.test", results[1].EmailAddress)
}

func TestProcessContactsIgnoresStatusWithoutColumn(t *testing.T) {
	gen := new(MockEmailGenerator)
	gen.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return("subject", "body", nil)

	sheet := &outreach.Sheet{
		Columns:  []string{outreach.ColumnFirstName, outreach.ColumnLastName, outreach.ColumnEmail},
		Contacts: []outreach.Contact{contactRow("Ann", "ann@x.test", "invalid")},
	}

	uc := NewProcessContactsUseCase(gen, logger.Nop(), 0)
	results, _, err := uc.Execute(context.Background(), sheet, bodyOnlyTemplate())

	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestProcessContactsGeneratorFailureIsSkipped(t *testing.T) {
	gen := new(MockEmailGenerator)
	gen.On("Execute", mock.Anything, mock.MatchedBy(func(c outreach.Contact) bool {
		return c.FirstName() == "Bob"
	}), mock.Anything).Return("", "", outreach.ErrGeneration).Once()
	gen.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return("subject", "body", nil)

	sheet := sheetOf(
		contactRow("Ann", "ann@x.test", ""),
		contactRow("Bob", "bob@x.test", ""),
		contactRow("Cid", "cid@x.test", ""),
	)

	uc := NewProcessContactsUseCase(gen, logger.Nop(), 0)
	results, summary, err := uc.Execute(context.Background(), sheet, bodyOnlyTemplate())

	require.NoError(t, err)
	assert.Equal(t, outreach.ProcessSummary{Total: 3, Processed: 2, Skipped: 1}, summary)
	assert.Equal(t, "ann@x.test", results[0].EmailAddress)
	assert.Equal(t, "cid@x.test", results[1].EmailAddress)
	gen.AssertNumberOfCalls(t, "Execute", 3)
}

func TestProcessContactsRequiresEmailColumn(t *testing.T) {
	gen := new(MockEmailGenerator)

	sheet := &outreach.Sheet{
		Columns:  []string{outreach.ColumnFirstName},
		Contacts: []outreach.Contact{{outreach.ColumnFirstName: "Ann"}},
	}

	uc := NewProcessContactsUseCase(gen, logger.Nop(), 0)
	results, _, err := uc.Execute(context.Background(), sheet, bodyOnlyTemplate())

	assert.ErrorIs(t, err, outreach.ErrMissingEmailColumn)
	assert.Empty(t, results)
	gen.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessContactsStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	gen := new(MockEmailGenerator)
	gen.On("Execute", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return("", "", errors.New("request aborted"))

	sheet := sheetOf(
		contactRow("Ann", "ann@x.test", ""),
		contactRow("Bob", "bob@x.test", ""),
	)

	uc := NewProcessContactsUseCase(gen, logger.Nop(), 0)
	_, _, err := uc.Execute(ctx, sheet, bodyOnlyTemplate())

	assert.ErrorIs(t, err, context.Canceled)
	gen.AssertNumberOfCalls(t, "Execute", 1)
}

func TestProcessContactsWithRealGenerator(t *testing.T) {
	llm := new(MockTextGenerator)
	llm.On("Generate", mock.Anything, highlightPromptArg()).Return("developer tools", nil)
	llm.On("Generate", mock.Anything, emailPromptArg()).Return("SUBJECT: 180DC IIT Kharagpur X \n\nHi, nice work.", nil)

	sheet := sheetOf(contactRow("Ann", "ann@x.test", "Verified"), contactRow("Bob", "", ""))

	uc := NewProcessContactsUseCase(NewGenerateEmailUseCase(llm, logger.Nop(), ""), logger.Nop(), 0)
	results, summary, err := uc.Execute(context.Background(), sheet, bodyOnlyTemplate())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Skipped)
	require.Len(t, results, 1)
	assert.Equal(t, "nice work.", results[0].Body)
}

func TestProcessContactsPausesOnlyAfterGeneratedEmails(t *testing.T) {
	gen := new(MockEmailGenerator)
	gen.On("Execute", mock.Anything, mock.MatchedBy(func(c outreach.Contact) bool {
		return c.FirstName() == "Eve"
	}), mock.Anything).Return("", "", errors.New("quota exceeded"))
	gen.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return("subject", "body", nil)

	sheet := sheetOf(
		contactRow("Ann", "ann@x.test", "Verified"),
		contactRow("Bob", "", "Verified"),
		contactRow("Cid", "cid@x.test", "Bounced"),
		contactRow("Eve", "eve@x.test", "Verified"),
		contactRow("Fay", "fay@x.test", "Verified"),
	)

	rec := &sleepRecorder{}
	uc := NewProcessContactsUseCase(gen, logger.Nop(), time.Second)
	uc.sleep = rec.sleep

	_, summary, err := uc.Execute(context.Background(), sheet, bodyOnlyTemplate())

	require.NoError(t, err)
	assert.Equal(t, outreach.ProcessSummary{Total: 5, Processed: 2, Skipped: 3}, summary)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, rec.calls)
}

func TestProcessContactsNoPauseWhenNothingGenerated(t *testing.T) {
	gen := new(MockEmailGenerator)

	rec := &sleepRecorder{}
	uc := NewProcessContactsUseCase(gen, logger.Nop(), time.Second)
	uc.sleep = rec.sleep

	_, summary, err := uc.Execute(context.Background(), sheetOf(contactRow("Bob", "", "")), bodyOnlyTemplate())

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, rec.calls)
	gen.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
}
