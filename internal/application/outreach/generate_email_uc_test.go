package outreach

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"outreach/internal/domain/outreach"
	"outreach/internal/logger"
)

func testContact() outreach.Contact {
	return outreach.Contact{
		outreach.ColumnFirstName: "Ada",
		outreach.ColumnLastName:  "Lovelace",
		outreach.ColumnEmail:     "ada@acme.test",
		outreach.ColumnTitle:     "CTO",
		outreach.ColumnCompany:   "Acme",
		outreach.ColumnIndustry:  "Software",
		outreach.ColumnKeywords:  "compilers",
		outreach.ColumnWebsite:   "acme.test",
	}
}

func bodyOnlyTemplate() outreach.TemplateInfo {
	return outreach.TemplateInfo{Tone: "friendly", Template: "$EMAIL_BODY"}
}

func runGenerator(t *testing.T, response string, info outreach.TemplateInfo) (string, string) {
	t.Helper()

	llm := new(MockTextGenerator)
	llm.On("Generate", mock.Anything, highlightPromptArg()).Return("compiler tooling", nil)
	llm.On("Generate", mock.Anything, emailPromptArg()).Return(response, nil)

	uc := NewGenerateEmailUseCase(llm, logger.Nop(), "")
	subject, body, err := uc.Execute(context.Background(), testContact(), info)
	require.NoError(t, err)
	llm.AssertNumberOfCalls(t, "Generate", 2)

	return subject, body
}

func TestGenerateEmailWellFormedResponse(t *testing.T) {
	response := "SUBJECT: 180DC IIT Kharagpur X Acme - growth\n\nGreat compilers at Acme.\n\nOpen to a 15-min call?"

	subject, body := runGenerator(t, response, bodyOnlyTemplate())

	assert.Equal(t, "180DC IIT Kharagpur X Acme - growth", subject)
	assert.Equal(t, "Great compilers at Acme.\n\nOpen to a 15-min call?", body)
}

func TestGenerateEmailMalformedResponse(t *testing.T) {
	response := "Great compilers at Acme. Open to a call?"

	subject, body := runGenerator(t, response, bodyOnlyTemplate())

	assert.Equal(t, "180DC IIT Kharagpur X Acme", subject)
	assert.Equal(t, response, body)
}

func TestGenerateEmailSubjectWithoutBlankLine(t *testing.T) {
	response := "SUBJECT: 180DC IIT Kharagpur X Acme\nGreat compilers."

	subject, body := runGenerator(t, response, bodyOnlyTemplate())

	assert.Equal(t, "180DC IIT Kharagpur X Acme", subject)
	assert.Equal(t, response, body)
}

func TestGenerateEmailForcesSubjectPrefix(t *testing.T) {
	subject, body := runGenerator(t, "SUBJECT: Partnership idea\n\nBody text", bodyOnlyTemplate())

	assert.Equal(t, "180DC IIT Kharagpur X Acme", subject)
	assert.Equal(t, "Body text", body)
}

func TestGenerateEmailStripsGreeting(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"first name", "Dear Ada,\nGreat work.", "Great work."},
		{"last name with title", "Dear Ms. Lovelace, Great work.", "Great work."},
		{"hello then hi", "Hello, Hi there", "Hi there"},
		{"case sensitive", "dear Ada, Great work.", "dear Ada, Great work."},
		{"other phrasing kept", "Good morning Ada, Great work.", "Good morning Ada, Great work."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, body := runGenerator(t, "SUBJECT: 180DC IIT Kharagpur X Acme\n\n"+tt.body, bodyOnlyTemplate())
			assert.Equal(t, tt.want, body)
		})
	}
}

func TestGenerateEmailAppliesTemplate(t *testing.T) {
	info := outreach.TemplateInfo{Template: "Respected $TITLE $LAST_NAME,\n\n$EMAIL_BODY\n\n-- ${COMPANY} fan"}

	_, body := runGenerator(t, "SUBJECT: 180DC IIT Kharagpur X Acme\n\nShort pitch.", info)

	assert.Equal(t, "Respected CTO Lovelace,\n\nShort pitch.\n\n-- Acme fan", body)
}

func TestGenerateEmailTemplateMissingPlaceholderFailsSoft(t *testing.T) {
	info := outreach.TemplateInfo{Template: "Hi $NICKNAME, $EMAIL_BODY"}

	_, body := runGenerator(t, "SUBJECT: 180DC IIT Kharagpur X Acme\n\nShort pitch.", info)

	assert.Equal(t, "Short pitch.", body)
}

func TestGenerateEmailHighlightFallback(t *testing.T) {
	for name, response := range map[string]struct {
		text string
		err  error
	}{
		"model error":  {"", errors.New("quota exceeded")},
		"empty answer": {"   ", nil},
	} {
		t.Run(name, func(t *testing.T) {
			llm := new(MockTextGenerator)
			llm.On("Generate", mock.Anything, highlightPromptArg()).Return(response.text, response.err)
			llm.On("Generate", mock.Anything, emailPromptContaining("Acme's work in the Software sector")).
				Return("SUBJECT: 180DC IIT Kharagpur X Acme\n\nBody", nil)

			uc := NewGenerateEmailUseCase(llm, logger.Nop(), "")
			_, body, err := uc.Execute(context.Background(), testContact(), bodyOnlyTemplate())

			require.NoError(t, err)
			assert.Equal(t, "Body", body)
			llm.AssertExpectations(t)
		})
	}
}

func TestGenerateEmailModelFailure(t *testing.T) {
	llm := new(MockTextGenerator)
	llm.On("Generate", mock.Anything, highlightPromptArg()).Return("compiler tooling", nil)
	llm.On("Generate", mock.Anything, emailPromptArg()).Return("", errors.New("503"))

	uc := NewGenerateEmailUseCase(llm, logger.Nop(), "")
	_, _, err := uc.Execute(context.Background(), testContact(), bodyOnlyTemplate())

	require.Error(t, err)
	assert.ErrorIs(t, err, outreach.ErrGeneration)
}

func TestGenerateEmailCustomPrefix(t *testing.T) {
	llm := new(MockTextGenerator)
	llm.On("Generate", mock.Anything, highlightPromptArg()).Return("compiler tooling", nil)
	llm.On("Generate", mock.Anything, emailPromptContaining(`"Acme Labs X Acme"`)).
		Return("SUBJECT: Acme Labs X Acme\n\nBody", nil)

	uc := NewGenerateEmailUseCase(llm, logger.Nop(), "Acme Labs X")
	subject, _, err := uc.Execute(context.Background(), testContact(), bodyOnlyTemplate())

	require.NoError(t, err)
	assert.Equal(t, "Acme Labs X Acme", subject)
}

func TestGenerateEmailTemplateMalformedDollarFailsSoft(t *testing.T) {
	info := outreach.TemplateInfo{Template: "Fees from $5. $EMAIL_BODY"}

	subject, body := runGenerator(t, "SUBJECT: 180DC IIT Kharagpur X Acme\n\nShort pitch.", info)

	assert.Equal(t, "180DC IIT Kharagpur X Acme", subject)
	assert.Equal(t, "Short pitch.", body)
}
