package outreach

import (
	"context"
	"strings"
	"time"

	"github.com/stretchr/testify/mock"

	"outreach/internal/domain/outreach"
)

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockMailTransport struct {
	mock.Mock
}

func (m *MockMailTransport) Send(ctx context.Context, msg outreach.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockEmailGenerator struct {
	mock.Mock
}

func (m *MockEmailGenerator) Execute(ctx context.Context, c outreach.Contact, info outreach.TemplateInfo) (string, string, error) {
	args := m.Called(ctx, c, info)
	return args.String(0), args.String(1), args.Error(2)
}

func highlightPromptArg() any {
	return mock.MatchedBy(func(p string) bool { return strings.Contains(p, "ONE very brief phrase") })
}

func emailPromptArg() any {
	return mock.MatchedBy(func(p string) bool { return strings.Contains(p, "SUBJECT LINE") })
}

func emailPromptContaining(s string) any {
	return mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "SUBJECT LINE") && strings.Contains(p, s)
	})
}

// sleepRecorder stands in for pause and records each requested duration.
type sleepRecorder struct {
	calls []time.Duration
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	r.calls = append(r.calls, d)
	return ctx.Err()
}
