package outreach

import (
	"context"
	"fmt"
	"strings"

	"outreach/internal/domain/outreach"
	"outreach/internal/logger"
)

const (
	DefaultSubjectPrefix = "180DC IIT Kharagpur X"

	subjectMarker = "SUBJECT:"
)

// GenerateEmailUseCase turns one contact into a subject and a templated body
// with two model calls: a company highlight, then the email itself.
type GenerateEmailUseCase struct {
	llm           TextGenerator
	log           *logger.Logger
	subjectPrefix string
}

func NewGenerateEmailUseCase(llm TextGenerator, log *logger.Logger, subjectPrefix string) *GenerateEmailUseCase {
	if subjectPrefix == "" {
		subjectPrefix = DefaultSubjectPrefix
	}
	return &GenerateEmailUseCase{
		llm:           llm,
		log:           log.WithComponent("generator"),
		subjectPrefix: subjectPrefix,
	}
}

func (uc *GenerateEmailUseCase) Execute(ctx context.Context, c outreach.Contact, info outreach.TemplateInfo) (string, string, error) {
	highlight := uc.companyHighlight(ctx, c)

	prompt, err := formatPrompt(emailPrompt, map[string]any{
		"first_name":     c.FirstName(),
		"last_name":      c.LastName(),
		"title":          c.Title(),
		"company":        c.Company(),
		"description":    strings.TrimSpace(info.Description),
		"key_points":     strings.TrimSpace(info.KeyPoints),
		"subject_prefix": uc.subjectPrefix,
		"highlight":      highlight,
		"industry":       c.Industry(),
		"tone":           info.Tone,
	})
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", outreach.ErrGeneration, err)
	}

	text, err := uc.llm.Generate(ctx, prompt)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", outreach.ErrGeneration, err)
	}

	subject, body := uc.parseResponse(text, c.Company())
	body = stripGreeting(body, c)

	formatted, err := outreach.Substitute(info.Template, outreach.TemplateVars(c, body))
	if err != nil {
		uc.log.Warn().Err(err).Str("contact", c.FullName()).Msg("Template not applied, using generated body as-is")
		formatted = body
	}

	return subject, formatted, nil
}

func (uc *GenerateEmailUseCase) companyHighlight(ctx context.Context, c outreach.Contact) string {
	fallback := fmt.Sprintf("%s's work in the %s sector", c.Company(), c.Industry())

	prompt, err := formatPrompt(highlightPrompt, map[string]any{
		"company":  c.Company(),
		"industry": c.Industry(),
		"keywords": c.Keywords(),
		"website":  c.Website(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Msg("Company highlight prompt failed")
		return fallback
	}

	text, err := uc.llm.Generate(ctx, prompt)
	if err != nil {
		uc.log.Warn().Err(err).Str("company", c.Company()).Msg("Company highlight generation failed")
		return fallback
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return fallback
	}
	return text
}

// parseResponse splits a "SUBJECT: ...\n\nbody" answer. Answers that do not
// follow the format become the body under a synthesized subject.
func (uc *GenerateEmailUseCase) parseResponse(text, company string) (string, string) {
	content := strings.TrimSpace(text)
	fallback := uc.subjectPrefix + " " + company

	subject, body := fallback, content
	if head, tail, ok := strings.Cut(content, "\n\n"); ok && strings.HasPrefix(head, subjectMarker) {
		subject = strings.TrimSpace(strings.ReplaceAll(head, subjectMarker, ""))
		body = strings.TrimSpace(tail)
	}

	if !strings.HasPrefix(subject, uc.subjectPrefix) {
		subject = fallback
	}

	return subject, body
}

// stripGreeting removes the first greeting that exactly prefixes body, with
// any trailing punctuation and whitespace. Other phrasings are left alone.
func stripGreeting(body string, c outreach.Contact) string {
	greetings := []string{
		"Dear " + c.FirstName(),
		"Dear Mr. " + c.LastName(),
		"Dear Ms. " + c.LastName(),
		"Dear " + c.LastName(),
		"Dear Sir",
		"Dear Madam",
		"Hello",
		"Hi",
		"Greetings",
	}

	for _, g := range greetings {
		if strings.HasPrefix(body, g) {
			return strings.TrimLeft(body[len(g):], ",. \n")
		}
	}
	return body
}
