package outreach

import (
	"fmt"

	"github.com/tmc/langchaingo/prompts"
)

var highlightPrompt = prompts.NewPromptTemplate(`Based on the following information about {{.company}}:
- Industry: {{.industry}}
- Keywords: {{.keywords}}
- Website: {{.website}}

Write ONE very brief phrase (under 10 words) describing their core business or product.
Be specific and professional.`,
	[]string{"company", "industry", "keywords", "website"},
)

var emailPrompt = prompts.NewPromptTemplate(`Create a short, punchy outreach email body (NOT a complete email) to {{.first_name}} {{.last_name}} who works as {{.title}} at {{.company}}.

Context for this outreach:
{{.description}}

Key points to draw from:
{{.key_points}}

Generate both a SUBJECT LINE and EMAIL BODY:
1. Create a subject line in this EXACT format: "{{.subject_prefix}} {{.company}}" (you may add a brief descriptor after the company name)
2. Then, create the email body (separate from subject)

Requirements for the body:
1. EXTREMELY SHORT AND PUNCHY - max 75 words.
2. NO long paragraphs. Use short, crisp sentences.
3. Break the text into 2-3 very short paragraphs (1-2 sentences each).
4. DO NOT include any introduction like "My name is" or "I am" - this will be handled by the template.
5. DO NOT include any signature - this will be handled by the template.
6. DO NOT include any greeting like "Dear [Name]," - this is handled by the template.
7. Start directly with the value proposition or company acknowledgment.

Structure:
- Para 1: One sentence acknowledging {{.company}}'s work in {{.highlight}}.
- Para 2: One sentence stating we've helped similar {{.industry}} clients solve growth/ops challenges.
- Para 3: Direct question asking for a 15-min call to discuss potential synergies.

The tone should be: {{.tone}}

Format your response exactly like this:
SUBJECT: {{.subject_prefix}} {{.company}} [optional brief descriptor]

[Email body starts here - punchy, short, no fluff]`,
	[]string{"first_name", "last_name", "title", "company", "description", "key_points",
		"subject_prefix", "highlight", "industry", "tone"},
)

func formatPrompt(t prompts.PromptTemplate, values map[string]any) (string, error) {
	text, err := t.Format(values)
	if err != nil {
		return "", fmt.Errorf("format prompt: %w", err)
	}
	return text, nil
}
