package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"getgsa/internal/models"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicService backs classification and narrative generation with a
// prompted model while keeping checklist evaluation on the deterministic
// evaluator, so the evaluator's contract is identical across backends.
type AnthropicService struct {
	client anthropic.Client
	model  string
	rules  *RuleService
}

func NewAnthropicService(model string, rules *RuleService) *AnthropicService {
	return &AnthropicService{
		client: anthropic.NewClient(option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY"))),
		model:  model,
		rules:  rules,
	}
}

func (s *AnthropicService) complete(ctx context.Context, system, user string) (string, error) {
	message, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: 2048,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic api: %w", err)
	}
	for _, block := range message.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in anthropic response")
}

func (s *AnthropicService) Classify(ctx context.Context, text, typeHint string) (models.DocType, error) {
	if hint := models.DocType(strings.TrimSpace(typeHint)); hint.Known() {
		return hint, nil
	}
	const system = "Classify the document into exactly one of: profile, past_performance, pricing, unknown. Respond with only the category name."
	snippet := text
	if len(snippet) > 2000 {
		snippet = snippet[:2000]
	}
	out, err := s.complete(ctx, system, snippet)
	if err != nil {
		return models.DocUnknown, err
	}
	if t := models.DocType(strings.TrimSpace(strings.ToLower(out))); t.Known() {
		return t, nil
	}
	return models.DocUnknown, nil
}

// GenerateChecklist stays on the deterministic evaluator regardless of
// backend: rule satisfaction is threshold logic, not generation.
func (s *AnthropicService) GenerateChecklist(ctx context.Context, fields models.ExtractedFields, redactedTexts []string, matches []models.RuleMatch) (models.ChecklistResult, error) {
	return s.rules.GenerateChecklist(ctx, fields, redactedTexts, matches)
}

func (s *AnthropicService) GenerateBrief(ctx context.Context, fields models.ExtractedFields, cl models.ChecklistResult, matches []models.RuleMatch) (string, error) {
	base, err := s.rules.GenerateBrief(ctx, fields, cl, matches)
	if err != nil {
		return "", err
	}
	const system = "Rewrite the negotiation brief below for clarity. Keep every issue and rule citation; do not add claims that are not in the brief."
	out, err := s.complete(ctx, system, base)
	if err != nil {
		return "", err
	}
	return out, nil
}

func (s *AnthropicService) GenerateEmail(ctx context.Context, fields models.ExtractedFields, cl models.ChecklistResult) (string, error) {
	base, err := s.rules.GenerateEmail(ctx, fields, cl)
	if err != nil {
		return "", err
	}
	const system = "Rewrite the client email below for tone. Keep every listed item; do not add claims that are not in the email."
	out, err := s.complete(ctx, system, base)
	if err != nil {
		return "", err
	}
	return out, nil
}
