// Package ai defines the analysis service contract. The default
// implementation is a deterministic rule-based stand-in; a prompted-model
// implementation sits behind the same interface so callers never depend
// on which backend is active.
package ai

import (
	"context"
	"fmt"

	"getgsa/internal/checklist"
	"getgsa/internal/config"
	"getgsa/internal/models"
)

type Service interface {
	Classify(ctx context.Context, text, typeHint string) (models.DocType, error)
	GenerateChecklist(ctx context.Context, fields models.ExtractedFields, redactedTexts []string, matches []models.RuleMatch) (models.ChecklistResult, error)
	GenerateBrief(ctx context.Context, fields models.ExtractedFields, checklist models.ChecklistResult, matches []models.RuleMatch) (string, error)
	GenerateEmail(ctx context.Context, fields models.ExtractedFields, checklist models.ChecklistResult) (string, error)
}

// New builds the service named by cfg.AIProvider.
func New(cfg config.Config) (Service, error) {
	switch cfg.AIProvider {
	case "", "rules", "mock":
		return NewRuleService(checklist.NewEvaluator(cfg.MinPastPerfValue, cfg.RecencyMonths)), nil
	case "anthropic":
		return NewAnthropicService(cfg.AnthropicModel,
			NewRuleService(checklist.NewEvaluator(cfg.MinPastPerfValue, cfg.RecencyMonths))), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.AIProvider)
	}
}
