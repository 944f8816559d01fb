package ai

import (
	"context"

	"getgsa/internal/checklist"
	"getgsa/internal/classify"
	"getgsa/internal/models"
	"getgsa/internal/narrative"
)

// RuleService is the deterministic stand-in backend: keyword
// classification, threshold-based checklist evaluation, and templated
// narratives. It performs no I/O and never blocks.
type RuleService struct {
	evaluator *checklist.Evaluator
}

func NewRuleService(evaluator *checklist.Evaluator) *RuleService {
	return &RuleService{evaluator: evaluator}
}

func (s *RuleService) Classify(ctx context.Context, text, typeHint string) (models.DocType, error) {
	_ = ctx
	return classify.Classify(text, typeHint), nil
}

func (s *RuleService) GenerateChecklist(ctx context.Context, fields models.ExtractedFields, redactedTexts []string, matches []models.RuleMatch) (models.ChecklistResult, error) {
	_ = ctx
	return s.evaluator.Evaluate(fields, redactedTexts, matches), nil
}

func (s *RuleService) GenerateBrief(ctx context.Context, fields models.ExtractedFields, cl models.ChecklistResult, matches []models.RuleMatch) (string, error) {
	_ = ctx
	return narrative.Brief(fields, cl, matches)
}

func (s *RuleService) GenerateEmail(ctx context.Context, fields models.ExtractedFields, cl models.ChecklistResult) (string, error) {
	_ = ctx
	return narrative.Email(fields, cl)
}
