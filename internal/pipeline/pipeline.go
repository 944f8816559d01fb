// Package pipeline sequences the per-document stages (extraction,
// classification, redaction) and the per-submission stages (retrieval,
// evaluation, narrative generation). Per-document stages are pure
// functions over independent documents and run in parallel; nothing is
// persisted mid-pipeline, so cancellation needs no unwinding.
package pipeline

import (
	"context"
	"fmt"

	"getgsa/internal/ai"
	"getgsa/internal/config"
	"getgsa/internal/extract"
	"getgsa/internal/models"
	"getgsa/internal/redact"
	"getgsa/internal/rules"
	"getgsa/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Pipeline struct {
	cfg       config.Config
	log       *zap.SugaredLogger
	svc       ai.Service
	corpus    *rules.Corpus
	retriever *rules.Retriever
}

func New(cfg config.Config, log *zap.SugaredLogger, svc ai.Service, corpus *rules.Corpus, retriever *rules.Retriever) *Pipeline {
	return &Pipeline{cfg: cfg, log: log, svc: svc, corpus: corpus, retriever: retriever}
}

type DocumentInput struct {
	Name     string `json:"name,omitempty"`
	Text     string `json:"text"`
	TypeHint string `json:"type_hint,omitempty"`
}

// Submission is the per-request artifact of ingestion. Raw text is
// consumed during Ingest; only redacted text and extracted fields
// survive into the submission.
type Submission struct {
	RequestID string
	Documents []models.Document
	fields    []models.ExtractedFields
}

// Ingest validates the batch, then runs extraction, classification, and
// redaction per document in parallel. Raw text is not retained.
func (p *Pipeline) Ingest(ctx context.Context, inputs []DocumentInput) (*Submission, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no documents provided", util.ErrValidation)
	}
	if len(inputs) > p.cfg.MaxDocsPerSub {
		return nil, fmt.Errorf("%w: %d documents exceeds limit of %d", util.ErrValidation, len(inputs), p.cfg.MaxDocsPerSub)
	}
	for i, in := range inputs {
		if util.SanitizeText(in.Text) == "" {
			return nil, fmt.Errorf("%w: document %d has empty text", util.ErrValidation, i+1)
		}
		if len(in.Text) > p.cfg.MaxDocChars {
			return nil, fmt.Errorf("%w: document %d exceeds %d characters", util.ErrValidation, i+1, p.cfg.MaxDocChars)
		}
	}

	sub := &Submission{
		RequestID: uuid.NewString(),
		Documents: make([]models.Document, len(inputs)),
		fields:    make([]models.ExtractedFields, len(inputs)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		g.Go(func() error {
			text := util.SanitizeText(in.Text)
			fields := extract.Extract(text)
			docType, err := p.svc.Classify(gctx, text, in.TypeHint)
			if err != nil {
				return fmt.Errorf("classify document %d: %w", i+1, err)
			}
			fields.DocumentTypes = []models.DocType{docType}
			sub.fields[i] = fields
			sub.Documents[i] = models.Document{
				DocID:          uuid.NewString(),
				Name:           in.Name,
				TypeHint:       in.TypeHint,
				ClassifiedType: docType,
				RedactedText:   redact.Redact(text),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.log.Infow("ingested submission", "request_id", sub.RequestID, "documents", len(sub.Documents))
	return sub, nil
}

// Analyze merges the submission's extracted fields, retrieves the
// relevant rules, evaluates the checklist, and renders the narratives.
func (p *Pipeline) Analyze(ctx context.Context, sub *Submission) (*models.AnalysisResult, error) {
	var merged models.ExtractedFields
	for _, f := range sub.fields {
		merged.Merge(f)
	}
	p.resolveSINMappings(&merged)

	query := rules.QueryText(merged)
	matches, err := p.retriever.Retrieve(ctx, query, p.cfg.TopK, p.cfg.MinSimilarity)
	if err != nil {
		return nil, fmt.Errorf("retrieve rules: %w", err)
	}

	redacted := make([]string, 0, len(sub.Documents))
	for _, d := range sub.Documents {
		redacted = append(redacted, d.RedactedText)
	}

	cl, err := p.svc.GenerateChecklist(ctx, merged, redacted, matches)
	if err != nil {
		return nil, fmt.Errorf("generate checklist: %w", err)
	}
	brief, err := p.svc.GenerateBrief(ctx, merged, cl, matches)
	if err != nil {
		return nil, fmt.Errorf("generate brief: %w", err)
	}
	email, err := p.svc.GenerateEmail(ctx, merged, cl)
	if err != nil {
		return nil, fmt.Errorf("generate email: %w", err)
	}

	p.log.Infow("analyzed submission",
		"request_id", sub.RequestID,
		"rules_retrieved", len(matches),
		"overall_status", cl.OverallStatus)

	return &models.AnalysisResult{
		RequestID:   sub.RequestID,
		Parsed:      merged,
		Checklist:   cl,
		Brief:       brief,
		ClientEmail: email,
		Citations:   matches,
	}, nil
}

// resolveSINMappings fills in SIN codes from the rule pack's mapping
// table for NAICS codes that carried no inline mapping token.
func (p *Pipeline) resolveSINMappings(fields *models.ExtractedFields) {
	for i, c := range fields.NAICS {
		if c.SIN != "" {
			continue
		}
		if sin, ok := p.corpus.SINFor(c.Code); ok {
			fields.NAICS[i].SIN = sin
		}
	}
}

func (p *Pipeline) HealthCheck() models.Health {
	if p.corpus == nil {
		return models.Health{}
	}
	return models.Health{
		RuleCorpusLoaded: p.corpus.Size() > 0,
		CorpusSize:       p.corpus.Size(),
	}
}
