package rules

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"getgsa/internal/models"
	"getgsa/internal/providers"
)

type Retriever struct {
	corpus   *Corpus
	embedder providers.EmbeddingProvider
	dim      int
}

func NewRetriever(corpus *Corpus, embedder providers.EmbeddingProvider, dim int) *Retriever {
	return &Retriever{corpus: corpus, embedder: embedder, dim: dim}
}

// Retrieve returns the rules most similar to queryText, ordered by
// descending cosine similarity with ties broken by corpus insertion
// order. Rules scoring below minSimilarity are excluded even if that
// leaves fewer than topK results; the list is never padded.
func (r *Retriever) Retrieve(ctx context.Context, queryText string, topK int, minSimilarity float64) ([]models.RuleMatch, error) {
	if topK <= 0 {
		topK = 5
	}
	if strings.TrimSpace(queryText) == "" {
		return nil, nil
	}
	vectors, _, err := r.embedder.Embed(ctx, providers.EmbedRequest{
		Operation: "rule_query_embed",
		Inputs:    []string{queryText},
		Dimension: r.dim,
	})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embed query: no vector returned")
	}
	query := vectors[0]

	matches := make([]models.RuleMatch, 0, r.corpus.Size())
	for _, rule := range r.corpus.Rules() {
		score := cosine(query, rule.Embedding)
		if score < minSimilarity {
			continue
		}
		matches = append(matches, models.RuleMatch{
			RuleID: rule.ID,
			Title:  rule.Title,
			Text:   rule.Text,
			Score:  score,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// QueryText builds the retrieval query from a canonical description of
// the extracted fields, so retrieval is driven by what was actually
// found rather than by incidental document wording.
func QueryText(fields models.ExtractedFields) string {
	var parts []string
	if fields.UEI != nil || fields.DUNS != nil || fields.RegistryStatus != nil || fields.Contact != nil {
		parts = append(parts, "identity registry UEI DUNS SAM.gov registration active primary contact valid email phone")
	}
	if len(fields.NAICS) > 0 {
		codes := make([]string, 0, len(fields.NAICS)*2)
		for _, c := range fields.NAICS {
			codes = append(codes, c.Code)
			if c.SIN != "" {
				codes = append(codes, c.SIN)
			}
		}
		parts = append(parts, "NAICS SIN catalog mapping "+strings.Join(codes, " "))
	}
	if len(fields.PastPerformance) > 0 {
		parts = append(parts, "past performance customer name value period within last 36 months")
	}
	if len(fields.Pricing) > 0 {
		parts = append(parts, "pricing catalog labor categories rates structured sheet rate basis units")
	}
	if !fields.Empty() {
		parts = append(parts, "submission hygiene personally identifiable info stored redacted derived fields hashes")
	}
	return strings.Join(parts, " ")
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
