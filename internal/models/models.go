package models

import (
	"strings"
	"time"
)

type DocType string

const (
	DocProfile         DocType = "profile"
	DocPastPerformance DocType = "past_performance"
	DocPricing         DocType = "pricing"
	DocUnknown         DocType = "unknown"
)

// Known reports whether t is one of the three recognized categories.
// DocUnknown is the classifier's abstention outcome, never a guess.
func (t DocType) Known() bool {
	return t == DocProfile || t == DocPastPerformance || t == DocPricing
}

// Document is the ingestion artifact. Raw text is consumed during
// ingestion for extraction and classification; only the redacted text
// is retained afterwards.
type Document struct {
	DocID          string  `json:"doc_id"`
	Name           string  `json:"name,omitempty"`
	TypeHint       string  `json:"type_hint,omitempty"`
	ClassifiedType DocType `json:"classified_type"`
	RedactedText   string  `json:"redacted_text"`
}

type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type NAICSCode struct {
	Code string `json:"code"`
	SIN  string `json:"sin,omitempty"`
}

type PastPerformance struct {
	Customer    string     `json:"customer,omitempty"`
	Contract    string     `json:"contract,omitempty"`
	ValueRaw    string     `json:"value_raw,omitempty"`
	Value       *float64   `json:"value,omitempty"`
	PeriodRaw   string     `json:"period_raw,omitempty"`
	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`
}

type PricingRow struct {
	LaborCategory string `json:"labor_category"`
	Rate          string `json:"rate"`
	Unit          string `json:"unit"`
}

// ExtractedFields holds every identifier a recognizable pattern matched
// in the source text. Nil pointers and nil slices mean the pattern never
// matched; no field is ever populated with a guessed or default value.
type ExtractedFields struct {
	UEI             *string           `json:"uei,omitempty"`
	DUNS            *string           `json:"duns,omitempty"`
	RegistryStatus  *string           `json:"registry_status,omitempty"`
	Contact         *Contact          `json:"primary_contact,omitempty"`
	NAICS           []NAICSCode       `json:"naics_codes,omitempty"`
	PastPerformance []PastPerformance `json:"past_performance,omitempty"`
	Pricing         []PricingRow      `json:"pricing,omitempty"`
	DocumentTypes   []DocType         `json:"document_types,omitempty"`
}

// RegistryActive reports whether the extracted registry status names an
// active registration.
func (f ExtractedFields) RegistryActive() bool {
	return f.RegistryStatus != nil && strings.Contains(strings.ToLower(*f.RegistryStatus), "active")
}

// Empty reports whether nothing at all was extracted.
func (f ExtractedFields) Empty() bool {
	return f.UEI == nil && f.DUNS == nil && f.RegistryStatus == nil && f.Contact == nil &&
		len(f.NAICS) == 0 && len(f.PastPerformance) == 0 && len(f.Pricing) == 0
}

// Merge folds other into f: scalar fields keep the first value seen,
// list fields append in document order without deduplication.
func (f *ExtractedFields) Merge(other ExtractedFields) {
	if f.UEI == nil {
		f.UEI = other.UEI
	}
	if f.DUNS == nil {
		f.DUNS = other.DUNS
	}
	if f.RegistryStatus == nil {
		f.RegistryStatus = other.RegistryStatus
	}
	if f.Contact == nil {
		f.Contact = other.Contact
	}
	f.NAICS = append(f.NAICS, other.NAICS...)
	f.PastPerformance = append(f.PastPerformance, other.PastPerformance...)
	f.Pricing = append(f.Pricing, other.Pricing...)
	f.DocumentTypes = append(f.DocumentTypes, other.DocumentTypes...)
}

// Rule is one record of the fixed compliance corpus, immutable after
// the corpus is built at startup.
type Rule struct {
	ID        string    `json:"rule_id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"-"`
}

// RuleMatch is a retrieval result: a corpus rule plus its cosine
// similarity against the query embedding.
type RuleMatch struct {
	RuleID string  `json:"rule_id"`
	Title  string  `json:"title"`
	Text   string  `json:"chunk"`
	Score  float64 `json:"relevance_score"`
}

type ProblemCode string

const (
	ProblemMissingUEI           ProblemCode = "missing_uei"
	ProblemMissingDUNS          ProblemCode = "missing_duns"
	ProblemRegistryInactive     ProblemCode = "registry_inactive"
	ProblemInvalidContact       ProblemCode = "invalid_contact"
	ProblemUnmappedNAICS        ProblemCode = "unmapped_naics"
	ProblemInsufficientPastPerf ProblemCode = "insufficient_past_performance"
	ProblemIncompletePricing    ProblemCode = "incomplete_pricing"
	ProblemPIINotRedacted       ProblemCode = "pii_not_redacted"
	ProblemInsufficientData     ProblemCode = "insufficient_data"
)

type ChecklistItem struct {
	Concern  string      `json:"concern"`
	Required bool        `json:"required"`
	OK       bool        `json:"ok"`
	Problem  ProblemCode `json:"problem,omitempty"`
	Evidence string      `json:"evidence"`
	RuleIDs  []string    `json:"rule_ids"`
}

type ChecklistResult struct {
	Items         []ChecklistItem `json:"items"`
	OverallStatus string          `json:"overall_status"`
}

const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// AnalysisResult is the terminal artifact returned to the caller. It is
// not persisted beyond the request lifecycle.
type AnalysisResult struct {
	RequestID   string          `json:"request_id"`
	Parsed      ExtractedFields `json:"parsed"`
	Checklist   ChecklistResult `json:"checklist"`
	Brief       string          `json:"brief"`
	ClientEmail string          `json:"client_email"`
	Citations   []RuleMatch     `json:"citations"`
}

type Health struct {
	RuleCorpusLoaded bool `json:"rule_corpus_loaded"`
	CorpusSize       int  `json:"corpus_size"`
}
