// Package checklist turns extracted fields plus retrieved rules into a
// pass/fail compliance checklist. Evaluation is deterministic: identical
// inputs always yield identical output.
package checklist

import (
	"fmt"
	"strings"
	"time"

	"getgsa/internal/extract"
	"getgsa/internal/models"
	"getgsa/internal/redact"
	"getgsa/internal/util"
)

const (
	ConcernIdentity        = "identity_registry"
	ConcernNAICS           = "naics_sin"
	ConcernPastPerformance = "past_performance"
	ConcernPricing         = "pricing"
	ConcernRedaction       = "pii_redaction"
)

// concernRules maps each compliance concern to the corpus rules it
// depends on. Required items always cite at least one rule.
var concernRules = map[string][]string{
	ConcernIdentity:        {"R1"},
	ConcernNAICS:           {"R2"},
	ConcernPastPerformance: {"R3"},
	ConcernPricing:         {"R4"},
	ConcernRedaction:       {"R5"},
}

type Evaluator struct {
	MinPastPerfValue float64
	RecencyMonths    int

	// Now is swappable so recency checks are deterministic in tests.
	Now func() time.Time
}

func NewEvaluator(minValue float64, recencyMonths int) *Evaluator {
	return &Evaluator{
		MinPastPerfValue: minValue,
		RecencyMonths:    recencyMonths,
		Now:              time.Now,
	}
}

// Evaluate produces one item per compliance concern. When a concern's
// input field is entirely absent and none of its rules were retrieved
// above the similarity floor, the item abstains with insufficient_data
// instead of asserting a specific violation.
func (e *Evaluator) Evaluate(fields models.ExtractedFields, redactedTexts []string, matches []models.RuleMatch) models.ChecklistResult {
	retrieved := make(map[string]bool, len(matches))
	for _, m := range matches {
		retrieved[m.RuleID] = true
	}

	items := []models.ChecklistItem{
		e.identityItem(fields, retrieved),
		e.naicsItem(fields, retrieved),
		e.pastPerformanceItem(fields, retrieved),
		e.pricingItem(fields, retrieved),
		e.redactionItem(fields, redactedTexts, retrieved),
	}

	status := models.StatusPass
	for _, it := range items {
		if it.Required && !it.OK {
			status = models.StatusFail
			break
		}
	}
	return models.ChecklistResult{Items: items, OverallStatus: status}
}

func anyRetrieved(retrieved map[string]bool, concern string) bool {
	for _, id := range concernRules[concern] {
		if retrieved[id] {
			return true
		}
	}
	return false
}

func item(concern string, ok bool, problem models.ProblemCode, evidence string) models.ChecklistItem {
	return models.ChecklistItem{
		Concern:  concern,
		Required: true,
		OK:       ok,
		Problem:  problem,
		Evidence: util.DisplaySnippet(evidence, 240),
		RuleIDs:  concernRules[concern],
	}
}

func abstain(concern, what string) models.ChecklistItem {
	return item(concern, false, models.ProblemInsufficientData,
		fmt.Sprintf("cannot determine %s: no %s fields were extracted and no matching rule met the similarity floor", what, what))
}

func (e *Evaluator) identityItem(fields models.ExtractedFields, retrieved map[string]bool) models.ChecklistItem {
	absent := fields.UEI == nil && fields.DUNS == nil && fields.RegistryStatus == nil && fields.Contact == nil
	if absent && !anyRetrieved(retrieved, ConcernIdentity) {
		return abstain(ConcernIdentity, "identity and registry")
	}
	if fields.UEI == nil {
		return item(ConcernIdentity, false, models.ProblemMissingUEI, "UEI not found in documents")
	}
	if fields.DUNS == nil {
		return item(ConcernIdentity, false, models.ProblemMissingDUNS,
			fmt.Sprintf("UEI found: %s; DUNS not found in documents", *fields.UEI))
	}
	if !fields.RegistryActive() {
		status := "no SAM.gov status found"
		if fields.RegistryStatus != nil {
			status = fmt.Sprintf("SAM.gov status: %q", *fields.RegistryStatus)
		}
		return item(ConcernIdentity, false, models.ProblemRegistryInactive, status)
	}
	if fields.Contact == nil || fields.Contact.Email == "" || fields.Contact.Phone == "" {
		return item(ConcernIdentity, false, models.ProblemInvalidContact,
			"primary contact is missing a valid email or phone")
	}
	return item(ConcernIdentity, true, "",
		fmt.Sprintf("UEI found: %s; DUNS found: %s; SAM.gov status: %q; contact has email and phone",
			*fields.UEI, *fields.DUNS, *fields.RegistryStatus))
}

func (e *Evaluator) naicsItem(fields models.ExtractedFields, retrieved map[string]bool) models.ChecklistItem {
	if len(fields.NAICS) == 0 {
		if !anyRetrieved(retrieved, ConcernNAICS) {
			return abstain(ConcernNAICS, "NAICS")
		}
		return item(ConcernNAICS, true, "", "no NAICS codes found; nothing to map")
	}
	var unmapped []string
	var mapped []string
	for _, c := range fields.NAICS {
		if c.SIN == "" {
			unmapped = append(unmapped, c.Code)
		} else {
			mapped = append(mapped, c.Code+" -> "+c.SIN)
		}
	}
	if len(unmapped) > 0 {
		return item(ConcernNAICS, false, models.ProblemUnmappedNAICS,
			fmt.Sprintf("NAICS codes without SIN mapping: %s", strings.Join(unmapped, ", ")))
	}
	return item(ConcernNAICS, true, "",
		fmt.Sprintf("all NAICS codes mapped: %s", strings.Join(mapped, ", ")))
}

func (e *Evaluator) pastPerformanceItem(fields models.ExtractedFields, retrieved map[string]bool) models.ChecklistItem {
	if len(fields.PastPerformance) == 0 {
		if !anyRetrieved(retrieved, ConcernPastPerformance) {
			return abstain(ConcernPastPerformance, "past performance")
		}
		return item(ConcernPastPerformance, false, models.ProblemInsufficientPastPerf,
			"no past performance records found")
	}
	cutoff := e.Now().AddDate(0, -e.RecencyMonths, 0)
	for _, pp := range fields.PastPerformance {
		if pp.Value == nil || *pp.Value < e.MinPastPerfValue {
			continue
		}
		if pp.PeriodEnd == nil || pp.PeriodEnd.Before(cutoff) {
			continue
		}
		return item(ConcernPastPerformance, true, "",
			fmt.Sprintf("qualifying record: customer %q, value %s, period %s",
				pp.Customer, pp.ValueRaw, pp.PeriodRaw))
	}
	return item(ConcernPastPerformance, false, models.ProblemInsufficientPastPerf,
		fmt.Sprintf("no record with value >= %.0f and period end within last %d months; %s",
			e.MinPastPerfValue, e.RecencyMonths, describeRecords(fields.PastPerformance)))
}

func describeRecords(records []models.PastPerformance) string {
	parts := make([]string, 0, len(records))
	for _, pp := range records {
		v := pp.ValueRaw
		if v == "" {
			v = "no value"
		}
		p := pp.PeriodRaw
		if p == "" {
			p = "no period"
		}
		parts = append(parts, fmt.Sprintf("%q (%s, %s)", pp.Customer, v, p))
	}
	return "found " + strings.Join(parts, "; ")
}

func (e *Evaluator) pricingItem(fields models.ExtractedFields, retrieved map[string]bool) models.ChecklistItem {
	if len(fields.Pricing) == 0 {
		if !anyRetrieved(retrieved, ConcernPricing) {
			return abstain(ConcernPricing, "pricing")
		}
		return item(ConcernPricing, false, models.ProblemIncompletePricing, "no pricing rows found")
	}
	for _, row := range fields.Pricing {
		if row.LaborCategory == "" {
			return item(ConcernPricing, false, models.ProblemIncompletePricing,
				fmt.Sprintf("pricing row missing labor category (rate %q, unit %q)", row.Rate, row.Unit))
		}
		if _, ok := extract.ParseCurrency(row.Rate); !ok {
			return item(ConcernPricing, false, models.ProblemIncompletePricing,
				fmt.Sprintf("pricing row %q has non-numeric rate %q", row.LaborCategory, row.Rate))
		}
		if row.Unit == "" {
			return item(ConcernPricing, false, models.ProblemIncompletePricing,
				fmt.Sprintf("pricing row %q is missing a unit", row.LaborCategory))
		}
	}
	return item(ConcernPricing, true, "",
		fmt.Sprintf("%d pricing rows complete with labor category, numeric rate, and unit", len(fields.Pricing)))
}

func (e *Evaluator) redactionItem(fields models.ExtractedFields, redactedTexts []string, retrieved map[string]bool) models.ChecklistItem {
	if fields.Empty() && !anyRetrieved(retrieved, ConcernRedaction) {
		return abstain(ConcernRedaction, "submission hygiene")
	}
	for i, text := range redactedTexts {
		if redact.ContainsPII(text) {
			return item(ConcernRedaction, false, models.ProblemPIINotRedacted,
				fmt.Sprintf("stored text for document %d still matches an email or phone pattern", i+1))
		}
	}
	return item(ConcernRedaction, true, "", "stored text contains no unredacted emails or phone numbers")
}
