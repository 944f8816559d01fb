package narrative

import (
	"strings"
	"testing"

	"getgsa/internal/models"
	"getgsa/internal/util"

	"github.com/stretchr/testify/require"
)

func passChecklist() models.ChecklistResult {
	return models.ChecklistResult{
		Items: []models.ChecklistItem{
			{Concern: "identity_registry", Required: true, OK: true, RuleIDs: []string{"R1"}},
			{Concern: "pricing", Required: true, OK: true, RuleIDs: []string{"R4"}},
		},
		OverallStatus: models.StatusPass,
	}
}

func failChecklist(codes ...models.ProblemCode) models.ChecklistResult {
	items := make([]models.ChecklistItem, 0, len(codes))
	for _, c := range codes {
		items = append(items, models.ChecklistItem{Required: true, OK: false, Problem: c})
	}
	return models.ChecklistResult{Items: items, OverallStatus: models.StatusFail}
}

func TestBriefAllClear(t *testing.T) {
	citations := []models.RuleMatch{{RuleID: "R1"}, {RuleID: "R4"}}
	out, err := Brief(models.ExtractedFields{}, passChecklist(), citations)
	require.NoError(t, err)
	require.Contains(t, out, "## Negotiation Prep Brief")
	require.Contains(t, out, "**Strengths:**")
	require.Contains(t, out, "**Recommendation:**")
	require.Contains(t, out, "**Rule Citations:** R1, R4")
	require.NotContains(t, out, "Key Issues")
}

func TestBriefListsEachProblemOnce(t *testing.T) {
	checklist := failChecklist(
		models.ProblemMissingDUNS,
		models.ProblemIncompletePricing,
		models.ProblemMissingDUNS,
	)
	out, err := Brief(models.ExtractedFields{}, checklist, nil)
	require.NoError(t, err)
	require.Contains(t, out, "**Key Issues Identified:**")
	require.Contains(t, out, "Missing DUNS number")
	require.Contains(t, out, "Pricing data incomplete")
	require.Equal(t, 1, strings.Count(out, "Missing DUNS number"))
	require.Contains(t, out, "**Negotiation Strategy:**")
}

func TestBriefCoversEveryProblemCode(t *testing.T) {
	codes := []models.ProblemCode{
		models.ProblemMissingUEI,
		models.ProblemMissingDUNS,
		models.ProblemRegistryInactive,
		models.ProblemInvalidContact,
		models.ProblemUnmappedNAICS,
		models.ProblemInsufficientPastPerf,
		models.ProblemIncompletePricing,
		models.ProblemPIINotRedacted,
		models.ProblemInsufficientData,
	}
	for _, c := range codes {
		_, err := Brief(models.ExtractedFields{}, failChecklist(c), nil)
		require.NoError(t, err, "code %s", c)
		_, err = Email(models.ExtractedFields{}, failChecklist(c))
		require.NoError(t, err, "code %s", c)
	}
}

func TestBriefUnknownProblemCode(t *testing.T) {
	_, err := Brief(models.ExtractedFields{}, failChecklist("no_such_code"), nil)
	require.ErrorIs(t, err, util.ErrUnknownProblemCode)
	_, err = Email(models.ExtractedFields{}, failChecklist("no_such_code"))
	require.ErrorIs(t, err, util.ErrUnknownProblemCode)
}

func TestEmailAllClear(t *testing.T) {
	out, err := Email(models.ExtractedFields{}, passChecklist())
	require.NoError(t, err)
	require.Contains(t, out, "Subject: Submission Review - Action Required")
	require.Contains(t, out, "All required documentation is complete")
	require.Contains(t, out, "Schedule negotiation meeting")
	require.NotContains(t, out, "Missing or incomplete items")
}

func TestEmailListsMissingItems(t *testing.T) {
	checklist := failChecklist(models.ProblemMissingUEI, models.ProblemInsufficientPastPerf)
	out, err := Email(models.ExtractedFields{}, checklist)
	require.NoError(t, err)
	require.Contains(t, out, "Missing or incomplete items:")
	require.Contains(t, out, "Unique Entity Identifier (UEI)")
	require.Contains(t, out, "at least $25,000")
	require.Contains(t, out, "Resubmit for review")
}

func TestNarrativeDeterministic(t *testing.T) {
	checklist := failChecklist(models.ProblemRegistryInactive)
	a, err := Brief(models.ExtractedFields{}, checklist, []models.RuleMatch{{RuleID: "R1"}})
	require.NoError(t, err)
	b, err := Brief(models.ExtractedFields{}, checklist, []models.RuleMatch{{RuleID: "R1"}})
	require.NoError(t, err)
	require.Equal(t, a, b)
}
