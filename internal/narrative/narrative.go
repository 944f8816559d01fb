// Package narrative renders the negotiation brief and client email from a
// checklist. Both are deterministic templates keyed off problem codes;
// nothing is claimed that is not traceable to a checklist item.
package narrative

import (
	"fmt"
	"strings"

	"getgsa/internal/models"
	"getgsa/internal/util"
)

type lines struct {
	brief string
	email string
}

// Every problem code the evaluator can emit has a template here. A code
// with no template is a defect and fails loudly, never silently skipped.
var templates = map[models.ProblemCode]lines{
	models.ProblemMissingUEI: {
		brief: "Missing UEI (Unique Entity Identifier) - required for registration (R1)",
		email: "Unique Entity Identifier (UEI)",
	},
	models.ProblemMissingDUNS: {
		brief: "Missing DUNS number - required for registration (R1)",
		email: "DUNS number",
	},
	models.ProblemRegistryInactive: {
		brief: "SAM.gov registration not active - must be current (R1)",
		email: "Active SAM.gov registration",
	},
	models.ProblemInvalidContact: {
		brief: "Primary contact lacks a valid email or phone (R1)",
		email: "Primary contact with valid email and phone",
	},
	models.ProblemUnmappedNAICS: {
		brief: "One or more NAICS codes lack an explicit SIN mapping (R2)",
		email: "SIN mapping for every listed NAICS code",
	},
	models.ProblemInsufficientPastPerf: {
		brief: "Past performance below the $25,000 threshold or outside the 36-month window (R3)",
		email: "Past performance project of at least $25,000 within the last 36 months",
	},
	models.ProblemIncompletePricing: {
		brief: "Pricing data incomplete - missing labor category, rate basis, or units (R4)",
		email: "Complete pricing rows with labor category, rate, and unit",
	},
	models.ProblemPIINotRedacted: {
		brief: "Stored document text still contains unredacted contact information (R5)",
		email: "Resubmission with personal contact information removed",
	},
	models.ProblemInsufficientData: {
		brief: "Submission lacks the data needed to evaluate one or more requirements",
		email: "Additional documentation so all requirements can be evaluated",
	},
}

// problems collects the distinct problem codes in item order.
func problems(checklist models.ChecklistResult) []models.ProblemCode {
	seen := make(map[models.ProblemCode]bool)
	var out []models.ProblemCode
	for _, it := range checklist.Items {
		if it.Problem == "" || seen[it.Problem] {
			continue
		}
		seen[it.Problem] = true
		out = append(out, it.Problem)
	}
	return out
}

// Brief renders the negotiation prep brief.
func Brief(fields models.ExtractedFields, checklist models.ChecklistResult, citations []models.RuleMatch) (string, error) {
	var b strings.Builder
	b.WriteString("## Negotiation Prep Brief\n\n")

	probs := problems(checklist)
	if len(probs) == 0 {
		b.WriteString("**Strengths:** All required elements are present and compliant. The submission meets the program requirements for identity verification, past performance, and pricing structure.\n\n")
		b.WriteString("**Recommendation:** Proceed with standard negotiation process. No major gaps identified.\n\n")
	} else {
		b.WriteString("**Key Issues Identified:**\n")
		for _, p := range probs {
			tpl, ok := templates[p]
			if !ok {
				return "", fmt.Errorf("%w: %q", util.ErrUnknownProblemCode, p)
			}
			b.WriteString("- " + tpl.brief + "\n")
		}
		b.WriteString("\n**Negotiation Strategy:** Focus on obtaining missing documentation and addressing compliance gaps before proceeding with pricing discussions.\n\n")
	}

	ids := make([]string, 0, len(citations))
	for _, c := range citations {
		ids = append(ids, c.RuleID)
	}
	b.WriteString("**Rule Citations:** " + strings.Join(ids, ", ") + "\n")
	return b.String(), nil
}

// Email renders the client email draft.
func Email(fields models.ExtractedFields, checklist models.ChecklistResult) (string, error) {
	var b strings.Builder
	b.WriteString("Subject: Submission Review - Action Required\n\n")
	b.WriteString("Dear Client,\n\n")
	b.WriteString("Thank you for submitting your onboarding documentation. We have completed our initial review.\n\n")

	probs := problems(checklist)
	if len(probs) == 0 {
		b.WriteString("All required documentation is complete and compliant.\n\n")
		b.WriteString("Next steps:\n")
		b.WriteString("1. Proceed with submission\n")
		b.WriteString("2. Schedule negotiation meeting\n")
		b.WriteString("3. Prepare for contract award\n\n")
	} else {
		b.WriteString("Missing or incomplete items:\n")
		for _, p := range probs {
			tpl, ok := templates[p]
			if !ok {
				return "", fmt.Errorf("%w: %q", util.ErrUnknownProblemCode, p)
			}
			b.WriteString("- " + tpl.email + "\n")
		}
		b.WriteString("\nNext steps:\n")
		b.WriteString("1. Provide missing documentation\n")
		b.WriteString("2. Update incomplete information\n")
		b.WriteString("3. Resubmit for review\n\n")
	}

	b.WriteString("Please contact us if you have any questions or need assistance with these requirements.\n\n")
	b.WriteString("Best regards,\nSubmission Review Team")
	return b.String(), nil
}
