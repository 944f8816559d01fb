// Package classify assigns a document type from keyword-presence
// heuristics. An explicit type hint is authoritative; otherwise category
// predicates are evaluated in a fixed priority order and a document that
// matches none of them is classified unknown rather than guessed.
package classify

import (
	"strings"

	"getgsa/internal/models"
)

type entry struct {
	category models.DocType
	match    func(lower string) bool
}

// Priority order: profile indicators first, then past performance, then
// pricing. New categories slot in without restructuring control flow.
var order = []entry{
	{models.DocProfile, hasAny("uei:", "entity id:", "duns:", "sam.gov", "primary contact", "poc:")},
	{models.DocPastPerformance, hasAny("past performance", "customer:", "contract:", "value:", "period:")},
	{models.DocPricing, hasAny("labor category", "rate", "pricing", "hour", "day")},
}

func hasAny(keywords ...string) func(string) bool {
	return func(lower string) bool {
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				return true
			}
		}
		return false
	}
}

// Classify returns the document category. A hint naming one of the known
// categories is returned as-is.
func Classify(text, typeHint string) models.DocType {
	if hint := models.DocType(strings.TrimSpace(typeHint)); hint.Known() {
		return hint
	}
	lower := strings.ToLower(text)
	for _, e := range order {
		if e.match(lower) {
			return e.category
		}
	}
	return models.DocUnknown
}
