// Package extract pulls structured identifiers out of raw document text.
// Extraction is a pure function: absence of a pattern simply omits the
// field, and malformed input never produces an error or a partial value.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"getgsa/internal/models"
	"getgsa/internal/redact"
)

var (
	ueiPattern      = regexp.MustCompile(`(?i)\b(?:UEI|Entity ID)\s*:\s*([A-Za-z0-9]{12})\b`)
	dunsPattern     = regexp.MustCompile(`(?i)\b(?:DUNS|Registry Number)\s*:\s*(\d{9})\b`)
	naicsPattern    = regexp.MustCompile(`(?i)\bNAICS(?:\s*codes?)?\s*:\s*([^\n]+)`)
	naicsItem       = regexp.MustCompile(`^(\d{6})(?:\s*(?:->|→|=>)\s*([A-Za-z0-9]+))?$`)
	registryPattern = regexp.MustCompile(`(?i)SAM\.gov\s*(?:(?:registration|status)\s*:?|:)\s*([A-Za-z][A-Za-z ]*)`)
	contactPattern  = regexp.MustCompile(`(?i)\b(?:POC|Primary Contact|Contact Name)\s*:\s*([^\n;]+)`)

	customerPattern = regexp.MustCompile(`(?i)\bCustomer\s*:\s*([^\n]+)`)
	contractPattern = regexp.MustCompile(`(?i)\bContract\s*:\s*([^\n]+)`)
	valuePattern    = regexp.MustCompile(`(?i)\bValue\s*:\s*([^\n]+)`)
	periodPattern   = regexp.MustCompile(`(?i)\bPeriod\s*:\s*([^\n]+)`)

	amountPattern  = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	pricingKeyword = regexp.MustCompile(`(?i)\b(?:labor|rate|hour|day)\b`)
	rangeSeparator = regexp.MustCompile(`\s+(?:-|–|—|to|through)\s+`)
)

// Extract runs every field pattern over text and returns whatever matched.
func Extract(text string) models.ExtractedFields {
	var f models.ExtractedFields

	if m := ueiPattern.FindStringSubmatch(text); m != nil {
		v := strings.ToUpper(m[1])
		f.UEI = &v
	}
	if m := dunsPattern.FindStringSubmatch(text); m != nil {
		v := m[1]
		f.DUNS = &v
	}
	if m := registryPattern.FindStringSubmatch(text); m != nil {
		v := strings.TrimSpace(m[1])
		if v != "" {
			f.RegistryStatus = &v
		}
	}
	f.NAICS = extractNAICS(text)
	f.Contact = extractContact(text)
	f.PastPerformance = extractPastPerformance(text)
	f.Pricing = extractPricing(text)
	return f
}

func extractNAICS(text string) []models.NAICSCode {
	m := naicsPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	var out []models.NAICSCode
	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		im := naicsItem.FindStringSubmatch(part)
		if im == nil {
			continue
		}
		out = append(out, models.NAICSCode{Code: im[1], SIN: im[2]})
	}
	return out
}

// extractContact assembles the primary contact. A contact is present only
// when a contact label matched, or when both an email and a phone appear
// in the text; a stray email alone never fabricates a contact record.
func extractContact(text string) *models.Contact {
	name := ""
	if m := contactPattern.FindStringSubmatch(text); m != nil {
		name = cleanContactName(m[1])
	}
	emails := redact.Emails(text)
	phones := redact.Phones(text)

	if name == "" && (len(emails) == 0 || len(phones) == 0) {
		return nil
	}
	c := &models.Contact{Name: name}
	if len(emails) > 0 {
		c.Email = emails[0]
	}
	if len(phones) > 0 {
		c.Phone = phones[0]
	}
	return c
}

func cleanContactName(s string) string {
	for _, e := range redact.Emails(s) {
		s = strings.ReplaceAll(s, e, "")
	}
	for _, p := range redact.Phones(s) {
		s = strings.ReplaceAll(s, p, "")
	}
	return strings.Trim(s, " \t,()-")
}

func extractPastPerformance(text string) []models.PastPerformance {
	var out []models.PastPerformance
	for _, section := range strings.Split(text, "\n\n") {
		low := strings.ToLower(section)
		if !strings.Contains(low, "customer:") && !strings.Contains(low, "contract:") {
			continue
		}
		var pp models.PastPerformance
		if m := customerPattern.FindStringSubmatch(section); m != nil {
			pp.Customer = strings.TrimSpace(m[1])
		}
		if m := contractPattern.FindStringSubmatch(section); m != nil {
			pp.Contract = strings.TrimSpace(m[1])
		}
		if m := valuePattern.FindStringSubmatch(section); m != nil {
			pp.ValueRaw = strings.TrimSpace(m[1])
			if v, ok := ParseCurrency(pp.ValueRaw); ok {
				pp.Value = &v
			}
		}
		if m := periodPattern.FindStringSubmatch(section); m != nil {
			pp.PeriodRaw = strings.TrimSpace(m[1])
			pp.PeriodStart, pp.PeriodEnd = parsePeriod(pp.PeriodRaw)
		}
		if pp != (models.PastPerformance{}) {
			out = append(out, pp)
		}
	}
	return out
}

// extractPricing collects CSV-like rows of labor category, rate, unit.
// Rows missing a trailing cell are kept with the cell empty so the
// evaluator can flag them; rows whose cells contain no digits at all are
// treated as header rows and skipped.
func extractPricing(text string) []models.PricingRow {
	var out []models.PricingRow
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, ",") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			continue
		}
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if !pricingKeyword.MatchString(line) && !looksLikeRateRow(parts) {
			continue
		}
		if !anyHasDigit(parts) {
			continue
		}
		row := models.PricingRow{LaborCategory: parts[0], Rate: parts[1]}
		if len(parts) >= 3 {
			row.Unit = parts[2]
		}
		out = append(out, row)
	}
	return out
}

// looksLikeRateRow recognizes a category/rate row that carries no pricing
// keyword, such as a partial row missing its unit cell. The first cell
// must read like a category name (no digits) and the second like a
// dollar rate, so "Value: $48,000" lines in other documents never match.
func looksLikeRateRow(parts []string) bool {
	return !strings.ContainsAny(parts[0], "0123456789") && strings.HasPrefix(parts[1], "$")
}

func anyHasDigit(parts []string) bool {
	for _, p := range parts {
		if strings.ContainsAny(p, "0123456789") {
			return true
		}
	}
	return false
}

// ParseCurrency extracts a monetary amount from a free-form value string,
// stripping currency symbols and thousands separators.
func ParseCurrency(s string) (float64, bool) {
	m := amountPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

var dateLayouts = []struct {
	layout string
	gran   string
}{
	{"2006-01-02", "day"},
	{"01/02/2006", "day"},
	{"2006/01/02", "day"},
	{"Jan 2, 2006", "day"},
	{"January 2, 2006", "day"},
	{"2006-01", "month"},
	{"01/2006", "month"},
	{"Jan 2006", "month"},
	{"January 2006", "month"},
	{"2006", "year"},
}

func parseDate(s string) (time.Time, string, bool) {
	s = strings.TrimSpace(s)
	for _, dl := range dateLayouts {
		if t, err := time.Parse(dl.layout, s); err == nil {
			return t, dl.gran, true
		}
	}
	return time.Time{}, "", false
}

// parsePeriod parses a date range like "2023-01 to 2024-06". Month- and
// year-granularity end dates are pushed to the end of their period so a
// record ending "Jan 2024" counts as recent through January 31st.
func parsePeriod(s string) (*time.Time, *time.Time) {
	parts := rangeSeparator.Split(s, 2)
	if len(parts) != 2 {
		return nil, nil
	}
	var start, end *time.Time
	if t, _, ok := parseDate(parts[0]); ok {
		start = &t
	}
	if t, gran, ok := parseDate(parts[1]); ok {
		switch gran {
		case "month":
			t = t.AddDate(0, 1, -1)
		case "year":
			t = t.AddDate(1, 0, -1)
		}
		end = &t
	}
	return start, end
}
