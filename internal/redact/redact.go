// Package redact scrubs emails and phone numbers from document text,
// replacing each match with a fixed sentinel token. Redaction runs after
// field extraction (extraction needs the original contact info) and before
// any text is stored or displayed.
package redact

import "regexp"

const (
	EmailToken = "[EMAIL_REDACTED]"
	PhoneToken = "[PHONE_REDACTED]"
)

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// Phone formats covered: (NNN) NNN-NNNN, NNN-NNN-NNNN, NNN.NNN.NNNN,
// 10 consecutive digits, +1 NNN NNN NNNN. The bare 10-digit pattern is
// anchored on word boundaries so it cannot chew into longer numeric
// identifiers such as a 12-character entity code.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\(\d{3}\)\s*\d{3}-\d{4}`),
	regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b`),
	regexp.MustCompile(`\b\d{3}\.\d{3}\.\d{4}\b`),
	regexp.MustCompile(`\b\d{10}\b`),
	regexp.MustCompile(`\+1\s*\d{3}\s*\d{3}\s*\d{4}`),
}

// Redact replaces every email and phone match with its sentinel token.
// All other characters are preserved byte-for-byte. The sentinel tokens
// contain no digits or @, so each character position is redacted at most
// once and redacting already-redacted text is a no-op.
func Redact(text string) string {
	out := emailPattern.ReplaceAllString(text, EmailToken)
	for _, p := range phonePatterns {
		out = p.ReplaceAllString(out, PhoneToken)
	}
	return out
}

// ContainsPII reports whether text still matches an email or phone pattern.
func ContainsPII(text string) bool {
	if emailPattern.MatchString(text) {
		return true
	}
	for _, p := range phonePatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Emails returns all email matches, in input order, for extraction.
func Emails(text string) []string {
	return emailPattern.FindAllString(text, -1)
}

// Phones returns all phone matches across the supported formats.
func Phones(text string) []string {
	var out []string
	for _, p := range phonePatterns {
		out = append(out, p.FindAllString(text, -1)...)
	}
	return out
}
