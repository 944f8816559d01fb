package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const profileDoc = `Acme Federal LLC
UEI: AB12CD34EF56
DUNS: 123456789
SAM.gov: Active
NAICS: 541511, 541512
POC: Jane Roe, jane@acme.example, (415) 555-0100`

func TestExtractProfileFields(t *testing.T) {
	f := Extract(profileDoc)

	require.NotNil(t, f.UEI)
	require.Equal(t, "AB12CD34EF56", *f.UEI)
	require.NotNil(t, f.DUNS)
	require.Equal(t, "123456789", *f.DUNS)
	require.NotNil(t, f.RegistryStatus)
	require.Equal(t, "Active", *f.RegistryStatus)
	require.True(t, f.RegistryActive())

	require.Len(t, f.NAICS, 2)
	require.Equal(t, "541511", f.NAICS[0].Code)
	require.Equal(t, "541512", f.NAICS[1].Code)

	require.NotNil(t, f.Contact)
	require.Equal(t, "Jane Roe", f.Contact.Name)
	require.Equal(t, "jane@acme.example", f.Contact.Email)
	require.Equal(t, "(415) 555-0100", f.Contact.Phone)
}

func TestExtractEntityIDLabel(t *testing.T) {
	f := Extract("Entity ID: AB12CD34EF56")
	require.NotNil(t, f.UEI)
	require.Equal(t, "AB12CD34EF56", *f.UEI)
}

func TestExtractNoFabrication(t *testing.T) {
	// 11 and 13 character tokens near the label must not become a UEI.
	for _, text := range []string{
		"UEI: AB12CD34EF5",
		"UEI: AB12CD34EF567",
		"completely unrelated text",
	} {
		f := Extract(text)
		require.Nil(t, f.UEI, "input %q", text)
	}
}

func TestExtractDUNSExactlyNineDigits(t *testing.T) {
	require.Nil(t, Extract("DUNS: 12345678").DUNS)
	require.Nil(t, Extract("DUNS: 1234567890").DUNS)
	require.NotNil(t, Extract("DUNS: 123456789").DUNS)
}

func TestExtractInlineSINMapping(t *testing.T) {
	f := Extract("NAICS: 541511 -> 54151S, 518210")
	require.Len(t, f.NAICS, 2)
	require.Equal(t, "541511", f.NAICS[0].Code)
	require.Equal(t, "54151S", f.NAICS[0].SIN)
	require.Equal(t, "518210", f.NAICS[1].Code)
	require.Empty(t, f.NAICS[1].SIN)
}

func TestExtractNAICSSkipsMalformedCodes(t *testing.T) {
	f := Extract("NAICS: 54151, 5415111, 541611")
	require.Len(t, f.NAICS, 1)
	require.Equal(t, "541611", f.NAICS[0].Code)
}

func TestExtractNoContactFromLoneEmail(t *testing.T) {
	f := Extract("Questions? Write to info@example.com.")
	require.Nil(t, f.Contact)
}

const pastPerfDoc = `Past Performance

Customer: City of Springfield
Contract: Website modernization
Value: $48,000
Period: 2024-01 to 2024-10

Customer: County Water Authority
Contract: Billing portal
Value: $18,000
Period: Mar 2025 to Aug 2025`

func TestExtractPastPerformance(t *testing.T) {
	f := Extract(pastPerfDoc)
	require.Len(t, f.PastPerformance, 2)

	first := f.PastPerformance[0]
	require.Equal(t, "City of Springfield", first.Customer)
	require.Equal(t, "Website modernization", first.Contract)
	require.NotNil(t, first.Value)
	require.Equal(t, 48000.0, *first.Value)
	require.NotNil(t, first.PeriodEnd)
	require.Equal(t, time.Date(2024, 10, 31, 0, 0, 0, 0, time.UTC), *first.PeriodEnd)

	second := f.PastPerformance[1]
	require.NotNil(t, second.Value)
	require.Equal(t, 18000.0, *second.Value)
	require.NotNil(t, second.PeriodEnd)
	require.Equal(t, time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC), *second.PeriodEnd)
}

func TestExtractPricingRows(t *testing.T) {
	doc := "Pricing Sheet\nLabor Category, Rate, Unit\nSenior Developer, $185, hour\nProject Manager, $150\n"
	f := Extract(doc)
	require.Len(t, f.Pricing, 2)
	require.Equal(t, "Senior Developer", f.Pricing[0].LaborCategory)
	require.Equal(t, "$185", f.Pricing[0].Rate)
	require.Equal(t, "hour", f.Pricing[0].Unit)
	// Partial rows are kept with the missing cell empty so the
	// evaluator can flag them.
	require.Equal(t, "Project Manager", f.Pricing[1].LaborCategory)
	require.Empty(t, f.Pricing[1].Unit)
}

func TestExtractEmptyText(t *testing.T) {
	f := Extract("")
	require.True(t, f.Empty())
}

func TestParseCurrency(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$25,000", 25000, true},
		{"18000", 18000, true},
		{"$1,234.56 USD", 1234.56, true},
		{"TBD", 0, false},
	} {
		got, ok := ParseCurrency(tc.in)
		require.Equal(t, tc.ok, ok, "input %q", tc.in)
		if ok {
			require.Equal(t, tc.want, got, "input %q", tc.in)
		}
	}
}
