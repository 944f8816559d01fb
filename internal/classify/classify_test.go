package classify

import (
	"testing"

	"getgsa/internal/models"

	"github.com/stretchr/testify/require"
)

func TestClassifyByContent(t *testing.T) {
	cases := []struct {
		name string
		text string
		want models.DocType
	}{
		{"profile by uei", "UEI: AB12CD34EF56\nDUNS: 123456789", models.DocProfile},
		{"profile by sam", "Our SAM.gov registration is active.", models.DocProfile},
		{"profile by poc", "POC: Jane Roe", models.DocProfile},
		{"past performance by heading", "Past Performance\nWe did things.", models.DocPastPerformance},
		{"past performance by fields", "Customer: City of Springfield\nContract: Portal", models.DocPastPerformance},
		{"pricing by labor category", "Labor Category, Rate, Unit", models.DocPricing},
		{"pricing by keyword", "Our hourly pricing is attached.", models.DocPricing},
		{"unknown", "Lorem ipsum dolor sit amet.", models.DocUnknown},
		{"empty", "", models.DocUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Classify(tc.text, ""))
		})
	}
}

func TestClassifyProfileWinsOverLaterCategories(t *testing.T) {
	// A profile document that also mentions rates stays a profile.
	text := "UEI: AB12CD34EF56\nWe offer competitive rates."
	require.Equal(t, models.DocProfile, Classify(text, ""))
}

func TestClassifyHintAuthoritative(t *testing.T) {
	text := "UEI: AB12CD34EF56"
	require.Equal(t, models.DocPricing, Classify(text, "pricing"))
	require.Equal(t, models.DocPastPerformance, Classify(text, " past_performance "))
}

func TestClassifyUnknownHintFallsBack(t *testing.T) {
	require.Equal(t, models.DocProfile, Classify("UEI: AB12CD34EF56", "resume"))
	require.Equal(t, models.DocUnknown, Classify("nothing here", "unknown"))
}
