package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/costestimator/internal/domain/entities"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "$0"},
		{90, "$90"},
		{468, "$468"},
		{1403, "$1,403"},
		{1234567, "$1,234,567"},
		{-1500, "-$1,500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatUSD(tt.amount))
	}
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "$468 – $1,403", FormatRange(468, 1403))
	assert.Equal(t, "$90 – $180", FormatRange(90, 180))
}

func TestDisplayQuote(t *testing.T) {
	result := entities.EstimateResult{
		ServiceCode:    "mri",
		ServiceName:    "MRI (no contrast)",
		ZIP:            "48104",
		Region:         entities.RegionMidwest,
		RegionLabel:    "Midwest",
		Insurance:      entities.InsuranceInsured,
		InsuranceLabel: "Insured",
		Low:            468,
		High:           1403,
	}

	display := DisplayQuote(result)

	assert.Equal(t, "MRI (no contrast)", display.Title)
	assert.Equal(t, "$468 – $1,403", display.Range)
	assert.Equal(t, "ZIP: 48104 • Region: Midwest • Coverage: Insured", display.Details)
	assert.Equal(t, EstimateNote, display.Note)
}

func TestInsuranceOptions(t *testing.T) {
	options := InsuranceOptions()
	require.Len(t, options, 3)

	assert.Equal(t, entities.InsuranceInsured, options[0].Category)
	assert.Equal(t, "Insured", options[0].Label)
	assert.Equal(t, 0.85, options[0].Multiplier)

	assert.Equal(t, entities.InsuranceHighDeductible, options[1].Category)
	assert.Equal(t, "High-deductible plan", options[1].Label)
	assert.Equal(t, 1.0, options[1].Multiplier)

	assert.Equal(t, entities.InsuranceUninsured, options[2].Category)
	assert.Equal(t, "Uninsured / cash", options[2].Label)
	assert.Equal(t, 0.9, options[2].Multiplier)
}
