package entities

// InsuranceCategory is a coverage category selecting an out-of-pocket multiplier
type InsuranceCategory string

const (
	// InsuranceInsured reflects negotiated rates, usually below list
	InsuranceInsured InsuranceCategory = "insured"
	// InsuranceHighDeductible pays near list until the deductible is met
	InsuranceHighDeductible InsuranceCategory = "high-deductible"
	// InsuranceUninsured reflects common cash-pay discounts
	InsuranceUninsured InsuranceCategory = "uninsured"
)

var insuranceMultipliers = map[InsuranceCategory]float64{
	InsuranceInsured:        0.85,
	InsuranceHighDeductible: 1.0,
	InsuranceUninsured:      0.9,
}

var insuranceLabels = map[InsuranceCategory]string{
	InsuranceInsured:        "Insured",
	InsuranceHighDeductible: "High-deductible plan",
	InsuranceUninsured:      "Uninsured / cash",
}

// InsuranceCategories returns the known categories in display order
func InsuranceCategories() []InsuranceCategory {
	return []InsuranceCategory{InsuranceInsured, InsuranceHighDeductible, InsuranceUninsured}
}

// IsKnown reports whether c is one of the fixed categories
func (c InsuranceCategory) IsKnown() bool {
	_, ok := insuranceMultipliers[c]
	return ok
}

// Multiplier returns the category's multiplier. Unknown categories get 1.0.
func (c InsuranceCategory) Multiplier() float64 {
	if m, ok := insuranceMultipliers[c]; ok {
		return m
	}
	return 1.0
}

// Label returns the display label, or the raw category when unknown
func (c InsuranceCategory) Label() string {
	if l, ok := insuranceLabels[c]; ok {
		return l
	}
	return string(c)
}
