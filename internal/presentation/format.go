// Package presentation formats estimates for people: currency, ranges and the
// summary lines shared by the HTTP API and the CLI.
package presentation

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/zatekoja/costestimator/internal/domain/entities"
)

// EstimateNote is shown under every estimate
const EstimateNote = "These are rough estimates based on public ranges, regional factors, and common insurance effects."

// RangeSeparator joins the low and high values of a range
const RangeSeparator = " – "

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatNumber groups digits the en-US way, e.g. 1403 -> "1,403"
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatUSD renders a whole-dollar amount, e.g. 1403 -> "$1,403"
func FormatUSD(amount int64) string {
	if amount < 0 {
		return "-$" + FormatNumber(-amount)
	}
	return "$" + FormatNumber(amount)
}

// FormatRange renders "$468 – $1,403"
func FormatRange(low, high int64) string {
	return FormatUSD(low) + RangeSeparator + FormatUSD(high)
}

// QuoteDisplay holds the ready-to-show strings for a quote
type QuoteDisplay struct {
	Title   string `json:"title"`
	Range   string `json:"range"`
	Details string `json:"details"`
	Note    string `json:"note"`
}

// DisplayQuote builds the display strings for result
func DisplayQuote(result entities.EstimateResult) QuoteDisplay {
	return QuoteDisplay{
		Title:   result.ServiceName,
		Range:   FormatRange(result.Low, result.High),
		Details: FormatDetails(result),
		Note:    EstimateNote,
	}
}

// FormatDetails renders "ZIP: 48104 • Region: Midwest • Coverage: Insured"
func FormatDetails(result entities.EstimateResult) string {
	return "ZIP: " + result.ZIP +
		" • Region: " + result.RegionLabel +
		" • Coverage: " + result.InsuranceLabel
}

// InsuranceOption describes a selectable coverage category
type InsuranceOption struct {
	Category   entities.InsuranceCategory `json:"category"`
	Label      string                     `json:"label"`
	Multiplier float64                    `json:"multiplier"`
}

// InsuranceOptions lists the known categories in display order
func InsuranceOptions() []InsuranceOption {
	categories := entities.InsuranceCategories()
	options := make([]InsuranceOption, 0, len(categories))
	for _, c := range categories {
		options = append(options, InsuranceOption{
			Category:   c,
			Label:      c.Label(),
			Multiplier: c.Multiplier(),
		})
	}
	return options
}
