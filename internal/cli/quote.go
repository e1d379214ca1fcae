package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zatekoja/costestimator/internal/domain/entities"
	"github.com/zatekoja/costestimator/internal/presentation"
	apperrors "github.com/zatekoja/costestimator/pkg/errors"
)

var (
	quoteService   string
	quoteZIP       string
	quoteInsurance string
	quoteJSON      bool
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Estimate the price range for a service",
	Long: `Estimates the price range for a service at a ZIP code.
The base range is scaled by the region factor of the ZIP's first digit
and by the insurance category's multiplier.`,
	Example: "  estimate quote --service mri --zip 48104 --insurance insured",
	Args:    cobra.NoArgs,
	RunE:    runQuote,

	Annotations: map[string]string{annotationNeedsCatalog: "true"},
}

func init() {
	quoteCmd.Flags().StringVarP(&quoteService, "service", "s", "", "service code (see `estimate services`)")
	quoteCmd.Flags().StringVarP(&quoteZIP, "zip", "z", "", "5-digit ZIP code")
	quoteCmd.Flags().StringVarP(&quoteInsurance, "insurance", "i", string(entities.InsuranceInsured), "insured, high-deductible or uninsured")
	quoteCmd.Flags().BoolVar(&quoteJSON, "json", false, "output the estimate as JSON")
	_ = quoteCmd.MarkFlagRequired("service")
	_ = quoteCmd.MarkFlagRequired("zip")
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(cmd *cobra.Command, args []string) error {
	if estimator == nil {
		return errors.New("price data not loaded")
	}

	quote, err := estimator.Quote(cmd.Context(), entities.EstimateRequest{
		ServiceCode: strings.TrimSpace(quoteService),
		ZIP:         quoteZIP,
		Insurance:   entities.InsuranceCategory(strings.TrimSpace(quoteInsurance)),
	})
	if err != nil {
		if appErr, ok := apperrors.As(err); ok {
			return errors.New(appErr.Message)
		}
		return err
	}

	if quoteJSON {
		return outputJSON(cmd, quote)
	}

	renderQuote(cmd, quote)
	return nil
}

func renderQuote(cmd *cobra.Command, quote *entities.Quote) {
	st := newStyles(cmd.OutOrStdout())
	display := presentation.DisplayQuote(quote.EstimateResult)

	printLine(cmd, st.title.Render(display.Title))
	printLine(cmd, st.price.Render(display.Range))
	printLine(cmd, display.Details)
	printLine(cmd, st.muted.Render(display.Note))

	if len(quote.Tips) > 0 {
		printLine(cmd, "")
		printLine(cmd, st.title.Render("Tips"))
		for _, tip := range quote.Tips {
			printLine(cmd, "  • " + tip)
		}
	}
}
