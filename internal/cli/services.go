package cli

import (
	"errors"
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zatekoja/costestimator/internal/domain/entities"
	"github.com/zatekoja/costestimator/internal/presentation"
)

var servicesJSON bool

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List the priced services",
	Long:  "Lists every service in the price table with its national base range.",
	Args:  cobra.NoArgs,
	RunE:  runServices,

	Annotations: map[string]string{annotationNeedsCatalog: "true"},
}

func init() {
	servicesCmd.Flags().BoolVar(&servicesJSON, "json", false, "output services as JSON")
	rootCmd.AddCommand(servicesCmd)
}

func runServices(cmd *cobra.Command, args []string) error {
	if estimator == nil {
		return errors.New("price data not loaded")
	}

	list, err := estimator.ListServices(cmd.Context())
	if err != nil {
		return err
	}

	if servicesJSON {
		return outputJSON(cmd, list)
	}

	if len(list) == 0 {
		printLine(cmd, "No services found.")
		return nil
	}

	return renderServices(cmd, list)
}

func renderServices(cmd *cobra.Command, list []entities.ServiceRecord) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tBASE RANGE\tTIPS")
	for _, svc := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			svc.Code,
			svc.Name,
			presentation.FormatRange(roundDollars(svc.Base.Low), roundDollars(svc.Base.High)),
			svc.EffectiveTipKey(),
		)
	}
	return w.Flush()
}

func roundDollars(v float64) int64 {
	return int64(math.Round(v))
}
