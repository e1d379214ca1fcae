package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zatekoja/costestimator/internal/domain/entities"
)

var tipsJSON bool

var tipsCmd = &cobra.Command{
	Use:   "tips [key]",
	Short: "Show money-saving tips",
	Long: `Shows the tips for a tip key, usually a service code.
Unknown keys fall back to the general tips.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTips,

	Annotations: map[string]string{annotationNeedsCatalog: "true"},
}

func init() {
	tipsCmd.Flags().BoolVar(&tipsJSON, "json", false, "output tips as JSON")
	rootCmd.AddCommand(tipsCmd)
}

func runTips(cmd *cobra.Command, args []string) error {
	if estimator == nil {
		return errors.New("price data not loaded")
	}

	key := entities.DefaultTipKey
	if len(args) == 1 {
		key = args[0]
	}

	tips, err := estimator.Tips(cmd.Context(), key)
	if err != nil {
		return err
	}

	if tipsJSON {
		return outputJSON(cmd, tips)
	}

	if len(tips) == 0 {
		printLine(cmd, "No tips available.")
		return nil
	}

	for _, tip := range tips {
		printLine(cmd, "• " + tip)
	}
	return nil
}
