package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// styles renders for the command's output; colours are dropped when it is not a terminal
type styles struct {
	title lipgloss.Style
	price lipgloss.Style
	muted lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true),
		price: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		muted: r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	}
}

func outputJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	printLine(cmd, string(data))
	return nil
}

// printLine writes to stdout; cobra's Println goes to stderr
func printLine(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}
