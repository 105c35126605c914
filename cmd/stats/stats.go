// Package stats prints ledger statistics
package stats

import (
	"fjacquet/ledger-import/cmd/root"
	"fjacquet/ledger-import/internal/report"
	"fjacquet/ledger-import/internal/validation"

	"github.com/spf13/cobra"
)

var (
	topN   int
	format string
)

// Cmd represents the stats command
var Cmd = &cobra.Command{
	Use:   "stats",
	Short: "Show ledger statistics per category",
	Long: `Show record counts and spent/received totals per category, along with
the descriptions accounting for the most spending in each category.

The category map is not needed for this command.`,
	Args: cobra.NoArgs,
	RunE: statsFunc,
}

func init() {
	Cmd.Flags().IntVarP(&topN, "top", "n", 0, "Top descriptions per category (default from stats.top_n)")
	Cmd.Flags().StringVarP(&format, "format", "f", report.FormatText, "Output format: text, json or yaml")
}

func statsFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidOutputFormat(format); err != nil {
		return err
	}
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	ledger, err := c.GetLedgerStore().Load(cmd.Context())
	if err != nil {
		return err
	}

	n := topN
	if n <= 0 {
		n = c.GetConfig().Stats.TopN
	}

	summary := report.Summarize(ledger, n)
	summary.Currency = c.GetConfig().Stats.Currency

	out, err := c.GetReportGenerator().GenerateReport(summary, format)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
