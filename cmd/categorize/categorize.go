// Package categorize handles transaction categorization commands
package categorize

import (
	"fmt"

	"fjacquet/ledger-import/cmd/root"
	"fjacquet/ledger-import/internal/models"

	"github.com/spf13/cobra"
)

var description string

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize uncategorized ledger records using the keyword map",
	Long: `Categorize transactions based on the category keyword map.

Without flags, every uncategorized record in the ledger is matched again and
the ledger is saved if any record changed. With --description, the given
text is matched and the result printed without touching the ledger.`,
	Args: cobra.NoArgs,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Match a single transaction description (dry run)")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if description != "" {
		cat, err := c.GetCategorizer()
		if err != nil {
			return err
		}
		if match, ok := cat.Match(description); ok {
			fmt.Fprintf(out, "%s (keyword %q)\n", match.Category, match.Keyword)
		} else {
			fmt.Fprintln(out, models.CategoryUncategorized)
		}
		return nil
	}

	svc, err := c.GetImportService()
	if err != nil {
		return err
	}
	res, err := svc.Recategorize(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "categorized %d, still uncategorized %d\n", res.Categorized, res.Uncategorized)
	return nil
}
