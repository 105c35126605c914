// Package importcmd handles importing bank export batches into the ledger
package importcmd

import (
	"errors"
	"fmt"
	"io"

	"fjacquet/ledger-import/cmd/root"
	"fjacquet/ledger-import/internal/importer"

	"github.com/spf13/cobra"
)

var importAll bool

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import [file...]",
	Short: "Import bank export batches into the ledger",
	Long: `Import headerless bank export files (date, description, amount spent,
amount received) into the ledger.

Records dated before the ledger's last date are skipped, records on that date
are checked for duplicates, and everything newer is categorized and added.
File names are resolved relative to the import directory.

Example:
  ledger-import import statement-2024-01.csv
  ledger-import import --all`,
	Args: func(cmd *cobra.Command, args []string) error {
		if importAll && len(args) > 0 {
			return errors.New("pass either file names or --all, not both")
		}
		if !importAll && len(args) == 0 {
			return errors.New("no batch given: pass file names or --all")
		}
		return nil
	},
	RunE: importFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&importAll, "all", "a", false, "Import every batch in the import directory, in name order")
}

func importFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	svc, err := c.GetImportService()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if importAll {
		results, err := svc.ImportAll(ctx)
		for _, res := range results {
			printResult(out, res)
		}
		return err
	}

	for _, name := range args {
		res, err := svc.ImportFile(ctx, name)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		printResult(out, res)
	}
	return nil
}

func printResult(w io.Writer, res importer.ImportResult) {
	fmt.Fprintf(w, "%s: read %d, added %d, duplicates %d, older than ledger %d, uncategorized %d\n",
		res.Source, res.Read, res.Added, res.Duplicates, res.BeforeBoundary, res.Uncategorized)
}
