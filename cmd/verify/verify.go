// Package verify checks the ledger for broken invariants
package verify

import (
	"fmt"

	"fjacquet/ledger-import/cmd/root"
	"fjacquet/ledger-import/internal/logging"
	"fjacquet/ledger-import/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the verify command
var Cmd = &cobra.Command{
	Use:   "verify",
	Short: "Check the ledger for ordering and data problems",
	Long: `Check that the ledger is ordered newest first and that every record has
a date, a category and non-negative amounts. Identical records are listed as
warnings. The command fails when any error is found.`,
	Args: cobra.NoArgs,
	RunE: verifyFunc,
}

func verifyFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	ledger, err := c.GetLedgerStore().Load(cmd.Context())
	if err != nil {
		return err
	}

	issues := validation.ValidateLedger(ledger)
	out := cmd.OutOrStdout()
	for _, issue := range issues {
		fmt.Fprintln(out, issue.String())
	}

	c.GetLogger().Info("Ledger verified",
		logging.F(logging.FieldFile, c.GetLedgerStore().Location()),
		logging.F(logging.FieldCount, ledger.Len()),
		logging.F("issues", len(issues)))

	if validation.HasErrors(issues) {
		return fmt.Errorf("ledger has errors")
	}
	fmt.Fprintf(out, "%d records OK\n", ledger.Len())
	return nil
}
