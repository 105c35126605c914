package verify_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/ledger-import/cmd/root"
	"fjacquet/ledger-import/cmd/verify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	root.Cmd.AddCommand(verify.Cmd)
}

func TestVerifyCommand_Metadata(t *testing.T) {
	assert.Equal(t, "verify", verify.Cmd.Use)
	assert.Contains(t, verify.Cmd.Short, "Check the ledger")
	assert.NotNil(t, verify.Cmd.RunE)
}

func runVerify(t *testing.T, ledgerContent string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	ledger := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(cfg, []byte("log:\n  level: error\n"), 0600))
	require.NoError(t, os.WriteFile(ledger, []byte(ledgerContent), 0600))

	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	root.Cmd.SetArgs([]string{"verify", "--config", cfg, "--ledger", ledger})
	err := root.Cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVerifyCommand_Clean(t *testing.T) {
	out, err := runVerify(t, "Date,Transaction,Category,Amount Spent,Amount Received\n"+
		"2024-01-06,GROCERY MART,Food,32.10,\n"+
		"2024-01-05,COFFEE SHOP,Food,4.50,\n")
	require.NoError(t, err)
	assert.Equal(t, "2 records OK\n", out)
}

func TestVerifyCommand_OutOfOrder(t *testing.T) {
	out, err := runVerify(t, "Date,Transaction,Category,Amount Spent,Amount Received\n"+
		"2024-01-05,COFFEE SHOP,Food,4.50,\n"+
		"2024-01-06,GROCERY MART,Food,32.10,\n")
	assert.Error(t, err)
	assert.Contains(t, out, "row 2: error: dated 2024-01-06")
}
