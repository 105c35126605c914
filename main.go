package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/ledger-import/cmd/categorize"
	"fjacquet/ledger-import/cmd/importcmd"
	"fjacquet/ledger-import/cmd/root"
	"fjacquet/ledger-import/cmd/stats"
	"fjacquet/ledger-import/cmd/verify"
	"fjacquet/ledger-import/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// Load .env before anything reads the environment
	_, _ = config.LoadEnv()

	logrus.SetLevel(logLevelFromEnv())

	root.Cmd.AddCommand(importcmd.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(stats.Cmd)
	root.Cmd.AddCommand(verify.Cmd)
}

// logLevelFromEnv sets the level of the standard logrus logger, used by
// libraries that log before the configured logger exists.
func logLevelFromEnv() logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(config.GetEnv(config.EnvPrefix+"_LOG_LEVEL", "info")))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
