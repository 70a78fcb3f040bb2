// Package cmd wires the petalo CLI together with Cobra: a root command
// carrying global flags, subcommands doing the work, logrus for all
// user-facing progress and error reporting. Library packages (mlem,
// lorio, imgio, ...) never log directly; only this package does.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "petalo",
	Short: "Iterative MLEM reconstruction for PET/MLEM list-mode data",
}

// Execute runs the root command, exiting with status 1 on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	cobra.OnInitialize(func() {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	})

	rootCmd.AddCommand(reconstructCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(scattergramCmd)
}
