package main

import (
	"github.com/spf13/cobra"

	"github.com/fmcato/ellip-refdata/internal/logging"
)

type rootOptions struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "refdata",
		Short:         "Elliptic integral reference data tools",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(opts.logLevel)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")

	cmd.AddCommand(
		newGenerateCmd(opts),
		newExtractCmd(),
		newCompareCmd(),
		newEvalCmd(),
		newFunctionsCmd(),
		newServeCmd(),
	)
	return cmd
}
