package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fmcato/ellip-refdata/internal/config"
	"github.com/fmcato/ellip-refdata/internal/domain"
	"github.com/fmcato/ellip-refdata/internal/logging"
)

func newGenerateCmd(root *rootOptions) *cobra.Command {
	var manifest string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate every dataset listed in a YAML manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := config.Load(manifest)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("log-level") {
				logging.Setup(m.LogLevel)
			}

			var runner domain.ScriptRunner
			if m.NeedsOctave() {
				r := domain.NewRunner()
				if err := r.Available(cmd.Context()); err != nil {
					return err
				}
				runner = r
			}

			ds, err := m.Build(runner)
			if err != nil {
				return err
			}
			if err := domain.RunAll(cmd.Context(), ds); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d datasets.\n", len(ds))
			return nil
		},
	}
	cmd.Flags().StringVarP(&manifest, "manifest", "m", "refdata.yaml", "Path of the dataset manifest")
	return cmd
}
