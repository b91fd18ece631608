package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fmcato/ellip-refdata/internal/domain"
)

func newExtractCmd() *cobra.Command {
	markers := domain.BoostMarkers
	cmd := &cobra.Command{
		Use:   "extract INPUT OUTPUT",
		Short: "Extract the SC_(...) literals of a Boost test data source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := domain.ExtractFile(args[0], args[1], markers)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d rows to %s.\n", st.Rows, args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&markers.Start, "start", markers.Start, "Substring of the line that opens the array")
	cmd.Flags().StringVar(&markers.Row, "row", markers.Row, "Literal wrapper")
	return cmd
}
