package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fmcato/ellip-refdata/internal/domain"
)

func newCompareCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "compare A B",
		Short: "Report the relative error between the result columns of two datasets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := domain.ParseFormat(format)
			if err != nil {
				return err
			}
			c, err := domain.CompareFiles(args[0], args[1], f)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "rows    %d\n", c.Rows)
			fmt.Fprintf(w, "valid   %d\n", c.Valid)
			fmt.Fprintf(w, "mean    %.2f\n", c.Mean)
			fmt.Fprintf(w, "median  %.2f\n", c.Median)
			fmt.Fprintf(w, "p99     %.2f\n", c.P99)
			fmt.Fprintf(w, "max     %.2f\n", c.Max)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "comma", "Field format: whitespace or comma")
	return cmd
}
