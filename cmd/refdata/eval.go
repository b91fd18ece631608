package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fmcato/ellip-refdata/internal/domain"
)

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval FUNCTION ARG...",
		Short: "Evaluate one function and print the result with 17 significant digits",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, err := domain.LookupFunction(args[0])
			if err != nil {
				return err
			}
			vals := make([]float64, len(args)-1)
			for i, a := range args[1:] {
				if vals[i], err = domain.ParseField(a); err != nil {
					return fmt.Errorf("%w: argument %d: %w", domain.ErrStrictParse, i+1, err)
				}
			}
			v, err := fn.Eval(cmd.Context(), vals)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), domain.FormatResult(v))
			return nil
		},
	}
}

func newFunctionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the registered functions and their arity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range domain.FunctionNames() {
				fn, _ := domain.LookupFunction(name)
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %d\n", name, fn.Arity())
			}
			return nil
		},
	}
}
