package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fmcato/ellip-refdata/internal/domain"
	"github.com/fmcato/ellip-refdata/internal/server"
)

func newServeCmd() *cobra.Command {
	var httpAddr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reference data tools over MCP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var runner domain.ScriptRunner
			r := domain.NewRunner()
			if err := r.Available(cmd.Context()); err != nil {
				slog.Warn("plot_dataset disabled", "error", err)
			} else {
				runner = r
			}

			srv := server.New(runner)
			srv.RegisterHandlers()

			if httpAddr != "" {
				return srv.RunHTTP(httpAddr)
			}
			return srv.RunStdio(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&httpAddr, "http", "", "HTTP address to listen on (empty for stdio)")
	return cmd
}
