package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treeflow/pkg/api"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		maxBody int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Routes:
  POST /v1/normalize   normalize inline data (records, {columns, rows}, or {dimensions, freq})
  GET  /v1/modes       list widget modes
  GET  /healthz        liveness probe

The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("max-body") {
				cfg.Server.MaxBodyBytes = maxBody
			}
			return c.runServe(cmd.Context(), cfg.Server)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().Int64Var(&maxBody, "max-body", api.DefaultMaxBodyBytes, "maximum request body in bytes")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg api.Config) error {
	cfg.SetDefaults()
	srv := api.NewServer(cfg, c.newRunner(), loggerFromContext(ctx))

	printInfo("Serving treeflow API on %s", cfg.Addr)
	printKeyValue("max body", fmt.Sprintf("%d bytes", cfg.MaxBodyBytes))
	printNextStep("Try", fmt.Sprintf(`curl -s localhost%s/v1/modes`, cfg.Addr))

	err := srv.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serve: %w", err)
	}
	printSuccess("Server stopped")
	return nil
}
