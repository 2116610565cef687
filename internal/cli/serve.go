package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordcloud/internal/server"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the word-cloud HTTP API",
		Long: `Serve the word-cloud HTTP API.

Endpoints:
  GET  /healthz     liveness probe
  POST /v1/layout   {"words": [...]} -> layout document
  POST /v1/render   {"words": [...]} -> SVG, or JSON with "formats": ["json"]

Set cache.backend = "redis" (or WORDCLOUD_REDIS_URL) to share cached layouts
between replicas.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			runner.MeasureCacheSize = cfg.Server.MeasureCacheSize

			printInfo("Serving word clouds")
			printKeyValue("Address", cfg.Server.Addr)
			printKeyValue("Cache", cfg.Cache.Backend)
			printKeyValue("Max words", strconv.Itoa(cfg.Server.MaxItems))
			printKeyValue("Timeout", cfg.Server.Timeout().String())
			printNewline()

			return server.New(runner, cfg, c.Logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
