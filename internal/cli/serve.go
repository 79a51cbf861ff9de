package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netvalue/pkg/metrics"
	"github.com/matzehuels/netvalue/pkg/observability"
	"github.com/matzehuels/netvalue/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyses over HTTP",
		Long: `Serve exposes label, metcalfe, shapley, exact, rank and render as JSON
endpoints under /v1, plus /healthz, /version and Prometheus /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := c.cfg.ServerConfig()
			if addr != "" {
				cfg.Addr = addr
			}

			runner := c.newRunner(ctx)
			defer runner.Close()

			var reg *metrics.Registry
			if !noMetrics {
				reg = metrics.NewRegistry()
				observability.SetAnalysisHooks(reg)
				observability.SetCacheHooks(reg)
				observability.SetServerHooks(reg)
				defer observability.Reset()
			}

			srv, err := server.New(runner, cfg, c.Logger, metricsHandler(reg))
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+server.DefaultAddr+")")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint and hooks")

	return cmd
}

// metricsHandler keeps a nil registry from becoming a non-nil http.Handler.
func metricsHandler(reg *metrics.Registry) http.Handler {
	if reg == nil {
		return nil
	}
	return reg.Handler()
}
