package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/carbonplan/internal/config"
	"github.com/rshade/carbonplan/internal/web"
	"github.com/rshade/carbonplan/pkg/version"
)

// NewServeCmd creates the serve command, which runs the web form until
// interrupted.
func NewServeCmd(deps Deps) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scenario and roadmap form over HTTP",
		Long: `Serves the browser form. Each visitor gets a session, kept in memory, holding
the last inputs, scenario and roadmap. Prometheus metrics are exposed on
/metrics and a health check on /healthz.

Without an API key the form still calculates scenarios; roadmap requests
report the missing key.`,
		Example: `  # Serve on the configured address (default 127.0.0.1:8501)
  carbonplan serve

  # Listen on all interfaces
  carbonplan serve --address :8501`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if cmd.Flags().Changed("address") {
				cfg.Server.Address = address
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			in, profile := configDefaults()
			opts := []web.Option{web.WithLogger(logger), web.WithPrecision(cfg.Output.Precision)}

			svc, err := newRoadmapService(ctx, cfg, deps)
			if err != nil {
				logger.Warn().Ctx(ctx).Err(err).Msg("roadmap generation unavailable")
				opts = append(opts, web.WithGenerator(unavailableGenerator{err: err}))
			} else {
				opts = append(opts, web.WithGenerator(svc))
			}

			srv, err := web.New(web.Config{
				Address:    cfg.Server.Address,
				SessionTTL: time.Duration(cfg.Server.SessionTTLSeconds) * time.Second,
				Defaults:   in,
				Profile:    profile,
				Version:    version.GetVersion(),
			}, opts...)
			if err != nil {
				return err
			}

			cmd.Printf("Serving the form on http://%s (Ctrl+C to stop)\n", cfg.Server.Address)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "listen address (default from server.address)")
	return cmd
}
