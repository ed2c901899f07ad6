package cli

import (
	"github.com/spf13/cobra"

	"github.com/yanqirenshi/padgen/internal/config"
	"github.com/yanqirenshi/padgen/internal/server"
	"github.com/yanqirenshi/padgen/pkg/pipeline"
	"github.com/yanqirenshi/padgen/pkg/store"
)

// newServeCmd creates the serve command running the HTTP API.
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the padgen HTTP API",
		Long: `Run the padgen HTTP API.

Endpoints:
  POST /v1/transform      transform Rust source into PAD JSON
  POST /v1/diagrams       transform and save a shareable diagram
  GET  /v1/diagrams/{id}  fetch a saved diagram
  GET  /healthz           liveness probe

The diagram store uses MongoDB when store.mongo_uri is configured and an
in-memory store otherwise.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			c, err := openCache(ctx, cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			var st store.Store
			if uri := cfg.Store.MongoURI; uri != "" {
				if st, err = store.NewMongoStore(ctx, uri); err != nil {
					return err
				}
				defer st.Close(ctx)
				logger.Info("using mongodb diagram store")
			} else {
				st = store.NewMemoryStore()
				logger.Info("using in-memory diagram store")
			}

			runner := pipeline.NewRunner(c, logger)
			srv := server.New(runner, st, logger, cfg.Cache.TTL())
			return srv.ListenAndServe(ctx, cfg.Server.AddrOrDefault())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
