package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbass698-121/aveva-diagram-style/pkg/cache"
	"github.com/jbass698-121/aveva-diagram-style/pkg/config"
	"github.com/jbass698-121/aveva-diagram-style/pkg/server"
	"github.com/jbass698-121/aveva-diagram-style/pkg/store"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render HTTP API",
		Long: `Serve the HTTP API.

Endpoints:
  GET    /healthz
  POST   /v1/layout              diagram document in, layout model out
  POST   /v1/render?format=svg   diagram document in, artifact out
  POST   /v1/extract             free text in, diagram document out
  POST   /v1/diagrams            store a diagram
  GET    /v1/diagrams            list stored diagrams
  GET    /v1/diagrams/{id}       fetch a stored diagram
  DELETE /v1/diagrams/{id}
  GET    /v1/diagrams/{id}/render

Render accepts the format, engine, theme, scale and icons query parameters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.cfg.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()
			runner.Keyer = cache.NewScopedKeyer(runner.Keyer, "srv:")

			st, err := c.newStore(cmd, cfg)
			if err != nil {
				return err
			}

			srv := server.New(runner, c.Logger,
				server.WithStore(st),
				server.WithDefaults(c.cfg.PipelineOptions()),
				server.WithMaxBody(cfg.MaxBody),
				server.WithTimeout(cfg.RequestTimeout),
			)
			printInfo("Listening on %s", cfg.Addr)
			return srv.ListenAndServe(ctx, cfg.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) newStore(cmd *cobra.Command, cfg config.ServerConfig) (store.Store, error) {
	if cfg.Store != config.StoreMongo {
		return store.NewMemoryStore(), nil
	}
	st, err := store.NewMongoStore(cmd.Context(), cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	c.Logger.Info("using mongo store")
	return st, nil
}
