package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/familytree/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the people, relationships and chart API over HTTP",
		Long: `Serve the people, relationships and chart API over HTTP.

Change events are published to NATS when nats_url is configured. Charts are
cached in Redis when redis_url is configured, otherwise in the local cache
directory. The file store writes its data when the server stops.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config or :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) (err error) {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.HTTPAddr
	}

	st, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore(st.Close, &err)

	pub, err := c.newPublisher()
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}
	defer pub.Close()

	ch, err := c.newCache(ctx, cfg, false)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer ch.Close()

	layoutOpts, err := c.chartOptions()
	if err != nil {
		return err
	}

	srv := server.New(st,
		server.WithPublisher(pub),
		server.WithCache(ch),
		server.WithLogger(c.Logger),
		server.WithTimeout(cfg.Timeout),
		server.WithLayout(layoutOpts),
	)

	c.Logger.Info("starting server", "store", cfg.Store, "events", cfg.NATSURL != "", "redis", cfg.RedisURL != "")
	return srv.ListenAndServe(ctx, addr)
}
