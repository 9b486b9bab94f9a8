package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/margins/pkg/api"
	"github.com/matzehuels/margins/pkg/cache"
	"github.com/matzehuels/margins/pkg/pipeline"
)

const (
	defaultAddr     = ":8080"
	shutdownTimeout = 10 * time.Second
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, redisURL string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Routes:
  GET  /healthz
  GET  /v1/datasets
  GET  /v1/datasets/{name}
  POST /v1/render?format=png
  POST /v1/layout

Artifacts are cached in Redis when --redis (or $REDIS_URL) is set, otherwise
in the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.serve.Addr != "" {
				addr = c.serve.Addr
			}
			if redisURL == "" {
				redisURL = c.serve.Redis
			}
			if redisURL == "" {
				redisURL = os.Getenv("REDIS_URL")
			}
			return c.runServe(cmd.Context(), addr, redisURL)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for the shared cache (e.g. redis://localhost:6379/0)")

	return cmd
}

func (c *CLI) serveCache(ctx context.Context, redisURL string) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	if redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache")
		return rc, nil
	}
	return newCache(false)
}

func (c *CLI) runServe(ctx context.Context, addr, redisURL string) error {
	store, err := c.serveCache(ctx, redisURL)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.New(runner, c.Logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	printSuccess("Listening on %s", StyleLink.Render("http://"+displayAddr(addr)))
	printDetail("Press Ctrl+C to stop")

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// displayAddr turns a listen address like ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
