package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/vitalvas/waypoint/manifest"
	"github.com/vitalvas/waypoint/mux"
	"github.com/vitalvas/waypoint/muxhandlers"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cli.Command{
	Name:      "serve",
	Usage:     "Serve a manifest with echo handlers that describe each match",
	ArgsUsage: "<manifest>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "addr",
			Aliases: []string{"a"},
			Value:   ":8080",
			Usage:   "Address to listen on",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		path, err := manifestArg(cmd)
		if err != nil {
			return err
		}

		m, err := manifest.Load(path)
		if err != nil {
			return cli.Exit(fmt.Errorf("failed to load manifest: %w", err), 1)
		}

		handler, err := newServeHandler(m, slog.Default())
		if err != nil {
			return cli.Exit(err, 1)
		}

		return serve(ctx, cmd.String("addr"), handler)
	},
}

// newServeHandler registers the manifest inside a group that assigns a
// request ID to every request, then wraps the router with panic recovery.
func newServeHandler(m *manifest.Manifest, logger *slog.Logger) (http.Handler, error) {
	r := mux.NewRouter().SetLogger(logger.With("component", "router"))

	var applyErr error
	r.Group(func(g *mux.RouteGroup) {
		g.Before(muxhandlers.RequestID(muxhandlers.RequestIDConfig{TrustIncoming: true}))
		applyErr = m.Apply(r, resolveHandler)
	})
	if applyErr != nil {
		return nil, fmt.Errorf("failed to apply manifest: %w", applyErr)
	}

	if err := r.SetNotFoundHandler(func(c *mux.Context) error {
		logger.Debug("no route matched", "method", c.Request.Method, "path", c.Request.URL.Path)
		return mux.ErrNotFound
	}); err != nil {
		return nil, err
	}

	return muxhandlers.Recovery(r, muxhandlers.RecoveryConfig{
		LogFunc: func(req *http.Request, err any) {
			logger.Error("panic recovered", "method", req.Method, "path", req.URL.Path, "error", err)
		},
	}), nil
}

// serve runs an HTTP server until ctx is cancelled.
func serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	slog.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
