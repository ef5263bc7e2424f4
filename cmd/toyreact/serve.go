package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/toyreact/internal/demo"
	"github.com/vango-dev/toyreact/internal/inspect"
)

func serveCmd(a *app) *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve [demo]",
		Short: "Serve a demo through the inspector",
		Long: `Mount a demo and serve it over HTTP.

Routes:
  GET  /                        page with clickable elements
  GET  /snapshot                current HTML
  POST /events/{node}/{event}   dispatch an event
  GET  /ws                      patch record stream
  GET  /metrics                 Prometheus metrics

Examples:
  toyreact serve counter
  toyreact serve tictactoe --port=8080`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "counter"
			if len(args) == 1 {
				name = args[0]
			}
			if port > 0 {
				a.cfg.Inspect.Port = port
			}
			if host != "" {
				a.cfg.Inspect.Host = host
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			d, err := demo.Lookup(name)
			if err != nil {
				return err
			}
			srv, err := inspect.New(d.Build, inspect.Options{Config: a.cfg, Logger: a.logger})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			printBanner(out)
			success(out, "Inspector running at http://%s", a.cfg.Addr())
			info(out, "Serving demo %q. Press Ctrl+C to stop.", name)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}
