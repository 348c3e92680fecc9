// Command drpl-signal runs the local-network signaling and presence
// server: a single HTTP listener serving static assets and upgrading the
// signaling endpoint to a WebSocket text-frame channel.
//
// Flags are built on github.com/spf13/cobra, each one defaulting from the
// environment variable of the same convention, so the zero-flag invocation
// is still governed entirely by PORT (default 7865) with no other required
// configuration.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/drpl-co/drpl-signal/internal/logging"
	"github.com/drpl-co/drpl-signal/internal/registry"
	"github.com/drpl-co/drpl-signal/internal/rtcconfig"
	"github.com/drpl-co/drpl-signal/internal/transport"
)

const defaultPort = "7865"

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var port string
	var staticDir string
	var logLevel string

	cmd := &cobra.Command{
		Use:   "drpl-signal",
		Short: "Local-network peer signaling and presence server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(port, staticDir, logLevel)
		},
	}

	cmd.Flags().StringVar(&port, "port", envOr("PORT", defaultPort), "listening port")
	cmd.Flags().StringVar(&staticDir, "static-dir", os.Getenv("STATIC_DIR"), "directory of static assets to serve (empty disables static serving)")
	cmd.Flags().StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "info"), "silent|error|info|debug")

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func run(port, staticDir, logLevel string) error {
	log := logging.New(parseLevel(logLevel), "drpl-signal")

	reg := registry.New()
	srv := transport.NewServer(reg, log, transport.Config{
		StaticDir:  staticDir,
		IceServers: rtcconfig.Default(),
	})

	httpServer := &http.Server{
		Addr:    ":" + port,
		Handler: srv.Handler(),
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("listening on :%s", port)
		serveErr <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case sig := <-sigCh:
		log.Infof("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(ctx)
	}
}

func parseLevel(s string) int {
	switch s {
	case "silent":
		return logging.LevelSilent
	case "error":
		return logging.LevelError
	case "debug":
		return logging.LevelDebug
	default:
		return logging.LevelInfo
	}
}
