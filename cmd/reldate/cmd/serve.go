package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	internalhttp "github.com/jmylchreest/reldate/internal/http"
	"github.com/jmylchreest/reldate/internal/http/handlers"
	"github.com/jmylchreest/reldate/internal/observability"
	"github.com/jmylchreest/reldate/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reldate HTTP API",
	Long: `Start the reldate HTTP server.

The server provides:
- GET /api/v1/format and /api/v1/format/parts
- Liveness and health endpoints (/livez, /health)
- OpenAPI documentation at /docs`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
	serveCmd.Flags().Int("port", 8080, "Port to listen on")

	// Bind flags to viper
	mustBindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	mustBindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := slog.Default()

	formatter, catalog, err := newFormatter(cfg, logger)
	if err != nil {
		return err
	}
	defaults, err := formatDefaults(cfg)
	if err != nil {
		return err
	}

	server := internalhttp.NewServer(cfg.Server, observability.WithComponent(logger, "http"), version.Version)
	server.Register(
		handlers.NewHealthHandler(version.Version).WithLocales(catalog.Supported()),
		handlers.NewFormatHandler(formatter, handlers.FormatDefaults{
			Style:     defaults.Style,
			Threshold: defaults.Threshold,
			Locales:   defaults.Locales,
			Location:  defaults.Location,
		}),
	)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received shutdown signal", slog.String("signal", sig.String()))
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.Info("starting reldate server",
		slog.String("address", cfg.Server.Address()),
		slog.String("style", string(defaults.Style)),
		slog.String("threshold", defaults.Threshold.String()),
		slog.Bool("duration_format", cfg.Intl.DurationFormat),
	)

	return server.ListenAndServe(ctx)
}
