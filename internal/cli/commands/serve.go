package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tsawler/stylecheck/internal/config"
	"github.com/tsawler/stylecheck/internal/logging"
	"github.com/tsawler/stylecheck/internal/metrics"
	"github.com/tsawler/stylecheck/internal/server"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port int
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the validation HTTP server",
		Long: `Start an HTTP server that validates uploaded documents.

Endpoints:
  POST /api/validate  multipart upload (field "document", optional "documentType")
  GET  /api/health    health check
  GET  /metrics       Prometheus metrics

The server stops gracefully on SIGINT or SIGTERM.`,
		Example: `  stylecheck serve
  stylecheck serve --port 8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Port, "port", "p", config.DefaultPort, "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg := config.FromContext(cmd.Context())
	logger := logging.FromContext(cmd.Context())

	port := cfg.Port
	if cmd.Flags().Changed("port") {
		port = opts.Port
	}

	g, err := cfg.StyleGuide()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Port:           port,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Guide:          g,
		Logger:         logger,
		Recorder:       metrics.Recorder{},
	})
	return srv.Serve(ctx)
}
