package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/matchboard/internal/config"
	"github.com/preston-bernstein/matchboard/internal/logging"
	"github.com/preston-bernstein/matchboard/internal/server"
)

const serviceName = "matchboard"

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Port    string
	Backend string
}

var runServer = func(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	srv.Run(ctx, stop)
	return nil
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP API and static logo server.

Configuration comes from the environment (and an optional .env file);
flags override the matching variables.

Examples:
  matchboard serve
  matchboard serve --port 8080 --backend sqlite`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Port, "port", "", "listen port, overrides PORT")
	cmd.Flags().StringVar(&opts.Backend, "backend", "", "storage backend (file|memory|sqlite|redis), overrides STORAGE_BACKEND")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg, err := loadConfig(opts.RootOptions, opts.Backend)
	if err != nil {
		return err
	}
	if opts.Port != "" {
		cfg.Port = opts.Port
	}

	logger := newLogger(cfg, opts.RootOptions)
	logging.Info(logger, "starting matchboard",
		slog.String("port", cfg.Port),
		slog.String(logging.FieldBackend, cfg.Storage.Backend),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := runServer(ctx, cfg, logger); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func loadConfig(opts *RootOptions, backend string) (config.Config, error) {
	cfg := config.Load()
	if opts != nil {
		if opts.LogLevel != "" {
			cfg.Log.Level = opts.LogLevel
		}
		if opts.LogFormat != "" {
			cfg.Log.Format = opts.LogFormat
		}
	}
	if backend != "" {
		switch backend {
		case config.BackendFile, config.BackendMemory, config.BackendSQLite, config.BackendRedis:
			cfg.Storage.Backend = backend
		default:
			return cfg, fmt.Errorf("invalid backend %q: must be one of file, memory, sqlite, redis", backend)
		}
	}
	return cfg, nil
}

func newLogger(cfg config.Config, opts *RootOptions) *slog.Logger {
	version := ""
	if opts != nil {
		version = opts.Version
	}
	return logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: serviceName,
		Version: version,
	})
}
