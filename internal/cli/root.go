package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds flags shared by every command.
type RootOptions struct {
	Version   string
	LogLevel  string
	LogFormat string
}

// NewRootCommand creates the matchboard command tree. Running it without a
// subcommand starts the server.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{Version: version}
	serve := NewServeCommand(opts)

	cmd := &cobra.Command{
		Use:           "matchboard",
		Short:         "Serve matches and teams over HTTP",
		Long:          "matchboard exposes match and team collections over a small JSON API,\njoining each match with its home and away teams.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error), overrides LOG_LEVEL")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format (text|json), overrides LOG_FORMAT")
	cmd.Flags().AddFlagSet(serve.Flags())

	cmd.AddCommand(serve)
	cmd.AddCommand(NewExportCommand(opts))

	return cmd
}
