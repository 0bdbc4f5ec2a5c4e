package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	appmatches "github.com/preston-bernstein/matchboard/internal/app/matches"
	"github.com/preston-bernstein/matchboard/internal/domain"
	"github.com/preston-bernstein/matchboard/internal/logging"
	"github.com/preston-bernstein/matchboard/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Backend string
	Output  string
	Enrich  bool
}

var exportFormats = []string{"json", "yaml"}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <matches|teams>",
		Short: "Print a collection",
		Long: `Print every record of a collection as JSON or YAML.

With --enrich, matches are joined with their teams the same way the
API does it.

Examples:
  matchboard export teams
  matchboard export matches --enrich --output yaml`,
		Args:          cobra.ExactArgs(1),
		ValidArgs:     []string{store.Matches, store.Teams},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Backend, "backend", "", "storage backend, overrides STORAGE_BACKEND")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "json", "output format (json|yaml)")
	cmd.Flags().BoolVar(&opts.Enrich, "enrich", false, "join matches with their teams")

	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions, collection string) error {
	if collection != store.Matches && collection != store.Teams {
		return fmt.Errorf("unknown collection %q: must be %s or %s", collection, store.Matches, store.Teams)
	}
	if !isExportFormat(opts.Output) {
		return fmt.Errorf("invalid output %q: must be one of %v", opts.Output, exportFormats)
	}

	cfg, err := loadConfig(opts.RootOptions, opts.Backend)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, opts.RootOptions)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	backend, err := store.Open(logging.WithLogger(ctx, logger), cfg.Storage)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	defer backend.Close()

	cols := store.NewCollections(backend, logger, nil)
	var records []domain.Record
	if collection == store.Matches && opts.Enrich {
		records = appmatches.NewService(cols, nil, cfg.LogoURLPrefix).List(ctx)
	} else {
		records = cols.ReadCollection(ctx, collection)
	}

	return writeRecords(cmd.OutOrStdout(), opts.Output, records)
}

func writeRecords(w io.Writer, format string, records []domain.Record) error {
	if format == "yaml" {
		if len(records) == 0 {
			_, err := io.WriteString(w, "[]\n")
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(yamlValue(records)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	data, err := domain.EncodeCollection(records)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// yamlValue converts decoded JSON into values yaml renders as scalars of the
// same kind; json.Number would otherwise be quoted as a string.
func yamlValue(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case []domain.Record:
		out := make([]any, len(val))
		for i, r := range val {
			out[i] = yamlValue(r)
		}
		return out
	case domain.Record:
		return yamlValue(map[string]any(val))
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = yamlValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = yamlValue(item)
		}
		return out
	default:
		return v
	}
}

func isExportFormat(format string) bool {
	for _, f := range exportFormats {
		if f == format {
			return true
		}
	}
	return false
}
