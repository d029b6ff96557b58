package app

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/violinist-dev/allowlist-handler/internal/config"
	"github.com/violinist-dev/allowlist-handler/internal/filtering"
	"github.com/violinist-dev/allowlist-handler/internal/updates"
)

const (
	formatJSON  = "json"
	formatTable = "table"

	defaultManifest = "composer.json"
)

type filterOptions struct {
	manifest     string
	config       string
	input        string
	format       string
	onlyOutdated bool
}

func newFilterCmd(v *viper.Viper) *cobra.Command {
	filterCmd := &cobra.Command{
		Use:   "filter",
		Short: "Keep the updates permitted by the allow list",
		Long: `Read candidate updates in the format of "composer outdated --format=json" and
print the ones whose package name matches the allow list.

The allow list is read from --config (YAML) or --manifest (composer.json). Without
either flag, composer.json in the working directory is used when present. A missing
or unreadable allow list is logged as a warning and permits every update.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := filterOptions{
				manifest:     v.GetString("manifest"),
				config:       v.GetString("config"),
				input:        v.GetString("input"),
				format:       v.GetString("format"),
				onlyOutdated: v.GetBool("only-outdated"),
			}
			return runFilter(cmd, opts)
		},
	}

	filterCmd.Flags().String("manifest", "", "Path to the package manifest holding the allow list")
	filterCmd.Flags().String("config", "", "Path to a YAML configuration file")
	filterCmd.Flags().String("input", "", "Path to the outdated report (defaults to stdin)")
	filterCmd.Flags().String("format", formatJSON, "Output format (json or table)")
	filterCmd.Flags().Bool("only-outdated", false, "Drop updates whose latest version is not newer")
	filterCmd.MarkFlagsMutuallyExclusive("manifest", "config")

	for _, name := range []string{"manifest", "config", "input", "format", "only-outdated"} {
		if err := v.BindPFlag(name, filterCmd.Flags().Lookup(name)); err != nil {
			slog.Error("Error binding flag", "flag", name, "error", err)
		}
	}

	return filterCmd
}

func runFilter(cmd *cobra.Command, opts filterOptions) error {
	if opts.format != formatJSON && opts.format != formatTable {
		return fmt.Errorf("unsupported format %q (use %s or %s)", opts.format, formatJSON, formatTable)
	}

	allowList := filtering.NewAllowListFromConfig(loadAllowListSource(opts))
	allowList.SetLogger(filtering.NewSlogLogger(slog.Default()))

	data, err := readInput(cmd.InOrStdin(), opts.input)
	if err != nil {
		return err
	}

	list, err := updates.ParseOutdated(data)
	if err != nil {
		return err
	}

	if opts.onlyOutdated {
		list = updates.OnlyOutdated(list)
	}

	permitted, err := updates.NewStage(allowList).Run(cmd.Context(), list)
	if err != nil {
		return err
	}

	return writeUpdates(cmd.OutOrStdout(), permitted, opts.format)
}

// loadAllowListSource returns the configured allow list source, or nil when
// nothing is configured. A source that cannot be loaded is logged and treated
// as absent, so every update is permitted.
func loadAllowListSource(opts filterOptions) config.AllowListSource {
	switch {
	case opts.config != "":
		cfg, err := config.LoadConfig(config.WithConfigPath(opts.config))
		if err != nil {
			slog.Warn("Failed to load config, permitting every update", "path", opts.config, "error", err)
			return nil
		}
		return cfg
	case opts.manifest != "":
		return loadManifest(opts.manifest)
	}

	if _, err := os.Stat(defaultManifest); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("No allow list configured")
		} else {
			slog.Warn("Failed to stat manifest, permitting every update", "path", defaultManifest, "error", err)
		}
		return nil
	}

	return loadManifest(defaultManifest)
}

func loadManifest(path string) config.AllowListSource {
	manifest, err := config.LoadManifest(path)
	if err != nil {
		slog.Warn("Failed to load manifest, permitting every update", "path", path, "error", err)
		return nil
	}
	return manifest
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read updates from stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read updates: %w", err)
	}
	return data, nil
}

func writeUpdates(w io.Writer, list []updates.Update, format string) error {
	if format == formatTable {
		table := tablewriter.NewWriter(w)
		table.Header("Package", "Installed", "Latest", "Status")
		for _, u := range list {
			if err := table.Append([]string{u.Name, u.Version, u.Latest, u.LatestStatus}); err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
		return nil
	}

	// Records are written as they were read rather than through an encoder,
	// which would compact them.
	var b bytes.Buffer
	b.WriteString("{\n  \"installed\": [")
	for i, u := range list {
		record, err := u.MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to encode update %s: %w", u.Name, err)
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString("\n    ")
		b.Write(record)
	}
	if len(list) > 0 {
		b.WriteString("\n  ")
	}
	b.WriteString("]\n}\n")

	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("failed to write updates: %w", err)
	}
	return nil
}
