// Package app provides the commands of the allowlist CLI.
package app

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/violinist-dev/allowlist-handler/internal/config"
	"github.com/violinist-dev/allowlist-handler/internal/logging"
	"github.com/violinist-dev/allowlist-handler/internal/versions"
)

// NewRootCmd creates the root command. Flags are bound to a fresh viper
// instance, so every ALLOWLIST_<FLAG> environment variable acts as a default.
// The --debug flag lowers level to debug.
func NewRootCmd(level zap.AtomicLevel) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:               "allowlist",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Short:             "Filter dependency updates through a package allow list",
		Long: `allowlist keeps the package updates whose name matches at least one glob
pattern of the project's allow list (extra.violinist.allow_list in composer.json).`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if v.GetBool("debug") {
				level.SetLevel(logging.DebugLevel)
			}
		},
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				slog.Error("Error displaying help", "error", err)
			}
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")
	if err := v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		slog.Error("Error binding debug flag", "error", err)
	}

	rootCmd.AddCommand(newFilterCmd(v))
	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := versions.GetBuildInfo()
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to read format flag: %w", err)
			}

			if format == formatJSON {
				output, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to format version info as JSON: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(output))
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "allowlist %s (commit %s, built %s, %s, %s)\n",
				info.Version, info.Commit, info.BuildDate, info.GoVersion, info.Platform)
			return err
		},
	}
	versionCmd.Flags().String("format", "", "Output format (json)")
	return versionCmd
}
