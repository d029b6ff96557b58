package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/violinist-dev/allowlist-handler/internal/filtering"
)

func newMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <pattern> <name>...",
		Short: "Check package names against a single allow list pattern",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := args[0]
			for _, name := range args[1:] {
				matched, err := filtering.MatchPattern(pattern, name)
				if err != nil {
					return err
				}

				result := "no match"
				if matched {
					result = "match"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, result); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
