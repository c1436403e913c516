package cli

import (
	"github.com/spf13/cobra"

	"github.com/plandes/latidx/internal/render"
)

var commandsCmd = &cobra.Command{
	Use:   "commands path...",
	Short: "Report where macros are defined across the project",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		proj, err := newIndexer().CreateProject(toPaths(args))
		if err != nil {
			return err
		}
		locs, err := proj.CommandLocations()
		if err != nil {
			return err
		}
		render.WriteLocations(cmd.OutOrStdout(), locs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
