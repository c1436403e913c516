package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plandes/latidx/internal/render"
)

var filesFormat string

var filesCmd = &cobra.Command{
	Use:   "files path...",
	Short: "List parsed files and their artifacts",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(filesFormat)
		if err != nil {
			return err
		}
		proj, err := newIndexer().CreateProject(toPaths(args))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		switch format {
		case FormatList:
			for _, f := range proj.Files() {
				fmt.Fprintln(out, f.Path())
			}
		case FormatText:
			return render.WriteFiles(out, proj)
		case FormatJSON:
			dct, err := render.FilesDict(proj)
			if err != nil {
				return err
			}
			s, err := render.ToJSON(dct)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, s)
		case FormatYAML:
			dct, err := render.FilesDict(proj)
			if err != nil {
				return err
			}
			s, err := render.ToYAML(dct)
			if err != nil {
				return err
			}
			fmt.Fprint(out, s)
		}
		return nil
	},
}

func init() {
	filesCmd.Flags().StringVarP(&filesFormat, "format", "f", string(FormatText), "output format: txt, json, yaml or list")
	rootCmd.AddCommand(filesCmd)
}
