package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plandes/latidx/internal/render"
)

var (
	depsSource   string
	depsFormat   string
	depsRelative bool
	depsCycles   bool
)

var depsCmd = &cobra.Command{
	Use:   "deps path...",
	Short: "List package dependencies as a tree",
	Long: `Parse the given files or directories and print the usepackage
dependency tree. Paths may also be given as one path-separated list.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(depsFormat)
		if err != nil {
			return err
		}
		proj, err := newIndexer().CreateProject(toPaths(args))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if depsCycles {
			cycles, err := proj.ImportCycles()
			if err != nil {
				return err
			}
			for _, cycle := range cycles {
				fmt.Fprintln(out, strings.Join(cycle, " -> "))
			}
			return nil
		}
		dep, err := proj.Dependencies()
		if err != nil {
			return err
		}
		if depsSource != "" {
			if dep, err = resolveSource(proj, depsSource); err != nil {
				return err
			}
		}
		switch format {
		case FormatList:
			for _, path := range dep.FilePaths() {
				fmt.Fprintln(out, path)
			}
		case FormatText:
			fmt.Fprint(out, render.TreeText(dep.Tree(depsRelative)))
		case FormatJSON:
			s, err := render.ToJSON(dep.Tree(depsRelative))
			if err != nil {
				return err
			}
			fmt.Fprintln(out, s)
		case FormatYAML:
			s, err := render.ToYAML(dep.Tree(depsRelative))
			if err != nil {
				return err
			}
			fmt.Fprint(out, s)
		}
		return nil
	},
}

func init() {
	depsCmd.Flags().StringVarP(&depsSource, "source", "s", "", "only print the tree under this source file")
	depsCmd.Flags().StringVarP(&depsFormat, "format", "f", string(FormatText), "output format: txt, json, yaml or list")
	depsCmd.Flags().BoolVarP(&depsRelative, "relative", "r", false, "use paths relative to the common base directory")
	depsCmd.Flags().BoolVar(&depsCycles, "cycles", false, "print import cycles instead of the tree")
	rootCmd.AddCommand(depsCmd)
}
