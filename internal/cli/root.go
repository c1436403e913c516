// Package cli implements the latidx command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plandes/latidx/internal/discover"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "latidx",
	Short: "Parse and index LaTeX files",
	Long: `latidx parses LaTeX files for package imports and macro definitions,
builds the project dependency tree, and reports where macros live.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.latidx.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.SetDefault("extensions", discover.DefaultExtensions)
	viper.SetDefault("recurse", true)
}

// initConfig reads the config file and environment and configures
// logging before any subcommand runs.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".latidx")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "using config file:", viper.ConfigFileUsed())
	}

	level := slog.LevelWarn
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: level})))
}

// newIndexer builds the file indexer from the effective configuration.
func newIndexer() discover.Indexer {
	return discover.Indexer{
		Extensions: viper.GetStringSlice("extensions"),
		Recurse:    viper.GetBool("recurse"),
	}
}

// toPaths expands positional arguments into paths, splitting
// path-list-separated entries (':' on Unix) as the single-argument form
// allows.
func toPaths(args []string) []string {
	var paths []string
	for _, arg := range args {
		for _, p := range strings.Split(arg, string(os.PathListSeparator)) {
			if p != "" {
				paths = append(paths, p)
			}
		}
	}
	return paths
}
