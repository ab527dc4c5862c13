package main

import (
	"github.com/martinemde/aip/browser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var browseCmd = &cobra.Command{
	Use:   "browse <node.aip.txt>",
	Short: "Browse AIP nodes interactively",
	Long:  "Print a node and its edges, then follow the edge you pick until you quit.",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowse,
}

func init() {
	browseCmd.Flags().Int("max-content-lines", browser.DefaultMaxContentLines, "Content lines shown per node (0 shows all)")

	_ = viper.BindPFlag("max_content_lines", browseCmd.Flags().Lookup("max-content-lines"))

	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	b := browser.New(cmd.InOrStdin(), cmd.OutOrStdout())
	b.MaxContentLines = viper.GetInt("max_content_lines")
	b.Resolver = browser.Resolver{Extension: viper.GetString("extension")}
	b.Logger = newLogger(cmd.ErrOrStderr())

	// The browser has already reported load/parse failures on its output.
	return b.Run(cmd.Context(), args[0])
}
