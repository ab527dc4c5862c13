package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/martinemde/aip/aipparser"
	"github.com/martinemde/aip/browser"
	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <node.aip.txt>",
	Short: "Rewrite an AIP node in canonical form",
	Long:  "Parse a node and print it in canonical layout. With --write the file is rewritten in place.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().BoolP("write", "w", false, "Write the result back to the file")

	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	file := args[0]
	write, _ := cmd.Flags().GetBool("write")
	log := newLogger(cmd.ErrOrStderr())

	text, err := browser.FileLoader{}.Load(cmd.Context(), file)
	if err != nil {
		return err
	}

	node, err := aipparser.ParseString(text)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", file, err)
	}

	formatted := aipparser.Format(node)
	if !write {
		_, err := cmd.OutOrStdout().Write(formatted)
		return err
	}

	if bytes.Equal(formatted, []byte(text)) {
		log.Debug().Str("file", file).Msg("already formatted")
		return nil
	}
	info, err := os.Stat(file)
	if err != nil {
		return fmt.Errorf("stat %s: %w", file, err)
	}
	if err := os.WriteFile(file, formatted, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", file, err)
	}
	log.Info().Str("file", file).Msg("formatted")
	return nil
}
