package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/martinemde/aip/aipparser"
	"github.com/martinemde/aip/browser"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var checkCmd = &cobra.Command{
	Use:   "check <node.aip.txt>...",
	Short: "Parse and validate AIP nodes",
	Long:  "Parse each node, report structural errors and validation warnings, and optionally dump the parsed structure.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringP("output", "o", "text", "Output format: text, yaml or json")
	checkCmd.Flags().Bool("strict", false, "Treat validation warnings as failures")

	_ = viper.BindPFlag("output", checkCmd.Flags().Lookup("output"))

	rootCmd.AddCommand(checkCmd)
}

// checkReport is the result of checking one file.
type checkReport struct {
	File     string          `yaml:"file" json:"file"`
	Error    string          `yaml:"error,omitempty" json:"error,omitempty"`
	Issues   []string        `yaml:"issues,omitempty" json:"issues,omitempty"`
	Node     *aipparser.Node `yaml:"node,omitempty" json:"node,omitempty"`
	failed   bool
	warnings []aipparser.Diagnostic
}

func runCheck(cmd *cobra.Command, args []string) error {
	output := viper.GetString("output")
	strict, _ := cmd.Flags().GetBool("strict")
	log := newLogger(cmd.ErrOrStderr())

	switch output {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("unknown output format %q (want text, yaml or json)", output)
	}

	loader := browser.FileLoader{}
	reports := make([]checkReport, 0, len(args))
	var failed, warned int
	for _, file := range args {
		r := checkFile(cmd.Context(), loader, file)
		log.Debug().Str("file", file).Bool("failed", r.failed).Int("issues", len(r.Issues)).Msg("checked")
		if r.failed {
			failed++
		}
		if len(r.Issues) > 0 {
			warned++
		}
		reports = append(reports, r)
	}

	if err := writeReports(cmd.OutOrStdout(), output, reports); err != nil {
		return err
	}

	switch {
	case failed > 0:
		return fmt.Errorf("%d of %d file(s) failed to parse", failed, len(args))
	case strict && warned > 0:
		return fmt.Errorf("%d of %d file(s) have validation warnings", warned, len(args))
	}
	return nil
}

func checkFile(ctx context.Context, loader browser.Loader, file string) checkReport {
	r := checkReport{File: file}

	text, err := loader.Load(ctx, file)
	if err != nil {
		r.failed = true
		r.Error = err.Error()
		return r
	}

	node, err := aipparser.ParseString(text)
	if err != nil {
		r.failed = true
		var fe *aipparser.FormatError
		if errors.As(err, &fe) {
			r.Error = "format error: " + fe.Error()
		} else {
			r.Error = err.Error()
		}
		return r
	}

	r.Node = node
	r.warnings = aipparser.Validate(node)
	r.Issues = aipparser.Issues(node)
	return r
}

func writeReports(w io.Writer, output string, reports []checkReport) error {
	switch output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(reports)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, r := range reports {
		if r.failed {
			fmt.Fprintf(w, "%s: FAIL %s\n", r.File, r.Error)
			continue
		}
		fmt.Fprintf(w, "%s: ok (%s, %d content lines, %d edges)\n", r.File, r.Node.Title, len(r.Node.Content), len(r.Node.Edges))
		for _, d := range r.warnings {
			fmt.Fprintf(w, "  %s\n", d)
		}
	}
	return nil
}
