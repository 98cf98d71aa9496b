package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tsg/pkg/convert"
	"github.com/matzehuels/tsg/pkg/pipeline"
)

type convertOpts struct {
	to         string
	output     string
	bestEffort bool
	paths      bool
	source     string
	width      int
	refresh    bool
	noValidate bool
	traverse   bool
	walkLimit  int
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	names := make([]string, 0, len(convert.Formats()))
	for _, f := range convert.Formats() {
		names = append(names, string(f))
	}

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert a TSG document to another format",
		Long: fmt.Sprintf(`Convert a TSG document to another format.

Supported formats: %s ("fa" and "gff" are accepted as aliases).

The document is validated first unless --no-validate is given. Paths and
edges that the target format cannot express abort the conversion; with
--best-effort they are skipped and reported instead.`, strings.Join(names, ", ")),
		Example: `  tsg convert sample.tsg --to gtf -o sample.gtf
  tsg convert sample.tsg --to fasta --paths
  tsg convert sample.tsg --to fasta --traverse
  tsg convert sample.tsg.gz --to vcf --best-effort -o fusions.vcf.gz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.to, "to", "t", string(pipeline.DefaultFormat), "output format: "+strings.Join(names, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout, .gz compresses)")
	cmd.Flags().BoolVar(&opts.bestEffort, "best-effort", false, "skip unconvertible paths and edges")
	cmd.Flags().BoolVar(&opts.paths, "paths", false, "FASTA: emit one record per path instead of per node")
	cmd.Flags().StringVar(&opts.source, "source", "", "GTF: source column")
	cmd.Flags().IntVar(&opts.width, "width", 0, "FASTA: line width (0 = config default)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().BoolVar(&opts.noValidate, "no-validate", false, "convert without validating first")
	cmd.Flags().BoolVar(&opts.traverse, "traverse", false, "FASTA: one record per source-to-sink walk")
	cmd.Flags().IntVar(&opts.walkLimit, "walk-limit", pipeline.DefaultWalkLimit, "FASTA: maximum walks per graph with --traverse (0 = no limit)")

	_ = cmd.RegisterFlagCompletionFunc("to", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, path string, opts convertOpts) error {
	input, err := c.readInput(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner()
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.pipelineOptions()
	popts.Format = opts.to
	popts.Paths = opts.paths
	if opts.traverse {
		popts.Traverse = true
		popts.WalkLimit = opts.walkLimit
	}
	popts.Refresh = opts.refresh
	popts.SkipValidation = opts.noValidate
	if cmd.Flags().Changed("best-effort") {
		popts.BestEffort = opts.bestEffort
	}
	if opts.source != "" {
		popts.Source = opts.source
	}
	if opts.width > 0 {
		popts.LineWidth = opts.width
	}

	sw := startStopwatch(c.Logger)
	res, err := runner.Execute(cmd.Context(), input, popts)
	if err != nil {
		if n := reportViolations(err); n > 0 {
			printError("%s: conversion failed", path)
			return errInvalid
		}
		return err
	}

	if err := c.writeOutput(opts.output, res.Artifact); err != nil {
		return err
	}
	sw.done("converted %s to %s", path, res.Report.Format)

	for _, skipped := range res.Report.Skipped {
		printWarning("skipped %s: %s", skipped.Element, skipped.Message)
	}
	if opts.output != "" && opts.output != stdio {
		if res.CacheHit {
			printSuccess("Wrote cached %s artifact", res.Report.Format)
		} else {
			printSuccess("Wrote %d %s records", res.Report.Records, res.Report.Format)
		}
		printFile(opts.output)
		printStats(res)
	}
	return nil
}
