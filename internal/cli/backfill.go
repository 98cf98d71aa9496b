package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
)

type backfillOpts struct {
	fasta      string
	output     string
	bestEffort bool
}

// backfillCommand creates the backfill command that fills node sequences
// from a FASTA file.
func (c *CLI) backfillCommand() *cobra.Command {
	var opts backfillOpts

	cmd := &cobra.Command{
		Use:   "backfill FILE",
		Short: "Fill node sequences from FASTA",
		Long: `Fill node sequences from FASTA records.

Each record id names a node as graph:node; a bare node id is accepted when
the document has a single graph. Existing sequences are replaced. The
updated document is written as TSG.`,
		Example: `  tsg backfill sample.tsg --fasta nodes.fa -o filled.tsg
  tsg backfill sample.tsg.gz --fasta nodes.fa.gz --best-effort`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBackfill(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.fasta, "fasta", "", "FASTA file with node sequences (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.bestEffort, "best-effort", false, "skip records naming unknown nodes")
	_ = cmd.MarkFlagRequired("fasta")

	return cmd
}

func (c *CLI) runBackfill(cmd *cobra.Command, path string, opts backfillOpts) error {
	input, err := c.readInput(path)
	if err != nil {
		return err
	}
	seqs, err := c.readInput(opts.fasta)
	if err != nil {
		return err
	}

	runner, err := c.newRunner()
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := c.pipelineOptions()
	if cmd.Flags().Changed("best-effort") {
		popts.BestEffort = opts.bestEffort
	}

	res, err := runner.Backfill(cmd.Context(), input, bytes.NewReader(seqs), popts)
	if err != nil {
		if reportViolations(err) > 0 {
			return errInvalid
		}
		return err
	}

	if err := c.writeOutput(opts.output, res.Artifact); err != nil {
		return err
	}
	for _, skipped := range res.Report.Skipped {
		printWarning("skipped %s: %s", skipped.Element, skipped.Message)
	}
	if opts.output != "" && opts.output != stdio {
		printSuccess("Filled %s", pluralNodes(res.Report.Records))
		printFile(opts.output)
	}
	return nil
}

func pluralNodes(n int) string {
	if n == 1 {
		return "1 node"
	}
	return fmt.Sprintf("%d nodes", n)
}
