package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tsg/pkg/errors"
)

// errInvalid is returned once violations have been printed.
var errInvalid = stderrors.New("document is invalid")

type checkOpts struct {
	all bool
}

// checkCommand creates the check command for parsing and validating documents.
func (c *CLI) checkCommand() *cobra.Command {
	var opts checkOpts

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Parse and validate a TSG document",
		Long: `Parse and validate a TSG document.

By default checking stops at the first problem. With --all every graph is
validated and all violations are reported in document order. FILE may be
"-" for stdin and may be gzip-compressed.`,
		Example: `  tsg check sample.tsg
  tsg check --all sample.tsg.gz
  zcat sample.tsg.gz | tsg check -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.all, "all", false, "report every violation instead of the first")

	return cmd
}

func (c *CLI) runCheck(cmd *cobra.Command, path string, opts checkOpts) error {
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
	if cmd.Flags().Changed("all") {
		popts.All = opts.all
	}

	sw := startStopwatch(c.Logger)
	res, err := runner.Check(cmd.Context(), input, popts)
	if err != nil {
		if n := reportViolations(err); n > 0 {
			printError("%s: %d violation(s)", path, n)
			return errInvalid
		}
		return err
	}
	sw.done("checked %s", path)

	printSuccess("%s is valid", path)
	printStats(res)
	printNextStep("Convert it", fmt.Sprintf("tsg convert %s --to gtf", path))
	return nil
}

// reportViolations prints every coded error in err and returns how many
// there were. Errors without a code are left to the caller.
func reportViolations(err error) int {
	var list errors.List
	if stderrors.As(err, &list) {
		for _, e := range list {
			printViolation(e)
		}
		return len(list)
	}
	var e *errors.Error
	if stderrors.As(err, &e) {
		printViolation(e)
		return 1
	}
	return 0
}
