package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angleworks/protractor/internal/solver"
)

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <diagram.yaml>",
		Short: "Check whether a diagram is solvable",
		Long: `Dry-run the solver against a copy of the diagram and report whether
every angle could be derived without contradiction. The diagram file is
never modified and no solving history is produced.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	g, err := loadGraph(formatter, path)
	if err != nil {
		return err
	}

	rep := solver.New().CanBeSolved(g)

	if opts.Format == "json" {
		if err := formatter.Success(rep); err != nil {
			return err
		}
	} else {
		printCheckText(formatter, rep)
	}

	if !rep.Solvable {
		return NewExitError(ExitFailure, fmt.Sprintf("not solvable: %s", rep.Reason))
	}
	return nil
}

func printCheckText(formatter *OutputFormatter, rep *solver.Report) {
	w := formatter.Writer
	if rep.Solvable {
		fmt.Fprintf(w, "✓ solvable: %s\n", rep.Reason)
	} else {
		fmt.Fprintf(w, "✗ not solvable: %s\n", rep.Reason)
	}
	d := rep.Details
	fmt.Fprintf(w, "  %d/%d angles solved in %d iteration(s)\n", d.SolvedAngles, d.TotalAngles, d.Iterations)
	for _, c := range d.Contradictions {
		fmt.Fprintf(w, "  contradiction: %s\n", c)
	}
}
