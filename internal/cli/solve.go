package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/angleworks/protractor/internal/geom"
	"github.com/angleworks/protractor/internal/solver"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	MaxIterations int

	// TokenGenerator overrides the run-token generator (for testing).
	// Nil defaults to UUIDv7.
	TokenGenerator solver.RunTokenGenerator
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve <diagram.yaml>",
		Short: "Solve a diagram's unknown angles",
		Long: `Load a diagram snapshot and run the theorem rules to a fixed point,
printing the derived angle values and the solving history.

Example:
  protractor solve ./diagram.yaml
  protractor solve ./diagram.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.MaxIterations, "max-iterations", solver.DefaultMaxIterations, "iteration ceiling for the solving loop")

	return cmd
}

// solveData is the payload the solve command reports.
type solveData struct {
	*solver.Result
	TotalAngles int                `json:"total_angles"`
	Angles      []solvedAngleValue `json:"angles"`
}

type solvedAngleValue struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Value  *float64 `json:"value"`
	Locked bool     `json:"locked,omitempty"`
}

func runSolve(opts *SolveOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	g, err := loadGraph(formatter, path)
	if err != nil {
		return err
	}

	solverOpts := []solver.Option{solver.WithMaxIterations(opts.MaxIterations)}
	if opts.TokenGenerator != nil {
		solverOpts = append(solverOpts, solver.WithRunTokenGenerator(opts.TokenGenerator))
	}
	res := solver.New(solverOpts...).Solve(g)

	data := &solveData{Result: res, TotalAngles: len(g.Angles), Angles: collectAngles(g)}
	if opts.Format == "json" {
		if err := formatter.Success(data); err != nil {
			return err
		}
	} else {
		printSolveText(formatter, data)
	}

	if res.Outcome == solver.OutcomeFailed {
		return NewExitError(ExitFailure, fmt.Sprintf("solve failed: %s", res.Error))
	}
	return nil
}

// loadGraph loads a diagram fail-fast and builds the indexed graph,
// mapping each failure to the matching error code and exit status.
func loadGraph(formatter *OutputFormatter, path string) (*geom.Graph, error) {
	snap, loadErrs := LoadDiagram(path, LoadModeFailFast)
	if len(loadErrs) > 0 {
		code := ErrCodeGeneric
		if le, ok := loadErrs[0].(*LoadError); ok {
			code = le.Code
		}
		_ = formatter.Error(code, loadErrs[0].Error(), nil)
		return nil, WrapExitError(ExitCommandError, "loading diagram", loadErrs[0])
	}

	g, err := geom.Build(snap)
	if err != nil {
		_ = formatter.Error(ErrCodeModel, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "building diagram graph", err)
	}
	return g, nil
}

func collectAngles(g *geom.Graph) []solvedAngleValue {
	out := make([]solvedAngleValue, 0, len(g.Angles))
	for _, a := range g.Angles {
		out = append(out, solvedAngleValue{ID: a.ID, Name: a.Name(), Value: a.Value, Locked: a.Locked()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func printSolveText(formatter *OutputFormatter, data *solveData) {
	w := formatter.Writer
	res := data.Result

	fmt.Fprintf(w, "Outcome: %s (run %s)\n", res.Outcome, res.RunToken)
	if res.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", res.Error)
	}
	fmt.Fprintf(w, "Iterations: %d, solved %d/%d angles\n", res.Iterations, res.SolvedCount, data.TotalAngles)

	fmt.Fprintln(w, "Angles:")
	for _, a := range data.Angles {
		val := "?"
		if a.Value != nil {
			val = fmt.Sprintf("%.1f°", *a.Value)
		}
		lock := ""
		if a.Locked {
			lock = " (locked)"
		}
		fmt.Fprintf(w, "  %s %s = %s%s\n", a.ID, a.Name, val, lock)
	}

	if len(res.History) > 0 {
		fmt.Fprintln(w, "History:")
		for _, h := range res.History {
			fmt.Fprintf(w, "  %s = %.1f° — %s (%s)\n", h.AngleName, h.Value, h.Theorem, h.Reason)
		}
	}

	if len(res.Diagnostics) > 0 {
		fmt.Fprintln(w, "Diagnostics:")
		for _, d := range res.Diagnostics {
			fmt.Fprintf(w, "  [%s] %s\n", d.Code, d.Message)
		}
	}

	v := res.Validation
	parts := []string{
		fmt.Sprintf("%d valid", v.Valid),
		fmt.Sprintf("%d invalid", v.Invalid),
		fmt.Sprintf("%d incomplete", v.Incomplete),
	}
	fmt.Fprintf(w, "Triangles: %s\n", strings.Join(parts, ", "))
}
