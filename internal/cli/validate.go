package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angleworks/protractor/internal/geom"
)

// ValidationResult holds the outcome of diagram validation.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Points int      `json:"points"`
	Angles int      `json:"angles"`
	Errors []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <diagram.yaml>",
		Short: "Validate a diagram snapshot without solving",
		Long: `Check a diagram file against the snapshot schema and the model
invariants (declared points, unique angle identities, pairwise-adjacent
triangles) without running the solver. Collects every violation.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	snap, loadErrs := LoadDiagram(path, LoadModeCollectAll)
	if len(loadErrs) > 0 {
		return outputValidationErrors(formatter, loadErrs)
	}

	if _, err := geom.Build(snap); err != nil {
		return outputValidationErrors(formatter, []error{err})
	}

	result := &ValidationResult{Valid: true, Points: len(snap.Points), Angles: len(snap.Angles)}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ diagram valid (%d points, %d angles)\n", result.Points, result.Angles)
	return nil
}

func outputValidationErrors(formatter *OutputFormatter, errs []error) error {
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Error()
	}

	code := ErrCodeModel
	if le, ok := errs[0].(*LoadError); ok {
		code = le.Code
	}

	if formatter.Format == "json" {
		result := &ValidationResult{Valid: false, Errors: messages}
		if err := formatter.Error(code, "diagram validation failed", result); err != nil {
			return err
		}
	} else {
		for _, m := range messages {
			fmt.Fprintf(formatter.Writer, "✗ %s\n", m)
		}
	}

	// A file we could not reach is a command error; a file that fails the
	// schema or the model invariants is a validation failure.
	exit := ExitFailure
	if code == ErrCodeNotFound || code == ErrCodeReadError {
		exit = ExitCommandError
	}
	return WrapExitError(exit, fmt.Sprintf("%s: diagram validation failed", code), errs[0])
}
