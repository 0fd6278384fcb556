package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/angleworks/protractor/internal/geom"
)

// DefaultRunToken is used when a scenario does not fix its own token.
// Keeping it constant makes golden files stable across runs.
const DefaultRunToken = "test-run-default"

// Scenario is one conformance test case: an inline diagram plus the
// expected solve outcome.
type Scenario struct {
	// Name uniquely identifies the scenario; it is also the golden file
	// name.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description,omitempty"`

	// RunToken fixes the solver run token for deterministic output.
	RunToken string `yaml:"run_token,omitempty"`

	// MaxIterations overrides the solver's iteration cap when positive.
	MaxIterations int `yaml:"max_iterations,omitempty"`

	// Diagram is the inline snapshot the solver runs against.
	Diagram *geom.Snapshot `yaml:"diagram"`

	// Expect declares the expected outcome.
	Expect Expectation `yaml:"expect"`
}

// Expectation is the declarative outcome block of a scenario.
type Expectation struct {
	// Outcome is the expected solve outcome; empty means "completed".
	Outcome string `yaml:"outcome,omitempty"`

	// SolvedCount is the expected number of known angles after solving.
	// Nil skips the check.
	SolvedCount *int `yaml:"solved_count,omitempty"`

	// Angles maps angle ids to expected final values, compared within
	// the solver tolerance.
	Angles map[string]float64 `yaml:"angles,omitempty"`

	// Unknown lists angle ids that must still be unknown after solving.
	Unknown []string `yaml:"unknown,omitempty"`
}

// LoadScenario reads and validates a single scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if s.RunToken == "" {
		s.RunToken = DefaultRunToken
	}
	return &s, nil
}

// LoadScenarioDir loads every *.yaml scenario in a directory, sorted by
// file name so the suite order is stable.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenarios found in %s", dir)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("missing name")
	}
	if s.Diagram == nil {
		return fmt.Errorf("missing diagram")
	}
	if len(s.Diagram.Angles) == 0 {
		return fmt.Errorf("diagram has no angles")
	}
	switch s.Expect.Outcome {
	case "", "completed", "failed":
	default:
		return fmt.Errorf("invalid expected outcome %q", s.Expect.Outcome)
	}
	return nil
}
