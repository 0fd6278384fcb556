package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/angleworks/protractor/internal/geom"
)

// LoadMode controls how errors are handled during diagram loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadError is one positioned error from diagram loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// diagramSchema constrains a decoded diagram document before it is
// turned into a snapshot: non-empty ids, two rays per angle, three
// vertices per triangle, degree values inside (0, 360), and the "?"
// sentinel as the only non-numeric value spelling.
const diagramSchema = `
#PointID: string & =~"^\\S+$"
#Degrees: number & >0 & <360

points: [...#PointID]
adjacency?: {[string]: [...#PointID]}
lines?: [...[...#PointID]]
circles?: [...{
	center: #PointID
	on_circle: [...#PointID]
}]
triangles?: [...[#PointID, #PointID, #PointID]]
angles: [...{
	id:          string & =~"^\\S+$"
	vertex:      #PointID
	rays:        [#PointID, #PointID]
	value?:      #Degrees | "?" | null
	label?:      string
	constraint?: #Degrees | null
}]
`

// optionalDegrees decodes a degree value that may be absent, null, or the
// "?" unknown sentinel.
type optionalDegrees struct {
	v *float64
}

func (o *optionalDegrees) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" || node.Value == geom.UnknownSentinel {
		o.v = nil
		return nil
	}
	var f float64
	if err := node.Decode(&f); err != nil {
		return fmt.Errorf("value %q: want a number or %q", node.Value, geom.UnknownSentinel)
	}
	o.v = &f
	return nil
}

// diagramFile is the YAML wire shape of a diagram snapshot.
type diagramFile struct {
	Points    []string            `yaml:"points"`
	Adjacency map[string][]string `yaml:"adjacency"`
	Lines     [][]string          `yaml:"lines"`
	Circles   []struct {
		Center   string   `yaml:"center"`
		OnCircle []string `yaml:"on_circle"`
	} `yaml:"circles"`
	Triangles [][]string `yaml:"triangles"`
	Angles    []struct {
		ID         string          `yaml:"id"`
		Vertex     string          `yaml:"vertex"`
		Rays       []string        `yaml:"rays"`
		Value      optionalDegrees `yaml:"value"`
		Label      string          `yaml:"label"`
		Constraint optionalDegrees `yaml:"constraint"`
	} `yaml:"angles"`
}

// LoadDiagram reads a YAML diagram snapshot, validates it against the
// embedded CUE schema, and converts it to a snapshot ready for graph
// construction. Fail-fast mode returns at most one error; collect-all
// returns every schema violation found.
func LoadDiagram(path string, mode LoadMode) (*geom.Snapshot, []error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("diagram not found: %s", path)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeReadError, Message: fmt.Sprintf("reading diagram: %v", err)}}
	}

	// First decode generically for schema validation; the typed decode
	// below only runs against documents the schema accepted.
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeDecodeError, Message: fmt.Sprintf("decoding %s: %v", path, err)}}
	}
	if errs := validateAgainstSchema(raw, mode); len(errs) > 0 {
		return nil, errs
	}

	var file diagramFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeDecodeError, Message: fmt.Sprintf("decoding %s: %v", path, err)}}
	}
	return file.toSnapshot(), nil
}

// validateAgainstSchema unifies the decoded document with the diagram
// schema. CUE reports every violation; fail-fast truncates to the first.
func validateAgainstSchema(raw any, mode LoadMode) []error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(diagramSchema, cue.Filename("diagram-schema.cue"))
	if err := schema.Err(); err != nil {
		return []error{&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("compiling diagram schema: %v", err)}}
	}

	doc := ctx.Encode(raw)
	if err := doc.Err(); err != nil {
		return []error{&LoadError{Code: ErrCodeDecodeError, Message: fmt.Sprintf("encoding document: %v", err)}}
	}

	unified := schema.Unify(doc)
	err := unified.Validate(cue.Final(), cue.Concrete(true))
	if err == nil {
		return nil
	}

	var errs []error
	for _, e := range cueerrors.Errors(err) {
		errs = append(errs, &LoadError{
			Code:    ErrCodeSchema,
			Message: e.Error(),
			Pos:     e.Position(),
		})
		if mode == LoadModeFailFast {
			break
		}
	}
	return errs
}

func (f *diagramFile) toSnapshot() *geom.Snapshot {
	s := &geom.Snapshot{}
	for _, id := range f.Points {
		s.Points = append(s.Points, geom.Point{ID: geom.PointID(id)})
	}
	if len(f.Adjacency) > 0 {
		s.Adjacency = make(map[geom.PointID][]geom.PointID, len(f.Adjacency))
		for from, tos := range f.Adjacency {
			s.Adjacency[geom.PointID(from)] = toPointIDs(tos)
		}
	}
	for _, l := range f.Lines {
		s.Lines = append(s.Lines, toPointIDs(l))
	}
	for _, c := range f.Circles {
		s.Circles = append(s.Circles, geom.Circle{
			Center:   geom.PointID(c.Center),
			OnCircle: toPointIDs(c.OnCircle),
		})
	}
	for _, t := range f.Triangles {
		s.Triangles = append(s.Triangles, toPointIDs(t))
	}
	for _, a := range f.Angles {
		angle := &geom.Angle{
			ID:         a.ID,
			Vertex:     geom.PointID(a.Vertex),
			Label:      a.Label,
			Value:      a.Value.v,
			Constraint: a.Constraint.v,
		}
		if len(a.Rays) == 2 {
			angle.Rays = [2]geom.PointID{geom.PointID(a.Rays[0]), geom.PointID(a.Rays[1])}
		}
		s.Angles = append(s.Angles, angle)
	}
	return s
}

func toPointIDs(ids []string) []geom.PointID {
	out := make([]geom.PointID, len(ids))
	for i, id := range ids {
		out[i] = geom.PointID(id)
	}
	return out
}
