package geom

import (
	"fmt"
	"sort"
)

// Snapshot is the one-shot input the external editor hands to the solver:
// points, the undirected adjacency relation, ordered collinearity lines,
// circles, enumerated triangles, and angle records. The solver mutates
// only angle values (in place for a real solve, on a clone for a dry run)
// and creates or destroys nothing.
type Snapshot struct {
	Points    []Point               `json:"points" yaml:"points"`
	Adjacency map[PointID][]PointID `json:"adjacency" yaml:"adjacency"`
	Lines     [][]PointID           `json:"lines" yaml:"lines"`
	Circles   []Circle              `json:"circles" yaml:"circles"`
	Triangles [][]PointID           `json:"triangles" yaml:"triangles"`
	Angles    []*Angle              `json:"angles" yaml:"angles"`
}

// Graph is the indexed view of a snapshot. Build constructs it and the two
// derived indices once per solve call; nothing maintains them
// incrementally.
type Graph struct {
	Points    map[PointID]*Point
	Adjacency map[PointID]map[PointID]bool
	Lines     []*Line
	Circles   []*Circle
	Triangles []*Triangle
	Angles    []*Angle

	anglesByVertex map[PointID][]*Angle
	angleByKey     map[string]*Angle
	triangleByKey  map[string]*Triangle
	linesByPoint   map[PointID][]*Line
}

// Build validates a snapshot and constructs the indexed graph.
//
// Validation enforces the model invariants the theorem rules rely on:
//   - every id referenced by adjacency, lines, circles, triangles and
//     angles names a declared point
//   - at most one angle per (vertex, unordered ray pair)
//   - triangle vertices are three distinct, pairwise-adjacent points
//   - an angle's rays are distinct from each other and from its vertex
//
// Labels are NFC-normalized here so every later comparison is a plain
// string compare.
func Build(s *Snapshot) (*Graph, error) {
	g := &Graph{
		Points:         make(map[PointID]*Point, len(s.Points)),
		Adjacency:      make(map[PointID]map[PointID]bool, len(s.Points)),
		anglesByVertex: make(map[PointID][]*Angle),
		angleByKey:     make(map[string]*Angle, len(s.Angles)),
		triangleByKey:  make(map[string]*Triangle, len(s.Triangles)),
		linesByPoint:   make(map[PointID][]*Line),
	}

	for i := range s.Points {
		p := s.Points[i]
		if p.ID == "" {
			return nil, fmt.Errorf("point %d: empty id", i)
		}
		if _, dup := g.Points[p.ID]; dup {
			return nil, fmt.Errorf("duplicate point id %q", p.ID)
		}
		g.Points[p.ID] = &Point{ID: p.ID}
		g.Adjacency[p.ID] = make(map[PointID]bool)
	}

	for from, tos := range s.Adjacency {
		if _, ok := g.Points[from]; !ok {
			return nil, fmt.Errorf("adjacency references unknown point %q", from)
		}
		for _, to := range tos {
			if _, ok := g.Points[to]; !ok {
				return nil, fmt.Errorf("adjacency %q references unknown point %q", from, to)
			}
			// Undirected: store both directions regardless of input shape.
			g.Adjacency[from][to] = true
			g.Adjacency[to][from] = true
		}
	}

	for i, ids := range s.Lines {
		if len(ids) < 2 {
			return nil, fmt.Errorf("line %d: needs at least two points", i)
		}
		for _, id := range ids {
			if _, ok := g.Points[id]; !ok {
				return nil, fmt.Errorf("line %d references unknown point %q", i, id)
			}
		}
		l := &Line{Points: append([]PointID(nil), ids...)}
		g.Lines = append(g.Lines, l)
		for _, id := range ids {
			g.linesByPoint[id] = append(g.linesByPoint[id], l)
		}
	}

	for i := range s.Circles {
		c := s.Circles[i]
		if _, ok := g.Points[c.Center]; !ok {
			return nil, fmt.Errorf("circle %d: unknown center %q", i, c.Center)
		}
		for _, id := range c.OnCircle {
			if _, ok := g.Points[id]; !ok {
				return nil, fmt.Errorf("circle %d references unknown point %q", i, id)
			}
		}
		g.Circles = append(g.Circles, &Circle{
			Center:   c.Center,
			OnCircle: append([]PointID(nil), c.OnCircle...),
		})
	}

	for i, ids := range s.Triangles {
		if len(ids) != 3 {
			return nil, fmt.Errorf("triangle %d: needs exactly three points, got %d", i, len(ids))
		}
		t := NewTriangle(ids[0], ids[1], ids[2])
		a, b, c := t.Vertices[0], t.Vertices[1], t.Vertices[2]
		if a == b || b == c {
			return nil, fmt.Errorf("triangle %d: repeated vertex", i)
		}
		for _, id := range t.Vertices {
			if _, ok := g.Points[id]; !ok {
				return nil, fmt.Errorf("triangle %d references unknown point %q", i, id)
			}
		}
		if !g.Adjacency[a][b] || !g.Adjacency[b][c] || !g.Adjacency[a][c] {
			return nil, fmt.Errorf("triangle %d (%s,%s,%s): vertices not pairwise adjacent", i, a, b, c)
		}
		if _, dup := g.triangleByKey[t.Key()]; dup {
			return nil, fmt.Errorf("duplicate triangle (%s,%s,%s)", a, b, c)
		}
		tc := t
		g.Triangles = append(g.Triangles, &tc)
		g.triangleByKey[tc.Key()] = &tc
	}

	for i, a := range s.Angles {
		if a == nil {
			return nil, fmt.Errorf("angle %d: nil record", i)
		}
		if a.ID == "" {
			return nil, fmt.Errorf("angle %d: empty id", i)
		}
		if _, ok := g.Points[a.Vertex]; !ok {
			return nil, fmt.Errorf("angle %s: unknown vertex %q", a.ID, a.Vertex)
		}
		for _, r := range a.Rays {
			if _, ok := g.Points[r]; !ok {
				return nil, fmt.Errorf("angle %s: unknown ray point %q", a.ID, r)
			}
			if r == a.Vertex {
				return nil, fmt.Errorf("angle %s: ray point equals vertex %q", a.ID, r)
			}
		}
		if a.Rays[0] == a.Rays[1] {
			return nil, fmt.Errorf("angle %s: degenerate ray pair %q", a.ID, a.Rays[0])
		}
		a.Label = NormalizeLabel(a.Label)
		if a.Constraint != nil {
			// A locked angle always exposes its locked value.
			v := *a.Constraint
			a.Value = &v
		}
		key := a.Key()
		if other, dup := g.angleByKey[key]; dup {
			return nil, fmt.Errorf("angles %s and %s denote the same (vertex, ray pair)", other.ID, a.ID)
		}
		g.angleByKey[key] = a
		g.Angles = append(g.Angles, a)
		g.anglesByVertex[a.Vertex] = append(g.anglesByVertex[a.Vertex], a)
	}

	return g, nil
}

// AnglesAt returns the angles whose vertex is v, in declaration order.
func (g *Graph) AnglesAt(v PointID) []*Angle {
	return g.anglesByVertex[v]
}

// FindAngle returns the angle at vertex with the given unordered ray pair,
// or nil if the snapshot has no such record.
func (g *Graph) FindAngle(vertex, r1, r2 PointID) *Angle {
	return g.angleByKey[AngleKey(vertex, r1, r2)]
}

// TriangleFor returns the enumerated triangle with the given vertices in
// any order, or nil.
func (g *Graph) TriangleFor(a, b, c PointID) *Triangle {
	return g.triangleByKey[TriangleKey(a, b, c)]
}

// TriangleAngle returns the interior angle of t at vertex v: the angle at
// v whose rays are the other two triangle vertices. Returns nil if v is
// not a vertex of t or the snapshot has no record for that angle.
func (g *Graph) TriangleAngle(t *Triangle, v PointID) *Angle {
	o1, o2, ok := t.Others(v)
	if !ok {
		return nil
	}
	return g.FindAngle(v, o1, o2)
}

// LinesThrough returns every line containing p.
func (g *Graph) LinesThrough(p PointID) []*Line {
	return g.linesByPoint[p]
}

// NeighborCount returns the number of adjacency neighbors of v.
func (g *Graph) NeighborCount(v PointID) int {
	return len(g.Adjacency[v])
}

// Vertices returns every point id that has at least one angle, sorted.
// Rules iterate this instead of the point map so a solve visits vertices
// in one deterministic order.
func (g *Graph) Vertices() []PointID {
	out := make([]PointID, 0, len(g.anglesByVertex))
	for v := range g.anglesByVertex {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// KnownCount returns the number of angles with a value.
func (g *Graph) KnownCount() int {
	n := 0
	for _, a := range g.Angles {
		if a.Known() {
			n++
		}
	}
	return n
}

// CloneAngles returns a graph sharing every relation (points, adjacency,
// lines, circles, triangles) with g but carrying deep-copied angles and a
// rebuilt angle index. The dry-run checker solves against the clone so the
// live diagram is never touched.
func (g *Graph) CloneAngles() *Graph {
	clone := &Graph{
		Points:         g.Points,
		Adjacency:      g.Adjacency,
		Lines:          g.Lines,
		Circles:        g.Circles,
		Triangles:      g.Triangles,
		anglesByVertex: make(map[PointID][]*Angle, len(g.anglesByVertex)),
		angleByKey:     make(map[string]*Angle, len(g.angleByKey)),
		triangleByKey:  g.triangleByKey,
		linesByPoint:   g.linesByPoint,
	}
	clone.Angles = make([]*Angle, len(g.Angles))
	for i, a := range g.Angles {
		c := *a
		if a.Value != nil {
			v := *a.Value
			c.Value = &v
		}
		if a.Constraint != nil {
			v := *a.Constraint
			c.Constraint = &v
		}
		clone.Angles[i] = &c
		clone.anglesByVertex[c.Vertex] = append(clone.anglesByVertex[c.Vertex], clone.Angles[i])
		clone.angleByKey[c.Key()] = clone.Angles[i]
	}
	return clone
}
