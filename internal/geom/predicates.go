package geom

// Relation predicates: pure topological tests shared by the theorem rules.
// Every query here answers from line order, adjacency or membership alone;
// none of them can see a coordinate.

// sameSide reports whether a and b lie on l on the same side of pivot.
// All three must be on the line; pivot strictly separates the sides.
func sameSide(l *Line, pivot, a, b PointID) bool {
	pi, ai, bi := l.IndexOf(pivot), l.IndexOf(a), l.IndexOf(b)
	if pi < 0 || ai < 0 || bi < 0 || ai == pi || bi == pi {
		return false
	}
	return (ai < pi) == (bi < pi)
}

// oppositeSides reports whether a and b lie on l on opposite sides of
// pivot.
func oppositeSides(l *Line, pivot, a, b PointID) bool {
	pi, ai, bi := l.IndexOf(pivot), l.IndexOf(a), l.IndexOf(b)
	if pi < 0 || ai < 0 || bi < 0 || ai == pi || bi == pi {
		return false
	}
	return (ai < pi) != (bi < pi)
}

// RayEquivalent reports whether the rays v->a and v->b are the same ray:
// either a and b are the same point, or some line carries v, a and b with
// a and b on the same side of v.
func (g *Graph) RayEquivalent(v, a, b PointID) bool {
	if a == b {
		return true
	}
	for _, l := range g.LinesThrough(v) {
		if sameSide(l, v, a, b) {
			return true
		}
	}
	return false
}

// OppositeRays reports whether v->a and v->b point in opposite directions
// along some line through v.
func (g *Graph) OppositeRays(v, a, b PointID) bool {
	for _, l := range g.LinesThrough(v) {
		if oppositeSides(l, v, a, b) {
			return true
		}
	}
	return false
}

// IsLinearPair reports whether two angles form a linear pair: they share
// their vertex and exactly one ray, and their remaining rays run along a
// registered line through the vertex on opposite sides of it. Such a pair
// sums to a straight angle.
func (g *Graph) IsLinearPair(a, b *Angle) bool {
	_, x, y, ok := SharedRay(a, b)
	if !ok {
		return false
	}
	return g.OppositeRays(a.Vertex, x, y)
}

// IsOverlapping reports whether two angle records denote the same
// geometric angle: the linear-pair shape, except the two non-shared rays
// lie on the same side. That happens either along a line through the
// vertex (the rays coincide outright) or along a line through the shared
// ray point but not the vertex (the far points name the same arm of the
// angle). Overlapping angles must be forced equal, never summed.
func (g *Graph) IsOverlapping(a, b *Angle) bool {
	shared, x, y, ok := SharedRay(a, b)
	if !ok {
		return false
	}
	if g.RayEquivalent(a.Vertex, x, y) {
		return true
	}
	for _, l := range g.LinesThrough(shared) {
		if l.Contains(a.Vertex) {
			continue
		}
		if sameSide(l, shared, x, y) {
			return true
		}
	}
	return false
}

// lineWith returns a line through v that carries both a and b, or nil.
func (g *Graph) lineWith(v, a, b PointID) *Line {
	for _, l := range g.LinesThrough(v) {
		if l.Contains(a) && l.Contains(b) {
			return l
		}
	}
	return nil
}

// AnglesInSector returns every angle at vertex whose rays lie in the
// half-plane sector between the two extreme collinear rays v->n1 and
// v->n2, where n1 and n2 sit on one line through vertex on opposite sides
// of it. A ray qualifies as extreme if it is equivalent to v->n1 or v->n2
// (including farther points along the line on the same side) and as
// interior if its point is off the line entirely. The straight angle
// (n1, vertex, n2) itself is excluded, as is any angle with both rays on
// the same extreme.
//
// The result is what partitions a straight angle: extreme-to-interior
// angles plus purely-interior angles between two non-extreme rays.
func (g *Graph) AnglesInSector(vertex, n1, n2 PointID) []*Angle {
	l := g.lineWith(vertex, n1, n2)
	if l == nil || !oppositeSides(l, vertex, n1, n2) {
		return nil
	}

	classify := func(r PointID) int {
		if !l.Contains(r) {
			return rayInterior
		}
		if sameSide(l, vertex, r, n1) {
			return rayExtreme1
		}
		if sameSide(l, vertex, r, n2) {
			return rayExtreme2
		}
		return rayOutside
	}

	var out []*Angle
	for _, a := range g.AnglesAt(vertex) {
		c0, c1 := classify(a.Rays[0]), classify(a.Rays[1])
		if c0 == rayOutside || c1 == rayOutside {
			continue
		}
		if c0 != rayInterior && c1 != rayInterior {
			// Both rays extreme: either the straight angle itself or a
			// degenerate record along one arm. Neither partitions the
			// sector.
			continue
		}
		out = append(out, a)
	}
	return out
}

const (
	rayInterior = iota
	rayExtreme1
	rayExtreme2
	rayOutside
)

// PartitionChain returns the sub-angles that partition outer: a chain of
// angles at outer's vertex running from one of outer's rays to the other,
// each consecutive pair sharing a ray. Returns nil when no chain exists.
//
// When several chains exist the shortest one wins, found by breadth-first
// search over the angles in declaration order, so the result is
// deterministic for a given snapshot.
func (g *Graph) PartitionChain(outer *Angle) []*Angle {
	candidates := make([]*Angle, 0, len(g.AnglesAt(outer.Vertex)))
	for _, a := range g.AnglesAt(outer.Vertex) {
		if a != outer {
			candidates = append(candidates, a)
		}
	}
	return chainBetween(outer.Rays[0], outer.Rays[1], candidates)
}

// ChainBetween returns a chain of angles from the given candidate set
// leading from ray point start to ray point goal, consecutive angles
// sharing a ray. Used to find the sub-angles partitioning a straight angle
// at a point on a line.
func ChainBetween(start, goal PointID, candidates []*Angle) []*Angle {
	return chainBetween(start, goal, candidates)
}

func chainBetween(start, goal PointID, candidates []*Angle) []*Angle {
	type edge struct {
		to  PointID
		via *Angle
	}
	adj := make(map[PointID][]edge)
	for _, a := range candidates {
		r0, r1 := a.Rays[0], a.Rays[1]
		adj[r0] = append(adj[r0], edge{to: r1, via: a})
		adj[r1] = append(adj[r1], edge{to: r0, via: a})
	}

	type step struct {
		from PointID
		via  *Angle
	}
	prev := make(map[PointID]step)
	visited := map[PointID]bool{start: true}
	queue := []PointID{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == goal {
			break
		}
		for _, e := range adj[cur] {
			if visited[e.to] {
				continue
			}
			visited[e.to] = true
			prev[e.to] = step{from: cur, via: e.via}
			queue = append(queue, e.to)
		}
	}
	if !visited[goal] {
		return nil
	}

	var parts []*Angle
	for cur := goal; cur != start; {
		s := prev[cur]
		parts = append(parts, s.via)
		cur = s.from
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return parts
}

// LinearPairOnLine reports whether a and b form a linear pair whose outer
// rays run along this specific line, on opposite sides of the vertex v.
func LinearPairOnLine(l *Line, v PointID, a, b *Angle) bool {
	if a.Vertex != v || b.Vertex != v {
		return false
	}
	_, x, y, ok := SharedRay(a, b)
	if !ok {
		return false
	}
	return oppositeSides(l, v, x, y)
}

// SameDirectedPair reports whether two angles at one vertex denote the
// same pair of ray directions: each ray of a is equivalent (same point, or
// same side of the vertex along a line through it) to a ray of b, in
// either pairing. Such records are the same angle expressed through
// different collinear target points and must carry equal values.
func (g *Graph) SameDirectedPair(a, b *Angle) bool {
	if a.Vertex != b.Vertex || a == b {
		return false
	}
	v := a.Vertex
	straight := g.RayEquivalent(v, a.Rays[0], b.Rays[0]) && g.RayEquivalent(v, a.Rays[1], b.Rays[1])
	crossed := g.RayEquivalent(v, a.Rays[0], b.Rays[1]) && g.RayEquivalent(v, a.Rays[1], b.Rays[0])
	return straight || crossed
}

// Collinear reports whether some registered line carries all given points.
func (g *Graph) Collinear(pts ...PointID) bool {
	if len(pts) == 0 {
		return false
	}
	for _, l := range g.LinesThrough(pts[0]) {
		all := true
		for _, p := range pts[1:] {
			if !l.Contains(p) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// Between reports whether m lies strictly between a and b on some
// registered line carrying all three.
func (g *Graph) Between(m, a, b PointID) bool {
	for _, l := range g.LinesThrough(m) {
		ai, mi, bi := l.IndexOf(a), l.IndexOf(m), l.IndexOf(b)
		if ai < 0 || bi < 0 {
			continue
		}
		if (ai < mi && mi < bi) || (bi < mi && mi < ai) {
			return true
		}
	}
	return false
}
