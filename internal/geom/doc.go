// Package geom provides the geometric relation model the angle solver reads.
//
// This package contains the data model and pure topological queries only.
// All other internal packages import geom; geom imports nothing internal.
// This keeps the relation model the foundational layer with no circular
// dependencies.
//
// Key design constraints:
//   - NO coordinates anywhere. Points are identities; every geometric fact
//     the solver can use is expressed as topology: adjacency, ordered
//     collinearity, circle membership, triangle enumeration.
//   - Lines hold point ids sorted by position along the line, so index
//     comparison answers betweenness and sidedness in O(1).
//   - A Circle is a proxy for "these points are equidistant from the center".
//     It substitutes for side-length equality without measuring anything.
//   - One Angle record per unordered (vertex, ray pair). Labels are
//     NFC-normalized equivalence tags.
//
// The Graph type bundles a diagram snapshot with two derived indices
// (angles-by-vertex and triangle-by-key) that are rebuilt once per solve
// call, never incrementally maintained.
package geom
