package solver

import (
	"fmt"
	"sort"

	"github.com/angleworks/protractor/internal/geom"
)

// applySameLabelAngles forces every angle sharing a non-empty label to one
// value. The primary value is the first locked member in declaration
// order, falling back to the first known member, so precedence is
// deterministic.
//
// This is the only rule permitted to overwrite an existing unlocked value
// outright: a label is a user assertion of equality, and a stale value
// that disagrees with the labeled group is corrected, not preserved. The
// guard still refuses to touch locked members.
func applySameLabelAngles(g *geom.Graph, w Writer) bool {
	groups := make(map[string][]*geom.Angle)
	for _, a := range g.Angles {
		if a.Label != "" {
			groups[a.Label] = append(groups[a.Label], a)
		}
	}

	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	changed := false
	for _, label := range labels {
		members := groups[label]

		var primary *geom.Angle
		for _, m := range members {
			if m.Locked() {
				primary = m
				break
			}
		}
		if primary == nil {
			for _, m := range members {
				if m.Known() {
					primary = m
					break
				}
			}
		}
		if primary == nil {
			continue
		}

		reason := fmt.Sprintf("label %q matches %s = %.1f°", label, primary.Name(), primary.Val())
		for _, m := range members {
			if m == primary {
				continue
			}
			if w.Set(m, primary.Val(), TheoremSameLabel, reason) {
				changed = true
			}
		}
	}
	return changed
}

// applyAngleSubdivision distributes a known large angle across the
// labeled, unknown sub-angles that partition it. Known sub-angle values
// are subtracted first; the remainder is split evenly among the labeled
// unknowns.
//
// Skips when the unknowns carry mixed labels (no basis for an even
// split), when an unknown sub-angle is unlabeled (nothing asserts the
// shares are equal), or when the remainder is not positive (the known
// parts already contradict the whole; that surfaces in validation, not
// here).
func applyAngleSubdivision(g *geom.Graph, w Writer) bool {
	changed := false
	for _, outer := range g.Angles {
		if !outer.Known() {
			continue
		}
		parts := g.PartitionChain(outer)
		if len(parts) < 2 {
			continue
		}

		var unknown []*geom.Angle
		knownSum := 0.0
		label := ""
		skip := false
		for _, p := range parts {
			if p.Known() {
				knownSum += p.Val()
				continue
			}
			if p.Label == "" {
				skip = true
				break
			}
			if label == "" {
				label = p.Label
			} else if label != p.Label {
				skip = true
				break
			}
			unknown = append(unknown, p)
		}
		if skip || len(unknown) == 0 {
			continue
		}

		remainder := outer.Val() - knownSum
		if remainder <= 0 {
			continue
		}
		share := remainder / float64(len(unknown))
		reason := fmt.Sprintf("%s = %.1f° split evenly across %d labeled parts", outer.Name(), outer.Val(), len(unknown))
		for _, p := range unknown {
			if w.Set(p, share, TheoremSubdivision, reason) {
				p.Subdivision = true
				changed = true
			}
		}
	}
	return changed
}
