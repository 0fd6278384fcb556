package geom

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeLabel produces the canonical spelling of a user-entered angle
// label. Labels are free-form text the user types to assert "these angles
// are equal"; Greek letters are common and arrive in both composed and
// decomposed Unicode forms depending on the input method. NFC
// normalization folds those spellings together so they land in one
// equivalence class.
//
// An empty or whitespace-only label normalizes to "" (no equivalence).
func NormalizeLabel(label string) string {
	return norm.NFC.String(strings.TrimSpace(label))
}

// SortedRays returns the two ray points in canonical order. Ray pairs are
// unordered; sorting them gives every angle identity one spelling.
func SortedRays(a, b PointID) (PointID, PointID) {
	if b < a {
		return b, a
	}
	return a, b
}

// AngleKey returns the canonical lookup key for an angle: the vertex plus
// the sorted ray pair. Two angle records with the same key denote the same
// geometric angle and the model rejects such duplicates at build time.
func AngleKey(vertex, r1, r2 PointID) string {
	a, b := SortedRays(r1, r2)
	return string(vertex) + "|" + string(a) + "|" + string(b)
}

// TriangleKey returns the canonical lookup key for a point triple.
func TriangleKey(a, b, c PointID) string {
	v := sortTriple(a, b, c)
	return string(v[0]) + "|" + string(v[1]) + "|" + string(v[2])
}
