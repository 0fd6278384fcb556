// Package harness provides conformance testing for the angle solver.
//
// The harness loads diagram scenarios from YAML, runs the solver with a
// fixed run token, and validates the outcome against declared
// expectations. Golden files snapshot the full solving history for
// regression comparison.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: triangle_closure
//	description: "Two known interior angles close the triangle"
//	run_token: run-golden-1
//	diagram:
//	  points: [{id: A}, {id: B}, {id: C}]
//	  adjacency:
//	    A: [B, C]
//	    B: [C]
//	  triangles: [[A, B, C]]
//	  angles:
//	    - {id: ang-a, vertex: A, rays: [B, C], value: 50}
//	    - {id: ang-b, vertex: B, rays: [A, C], value: 60}
//	    - {id: ang-c, vertex: C, rays: [A, B]}
//	expect:
//	  outcome: completed
//	  solved_count: 3
//	  angles:
//	    ang-c: 70
//
// An angle with no value key is unknown. The expect block supports:
//
//   - outcome: the expected solve outcome ("completed" or "failed")
//   - solved_count: the expected number of known angles after the solve
//   - angles: expected final values by angle id, compared within the
//     solver tolerance
//   - unknown: angle ids that must still be unknown after the solve
//
// # Deterministic Testing
//
// Every scenario runs with a fixed run token (scenario.run_token, or
// "test-run-default" when unset), so repeated runs produce identical
// histories and golden files compare byte for byte.
package harness
