// Package creature holds the data model of the simulation: point-mass
// nodes, the distance-constraint graph joining them, IK limbs, and the
// playground they live in.
//
// A [World] is a flat arena; nodes, constraints and limbs refer to each
// other by index. Structural edits (add/remove node or constraint) mark
// the world dirty, and [World.RebuildTopology] re-derives everything the
// solver stages consume:
//
//   - connected-component group ids (collision exemption between nodes
//     of the same creature)
//   - per-component chains rooted at an anchor, in root→tip order
//   - [AngleLink] relations for the angle-constraint pass
//   - limb segment lengths read from constraint rest lengths
//
// Node kinds partition the pipeline: [KindNormal] nodes are integrated,
// constrained and collision-resolved; [KindAnchor] nodes are driven by
// the steering layer and act as infinite mass; [KindLimb] nodes are
// placed exclusively by the limb solver.
//
// All validation happens at construction or rebuild time. The per-frame
// stages assume a valid world and never return errors.
package creature
