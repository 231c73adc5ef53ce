// Package network assembles a whole-network skeleton from per-target
// neighborhoods: rank-distributed discovery over all targets, the
// symmetry (AND-rule) correction, and optional v-structure edge
// orientation from the sepsets recorded during topological PC
// discovery.
package network
