// Package varset implements a compact variable-set container: a
// fixed-capacity bit-set over [0, n) with O(1) membership and
// word-at-a-time union and difference, plus a combinadic subset
// enumerator used by every
// subset-search primitive in internal/data.
//
// There is a single runtime-sized implementation here, selected by n at
// construction, rather than a family of compile-time-width
// specializations (see DESIGN.md, "Polymorphism over set
// representations").
package varset
