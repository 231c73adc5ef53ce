// Package data implements the Data facade: p-value, association score,
// and the independence predicate built on internal/cistat, plus the
// subset-search primitives (minAssocScore, minAssocScoreSubset,
// isIndependentAnySubset) in both sequential and rank-distributed forms.
// It is the layer every discovery algorithm in internal/discovery is
// written against.
package data
