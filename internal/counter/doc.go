// Package counter defines the Counter interface -- the sole source of
// truth for joint counts over the observation data -- and a
// contingency-table-backed implementation, CTCounter: a straightforward
// dense materialization appropriate for the small conditioning sets the
// discovery algorithms ever query.
package counter
