// Package cistat implements the conditional-independence oracle: the G²
// likelihood-ratio statistic, its degrees of freedom, and the
// chi-squared p-value, via gonum.org/v1/gonum/stat/distuv.ChiSquared.
package cistat
