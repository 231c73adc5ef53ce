// Package discovery implements a closed set of named structure-learning
// algorithms (GS, IAMB, Inter-IAMB, MMPC, HITON, SI-HITON-PC, GetPC)
// expressed as a tagged variant over two shared control shells -- direct
// Markov-blanket grow/shrink, and topological parents-and-children
// admit/rescreen -- rather than a runtime class hierarchy, since the
// algorithm set is closed and known ahead of time.
package discovery
