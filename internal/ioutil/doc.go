// Package ioutil handles the tabular I/O the discovery core doesn't:
// reading an observation table (row- or column-major, CSV/TSV-style,
// with optional headers) into a counter.CTCounter, and writing an
// assembled network as a Graphviz DOT file.
package ioutil
