package ioutil

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/jndunlap/csl/internal/clierr"
	"github.com/jndunlap/csl/internal/network"
)

// WriteDOT serializes g to a Graphviz DOT file: a `digraph` header when
// directEdges requests oriented output, `graph` otherwise. Directed
// edges use `->`, undirected edges `--`, even within the same digraph
// body, so a partially-oriented skeleton round-trips without lying
// about edges that have no established direction.
func WriteDOT(path string, g *network.Graph, names []string, directEdges bool) error {
	f, err := os.Create(path)
	if err != nil {
		return clierr.Input("ioutil: cannot create %q: %v", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	header := "graph"
	if directEdges {
		header = "digraph"
	}
	fmt.Fprintf(w, "%s G {\n", header)
	for i, name := range names {
		fmt.Fprintf(w, "  %q;\n", labelOr(name, i))
	}

	type line struct {
		u, v uint16
		o    network.Orientation
	}
	var lines []line
	for e, o := range g.Edges() {
		lines = append(lines, line{e.U, e.V, o})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].u != lines[j].u {
			return lines[i].u < lines[j].u
		}
		return lines[i].v < lines[j].v
	})

	for _, l := range lines {
		uName := labelOr(names[l.u], int(l.u))
		vName := labelOr(names[l.v], int(l.v))
		switch {
		case directEdges && l.o == network.UToV:
			fmt.Fprintf(w, "  %q -> %q;\n", uName, vName)
		case directEdges && l.o == network.VToU:
			fmt.Fprintf(w, "  %q -> %q;\n", vName, uName)
		default:
			fmt.Fprintf(w, "  %q -- %q;\n", uName, vName)
		}
	}
	fmt.Fprintln(w, "}")
	return clierr.Wrap(w.Flush(), "ioutil: writing DOT output")
}

func labelOr(name string, i int) string {
	if name != "" {
		return name
	}
	return syntheticName(i)
}
