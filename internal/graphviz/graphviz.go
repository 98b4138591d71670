// Package graphviz renders a cabsl activation graph to GraphViz DOT text,
// turning a cycle's call tree into a live introspection feature instead of
// something only an external tool can visualize.
package graphviz

import (
	"bytes"
	"fmt"
)

// Node is the minimal shape graphviz needs from an activation graph entry;
// it mirrors cabsl.ActivationGraphNode without importing the root package
// (which itself imports this one, so the dependency runs one way only and
// the DOT renderer stays usable standalone on recorded/replayed graphs).
type Node struct {
	OptionName string
	Depth      int
	StateName  string
	OptionTime int64
	StateTime  int64
	Arguments  []string
}

// ExportDOT renders nodes, a depth-first pre-order sequence, as a DOT
// digraph. Parent/child edges are reconstructed from the Depth field: each
// node's parent is the most recent earlier node at Depth-1.
func ExportDOT(nodes []Node) string {
	var buf bytes.Buffer
	buf.WriteString("digraph ActivationGraph {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, fontsize=10, style=rounded];\n")

	ids := make([]string, len(nodes))
	ancestorAtDepth := map[int]string{}

	for i, n := range nodes {
		id := fmt.Sprintf("n%d", i)
		ids[i] = id

		label := n.OptionName
		if n.StateName != "" {
			label += "\\n" + n.StateName
		}
		label += fmt.Sprintf("\\nopt_t=%d st_t=%d", n.OptionTime, n.StateTime)
		for _, arg := range n.Arguments {
			label += "\\n" + escapeLabel(arg)
		}

		buf.WriteString(fmt.Sprintf("  %s [label=%q];\n", id, label))

		if parent, ok := ancestorAtDepth[n.Depth-1]; ok {
			buf.WriteString(fmt.Sprintf("  %s -> %s;\n", parent, id))
		}
		ancestorAtDepth[n.Depth] = id
		for d := range ancestorAtDepth {
			if d > n.Depth {
				delete(ancestorAtDepth, d)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func escapeLabel(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
