package cabsl

import (
	"sync"

	"github.com/cabsl-go/cabsl/internal/graphviz"
)

// ActivationGraphNode is one append-only record describing an option that
// ran (or was probed and left the initial state) in the current cycle.
type ActivationGraphNode struct {
	OptionName string
	Depth      int
	StateName  string
	OptionTime int64
	StateTime  int64
	Arguments  []string
}

// ActivationGraph is the ordered, depth-first pre-order record of every
// option activated in one cycle. It is cleared at the start of each cycle
// by Engine.BeginFrame.
type ActivationGraph struct {
	mu    sync.Mutex
	nodes []ActivationGraphNode
}

// NewActivationGraph returns an empty graph.
func NewActivationGraph() *ActivationGraph {
	return &ActivationGraph{}
}

// Nodes returns a defensive copy of the recorded nodes, in activation order.
func (g *ActivationGraph) Nodes() []ActivationGraphNode {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]ActivationGraphNode, len(g.nodes))
	copy(out, g.nodes)
	return out
}

func (g *ActivationGraph) append(n ActivationGraphNode) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = append(g.nodes, n)
}

func (g *ActivationGraph) clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = g.nodes[:0]
}

// DOT renders the graph's current nodes as GraphViz DOT source, suitable
// for piping into an external rendering tool to visualize a cycle's
// call tree.
func (g *ActivationGraph) DOT() string {
	nodes := g.Nodes()
	vzNodes := make([]graphviz.Node, len(nodes))
	for i, n := range nodes {
		vzNodes[i] = graphviz.Node{
			OptionName: n.OptionName,
			Depth:      n.Depth,
			StateName:  n.StateName,
			OptionTime: n.OptionTime,
			StateTime:  n.StateTime,
			Arguments:  n.Arguments,
		}
	}
	return graphviz.ExportDOT(vzNodes)
}
