package commands

// Graph composes a root command with dependent commands so one logical
// write can fan out into a parent mutation plus child mutations whose
// inputs derive from the parent's result.
type Graph struct {
	root  Callable
	nodes []Callable
}

var _ Callable = &Graph{}

// GraphResult aggregates a graph invocation: the root result first, then
// each dependent's result in declaration order.
type GraphResult struct {
	Root       any
	Dependents []any
}

// NewGraph builds a graph from a root command and its dependents. Nodes
// may be plain commands, graphs or lazy commands.
func NewGraph(root Callable, nodes ...Callable) *Graph {
	return &Graph{root: root, nodes: append([]Callable{}, nodes...)}
}

// Kind returns KindGraph.
func (g *Graph) Kind() Kind {
	return KindGraph
}

// Name returns the root command's name.
func (g *Graph) Name() string {
	return g.root.Name()
}

// Root returns the root command.
func (g *Graph) Root() Callable {
	return g.root
}

// Nodes returns a copy of the dependent commands, in declaration order.
func (g *Graph) Nodes() []Callable {
	return append([]Callable{}, g.nodes...)
}

// Combine returns a new graph with the given commands appended to the
// dependents. The receiver is unchanged.
func (g *Graph) Combine(others ...Callable) *Graph {
	return NewGraph(g.root, append(g.Nodes(), others...)...)
}

// Call invokes the root command first, then each dependent in declaration
// order with the root result as input. Dependents derive their own inputs
// from that result; association linkage is the responsibility of the input
// mapping supplied by the caller or evaluator. If the root fails no
// dependent runs; a failing dependent stops execution without rolling back
// prior dependents.
func (g *Graph) Call(args ...any) (any, error) {
	rootOut, err := g.root.Call(args...)
	if err != nil {
		return nil, err
	}

	dependents := make([]any, 0, len(g.nodes))
	for _, node := range g.nodes {
		out, err := node.Call(rootOut)
		if err != nil {
			return nil, err
		}
		dependents = append(dependents, out)
	}

	return &GraphResult{Root: rootOut, Dependents: dependents}, nil
}
