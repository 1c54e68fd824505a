package scene

// Node places a renderable in the graph.
type Node struct {
	Name    string
	Visible bool
	Renderable
}

// Graph is the ordered list of nodes the scene owner renders every frame.
type Graph struct {
	nodes []*Node
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Add appends a visible node and returns it.
func (g *Graph) Add(name string, r Renderable) *Node {
	n := &Node{Name: name, Visible: true, Renderable: r}
	g.nodes = append(g.nodes, n)
	return n
}

// Nodes returns the nodes in draw order.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Find returns the first node with the given name.
func (g *Graph) Find(name string) *Node {
	for _, n := range g.nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// Hooks returns the renderables of visible nodes that want a pre-pass.
func (g *Graph) Hooks() []PrePassHook {
	var hooks []PrePassHook
	for _, n := range g.nodes {
		if !n.Visible {
			continue
		}
		if h, ok := n.Renderable.(PrePassHook); ok {
			hooks = append(hooks, h)
		}
	}
	return hooks
}
