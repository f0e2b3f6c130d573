package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrSelfLoop is returned by [DAG.AddEdge] when From == To.
	ErrSelfLoop = errors.New("edge connects a node to itself")

	// ErrGraphHasCycle is returned by [DAG.Validate] when a cycle is detected.
	ErrGraphHasCycle = errors.New("graph contains a cycle")

	// ErrRowOrder is returned by [DAG.Validate] when an edge does not point
	// to a strictly lower row.
	ErrRowOrder = errors.New("edge target must be in a lower row than its source")
)

// Node is a vertex of the hierarchy graph with an assigned row.
type Node struct {
	ID  int64 // Person ID
	Row int   // Generation (0 = topmost)
}

// Edge is a directed parent → child edge.
type Edge struct {
	From int64
	To   int64
}

// DAG is a directed graph whose nodes are organised into rows. It tolerates
// cycles until [DAG.Validate] is called; ranking code breaks them first.
//
// The zero value is not usable - use New.
type DAG struct {
	nodes    map[int64]*Node
	order    []int64 // insertion order
	edges    []Edge
	outgoing map[int64][]int64
	incoming map[int64][]int64
	rows     map[int][]*Node
}

// New creates an empty DAG.
func New() *DAG {
	return &DAG{
		nodes:    make(map[int64]*Node),
		outgoing: make(map[int64][]int64),
		incoming: make(map[int64][]int64),
		rows:     make(map[int][]*Node),
	}
}

// AddNode adds a node and indexes it by its Row.
// Returns ErrDuplicateNodeID if the ID is already present.
func (d *DAG) AddNode(n Node) error {
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	d.nodes[n.ID] = node
	d.order = append(d.order, n.ID)
	d.rows[n.Row] = append(d.rows[n.Row], node)
	return nil
}

// AddEdge adds a directed edge between two existing nodes. Adding an edge
// that already exists is a no-op, so duplicate relationship rows collapse
// into one hierarchy edge.
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	if e.From == e.To {
		return ErrSelfLoop
	}
	if d.HasEdge(e.From, e.To) {
		return nil
	}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	return nil
}

// HasEdge reports whether the edge from→to exists.
func (d *DAG) HasEdge(from, to int64) bool {
	return slices.Contains(d.outgoing[from], to)
}

// RemoveEdge removes the edge from→to if it exists.
func (d *DAG) RemoveEdge(from, to int64) {
	d.edges = slices.DeleteFunc(d.edges, func(e Edge) bool { return e.From == from && e.To == to })
	d.outgoing[from] = slices.DeleteFunc(d.outgoing[from], func(id int64) bool { return id == to })
	d.incoming[to] = slices.DeleteFunc(d.incoming[to], func(id int64) bool { return id == from })
}

// SetRows updates row assignments and rebuilds the row index. Nodes missing
// from rows keep their current row. Rows keep insertion order.
func (d *DAG) SetRows(rows map[int64]int) {
	d.rows = make(map[int][]*Node)
	for _, id := range d.order {
		n := d.nodes[id]
		if r, ok := rows[id]; ok {
			n.Row = r
		}
		d.rows[n.Row] = append(d.rows[n.Row], n)
	}
}

// Nodes returns all nodes in insertion order. The pointers refer to the
// graph's own nodes.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, len(d.order))
	for i, id := range d.order {
		nodes[i] = d.nodes[id]
	}
	return nodes
}

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes in the graph.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the graph.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Node returns the node with the given ID.
func (d *DAG) Node(id int64) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Children returns the IDs the node has edges to, in insertion order.
// The returned slice should not be modified.
func (d *DAG) Children(id int64) []int64 { return d.outgoing[id] }

// Parents returns the IDs with edges to the node, in insertion order.
// The returned slice should not be modified.
func (d *DAG) Parents(id int64) []int64 { return d.incoming[id] }

// InDegree returns the number of incoming edges.
func (d *DAG) InDegree(id int64) int { return len(d.incoming[id]) }

// OutDegree returns the number of outgoing edges.
func (d *DAG) OutDegree(id int64) int { return len(d.outgoing[id]) }

// NodesInRow returns the nodes assigned to row, in insertion order.
func (d *DAG) NodesInRow(row int) []*Node { return d.rows[row] }

// RowIDs returns all row indices in ascending order.
func (d *DAG) RowIDs() []int { return slices.Sorted(maps.Keys(d.rows)) }

// MaxRow returns the highest row index, or 0 for an empty graph.
func (d *DAG) MaxRow() int {
	ids := d.RowIDs()
	if len(ids) == 0 {
		return 0
	}
	return ids[len(ids)-1]
}

// Sources returns nodes with no incoming edges, in insertion order.
func (d *DAG) Sources() []*Node {
	var sources []*Node
	for _, id := range d.order {
		if len(d.incoming[id]) == 0 {
			sources = append(sources, d.nodes[id])
		}
	}
	return sources
}

// Validate checks that the graph is acyclic and that every edge points to a
// strictly lower row. Layering guarantees the second property once cycles
// are broken.
func (d *DAG) Validate() error {
	if err := d.detectCycles(); err != nil {
		return err
	}
	for _, e := range d.edges {
		if d.nodes[e.To].Row <= d.nodes[e.From].Row {
			return ErrRowOrder
		}
	}
	return nil
}

func (d *DAG) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[int64]int, len(d.nodes))
	var hasCycle bool

	var dfs func(id int64)
	dfs = func(id int64) {
		color[id] = gray
		for _, child := range d.outgoing[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for _, id := range d.order {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

// PosMap maps each ID to its index in ids.
func PosMap(ids []int64) map[int64]int {
	m := make(map[int64]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// NodeIDs extracts the IDs of nodes, preserving order.
func NodeIDs(nodes []*Node) []int64 {
	ids := make([]int64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
