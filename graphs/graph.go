package graphs

import (
	"math"
	"strconv"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/geo"
)

// Node represents a graph vertex at a geographic position.
type Node struct {
	ID       string
	Position geo.Coordinate

	neighbors []*Node
}

// Neighbors returns the adjacent nodes in edge insertion order.
func (n *Node) Neighbors() []*Node {
	return n.neighbors
}

func (n *Node) hasNeighbor(other *Node) bool {
	for _, nb := range n.neighbors {
		if nb == other {
			return true
		}
	}
	return false
}

// Graph is an undirected spatial graph. Edges are stored as symmetric
// neighbor entries on both endpoints.
//
// A Graph is not safe for concurrent mutation. Once built it may be read,
// and searched, from several goroutines.
type Graph struct {
	nodes map[string]*Node
	order []string
}

func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
	}
}

// NodeID is the canonical id used for nodes added without one.
func NodeID(position geo.Coordinate) string {
	return strconv.FormatFloat(position.Lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(position.Lng, 'f', -1, 64)
}

// AddNode inserts a node at position. An empty id is derived from the
// position with NodeID. Re-using an existing id replaces the stored node;
// edges held by other nodes still point at the replaced one.
func (g *Graph) AddNode(position geo.Coordinate, id string) *Node {
	if id == "" {
		id = NodeID(position)
	}
	node := &Node{ID: id, Position: position}
	if _, exists := g.nodes[id]; !exists {
		g.order = append(g.order, id)
	}
	g.nodes[id] = node
	return node
}

// GetNode returns the node with the given id, or nil.
func (g *Graph) GetNode(id string) *Node {
	return g.nodes[id]
}

// AddEdge connects two nodes in both directions. Missing ids, self-loops
// and already present edges are ignored.
func (g *Graph) AddEdge(idA, idB string) {
	a, okA := g.nodes[idA]
	b, okB := g.nodes[idB]
	if !okA || !okB || a == b {
		return
	}
	if a.hasNeighbor(b) {
		return
	}
	a.neighbors = append(a.neighbors, b)
	b.neighbors = append(b.neighbors, a)
}

// FindClosestNode scans every node and returns the one nearest to position.
// Ties go to the node inserted first. Returns nil on an empty graph.
func (g *Graph) FindClosestNode(position geo.Coordinate) *Node {
	var closest *Node
	minDistance := math.Inf(1)

	for _, id := range g.order {
		node := g.nodes[id]
		dist := geo.Distance(position, node.Position)
		if closest == nil || dist < minDistance {
			minDistance = dist
			closest = node
		}
	}

	return closest
}

func (g *Graph) Len() int {
	return len(g.order)
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// EdgeCount counts undirected edges.
func (g *Graph) EdgeCount() int {
	entries := 0
	for _, node := range g.nodes {
		entries += len(node.neighbors)
	}
	return entries / 2
}
