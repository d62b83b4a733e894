package graphs

import (
	"testing"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neighborIDs(n *Node) []string {
	ids := make([]string, 0, len(n.Neighbors()))
	for _, nb := range n.Neighbors() {
		ids = append(ids, nb.ID)
	}
	return ids
}

func TestAddNodeDerivesID(t *testing.T) {
	g := NewGraph()
	n := g.AddNode(geo.Coordinate{Lat: 45.5, Lng: -73.25}, "")
	assert.Equal(t, "45.5,-73.25", n.ID)
	assert.Same(t, n, g.GetNode("45.5,-73.25"))

	// Same position, same id.
	assert.Equal(t, n.ID, NodeID(geo.Coordinate{Lat: 45.5, Lng: -73.25}))
}

func TestAddNodeOverwritesExistingID(t *testing.T) {
	g := NewGraph()
	first := g.AddNode(geo.Coordinate{Lat: 1, Lng: 1}, "a")
	g.AddNode(geo.Coordinate{Lat: 2, Lng: 2}, "b")
	second := g.AddNode(geo.Coordinate{Lat: 3, Lng: 3}, "a")

	assert.NotSame(t, first, second)
	assert.Same(t, second, g.GetNode("a"))
	assert.Equal(t, 2, g.Len())
	// The id keeps its original slot.
	assert.Equal(t, "a", g.Nodes()[0].ID)
}

func TestGetNodeMissing(t *testing.T) {
	assert.Nil(t, NewGraph().GetNode("nope"))
}

func TestAddEdge(t *testing.T) {
	g := NewGraph()
	g.AddNode(geo.Coordinate{Lat: 0, Lng: 0}, "a")
	g.AddNode(geo.Coordinate{Lat: 0, Lng: 1}, "b")
	g.AddNode(geo.Coordinate{Lat: 0, Lng: 2}, "c")

	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	g.AddEdge("a", "b")       // duplicate
	g.AddEdge("b", "a")       // duplicate, reversed
	g.AddEdge("a", "a")       // self-loop
	g.AddEdge("a", "missing") // unknown endpoint

	assert.Equal(t, []string{"b"}, neighborIDs(g.GetNode("a")))
	assert.Equal(t, []string{"a", "c"}, neighborIDs(g.GetNode("b")))
	assert.Equal(t, []string{"b"}, neighborIDs(g.GetNode("c")))
	assert.Equal(t, 2, g.EdgeCount())
}

func TestFindClosestNode(t *testing.T) {
	g := NewGraph()
	assert.Nil(t, g.FindClosestNode(geo.Coordinate{}))

	g.AddNode(geo.Coordinate{Lat: 0, Lng: 0}, "origin")
	g.AddNode(geo.Coordinate{Lat: 0, Lng: 1}, "east")
	g.AddNode(geo.Coordinate{Lat: 1, Lng: 0}, "north")

	assert.Equal(t, "east", g.FindClosestNode(geo.Coordinate{Lat: 0.1, Lng: 0.8}).ID)
	assert.Equal(t, "north", g.FindClosestNode(geo.Coordinate{Lat: 5, Lng: 0}).ID)
}

func TestFindClosestNodeTieGoesToFirstInserted(t *testing.T) {
	g := NewGraph()
	g.AddNode(geo.Coordinate{Lat: 0, Lng: -1}, "west")
	g.AddNode(geo.Coordinate{Lat: 0, Lng: 1}, "east")

	closest := g.FindClosestNode(geo.Coordinate{Lat: 0, Lng: 0})
	require.NotNil(t, closest)
	assert.Equal(t, "west", closest.ID)

	g2 := NewGraph()
	g2.AddNode(geo.Coordinate{Lat: 0, Lng: 1}, "east")
	g2.AddNode(geo.Coordinate{Lat: 0, Lng: -1}, "west")
	assert.Equal(t, "east", g2.FindClosestNode(geo.Coordinate{Lat: 0, Lng: 0}).ID)
}
