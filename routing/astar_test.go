package routing

import (
	"context"
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/geo"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/graphs"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathIDs(path []*graphs.Node) []string {
	ids := make([]string, len(path))
	for i, n := range path {
		ids[i] = n.ID
	}
	return ids
}

func pathCost(path []*graphs.Node) float64 {
	return geo.PathLength(Positions(path))
}

func TestSimpleAStar(t *testing.T) {
	g := graphs.NewGraph()
	g.AddNode(geo.Coordinate{Lat: 0, Lng: 0}, "1")
	g.AddNode(geo.Coordinate{Lat: 0, Lng: 1}, "2")
	g.AddNode(geo.Coordinate{Lat: 0, Lng: 2}, "3")
	g.AddEdge("1", "2")
	g.AddEdge("2", "3")

	path, err := AStar(context.Background(), g.GetNode("1"), g.GetNode("3"), SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, pathIDs(path))
	assert.Equal(t, []geo.Coordinate{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 0, Lng: 2}}, Positions(path))
}

func TestAStarPrefersShorterDetour(t *testing.T) {
	// a - b - d is long, a - c - d hugs the straight line.
	g := graphs.NewGraph()
	g.AddNode(geo.Coordinate{Lat: 0, Lng: 0}, "a")
	g.AddNode(geo.Coordinate{Lat: 2, Lng: 1}, "b")
	g.AddNode(geo.Coordinate{Lat: 0.1, Lng: 1}, "c")
	g.AddNode(geo.Coordinate{Lat: 0, Lng: 2}, "d")
	g.AddEdge("a", "b")
	g.AddEdge("b", "d")
	g.AddEdge("a", "c")
	g.AddEdge("c", "d")

	path, err := AStar(context.Background(), g.GetNode("a"), g.GetNode("d"), SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d"}, pathIDs(path))
}

func TestAStarSameNode(t *testing.T) {
	g := graphs.BuildGrid(geo.Coordinate{Lat: 10, Lng: 10}, 5, 3)
	n := g.GetNode("1,1")

	path, err := AStar(context.Background(), n, n, SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, []geo.Coordinate{n.Position}, Positions(path))
}

func TestAStarDisconnected(t *testing.T) {
	g := graphs.NewGraph()
	g.AddNode(geo.Coordinate{Lat: 0, Lng: 0}, "a")
	g.AddNode(geo.Coordinate{Lat: 0, Lng: 1}, "b")
	g.AddNode(geo.Coordinate{Lat: 5, Lng: 5}, "c")
	g.AddNode(geo.Coordinate{Lat: 5, Lng: 6}, "d")
	g.AddEdge("a", "b")
	g.AddEdge("c", "d")

	path, err := AStar(context.Background(), g.GetNode("a"), g.GetNode("d"), SearchOptions{})
	assert.ErrorIs(t, err, ErrNoPath)
	assert.Nil(t, path)
}

func TestAStarMissingNode(t *testing.T) {
	g := graphs.BuildGrid(geo.Coordinate{}, 1, 2)
	_, err := AStar(context.Background(), nil, g.GetNode("0,0"), SearchOptions{})
	assert.ErrorIs(t, err, ErrMissingNode)
	_, err = AStar(context.Background(), g.GetNode("0,0"), g.GetNode("9,9"), SearchOptions{})
	assert.ErrorIs(t, err, ErrMissingNode)
}

func TestAStarTieBreakFollowsInsertionOrder(t *testing.T) {
	build := func(firstMid, secondMid string) *graphs.Graph {
		g := graphs.NewGraph()
		g.AddNode(geo.Coordinate{Lat: 0, Lng: -1}, "start")
		g.AddNode(geo.Coordinate{Lat: 1, Lng: 0}, "north")
		g.AddNode(geo.Coordinate{Lat: -1, Lng: 0}, "south")
		g.AddNode(geo.Coordinate{Lat: 0, Lng: 1}, "goal")
		g.AddEdge("start", firstMid)
		g.AddEdge("start", secondMid)
		g.AddEdge("north", "goal")
		g.AddEdge("south", "goal")
		return g
	}

	for _, order := range [][2]string{{"north", "south"}, {"south", "north"}} {
		g := build(order[0], order[1])
		path, err := AStar(context.Background(), g.GetNode("start"), g.GetNode("goal"), SearchOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"start", order[0], "goal"}, pathIDs(path))
	}
}

func TestAStarGraphReuse(t *testing.T) {
	center := geo.Coordinate{Lat: 45.5, Lng: -73.6}
	shared := graphs.BuildGrid(center, 8, 7)
	ctx := context.Background()

	first, err := AStar(ctx, shared.GetNode("0,0"), shared.GetNode("6,6"), SearchOptions{})
	require.NoError(t, err)

	second, err := AStar(ctx, shared.GetNode("0,0"), shared.GetNode("0,6"), SearchOptions{})
	require.NoError(t, err)

	fresh := graphs.BuildGrid(center, 8, 7)
	want, err := AStar(ctx, fresh.GetNode("0,0"), fresh.GetNode("0,6"), SearchOptions{})
	require.NoError(t, err)

	if diff := cmp.Diff(pathIDs(want), pathIDs(second)); diff != "" {
		t.Errorf("second search on a reused graph differs (-fresh +reused):\n%s", diff)
	}
	assert.Equal(t, []string{"0,0", "0,1", "0,2", "0,3", "0,4", "0,5", "0,6"}, pathIDs(second))

	again, err := AStar(ctx, shared.GetNode("0,0"), shared.GetNode("6,6"), SearchOptions{})
	require.NoError(t, err)
	assert.Equal(t, pathIDs(first), pathIDs(again))
	assert.Len(t, first, 7)
}

func TestAStarIterationLimit(t *testing.T) {
	g := graphs.BuildGrid(geo.Coordinate{}, 10, 10)
	_, err := AStar(context.Background(), g.GetNode("0,0"), g.GetNode("9,9"), SearchOptions{MaxIterations: 3})
	assert.ErrorIs(t, err, ErrIterationLimit)
}

func TestAStarIterationLimitReachesAdjacentGoal(t *testing.T) {
	g := graphs.BuildGrid(geo.Coordinate{}, 10, 10)
	path, err := AStar(context.Background(), g.GetNode("0,0"), g.GetNode("0,1"), SearchOptions{MaxIterations: 1})
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.Equal(t, []string{"0,0", "0,1"}, []string{path[0].ID, path[1].ID})
}

func TestAStarCanceled(t *testing.T) {
	g := graphs.BuildGrid(geo.Coordinate{}, 10, 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := AStar(ctx, g.GetNode("0,0"), g.GetNode("9,9"), SearchOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

// cheapestPath enumerates every simple path from start to goal.
func cheapestPath(start, goal *graphs.Node) float64 {
	best := math.Inf(1)
	visited := map[string]bool{}
	var walk func(n *graphs.Node, cost float64)
	walk = func(n *graphs.Node, cost float64) {
		if cost >= best {
			return
		}
		if n.ID == goal.ID {
			best = cost
			return
		}
		visited[n.ID] = true
		for _, nb := range n.Neighbors() {
			if !visited[nb.ID] {
				walk(nb, cost+geo.Distance(n.Position, nb.Position))
			}
		}
		visited[n.ID] = false
	}
	walk(start, 0)
	return best
}

func TestAStarOptimalAgainstExhaustiveSearch(t *testing.T) {
	const nodes = 9
	for seed := int64(1); seed <= 40; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := graphs.NewGraph()
		for i := 0; i < nodes; i++ {
			g.AddNode(geo.Coordinate{Lat: 45 + rng.Float64(), Lng: -73 + rng.Float64()}, strconv.Itoa(i))
		}
		for i := 0; i < nodes; i++ {
			for j := i + 1; j < nodes; j++ {
				if rng.Float64() < 0.35 {
					g.AddEdge(strconv.Itoa(i), strconv.Itoa(j))
				}
			}
		}

		start, goal := g.GetNode("0"), g.GetNode(strconv.Itoa(nodes-1))
		want := cheapestPath(start, goal)

		path, err := AStar(context.Background(), start, goal, SearchOptions{})
		if math.IsInf(want, 1) {
			assert.ErrorIs(t, err, ErrNoPath, "seed %d", seed)
			continue
		}
		require.NoError(t, err, "seed %d", seed)
		assert.Equal(t, "0", path[0].ID)
		assert.Equal(t, goal.ID, path[len(path)-1].ID)
		assert.InDelta(t, want, pathCost(path), 1e-9, "seed %d", seed)
	}
}
