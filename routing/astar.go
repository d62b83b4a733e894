package routing

import (
	"container/heap"
	"context"
	"errors"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/geo"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/graphs"
	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/metrics"
)

var (
	ErrMissingNode    = errors.New("start or goal node missing")
	ErrNoPath         = errors.New("no path found")
	ErrIterationLimit = errors.New("search iteration limit reached")
)

const ctxCheckInterval = 256

// SearchOptions bounds a search. The zero value runs until the open set is
// exhausted.
type SearchOptions struct {
	MaxIterations int
}

// AStar finds a minimum-cost node sequence from start to goal, both
// inclusive. Edge cost and heuristic are both the great-circle distance, so
// the heuristic is consistent and closed nodes are never reopened.
//
// Scratch state lives in a map owned by this call; the graph itself is only
// read, so one graph may serve concurrent searches.
func AStar(ctx context.Context, start, goal *graphs.Node, opts SearchOptions) ([]*graphs.Node, error) {
	if start == nil || goal == nil {
		return nil, ErrMissingNode
	}

	states := make(map[string]*searchState)
	open := &openSet{}
	seq := 0

	h := geo.Distance(start.Position, goal.Position)
	first := &searchState{node: start, g: 0, h: h, f: h, seq: seq}
	states[start.ID] = first
	heap.Push(open, first)

	expanded := 0
	defer func() { metrics.SearchExpandedNodes.Observe(float64(expanded)) }()

	for open.Len() > 0 {
		if expanded%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		current := heap.Pop(open).(*searchState)
		if current.node.ID == goal.ID {
			return reconstructPath(current), nil
		}
		if opts.MaxIterations > 0 && expanded >= opts.MaxIterations {
			return nil, ErrIterationLimit
		}

		current.closed = true
		expanded++

		for _, neighbor := range current.node.Neighbors() {
			next, seen := states[neighbor.ID]
			if seen && next.closed {
				continue
			}

			tentative := current.g + geo.Distance(current.node.Position, neighbor.Position)
			if seen && tentative >= next.g {
				continue
			}

			if !seen {
				seq++
				next = &searchState{node: neighbor, seq: seq}
				states[neighbor.ID] = next
			}
			next.parent = current
			next.g = tentative
			next.h = geo.Distance(neighbor.Position, goal.Position)
			next.f = next.g + next.h

			if seen {
				heap.Fix(open, next.index)
			} else {
				heap.Push(open, next)
			}
		}
	}

	return nil, ErrNoPath
}

func reconstructPath(goal *searchState) []*graphs.Node {
	var path []*graphs.Node
	for s := goal; s != nil; s = s.parent {
		path = append(path, s.node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Positions maps a node path to its coordinates.
func Positions(path []*graphs.Node) []geo.Coordinate {
	coords := make([]geo.Coordinate, len(path))
	for i, n := range path {
		coords[i] = n.Position
	}
	return coords
}
