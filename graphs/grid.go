package graphs

import (
	"math"
	"strconv"

	"github.com/DivyaGolakiya/GeoCache-Offline-Navigator/geo"
)

const (
	// KmPerDegreeLat is the flat-earth scale used by BuildGrid.
	KmPerDegreeLat = 111.0

	minLngScale = 0.01
)

// GridNodeID names the lattice node at row i, column j.
func GridNodeID(i, j int) string {
	return strconv.Itoa(i) + "," + strconv.Itoa(j)
}

// BuildGrid lays a gridSize x gridSize lattice over center +/- radiusKm in
// both axes. Rows advance in latitude, columns in longitude. Each node is
// linked right, down and along both downward diagonals, so interior nodes
// end up with 8 neighbors, border nodes with 5 and corners with 3.
//
// The projection is flat-earth (111 km per degree, longitude stretched by
// 1/cos(lat)) and only holds for radii up to a few dozen kilometers away
// from the poles.
func BuildGrid(center geo.Coordinate, radiusKm float64, gridSize int) *Graph {
	g := NewGraph()
	if gridSize <= 0 {
		return g
	}

	radiusKm = math.Max(radiusKm, 0)
	lngScale := math.Max(math.Cos(geo.ToRadians(center.Lat)), minLngScale)
	latExtent := radiusKm / KmPerDegreeLat
	lngExtent := radiusKm / (KmPerDegreeLat * lngScale)

	latStep, lngStep := 0.0, 0.0
	if gridSize > 1 {
		latStep = 2 * latExtent / float64(gridSize-1)
		lngStep = 2 * lngExtent / float64(gridSize-1)
	} else {
		latExtent, lngExtent = 0, 0
	}

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			g.AddNode(geo.Coordinate{
				Lat: center.Lat - latExtent + float64(i)*latStep,
				Lng: center.Lng - lngExtent + float64(j)*lngStep,
			}, GridNodeID(i, j))
		}
	}

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			id := GridNodeID(i, j)
			if j+1 < gridSize {
				g.AddEdge(id, GridNodeID(i, j+1))
			}
			if i+1 < gridSize {
				g.AddEdge(id, GridNodeID(i+1, j))
				if j+1 < gridSize {
					g.AddEdge(id, GridNodeID(i+1, j+1))
				}
				if j-1 >= 0 {
					g.AddEdge(id, GridNodeID(i+1, j-1))
				}
			}
		}
	}

	return g
}
