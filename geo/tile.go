package geo

import (
	"fmt"
	"math"
)

// Tile addresses a Web-Mercator map tile.
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func (t Tile) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// TileXY projects c onto the tile grid at the given zoom level. Results are
// clamped to the valid range so polar latitudes land on the edge rows.
func TileXY(c Coordinate, zoom int) (int, int) {
	n := math.Exp2(float64(zoom))
	latRad := ToRadians(c.Lat)

	x := int(math.Floor((c.Lng + 180) / 360 * n))
	y := int(math.Floor((1 - math.Asinh(math.Tan(latRad))/math.Pi) / 2 * n))

	max := int(n) - 1
	return clamp(x, 0, max), clamp(y, 0, max)
}

// TileRange lists every tile covering the bounding box of a and b at zoom,
// row by row from the north-west corner.
func TileRange(a, b Coordinate, zoom int) []Tile {
	north := Coordinate{Lat: math.Max(a.Lat, b.Lat), Lng: math.Min(a.Lng, b.Lng)}
	south := Coordinate{Lat: math.Min(a.Lat, b.Lat), Lng: math.Max(a.Lng, b.Lng)}

	x0, y0 := TileXY(north, zoom)
	x1, y1 := TileXY(south, zoom)

	tiles := make([]Tile, 0, (x1-x0+1)*(y1-y0+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			tiles = append(tiles, Tile{X: x, Y: y, Z: zoom})
		}
	}
	return tiles
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
