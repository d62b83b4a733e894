package routing

import "github.com/DivyaGolakiya/GeoCache-Offline-Navigator/geo"

type Mode string

const (
	ModeGrid   Mode = "grid"
	ModeDirect Mode = "direct"
)

// RouteResult is the outcome of one routing request. Failed results carry
// Error and leave the measurements zeroed.
type RouteResult struct {
	Origin          geo.Coordinate   `json:"origin"`
	Destination     geo.Coordinate   `json:"destination"`
	Mode            Mode             `json:"mode"`
	Path            []geo.Coordinate `json:"path"`
	DistanceKm      float64          `json:"distanceKm"`
	DurationMinutes int              `json:"durationMinutes"`
	DistanceText    string           `json:"distanceText"`
	DurationText    string           `json:"durationText"`
	Success         bool             `json:"success"`
	Error           string           `json:"error,omitempty"`
}

func failedResult(origin, destination geo.Coordinate, mode Mode, err error) RouteResult {
	return RouteResult{
		Origin:      origin,
		Destination: destination,
		Mode:        mode,
		Success:     false,
		Error:       err.Error(),
	}
}
