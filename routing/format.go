package routing

import (
	"fmt"
	"math"
)

// FormatDistance renders kilometers as whole meters when they round below
// 1000 m and as kilometers with two decimals otherwise.
func FormatDistance(km float64) string {
	if m := int(math.Round(km * 1000)); m < 1000 {
		return fmt.Sprintf("%d m", m)
	}
	return fmt.Sprintf("%.2f km", km)
}

// FormatDuration renders minutes, switching to hours from 60 minutes up.
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%d h %d min", minutes/60, minutes%60)
}

// EstimateMinutes converts a distance to whole minutes at speedKmh.
func EstimateMinutes(km, speedKmh float64) int {
	if speedKmh <= 0 {
		return 0
	}
	return int(math.Round(km / speedKmh * 60))
}
