package routing

import (
	"github.com/hongjunna/toporider/internal/profile"
	"github.com/hongjunna/toporider/internal/shared/geo"
)

const (
	densifyStepM    = 50.0
	densifyMinSteps = 2
	densifyMaxSteps = 100
)

// Densify places points on the straight line from start to end, one every
// 50 m, with at least 2 and at most 100 steps. Both ends are included.
func Densify(start, end profile.LatLng) []profile.LatLng {
	dist := geo.HaversineM(start.Lat, start.Lng, end.Lat, end.Lng)
	steps := int(dist / densifyStepM)
	steps = max(densifyMinSteps, min(densifyMaxSteps, steps))

	points := make([]profile.LatLng, 0, steps+1)
	for i := 0; i <= steps; i++ {
		ratio := float64(i) / float64(steps)
		points = append(points, profile.LatLng{
			Lat: start.Lat + (end.Lat-start.Lat)*ratio,
			Lng: start.Lng + (end.Lng-start.Lng)*ratio,
		})
	}
	return points
}
