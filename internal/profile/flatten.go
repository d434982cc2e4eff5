package profile

import "github.com/hongjunna/toporider/internal/shared/geo"

// Flatten concatenates segments in order and computes the cumulative
// great-circle distance at every point. Points shared by two segments are
// kept once per segment.
func Flatten(segments []PathSegment) ([]GeoPoint, CumulativeTable) {
	n := 0
	for _, seg := range segments {
		n += len(seg)
	}
	if n == 0 {
		return nil, CumulativeTable{}
	}

	points := make([]GeoPoint, 0, n)
	for _, seg := range segments {
		points = append(points, seg...)
	}

	dist := make([]float64, len(points))
	total := 0.0
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		total += geo.HaversineKm(prev.Lat, prev.Lng, cur.Lat, cur.Lng)
		dist[i] = total
	}
	return points, CumulativeTable{Distances: dist}
}
