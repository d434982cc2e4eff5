package course

import (
	"github.com/hongjunna/toporider/internal/profile"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
	"github.com/paulmach/orb/geojson"
)

// lineString converts the course path to an orb geometry. orb points are
// (lng, lat).
func lineString(segments []profile.PathSegment) orb.LineString {
	points, _ := profile.Flatten(segments)
	ls := make(orb.LineString, 0, len(points))
	for _, p := range points {
		ls = append(ls, orb.Point{p.Lng, p.Lat})
	}
	return ls
}

// routeWKT returns the WKT stored in the route column, or nil when the path
// has fewer than two vertices and cannot form a LINESTRING.
func routeWKT(segments []profile.PathSegment) *string {
	ls := lineString(segments)
	if len(ls) < 2 {
		return nil
	}
	s := wkt.MarshalString(ls)
	return &s
}

// FeatureCollection renders the course as GeoJSON: one LineString feature
// for the route and one Point feature per marker.
func FeatureCollection(c Course) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	if ls := lineString(c.Polylines); len(ls) > 0 {
		route := geojson.NewFeature(ls)
		route.ID = c.ID
		route.Properties = geojson.Properties{
			"kind":             "route",
			"title":            c.Title,
			"total_distance_m": c.TotalDistanceM,
			"total_ascent_m":   c.TotalAscentM,
		}
		fc.Append(route)
	}

	for i, m := range c.Markers {
		marker := geojson.NewFeature(orb.Point{m.Lng, m.Lat})
		marker.Properties = geojson.Properties{
			"kind":  "marker",
			"index": i,
		}
		fc.Append(marker)
	}
	return fc
}

// totals derives distance (m) and ascent (m) from the smoothed profile.
func totals(segments []profile.PathSegment) (float64, float64) {
	stats := profile.Summarize(profile.Build(segments))
	return stats.TotalDistanceKm * 1000, stats.AscentM
}
