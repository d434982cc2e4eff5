// Package profile turns a drawn path into a uniformly sampled, smoothed
// distance/elevation/gradient curve and keeps a pointer, a zoom window and a
// highlighted map coordinate in sync with it.
package profile

// GeoPoint is a single point of a drawn path.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	Ele float64 `json:"ele"`
}

// PathSegment is the run of points between two consecutive waypoints.
type PathSegment []GeoPoint

// LatLng is the coordinate handed to the map when a sample is highlighted.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CumulativeTable holds the cumulative distance in km at each flattened point.
type CumulativeTable struct {
	Distances []float64
}

// Len returns the number of points in the table.
func (t CumulativeTable) Len() int {
	return len(t.Distances)
}

// Total returns the distance at the last point, or 0 for an empty table.
func (t CumulativeTable) Total() float64 {
	if len(t.Distances) == 0 {
		return 0
	}
	return t.Distances[len(t.Distances)-1]
}

// Sample is one resampled, smoothed, gradient-annotated point of a profile.
type Sample struct {
	DistanceKm   float64 `json:"distance_km"`
	ElevationM   float64 `json:"elevation_m"`
	SlopePercent float64 `json:"slope_percent"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
}

// Profile is an elevation profile stored as parallel arrays so that a sample
// can be looked up by index. A Profile is never modified after Build returns it.
type Profile struct {
	Distances       []float64 `json:"distances"`
	Elevations      []float64 `json:"elevations"`
	Slopes          []float64 `json:"slopes"`
	Lats            []float64 `json:"lats"`
	Lngs            []float64 `json:"lngs"`
	TotalDistanceKm float64   `json:"total_distance_km"`
}

// Len returns the number of samples.
func (p *Profile) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Distances)
}

// Empty reports whether the profile has no samples.
func (p *Profile) Empty() bool {
	return p.Len() == 0
}

// Sample returns the i-th sample. The caller keeps i within [0, Len()).
func (p *Profile) Sample(i int) Sample {
	return Sample{
		DistanceKm:   p.Distances[i],
		ElevationM:   p.Elevations[i],
		SlopePercent: p.Slopes[i],
		Lat:          p.Lats[i],
		Lng:          p.Lngs[i],
	}
}

// Coordinate returns the geographic position of the i-th sample.
func (p *Profile) Coordinate(i int) LatLng {
	return LatLng{Lat: p.Lats[i], Lng: p.Lngs[i]}
}
