package profile

import "gonum.org/v1/gonum/floats"

// Build runs the whole pipeline over segments: flatten, resample at
// SamplingIntervalKm, smooth the elevations and derive slopes. An empty or
// single-point path yields an empty profile.
func Build(segments []PathSegment) *Profile {
	points, table := Flatten(segments)
	raw := Resample(points, table, SamplingIntervalKm)
	if raw.Empty() {
		return raw
	}

	elevations := Smooth(raw.Elevations, SmoothWindow, SmoothIterations)
	return &Profile{
		Distances:       raw.Distances,
		Elevations:      elevations,
		Slopes:          Slopes(raw.Distances, elevations),
		Lats:            raw.Lats,
		Lngs:            raw.Lngs,
		TotalDistanceKm: raw.TotalDistanceKm,
	}
}

// Stats summarizes a profile.
type Stats struct {
	TotalDistanceKm float64 `json:"total_distance_km"`
	MinElevationM   float64 `json:"min_elevation_m"`
	MaxElevationM   float64 `json:"max_elevation_m"`
	AscentM         float64 `json:"ascent_m"`
	DescentM        float64 `json:"descent_m"`
}

// Summarize computes distance, elevation range and total ascent/descent
// over the smoothed elevations.
func Summarize(p *Profile) Stats {
	if p.Empty() {
		return Stats{TotalDistanceKm: p.totalOrZero()}
	}

	s := Stats{
		TotalDistanceKm: p.TotalDistanceKm,
		MinElevationM:   floats.Min(p.Elevations),
		MaxElevationM:   floats.Max(p.Elevations),
	}
	for i := 1; i < len(p.Elevations); i++ {
		delta := p.Elevations[i] - p.Elevations[i-1]
		if delta > 0 {
			s.AscentM += delta
		} else {
			s.DescentM -= delta
		}
	}
	return s
}

func (p *Profile) totalOrZero() float64 {
	if p == nil {
		return 0
	}
	return p.TotalDistanceKm
}
