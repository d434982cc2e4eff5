package profile

import "math"

// Zone is a training zone of the gradient legend.
type Zone struct {
	Name       string  `json:"name"`
	Label      string  `json:"label"`
	Color      string  `json:"color"`
	MinPercent float64 `json:"min_percent"`
	// MaxPercent is +Inf for the open-ended top zone and is not serialized then.
	MaxPercent float64 `json:"-"`
}

// Zones lists the training zones from easiest to hardest.
var Zones = []Zone{
	{Name: "warm-up", Label: "Warm Up (0~2%)", Color: "#4A90E2", MinPercent: 0, MaxPercent: 2},
	{Name: "tempo", Label: "Tempo (2~7%)", Color: "#8FCE3A", MinPercent: 2, MaxPercent: 7},
	{Name: "threshold", Label: "Threshold (7~12%)", Color: "#965A3E", MinPercent: 7, MaxPercent: 12},
	{Name: "vo2max", Label: "VO2 Max (12%+)", Color: "#C0392B", MinPercent: 12, MaxPercent: math.Inf(1)},
}

// ZoneShare is the distance a profile spends in one zone.
type ZoneShare struct {
	Zone
	DistanceKm float64 `json:"distance_km"`
	Share      float64 `json:"share"`
}

// ZoneFor returns the index into Zones for a slope, by absolute value.
func ZoneFor(slope float64) int {
	abs := math.Abs(slope)
	for i := len(Zones) - 1; i > 0; i-- {
		if abs >= Zones[i].MinPercent {
			return i
		}
	}
	return 0
}

// ZoneBreakdown attributes each sample-to-sample step to the zone of the
// step's slope. Shares sum to 1 for a profile with at least two samples.
func ZoneBreakdown(p *Profile) []ZoneShare {
	shares := make([]ZoneShare, len(Zones))
	for i, z := range Zones {
		shares[i].Zone = z
	}
	if p.Len() < 2 {
		return shares
	}

	total := 0.0
	for i := 1; i < p.Len(); i++ {
		step := p.Distances[i] - p.Distances[i-1]
		shares[ZoneFor(p.Slopes[i])].DistanceKm += step
		total += step
	}
	if total > 0 {
		for i := range shares {
			shares[i].Share = shares[i].DistanceKm / total
		}
	}
	return shares
}
