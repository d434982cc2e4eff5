package profile

import "math"

// MaxSlopePercent caps the magnitude of a derived slope.
const MaxSlopePercent = 30.0

// Slopes derives the percent grade between consecutive samples. The first
// sample and samples with no distance to their predecessor get 0. Values are
// clamped to [-MaxSlopePercent, MaxSlopePercent].
func Slopes(distances, elevations []float64) []float64 {
	n := len(distances)
	if len(elevations) < n {
		n = len(elevations)
	}
	if n == 0 {
		return nil
	}

	slopes := make([]float64, n)
	for i := 1; i < n; i++ {
		distM := (distances[i] - distances[i-1]) * 1000
		if distM <= 0 {
			continue
		}
		slope := (elevations[i] - elevations[i-1]) / distM * 100
		slopes[i] = math.Max(-MaxSlopePercent, math.Min(MaxSlopePercent, slope))
	}
	return slopes
}

// Band is a gradient category used to color the profile.
type Band int

const (
	BandFlat Band = iota
	BandRolling
	BandClimb
	BandSteep
)

// BandColors is the fill/stroke pair drawn for a band.
type BandColors struct {
	Fill   string `json:"fill"`
	Stroke string `json:"stroke"`
}

var bandNames = [...]string{"flat", "rolling", "climb", "steep"}

var bandColors = [...]BandColors{
	{Fill: "rgba(54, 162, 235, 0.2)", Stroke: "rgb(54, 162, 235)"},
	{Fill: "rgba(75, 192, 192, 0.4)", Stroke: "rgb(75, 192, 192)"},
	{Fill: "rgba(255, 206, 86, 0.5)", Stroke: "rgb(255, 206, 86)"},
	{Fill: "rgba(255, 99, 132, 0.6)", Stroke: "rgb(255, 99, 132)"},
}

// BandFor maps a slope to its band by absolute value: <2, <5, <10, >=10.
func BandFor(slope float64) Band {
	abs := math.Abs(slope)
	switch {
	case abs < 2:
		return BandFlat
	case abs < 5:
		return BandRolling
	case abs < 10:
		return BandClimb
	default:
		return BandSteep
	}
}

// Colors returns the band's fill and stroke colors.
func (b Band) Colors() BandColors {
	return bandColors[b]
}

func (b Band) String() string {
	return bandNames[b]
}

// SlopeTone is the HUD tone for a slope readout: "steep-up" at 10 % or
// more, "steep-down" at -10 % or less, "neutral" otherwise.
func SlopeTone(slope float64) string {
	switch {
	case slope >= 10:
		return "steep-up"
	case slope <= -10:
		return "steep-down"
	default:
		return "neutral"
	}
}
