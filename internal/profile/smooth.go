package profile

import "gonum.org/v1/gonum/stat"

// Smoothing defaults for profile elevations: a 7-sample (about 70 m) window
// applied twice.
const (
	SmoothWindow     = 7
	SmoothIterations = 2
)

// Smooth applies a centered moving average of the given window size
// iterations times. Near the ends the window shrinks to the valid index
// range. A series shorter than the window is returned unchanged. The input
// slice is never modified.
func Smooth(values []float64, window, iterations int) []float64 {
	if window < 1 || len(values) < window {
		return values
	}

	half := window / 2
	current := values
	for iter := 0; iter < iterations; iter++ {
		next := make([]float64, len(current))
		for i := range current {
			lo := i - half
			if lo < 0 {
				lo = 0
			}
			hi := i + half + 1
			if hi > len(current) {
				hi = len(current)
			}
			next[i] = stat.Mean(current[lo:hi], nil)
		}
		current = next
	}
	return current
}
