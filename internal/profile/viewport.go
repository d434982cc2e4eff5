package profile

// Viewport is the visible distance window of the chart, in km.
type Viewport struct {
	MinKm float64 `json:"min_km"`
	MaxKm float64 `json:"max_km"`
}

// Width returns MaxKm - MinKm.
func (v Viewport) Width() float64 {
	return v.MaxKm - v.MinKm
}

// Contains reports whether d lies inside the window, bounds included.
func (v Viewport) Contains(d float64) bool {
	return d >= v.MinKm && d <= v.MaxKm
}

// FullViewport spans the whole profile.
func FullViewport(total float64) Viewport {
	if total < 0 {
		total = 0
	}
	return Viewport{MinKm: 0, MaxKm: total}
}

// ClampViewport fits a requested window into [0, total]. A window at least
// as wide as the profile, or one with no positive width, becomes the full
// range. A window that sticks out on one side is shifted back inside with
// its width preserved, the way a pan against a chart edge behaves.
func ClampViewport(minKm, maxKm, total float64) Viewport {
	width := maxKm - minKm
	if total <= 0 || width <= 0 || width >= total {
		return FullViewport(total)
	}
	if minKm < 0 {
		minKm, maxKm = 0, width
	}
	if maxKm > total {
		minKm, maxKm = total-width, total
	}
	return Viewport{MinKm: minKm, MaxKm: maxKm}
}

// ScrollbarExtent positions the scrollbar thumb, in percent of the track.
type ScrollbarExtent struct {
	LeftPercent  float64 `json:"left_percent"`
	WidthPercent float64 `json:"width_percent"`
}

// ScrollbarFor converts a window into a scrollbar thumb. The thumb never
// runs past the end of the track.
func ScrollbarFor(v Viewport, total float64) ScrollbarExtent {
	if total <= 0 {
		return ScrollbarExtent{LeftPercent: 0, WidthPercent: 100}
	}
	width := 100 * v.Width() / total
	left := 100 * v.MinKm / total
	if width > 100 {
		width = 100
	}
	if left < 0 {
		left = 0
	}
	if left+width > 100 {
		left = 100 - width
	}
	return ScrollbarExtent{LeftPercent: left, WidthPercent: width}
}
