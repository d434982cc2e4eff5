package profile

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Overlay box geometry, in pixels.
const (
	OverlayBoxWidth    = 140.0
	OverlayBoxHeight   = 95.0
	OverlayMargin      = 20.0
	OverlayEdgePadding = 10.0
)

// Layout is the plotted area of the chart in screen pixels.
type Layout struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// DefaultLayout is used until the renderer reports its real chart area.
var DefaultLayout = Layout{Left: 40, Right: 790, Top: 10, Bottom: 240}

// Overlay is the HUD for the hovered sample.
type Overlay struct {
	Index        int     `json:"index"`
	DistanceKm   float64 `json:"distance_km"`
	ElevationM   float64 `json:"elevation_m"`
	SlopePercent float64 `json:"slope_percent"`
	Tone         string  `json:"tone"`
	// PointX/PointY locate the hovered sample on the chart.
	PointX float64 `json:"point_x"`
	PointY float64 `json:"point_y"`
	// ScreenX is the horizontal center of the HUD box and ScreenY its top edge.
	ScreenX    float64 `json:"screen_x"`
	ScreenY    float64 `json:"screen_y"`
	Coordinate LatLng  `json:"coordinate"`
}

// IndexAt maps a distance to the nearest sample index, rounding half away
// from zero, clamped to [0, Len()-1]. It returns -1 for an empty profile.
func IndexAt(p *Profile, distanceKm float64) int {
	n := p.Len()
	if n == 0 {
		return -1
	}
	idx := int(math.Round(distanceKm / SamplingIntervalKm))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return idx
}

// Resolver answers hover queries against one profile. The elevation range
// used for the vertical axis is computed once so that Resolve is O(1).
type Resolver struct {
	p      *Profile
	minEle float64
	maxEle float64
}

// NewResolver prepares hover lookups for p.
func NewResolver(p *Profile) *Resolver {
	r := &Resolver{p: p}
	if !p.Empty() {
		r.minEle = floats.Min(p.Elevations)
		r.maxEle = floats.Max(p.Elevations)
	}
	return r
}

// Resolve returns the overlay for a pointer at distanceKm while viewport is
// visible in layout. It returns nil when the profile is empty or the pointer
// is outside the plotted window.
func (r *Resolver) Resolve(distanceKm float64, viewport Viewport, layout Layout) *Overlay {
	if r.p.Empty() || !viewport.Contains(distanceKm) {
		return nil
	}

	idx := IndexAt(r.p, distanceKm)
	s := r.p.Sample(idx)
	pointX := r.xFor(distanceKm, viewport, layout)
	pointY := r.yFor(s.ElevationM, layout)

	return &Overlay{
		Index:        idx,
		DistanceKm:   s.DistanceKm,
		ElevationM:   s.ElevationM,
		SlopePercent: s.SlopePercent,
		Tone:         SlopeTone(s.SlopePercent),
		PointX:       pointX,
		PointY:       pointY,
		ScreenX:      overlayX(pointX, layout),
		ScreenY:      pointY - OverlayBoxHeight - OverlayMargin,
		Coordinate:   LatLng{Lat: s.Lat, Lng: s.Lng},
	}
}

func (r *Resolver) xFor(d float64, v Viewport, l Layout) float64 {
	if v.Width() <= 0 {
		return l.Left
	}
	return l.Left + (d-v.MinKm)/v.Width()*(l.Right-l.Left)
}

func (r *Resolver) yFor(ele float64, l Layout) float64 {
	span := r.maxEle - r.minEle
	if span <= 0 {
		return (l.Top + l.Bottom) / 2
	}
	return l.Bottom - (ele-r.minEle)/span*(l.Bottom-l.Top)
}

// overlayX keeps the HUD box, centered on x, inside the chart's left and
// right bounds.
func overlayX(x float64, l Layout) float64 {
	inset := OverlayBoxWidth/2 + OverlayEdgePadding
	lo, hi := l.Left+inset, l.Right-inset
	if lo > hi {
		return (l.Left + l.Right) / 2
	}
	return math.Max(lo, math.Min(hi, x))
}
