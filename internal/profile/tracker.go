package profile

// Tracker keeps the profile of the current path, the visible window and the
// hovered sample in sync, and reports the highlighted coordinate to the map.
//
// A Tracker is not safe for concurrent use; it is owned by the goroutine that
// delivers path, pointer and viewport events.
type Tracker struct {
	highlight func(*LatLng)

	segments []PathSegment
	built    bool
	profile  *Profile
	resolver *Resolver

	viewport Viewport
	zoomed   bool
	layout   Layout
	overlay  *Overlay
}

// NewTracker returns a Tracker with an empty profile. highlight may be nil.
func NewTracker(highlight func(*LatLng)) *Tracker {
	empty := &Profile{}
	return &Tracker{
		highlight: highlight,
		profile:   empty,
		resolver:  NewResolver(empty),
		layout:    DefaultLayout,
	}
}

// SetPath replaces the path. The profile is rebuilt only when segments is not
// the same path the tracker already holds; it reports whether it rebuilt.
// Any hover is dropped. A zoomed window survives when it still fits the new
// profile and is clamped otherwise.
func (t *Tracker) SetPath(segments []PathSegment) bool {
	if t.built && samePath(t.segments, segments) {
		return false
	}

	t.segments = segments
	t.built = true
	t.profile = Build(segments)
	t.resolver = NewResolver(t.profile)

	total := t.profile.TotalDistanceKm
	switch {
	case !t.zoomed:
		t.viewport = FullViewport(total)
	case t.viewport.MinKm >= 0 && t.viewport.MaxKm <= total && t.viewport.Width() > 0:
		// still fits
	default:
		t.viewport = ClampViewport(t.viewport.MinKm, t.viewport.MaxKm, total)
		t.zoomed = t.viewport != FullViewport(total)
	}

	t.clearHover()
	return true
}

// Profile returns the current profile.
func (t *Tracker) Profile() *Profile {
	return t.profile
}

// SetLayout records the chart area reported by the renderer.
func (t *Tracker) SetLayout(l Layout) {
	t.layout = l
}

// OnViewportChange handles a pan or zoom.
func (t *Tracker) OnViewportChange(minKm, maxKm float64) {
	total := t.profile.TotalDistanceKm
	t.viewport = ClampViewport(minKm, maxKm, total)
	t.zoomed = t.viewport != FullViewport(total)
}

// OnPointerMove handles a pointer at distanceKm along the x-axis; nil means
// the pointer left the plot.
func (t *Tracker) OnPointerMove(distanceKm *float64) {
	if distanceKm == nil {
		t.clearHover()
		return
	}

	overlay := t.resolver.Resolve(*distanceKm, t.viewport, t.layout)
	if overlay == nil {
		t.clearHover()
		return
	}

	t.overlay = overlay
	if t.highlight != nil {
		coord := overlay.Coordinate
		t.highlight(&coord)
	}
}

// Overlay returns the HUD for the hovered sample, or nil.
func (t *Tracker) Overlay() *Overlay {
	return t.overlay
}

// Viewport returns the visible window.
func (t *Tracker) Viewport() Viewport {
	return t.viewport
}

// Scrollbar returns the scrollbar thumb for the visible window.
func (t *Tracker) Scrollbar() ScrollbarExtent {
	return ScrollbarFor(t.viewport, t.profile.TotalDistanceKm)
}

func (t *Tracker) clearHover() {
	hadOverlay := t.overlay != nil
	t.overlay = nil
	if hadOverlay && t.highlight != nil {
		t.highlight(nil)
	}
}

// samePath reports whether a and b share their backing arrays segment by
// segment, which is how an unchanged path is handed back by the editor.
func samePath(a, b []PathSegment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		if len(a[i]) > 0 && &a[i][0] != &b[i][0] {
			return false
		}
	}
	return true
}
