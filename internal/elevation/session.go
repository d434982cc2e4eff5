package elevation

import (
	"encoding/json"
	"fmt"

	"github.com/hongjunna/toporider/internal/log"
	"github.com/hongjunna/toporider/internal/profile"
)

const (
	MsgPath     = "path"
	MsgPointer  = "pointer"
	MsgViewport = "viewport"
	MsgLayout   = "layout"
	MsgState    = "state"
)

// Broadcaster delivers highlight payloads to the map viewers of a course.
type Broadcaster interface {
	Broadcast(courseID string, payload []byte)
}

// Message is a client event. Which fields are read depends on Type.
type Message struct {
	Type       string                `json:"type"`
	Segments   []profile.PathSegment `json:"segments,omitempty"`
	DistanceKm *float64              `json:"distance_km,omitempty"`
	MinKm      float64               `json:"min_km,omitempty"`
	MaxKm      float64               `json:"max_km,omitempty"`
	profile.Layout
}

// State is sent back after every message.
type State struct {
	Type      string                  `json:"type"`
	Overlay   *profile.Overlay        `json:"overlay"`
	Scrollbar profile.ScrollbarExtent `json:"scrollbar"`
	Viewport  profile.Viewport        `json:"viewport"`
	// Report is set only when the path changed and the profile was rebuilt.
	Report *profile.Report `json:"report,omitempty"`
}

// Session is one chart client of a course. It is not safe for concurrent
// use; the connection's read loop owns it.
type Session struct {
	courseID string
	tracker  *profile.Tracker
	path     []profile.PathSegment
}

func NewSession(courseID string, out Broadcaster) *Session {
	s := &Session{courseID: courseID}
	s.tracker = profile.NewTracker(func(p *profile.LatLng) {
		broadcastHighlight(out, courseID, p)
	})
	return s
}

// broadcastHighlight sends p, or null when the hover cleared. A coordinate
// that cannot be encoded is logged and dropped.
func broadcastHighlight(out Broadcaster, courseID string, p *profile.LatLng) {
	if out == nil {
		return
	}
	payload, err := json.Marshal(p)
	if err != nil {
		log.Warnw("encode highlight failed", "course_id", courseID, "error", err)
		return
	}
	out.Broadcast(courseID, payload)
}

// Handle applies one raw client message and returns the resulting state.
func (s *Session) Handle(raw []byte) (State, error) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return State{}, fmt.Errorf("decode message: %w", err)
	}
	return s.Apply(msg)
}

func (s *Session) Apply(msg Message) (State, error) {
	rebuilt := false
	switch msg.Type {
	case MsgPath:
		rebuilt = s.SetPath(msg.Segments)
	case MsgPointer:
		s.tracker.OnPointerMove(msg.DistanceKm)
	case MsgViewport:
		s.tracker.OnViewportChange(msg.MinKm, msg.MaxKm)
	case MsgLayout:
		s.tracker.SetLayout(msg.Layout)
	default:
		return State{}, fmt.Errorf("unknown message type %q", msg.Type)
	}

	state := s.State()
	if rebuilt {
		report := profile.NewReport(s.tracker.Profile())
		state.Report = &report
	}
	return state, nil
}

// SetPath hands the path to the tracker. A path equal to the current one is
// passed as the same slices so the tracker keeps its profile.
func (s *Session) SetPath(segments []profile.PathSegment) bool {
	if s.path != nil && equalPath(s.path, segments) {
		segments = s.path
	}
	s.path = segments
	return s.tracker.SetPath(segments)
}

func (s *Session) State() State {
	return State{
		Type:      MsgState,
		Overlay:   s.tracker.Overlay(),
		Scrollbar: s.tracker.Scrollbar(),
		Viewport:  s.tracker.Viewport(),
	}
}

func equalPath(a, b []profile.PathSegment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
