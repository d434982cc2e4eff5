package routing

import (
	"encoding/json"
	"errors"

	"github.com/hongjunna/toporider/internal/profile"
)

const (
	ModeTurnByTurn = "turn-by-turn"
	ModeStraight   = "straight"
)

var ErrUpstream = errors.New("routing upstream failed")

// Query is a route request between at least two points.
type Query struct {
	Points  []profile.LatLng
	Profile string
	Mode    string
}

// Response mirrors the GraphHopper route response, with decoded_points added
// to every path as [lat, lng, ele] triples.
type Response struct {
	Hints map[string]any `json:"hints,omitempty"`
	Info  Info           `json:"info"`
	Paths []Path         `json:"paths"`
}

type Info struct {
	Copyrights []string       `json:"copyrights,omitempty"`
	Took       int64          `json:"took,omitempty"`
	Errors     []MessageError `json:"errors,omitempty"`
}

type MessageError struct {
	Message string `json:"message"`
}

type Path struct {
	Distance         float64         `json:"distance"`
	Weight           float64         `json:"weight"`
	Time             int64           `json:"time"`
	Transfers        int             `json:"transfers"`
	Ascend           float64         `json:"ascend"`
	Descend          float64         `json:"descend"`
	PointsEncoded    bool            `json:"points_encoded"`
	Points           json.RawMessage `json:"points,omitempty"`
	DecodedPoints    [][3]float64    `json:"decoded_points"`
	Instructions     json.RawMessage `json:"instructions,omitempty"`
	SnappedWaypoints *LineString     `json:"snapped_waypoints,omitempty"`
}

// LineString is a GeoJSON line with [lng, lat, ele] coordinates.
type LineString struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// errorResponse is returned to clients in place of a route when the upstream
// fails; the status stays 200 so the editor can show the message.
func errorResponse(msg string) Response {
	return Response{
		Info:  Info{Errors: []MessageError{{Message: msg}}},
		Paths: []Path{},
	}
}

// Failed reports whether the response carries upstream errors.
func (r Response) Failed() bool {
	return len(r.Info.Errors) > 0
}

func jsonLine(coords [][]float64) (json.RawMessage, error) {
	return json.Marshal(LineString{Type: "LineString", Coordinates: coords})
}
