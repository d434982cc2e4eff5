package course

import (
	"errors"
	"time"

	"github.com/hongjunna/toporider/internal/profile"
)

var ErrNotFound = errors.New("course not found")

type Marker struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Course struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Markers        []Marker              `json:"markers"`
	Polylines      []profile.PathSegment `json:"polylines"`
	RiderID        string                `json:"rider_id"`
	TotalDistanceM float64               `json:"total_distance_m"`
	TotalAscentM   float64               `json:"total_ascent_m"`
	CreatedAt      time.Time             `json:"created_at"`
	IsDeleted      bool                  `json:"-"`
}

// Points returns every vertex of the course in drawing order.
func (c Course) Points() []profile.GeoPoint {
	points, _ := profile.Flatten(c.Polylines)
	return points
}
