package export

import (
	"fmt"

	"github.com/hongjunna/toporider/internal/profile"

	"github.com/tkrajina/gpxgo/gpx"
)

const creator = "toporider"

// GPX renders points as a GPX 1.1 track, timed like the TCX export.
func GPX(points []profile.GeoPoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}

	var segment gpx.GPXTrackSegment
	for _, tp := range Timeline(points, nowFn().UTC()) {
		var p gpx.GPXPoint
		p.Latitude = tp.Point.Lat
		p.Longitude = tp.Point.Lng
		p.Elevation = *gpx.NewNullableFloat64(tp.Point.Ele)
		p.Timestamp = tp.Time
		segment.Points = append(segment.Points, p)
	}

	doc := &gpx.GPX{
		Creator: creator,
		Name:    courseName,
		Tracks: []gpx.GPXTrack{{
			Name:     courseName,
			Segments: []gpx.GPXTrackSegment{segment},
		}},
	}
	return doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
}

// ParseGPX reads the tracks of a GPX document as path segments, one per
// track segment. Routes are read as well, one segment per route. Missing
// elevations become 0.
func ParseGPX(data []byte) ([]profile.PathSegment, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse gpx: %w", err)
	}

	var segments []profile.PathSegment
	for _, track := range doc.Tracks {
		for _, seg := range track.Segments {
			if s := toSegment(seg.Points); len(s) > 0 {
				segments = append(segments, s)
			}
		}
	}
	for _, route := range doc.Routes {
		if s := toSegment(route.Points); len(s) > 0 {
			segments = append(segments, s)
		}
	}
	if len(segments) == 0 {
		return nil, ErrNoPoints
	}
	return segments, nil
}

func toSegment(points []gpx.GPXPoint) profile.PathSegment {
	out := make(profile.PathSegment, 0, len(points))
	for _, p := range points {
		gp := profile.GeoPoint{Lat: p.Latitude, Lng: p.Longitude}
		if p.Elevation.NotNull() {
			gp.Ele = p.Elevation.Value()
		}
		out = append(out, gp)
	}
	return out
}
