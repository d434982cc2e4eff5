package export

import (
	"encoding/xml"
	"errors"
	"strconv"
	"time"

	"github.com/hongjunna/toporider/internal/profile"
	"github.com/hongjunna/toporider/internal/shared/geo"
)

const (
	// AverageSpeedMPS is the synthetic riding pace used to time trackpoints.
	AverageSpeedMPS = 5.5
	// MinStepM drops points closer than this to the previously kept point.
	MinStepM = 1.0

	courseName = "TopoRider Course"
	tcxNS      = "http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2"
	timeLayout = "2006-01-02T15:04:05Z"
)

var ErrNoPoints = errors.New("no points provided")

var nowFn = time.Now

type tcxDatabase struct {
	XMLName xml.Name    `xml:"TrainingCenterDatabase"`
	Xmlns   string      `xml:"xmlns,attr"`
	Courses []tcxCourse `xml:"Courses>Course"`
}

type tcxCourse struct {
	Name string `xml:"Name"`
	Lap  tcxLap `xml:"Lap"`
	// Track lives beside Lap in the Course element.
	Track []tcxTrackpoint `xml:"Track>Trackpoint"`
}

type tcxLap struct {
	TotalTimeSeconds string      `xml:"TotalTimeSeconds"`
	DistanceMeters   string      `xml:"DistanceMeters"`
	BeginPosition    tcxPosition `xml:"BeginPosition"`
	EndPosition      tcxPosition `xml:"EndPosition"`
	Intensity        string      `xml:"Intensity"`
}

type tcxPosition struct {
	LatitudeDegrees  string `xml:"LatitudeDegrees"`
	LongitudeDegrees string `xml:"LongitudeDegrees"`
}

type tcxTrackpoint struct {
	Time           string      `xml:"Time"`
	Position       tcxPosition `xml:"Position"`
	AltitudeMeters string      `xml:"AltitudeMeters"`
	DistanceMeters string      `xml:"DistanceMeters"`
}

// Trackpoint is one timed point of an exported course.
type Trackpoint struct {
	Point     profile.GeoPoint
	Time      time.Time
	DistanceM float64
}

// Timeline paces points at AverageSpeedMPS from start. Points closer than
// MinStepM to the last kept point are dropped; every kept step advances the
// clock by at least one second.
func Timeline(points []profile.GeoPoint, start time.Time) []Trackpoint {
	if len(points) == 0 {
		return nil
	}

	out := []Trackpoint{{Point: points[0], Time: start}}
	prev := points[0]
	clock := start
	total := 0.0
	for _, p := range points[1:] {
		dist := geo.HaversineM(prev.Lat, prev.Lng, p.Lat, p.Lng)
		if dist < MinStepM {
			continue
		}
		total += dist
		clock = clock.Add(time.Duration(max(1, int(dist/AverageSpeedMPS))) * time.Second)
		out = append(out, Trackpoint{Point: p, Time: clock, DistanceM: total})
		prev = p
	}
	return out
}

// TCX renders points as a Garmin Training Center course.
func TCX(points []profile.GeoPoint) ([]byte, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}

	timeline := Timeline(points, nowFn().UTC())
	last := timeline[len(timeline)-1]

	course := tcxCourse{
		Name: courseName,
		Lap: tcxLap{
			TotalTimeSeconds: fixed(last.DistanceM/AverageSpeedMPS, 1),
			DistanceMeters:   fixed(last.DistanceM, 1),
			BeginPosition:    position(points[0]),
			EndPosition:      position(last.Point),
			Intensity:        "Active",
		},
	}
	for _, tp := range timeline {
		course.Track = append(course.Track, tcxTrackpoint{
			Time:           tp.Time.Format(timeLayout),
			Position:       position(tp.Point),
			AltitudeMeters: fixed(tp.Point.Ele, 2),
			DistanceMeters: fixed(tp.DistanceM, 2),
		})
	}

	body, err := xml.MarshalIndent(tcxDatabase{Xmlns: tcxNS, Courses: []tcxCourse{course}}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func position(p profile.GeoPoint) tcxPosition {
	return tcxPosition{
		LatitudeDegrees:  strconv.FormatFloat(p.Lat, 'f', -1, 64),
		LongitudeDegrees: strconv.FormatFloat(p.Lng, 'f', -1, 64),
	}
}

func fixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
