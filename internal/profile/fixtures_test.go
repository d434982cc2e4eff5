package profile

import "github.com/hongjunna/toporider/internal/shared/geo"

// kmPerDegreeLat is the haversine length of one degree of latitude.
var kmPerDegreeLat = geo.HaversineKm(0, 0, 1, 0)

// climbSegment is the 0.01 degree, 100 m climb used throughout the tests.
func climbSegment() PathSegment {
	return PathSegment{
		{Lat: 37.50, Lng: 127.00, Ele: 0},
		{Lat: 37.51, Lng: 127.00, Ele: 100},
	}
}

// northward returns a straight segment heading north for km kilometers at a
// constant elevation.
func northward(startLat, km, ele float64) PathSegment {
	return PathSegment{
		{Lat: startLat, Lng: 127.00, Ele: ele},
		{Lat: startLat + km/kmPerDegreeLat, Lng: 127.00, Ele: ele},
	}
}

func ptr(v float64) *float64 {
	return &v
}
