package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenEmpty(t *testing.T) {
	points, table := Flatten(nil)
	assert.Empty(t, points)
	assert.Zero(t, table.Len())
	assert.Zero(t, table.Total())

	points, table = Flatten([]PathSegment{{}, {}})
	assert.Empty(t, points)
	assert.Zero(t, table.Len())
}

func TestFlattenKeepsSharedEndpoints(t *testing.T) {
	first := PathSegment{{Lat: 37.50, Lng: 127.0}, {Lat: 37.51, Lng: 127.0}}
	second := PathSegment{{Lat: 37.51, Lng: 127.0}, {Lat: 37.52, Lng: 127.0}}

	points, table := Flatten([]PathSegment{first, second})
	require.Len(t, points, 4)
	require.Equal(t, 4, table.Len())

	assert.Equal(t, first[1], points[1])
	assert.Equal(t, second[0], points[2])
	// The duplicated boundary point adds no distance.
	assert.Equal(t, table.Distances[1], table.Distances[2])
	assert.InDelta(t, 2*0.01*kmPerDegreeLat, table.Total(), 1e-9)
}

func TestFlattenCumulativeIsNonDecreasing(t *testing.T) {
	// Out and back: coordinates retrace, distance keeps growing.
	seg := PathSegment{
		{Lat: 37.50, Lng: 127.00},
		{Lat: 37.51, Lng: 127.00},
		{Lat: 37.50, Lng: 127.00},
		{Lat: 37.50, Lng: 127.01},
	}
	_, table := Flatten([]PathSegment{seg})
	require.Equal(t, 4, table.Len())
	assert.Zero(t, table.Distances[0])
	for i := 1; i < table.Len(); i++ {
		assert.GreaterOrEqual(t, table.Distances[i], table.Distances[i-1])
	}
	assert.InDelta(t, 2*table.Distances[1], table.Distances[2], 1e-9)
}

func TestFlattenDoesNotAliasInput(t *testing.T) {
	seg := climbSegment()
	points, _ := Flatten([]PathSegment{seg})
	points[0].Ele = 999
	assert.Zero(t, seg[0].Ele)
}
