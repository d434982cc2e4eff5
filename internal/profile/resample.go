package profile

// SamplingIntervalKm is the arc-length spacing of profile samples (10 m).
const SamplingIntervalKm = 0.01

// Resample walks the cumulative distance table and emits a sample every
// interval km, linearly interpolating latitude, longitude and elevation
// between the two bracketing points. The returned profile carries raw
// elevations and no slopes.
//
// The bracket cursor only moves forward, so the whole pass is linear in the
// number of points plus samples.
func Resample(points []GeoPoint, table CumulativeTable, interval float64) *Profile {
	total := table.Total()
	out := &Profile{TotalDistanceKm: total}
	if len(points) < 2 || table.Len() != len(points) || interval <= 0 {
		return out
	}

	capacity := int(total/interval) + 2
	out.Distances = make([]float64, 0, capacity)
	out.Elevations = make([]float64, 0, capacity)
	out.Lats = make([]float64, 0, capacity)
	out.Lngs = make([]float64, 0, capacity)

	cum := table.Distances
	idx := 0
	for i := 0; ; i++ {
		d := float64(i) * interval
		if d > total {
			break
		}
		for idx < len(cum)-1 && cum[idx+1] < d {
			idx++
		}
		if idx >= len(points)-1 {
			break
		}

		p1, p2 := points[idx], points[idx+1]
		d1, d2 := cum[idx], cum[idx+1]
		t := 0.0
		if span := d2 - d1; span > 0 {
			t = (d - d1) / span
		}

		out.Distances = append(out.Distances, d)
		out.Lats = append(out.Lats, lerp(p1.Lat, p2.Lat, t))
		out.Lngs = append(out.Lngs, lerp(p1.Lng, p2.Lng, t))
		out.Elevations = append(out.Elevations, lerp(p1.Ele, p2.Ele, t))
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
