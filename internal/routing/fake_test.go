package routing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hongjunna/toporider/internal/profile"
)

// fakeUpstream implements Upstream in memory.
type fakeUpstream struct {
	route     Response
	routeErr  error
	eleFn     func(profile.LatLng) (float64, error)
	routes    atomic.Int32
	mu        sync.Mutex
	eleLookup []profile.LatLng
}

func (f *fakeUpstream) Route(_ context.Context, _ []profile.LatLng, _ string) (Response, error) {
	f.routes.Add(1)
	if f.routeErr != nil {
		return Response{}, f.routeErr
	}
	// hand out a copy so callers can mutate paths
	raw, _ := json.Marshal(f.route)
	var resp Response
	_ = json.Unmarshal(raw, &resp)
	return resp, nil
}

func (f *fakeUpstream) Elevation(_ context.Context, p profile.LatLng) (float64, error) {
	f.mu.Lock()
	f.eleLookup = append(f.eleLookup, p)
	f.mu.Unlock()
	if f.eleFn == nil {
		return 0, errors.New("no elevation")
	}
	return f.eleFn(p)
}

func lineJSON(t *testing.T, coords [][]float64) json.RawMessage {
	t.Helper()
	raw, err := jsonLine(coords)
	if err != nil {
		t.Fatalf("line json: %v", err)
	}
	return raw
}

// graphHopper serves /route the way GraphHopper does with
// points_encoded=false: a zero-length route (elevation lookup) returns the
// point with a height derived from its latitude.
func graphHopper(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/route" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		if q.Get("points_encoded") != "false" || q.Get("elevation") != "true" {
			http.Error(w, "bad params", http.StatusBadRequest)
			return
		}
		points := q["point"]
		if len(points) < 2 {
			http.Error(w, "need points", http.StatusBadRequest)
			return
		}
		var coords [][]float64
		for _, s := range points {
			p, err := ParsePoint(s)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			coords = append(coords, []float64{p.Lng, p.Lat, (p.Lat - 37) * 1000})
		}
		if q.Get("profile") == "unroutable" {
			http.Error(w, `{"message":"Connection between locations not found"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"info": map[string]any{"copyrights": []string{"GraphHopper"}},
			"paths": []map[string]any{{
				"distance":       1234.5,
				"points_encoded": false,
				"points":         map[string]any{"type": "LineString", "coordinates": coords},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func deadlinePast() time.Time {
	return time.Now().Add(-time.Second)
}
