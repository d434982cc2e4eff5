package routing

import (
	"context"
	"time"

	"github.com/hongjunna/toporider/internal/log"
	"github.com/hongjunna/toporider/internal/profile"
	"github.com/hongjunna/toporider/internal/shared/geo"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// Elevation smoothing of routed paths. Routed paths are dense and noisy;
// straight lines are sparse and get a lighter pass.
const (
	routeSmoothWindow        = 7
	routeSmoothIterations    = 2
	straightSmoothWindow     = 5
	straightSmoothIterations = 1

	elevationLookups = 8
)

type Service struct {
	upstream Upstream
	cache    cache
}

func NewService(upstream Upstream, redisClient *redis.Client, ttl time.Duration) *Service {
	return &Service{
		upstream: upstream,
		cache:    cache{redis: redisClient, ttl: ttl},
	}
}

// Route answers q. Upstream failures are reported inside the response, never
// as an error.
func (s *Service) Route(ctx context.Context, q Query) Response {
	if q.Mode == "" {
		q.Mode = ModeTurnByTurn
	}
	if q.Profile == "" {
		q.Profile = "bike"
	}

	key := cacheKey(q)
	if resp, ok := s.cache.get(ctx, key); ok {
		return resp
	}

	var resp Response
	if q.Mode == ModeStraight {
		resp = s.straight(ctx, q.Points[0], q.Points[1])
	} else {
		resp = s.turnByTurn(ctx, q)
	}

	if !resp.Failed() {
		s.cache.set(ctx, key, resp)
	}
	return resp
}

func (s *Service) turnByTurn(ctx context.Context, q Query) Response {
	resp, err := s.upstream.Route(ctx, q.Points, q.Profile)
	if err != nil {
		log.Warnw("route request failed", "points", len(q.Points), "profile", q.Profile, "error", err)
		return errorResponse(err.Error())
	}
	if resp.Paths == nil {
		resp.Paths = []Path{}
	}

	for i := range resp.Paths {
		path := &resp.Paths[i]
		line, err := path.lineString()
		if err != nil {
			path.DecodedPoints = [][3]float64{}
			continue
		}

		elevations := make([]float64, len(line.Coordinates))
		for j, c := range line.Coordinates {
			if len(c) > 2 {
				elevations[j] = c[2]
			}
		}
		smoothed := profile.Smooth(elevations, routeSmoothWindow, routeSmoothIterations)

		path.DecodedPoints = make([][3]float64, len(line.Coordinates))
		for j, c := range line.Coordinates {
			if len(c) < 2 {
				continue
			}
			path.DecodedPoints[j] = [3]float64{c[1], c[0], smoothed[j]}
		}
	}
	return resp
}

// straight builds a synthetic path along the straight line from start to end,
// looking up the terrain height of every densified point. A failed lookup
// counts as 0 m.
func (s *Service) straight(ctx context.Context, start, end profile.LatLng) Response {
	points := Densify(start, end)
	elevations := make([]float64, len(points))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(elevationLookups)
	for i, p := range points {
		i, p := i, p
		g.Go(func() error {
			ele, err := s.upstream.Elevation(gctx, p)
			if err != nil {
				log.Debugw("elevation lookup failed", "lat", p.Lat, "lng", p.Lng, "error", err)
				return nil
			}
			elevations[i] = ele
			return nil
		})
	}
	_ = g.Wait()

	smoothed := profile.Smooth(elevations, straightSmoothWindow, straightSmoothIterations)

	decoded := make([][3]float64, len(points))
	coords := make([][]float64, len(points))
	for i, p := range points {
		decoded[i] = [3]float64{p.Lat, p.Lng, smoothed[i]}
		coords[i] = []float64{p.Lng, p.Lat, smoothed[i]}
	}
	rawPoints, _ := jsonLine(coords)

	last := len(points) - 1
	return Response{
		Hints: map[string]any{},
		Info:  Info{Copyrights: []string{"GraphHopper"}},
		Paths: []Path{{
			Distance:      geo.HaversineM(start.Lat, start.Lng, end.Lat, end.Lng),
			Points:        rawPoints,
			DecodedPoints: decoded,
			Instructions:  []byte("[]"),
			SnappedWaypoints: &LineString{
				Type: "LineString",
				Coordinates: [][]float64{
					{start.Lng, start.Lat, smoothed[0]},
					{end.Lng, end.Lat, smoothed[last]},
				},
			},
		}},
	}
}
