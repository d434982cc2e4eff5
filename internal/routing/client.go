package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hongjunna/toporider/internal/profile"

	"github.com/gofiber/fiber/v2"
)

const (
	routeTimeout     = 30 * time.Second
	elevationTimeout = 2 * time.Second
	elevationProfile = "foot"
)

// Upstream is the routing engine the service talks to.
type Upstream interface {
	Route(ctx context.Context, points []profile.LatLng, vehicle string) (Response, error)
	Elevation(ctx context.Context, p profile.LatLng) (float64, error)
}

// Client queries a GraphHopper server over HTTP.
type Client struct {
	BaseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/")}
}

// Route asks for a route through points with elevation and unencoded
// geometry.
func (c *Client) Route(ctx context.Context, points []profile.LatLng, vehicle string) (Response, error) {
	q := routeParams(points, vehicle)
	q.Add("type", "json")

	var resp Response
	if err := c.get(ctx, q, routeTimeout, &resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}

// Elevation looks up the terrain height at p by routing from p to itself.
func (c *Client) Elevation(ctx context.Context, p profile.LatLng) (float64, error) {
	var resp Response
	if err := c.get(ctx, routeParams([]profile.LatLng{p, p}, elevationProfile), elevationTimeout, &resp); err != nil {
		return 0, err
	}
	if len(resp.Paths) == 0 {
		return 0, fmt.Errorf("%w: no path for elevation lookup", ErrUpstream)
	}
	line, err := resp.Paths[0].lineString()
	if err != nil {
		return 0, err
	}
	if len(line.Coordinates) == 0 || len(line.Coordinates[0]) < 3 {
		return 0, fmt.Errorf("%w: no elevation in response", ErrUpstream)
	}
	return line.Coordinates[0][2], nil
}

func (c *Client) get(ctx context.Context, q url.Values, timeout time.Duration, out any) error {
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return fmt.Errorf("%w: %v", ErrUpstream, context.DeadlineExceeded)
	}

	agent := fiber.Get(c.BaseURL + "/route")
	agent.QueryString(q.Encode())
	agent.Timeout(timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrUpstream, errs[0])
	}
	if code != fiber.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUpstream, code)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	return nil
}

func routeParams(points []profile.LatLng, vehicle string) url.Values {
	q := url.Values{}
	for _, p := range points {
		q.Add("point", formatPoint(p))
	}
	q.Set("profile", vehicle)
	q.Set("elevation", "true")
	q.Set("points_encoded", "false")
	return q
}

func formatPoint(p profile.LatLng) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lng, 'f', -1, 64)
}

// ParsePoint reads a "lat,lng" pair.
func ParsePoint(s string) (profile.LatLng, error) {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return profile.LatLng{}, fmt.Errorf("point %q: want lat,lng", s)
	}
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return profile.LatLng{}, fmt.Errorf("point %q: %w", s, err)
	}
	ln, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return profile.LatLng{}, fmt.Errorf("point %q: %w", s, err)
	}
	if la < -90 || la > 90 || ln < -180 || ln > 180 {
		return profile.LatLng{}, fmt.Errorf("point %q: out of range", s)
	}
	return profile.LatLng{Lat: la, Lng: ln}, nil
}

// lineString decodes the unencoded points of a path. An encoded polyline
// (a JSON string) is reported as an error.
func (p Path) lineString() (LineString, error) {
	var line LineString
	if len(p.Points) == 0 {
		return line, nil
	}
	if err := json.Unmarshal(p.Points, &line); err != nil {
		return LineString{}, fmt.Errorf("%w: points: %v", ErrUpstream, err)
	}
	return line, nil
}
