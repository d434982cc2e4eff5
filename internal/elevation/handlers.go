package elevation

import (
	"bytes"
	"context"
	"errors"

	"github.com/hongjunna/toporider/internal/chart"
	"github.com/hongjunna/toporider/internal/log"
	"github.com/hongjunna/toporider/internal/profile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ErrNoPath is returned by a PathLoader for a course without a stored path.
var ErrNoPath = errors.New("no stored path")

// PathLoader returns the stored path of a course, used to seed new chart
// sessions.
type PathLoader func(ctx context.Context, courseID string) ([]profile.PathSegment, error)

type pathRequest struct {
	Segments []profile.PathSegment `json:"segments"`
	Title    string                `json:"title"`
}

func RegisterRoutes(r fiber.Router, out Broadcaster, load PathLoader) {
	r.Post("/profile", func(c *fiber.Ctx) error {
		var req pathRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(profile.NewReport(profile.Build(req.Segments)))
	})

	r.Post("/chart", func(c *fiber.Ctx) error {
		var req pathRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		p := profile.Build(req.Segments)
		if p.Empty() {
			return fiber.NewError(fiber.StatusBadRequest, "path has no distance")
		}

		var buf bytes.Buffer
		err := chart.Render(&buf, p, chart.Options{
			Title:    req.Title,
			Viewport: profile.Viewport{MinKm: c.QueryFloat("min_km", 0), MaxKm: c.QueryFloat("max_km", 0)},
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(buf.Bytes())
	})

	r.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	r.Get("/ws/:courseID", websocket.New(func(c *websocket.Conn) {
		courseID := c.Params("courseID")
		session := NewSession(courseID, out)

		if load != nil {
			segments, err := load(context.Background(), courseID)
			switch {
			case err == nil:
				session.SetPath(segments)
				if err := c.WriteJSON(seedState(session)); err != nil {
					return
				}
			case !errors.Is(err, ErrNoPath):
				log.Warnw("load course path failed", "course_id", courseID, "error", err)
			}
		}

		for {
			_, raw, err := c.ReadMessage()
			if err != nil {
				return
			}
			state, err := session.Handle(raw)
			if err != nil {
				if werr := c.WriteJSON(fiber.Map{"type": "error", "message": err.Error()}); werr != nil {
					return
				}
				continue
			}
			if err := c.WriteJSON(state); err != nil {
				return
			}
		}
	}))
}

func seedState(s *Session) State {
	state := s.State()
	report := profile.NewReport(s.tracker.Profile())
	state.Report = &report
	return state
}
