package routing

import (
	"github.com/hongjunna/toporider/internal/profile"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		raw := c.Context().QueryArgs().PeekMulti("point")
		if len(raw) < 2 {
			return fiber.NewError(fiber.StatusBadRequest, "at least two point parameters required")
		}

		points := make([]profile.LatLng, 0, len(raw))
		for _, b := range raw {
			p, err := ParsePoint(string(b))
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			points = append(points, p)
		}

		mode := c.Query("mode", ModeTurnByTurn)
		if mode != ModeTurnByTurn && mode != ModeStraight {
			return fiber.NewError(fiber.StatusBadRequest, "mode must be turn-by-turn or straight")
		}

		resp := svc.Route(c.UserContext(), Query{
			Points:  points,
			Profile: c.Query("profile", "bike"),
			Mode:    mode,
		})
		return c.JSON(resp)
	})
}
