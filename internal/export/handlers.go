package export

import (
	"errors"

	"github.com/hongjunna/toporider/internal/profile"

	"github.com/gofiber/fiber/v2"
)

type exportRequest struct {
	TrackPoints []profile.GeoPoint `json:"trackPoints"`
}

func RegisterRoutes(r fiber.Router) {
	r.Post("/tcx", func(c *fiber.Ctx) error {
		return render(c, TCX, "application/vnd.garmin.tcx+xml", "toporider_course.tcx")
	})

	r.Post("/gpx", func(c *fiber.Ctx) error {
		return render(c, GPX, "application/gpx+xml", "toporider_course.gpx")
	})
}

// RegisterImportRoutes accepts uploaded GPX documents and returns their path
// segments.
func RegisterImportRoutes(r fiber.Router) {
	r.Post("/gpx", func(c *fiber.Ctx) error {
		segments, err := ParseGPX(c.Body())
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"segments": segments})
	})
}

func render(c *fiber.Ctx, encode func([]profile.GeoPoint) ([]byte, error), contentType, filename string) error {
	var req exportRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	body, err := encode(req.TrackPoints)
	if errors.Is(err, ErrNoPoints) {
		return c.Status(fiber.StatusBadRequest).SendString("No points provided")
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
	return c.Send(body)
}
