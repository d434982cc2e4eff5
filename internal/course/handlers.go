package course

import (
	"errors"

	"github.com/hongjunna/toporider/internal/profile"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Course
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Title == "" || len(req.Polylines) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "title and polylines required")
		}
		if riderID, ok := c.Locals("rider_id").(string); ok {
			req.RiderID = riderID
		}
		course, err := svc.Create(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(course)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		courses, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(courses)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		course, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return lookupError(err)
		}
		return c.JSON(course)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		var req Course
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		course, err := svc.Update(c.Context(), c.Params("id"), req)
		if err != nil {
			return lookupError(err)
		}
		return c.JSON(course)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return lookupError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/:id/profile", func(c *fiber.Ctx) error {
		p, err := svc.Profile(c.Context(), c.Params("id"))
		if err != nil {
			return lookupError(err)
		}
		return c.JSON(profile.NewReport(p))
	})

	r.Get("/:id/geojson", func(c *fiber.Ctx) error {
		course, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return lookupError(err)
		}
		body, err := FeatureCollection(course).MarshalJSON()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		c.Set(fiber.HeaderContentType, "application/geo+json")
		return c.Send(body)
	})
}

func lookupError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "course not found")
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
