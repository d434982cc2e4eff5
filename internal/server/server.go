package server

import (
	"context"
	"errors"
	"time"

	"github.com/hongjunna/toporider/internal/auth"
	"github.com/hongjunna/toporider/internal/config"
	"github.com/hongjunna/toporider/internal/course"
	"github.com/hongjunna/toporider/internal/db"
	"github.com/hongjunna/toporider/internal/elevation"
	"github.com/hongjunna/toporider/internal/export"
	"github.com/hongjunna/toporider/internal/log"
	"github.com/hongjunna/toporider/internal/profile"
	"github.com/hongjunna/toporider/internal/routing"
	"github.com/hongjunna/toporider/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App     *fiber.App
	Cfg     config.Config
	DB      db.Querier
	Redis   *redis.Client
	Stream  *stream.Hub
	Courses *course.Service
}

// NewServer wires every route. database may be nil, in which case the
// course and auth routes fail per request.
func NewServer(cfg config.Config, database db.Querier, redisClient *redis.Client) *Server {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Use(recover.New())
	app.Use(requestLogger())
	app.Use(cors.New())

	s := &Server{
		App:     app,
		Cfg:     cfg,
		DB:      database,
		Redis:   redisClient,
		Stream:  stream.NewHub(redisClient),
		Courses: course.NewService(database),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB))
	course.RegisterRoutes(s.App.Group("/courses"), s.Courses, jwtMiddleware)
	routing.RegisterRoutes(s.App.Group("/route"), routing.NewService(routing.NewClient(s.Cfg.GraphHopperURL), s.Redis, s.Cfg.RouteCacheTTL))
	export.RegisterRoutes(s.App.Group("/export"))
	export.RegisterImportRoutes(s.App.Group("/import"))
	elevation.RegisterRoutes(s.App.Group("/elevation"), s.Stream, s.coursePath)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}

// coursePath seeds chart sessions with the stored path of a course.
func (s *Server) coursePath(ctx context.Context, courseID string) ([]profile.PathSegment, error) {
	if s.DB == nil {
		return nil, elevation.ErrNoPath
	}
	c, err := s.Courses.Get(ctx, courseID)
	if errors.Is(err, course.ErrNotFound) {
		return nil, elevation.ErrNoPath
	}
	if err != nil {
		return nil, err
	}
	return c.Polylines, nil
}

// Close releases the stream hub's subscription.
func (s *Server) Close() error {
	return s.Stream.Close()
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		log.Infow("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start),
		)
		return err
	}
}

// errorHandler renders errors as {"error": message}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		log.Errorw("request failed", "path", c.Path(), "error", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
