package httpapi

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/cyberagellc-dev/weather/internal/health"
	"github.com/cyberagellc-dev/weather/internal/weather"
)

var validate = validator.New()

// New assembles the Fiber application: middleware, the health endpoint, and
// the versioned API routes.
func New(service *weather.Service, registry *health.Registry) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-api",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          errorHandler,
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", healthHandler(registry))

	RegisterRoutes(app, service)

	return app
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		q, err := parseWeatherQuery(c)
		if err != nil {
			return err
		}

		rec, err := service.Lookup(c.UserContext(), q)
		if err != nil {
			return err
		}

		return c.JSON(rec)
	})
}

// errorHandler renders every failure as the {"error": message} envelope.
// Classified lookup errors carry their own status code; anything else is an
// internal server error.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var svcErr *weather.ServiceError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &svcErr):
		code = svcErr.StatusCode
		message = svcErr.Message
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

// healthHandler reports per-upstream status. Any unhealthy upstream degrades
// the status text; only the mandatory current-conditions upstream being down
// makes the service unavailable.
func healthHandler(registry *health.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		upstreams := registry.Snapshot()

		status := "ok"
		code := fiber.StatusOK
		for name, upstream := range upstreams {
			if upstream.Healthy {
				continue
			}
			status = "degraded"
			if name == weather.UpstreamCurrent {
				code = fiber.StatusServiceUnavailable
			}
		}

		return c.Status(code).JSON(fiber.Map{
			"status":    status,
			"service":   "weather-api",
			"upstreams": upstreams,
		})
	}
}

// weatherQuery holds query parameters for the weather endpoint.
type weatherQuery struct {
	City  string `validate:"required"`
	Units string
}

func parseWeatherQuery(c *fiber.Ctx) (weather.Query, error) {
	var q weatherQuery

	q.City = strings.TrimSpace(c.Query("city"))
	q.Units = c.Query("units")

	if err := validate.Struct(q); err != nil {
		return weather.Query{}, weather.MissingParameterError("city")
	}

	return weather.Query{
		City:  q.City,
		Units: weather.ParseUnits(q.Units),
	}, nil
}
