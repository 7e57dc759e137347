// Package server assembles the Fiber application: middleware chain, routes and error handling.
package server

import (
	"strings"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"hotelapi/docs"
	"hotelapi/internal/config"
	"hotelapi/internal/database"
	handlers "hotelapi/internal/http/handler"
	"hotelapi/internal/http/middleware"
	"hotelapi/internal/service"
)

const bodyLimit = 10 << 20

// Metrics is both where collectors register and where /metrics reads from.
type Metrics interface {
	prometheus.Registerer
	prometheus.Gatherer
}

// Options are the dependencies of the HTTP application.
type Options struct {
	CORSOrigins string
	Auth        config.AuthConfig
	Logger      *zap.Logger
	Metrics     Metrics
	Store       database.Pinger
	RoomTypes   service.RoomTypeService
	Rooms       service.RoomService
}

// New builds the app. Middleware order: recover, request id, tracing, metrics, CORS,
// API key, request logger; errors end in handlers.ErrorHandler.
func New(opts Options) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:               "hotelapi",
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          handlers.ErrorHandler(opts.Logger),
	})

	prom, err := middleware.NewPrometheusMiddleware(opts.Metrics)
	if err != nil {
		return nil, err
	}

	app.Use(recover.New())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == middleware.MetricsPath
	})))
	app.Use(prom.Handler())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  opts.CORSOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, X-API-Key, X-Request-ID",
		ExposeHeaders: middleware.RequestIDHeader,
	}))
	app.Use(middleware.APIKey(middleware.APIKeyConfig{
		Key:         opts.Auth.APIKey,
		KeyLookup:   opts.Auth.KeyLookup,
		PublicPaths: opts.Auth.PublicPaths,
	}))
	app.Use(middleware.Logger(opts.Logger))

	metrics := promhttp.HandlerFor(opts.Metrics, promhttp.HandlerOpts{Registry: opts.Metrics})
	app.Get(middleware.MetricsPath, adaptor.HTTPHandler(otelhttp.NewHandler(metrics, "metrics")))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	handlers.RegisterRoutes(app, opts.Store, opts.RoomTypes, opts.Rooms)

	return app, nil
}
