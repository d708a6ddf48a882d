package server

import (
	"context"
	"errors"
	"time"

	"notionfeed/models"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const (
	FeedPath = "/api/notion"

	// Edge caches may serve the feed for 30s and a stale copy for another 60s
	CacheControl = "s-maxage=30, stale-while-revalidate=60"

	Hint = "Check NOTION_DB_ID, NOTION_TOKEN, Share→Connections on the DB, and that at least one row has an uploaded Image."
)

// FeedBuilder produces the feed items for one request
type FeedBuilder interface {
	Build(ctx context.Context) ([]models.Item, error)
}

type ServerConfig struct {

	// Builds the feed on every request
	Builder FeedBuilder

	// Comma separated list of origins allowed to fetch the feed
	AllowOrigins string
}

// Returns a fiber.App instance serving the feed
func Server(config *ServerConfig) *fiber.App {

	app := fiber.New(fiber.Config{
		AppName:               "notionfeed",
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          errorHandler,
	})

	// Middleware to track the latency of each request
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()

		// Errors are answered here so the logged status is the one sent
		if err := c.Next(); err != nil {
			if err := c.App().ErrorHandler(c, err); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		log.WithFields(log.Fields{
			"method":     c.Method(),
			"route":      c.Route().Path,
			"status":     c.Response().StatusCode(),
			"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
			"latency":    time.Since(start),
		}).Info("Request")
		return nil
	})

	app.Use(requestid.New(requestid.Config{
		Header: fiber.HeaderXRequestID,
		Generator: func() string {
			return uuid.New().String()
		},
	}))
	app.Use(recover.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AllowOrigins,
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// The feed accepts any method and ignores the request body and query
	app.All(FeedPath, feedHandler(config.Builder))

	return app
}

func feedHandler(builder FeedBuilder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		timer := prometheus.NewTimer(feedBuildDuration)
		items, err := builder.Build(c.UserContext())
		timer.ObserveDuration()

		if err != nil {
			return writeFeedError(c, err)
		}

		feedRequests.WithLabelValues("ok").Inc()
		feedItems.Set(float64(len(items)))

		c.Set(fiber.HeaderCacheControl, CacheControl)
		return c.Status(fiber.StatusOK).JSON(models.FeedResponse{Items: items})
	}
}

// writeFeedError sends the upstream message to the client together with
// a hint about the usual misconfigurations.
func writeFeedError(c *fiber.Ctx, err error) error {
	feedRequests.WithLabelValues("error").Inc()

	log.WithFields(log.Fields{
		"error":      err,
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
	}).Error("Failed to build feed")

	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: err.Error(),
		Hint:  Hint,
	})
}

// errorHandler keeps the feed's error shape for failures that escape the
// handler, such as recovered panics. It matches on the route rather than
// the raw path, which may differ in case or by a trailing slash.
func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if c.Route().Path == FeedPath && !errors.As(err, &fiberErr) {
		return writeFeedError(c, err)
	}
	return fiber.DefaultErrorHandler(c, err)
}
