package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// ServerOptions is built once at startup and never modified afterwards.
type ServerOptions struct {
	AppName        string
	AllowedOrigins []string
	BodyLimit      int
	AccessLog      bool
}

// NewApp builds the Fiber app with middleware and routes. documentHandler may
// be nil when upload records are not persisted.
func NewApp(opts ServerOptions, uploadHandler *UploadHandler, documentHandler *DocumentHandler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    opts.BodyLimit,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(opts.AllowedOrigins, ","),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	endpoints := []string{
		"POST /upload",
		"POST /api/v1/upload",
		"GET /api/v1/health",
	}

	app.Post("/upload", uploadHandler.HandleUpload)

	api := app.Group("/api/v1")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})
	api.Post("/upload", uploadHandler.HandleUpload)

	if documentHandler != nil {
		api.Get("/documents/:id", documentHandler.HandleGetDocument)
		endpoints = append(endpoints, "GET /api/v1/documents/:id")
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   opts.AppName,
			"version":   "1.0.0",
			"endpoints": endpoints,
		})
	})

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
