// Package server assembles the Fiber application from the services.
package server

import (
	"errors"
	"log"
	"time"

	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// BodyLimit caps request bodies, uploads included.
const BodyLimit = 10 * 1024 * 1024

// Deps are the services the HTTP layer dispatches to.
type Deps struct {
	Auth     *services.AuthService
	Products *services.ProductService
	Cart     *services.CartService
	Images   *services.ImageService

	// RequestLog enables the per-request logger middleware.
	RequestLog bool
}

// New builds the application with every route registered.
func New(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "storefront",
		BodyLimit:    BodyLimit,
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	if deps.RequestLog {
		app.Use(logger.New())
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Root")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handlers.NewImageHandler(deps.Images).RegisterRoutes(app)
	handlers.NewAuthHandler(deps.Auth).RegisterRoutes(app)
	handlers.NewProductHandler(deps.Products).RegisterRoutes(app)
	handlers.NewCartHandler(deps.Cart).RegisterRoutes(app, middleware.AuthRequired(deps.Auth))

	return app
}

// ErrorHandler turns errors returned by handlers into JSON responses.
// Anything that is not a *fiber.Error becomes a 500 with a generic body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			message = fe.Message
		}
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"errors":  message,
	})
}
