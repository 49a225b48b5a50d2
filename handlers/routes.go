package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "videothingy/trailer-portal/docs"
	"videothingy/trailer-portal/internal/guard"
	"videothingy/trailer-portal/internal/upload"
	"videothingy/trailer-portal/middleware"
)

// bodyLimit leaves room for the multipart framing around a maximum-size video.
const bodyLimit = int(upload.MaxUploadBytes) + 10<<20

// NewApp builds the fiber app with every route and middleware.
// @title Trailer Portal
// @version 1.0
// @description Public trailer catalog with a key-protected admin interface.
// @BasePath /
func NewApp(h *ApplicationHandler, hosts guard.HostPolicy) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "trailer-portal",
		BodyLimit:             bodyLimit,
		ErrorHandler:          middleware.ErrorHandler(h.Logger),
		DisableStartupMessage: true,
	})

	// Middleware
	app.Use(middleware.RequestLogger(h.Logger))
	app.Use(recover.New())
	app.Use(middleware.HostFilter(hosts))

	// Health check route, readable by external status pages
	app.Get("/__healthz", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: fiber.MethodGet,
	}), h.Health)

	if h.Settings.SwaggerEnabled {
		app.Get("/swagger/*", fiberSwagger.WrapHandler)
	}

	// Public pages
	app.Get("/", h.Home)
	app.Get("/watch/:slug", h.Watch)
	app.Get("/sw.js", h.ServiceWorker)

	// Admin routes. The key check is attached per route so unmatched
	// /admin* paths still reach the catch-all.
	adminKey := middleware.AdminKey(h.Settings.AdminKey)
	app.Get("/admin", adminKey, h.Admin)
	app.Post("/admin/upload", adminKey, h.UploadVideo)
	app.Post("/admin/delete/:slug", adminKey, h.DeleteVideo)

	app.Use(h.NotFound)

	return app
}
