package router

import (
	"blogium/app/controllers"
	"blogium/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Static pages
	app.Get("/about", controllers.GetPageController().HandleAbout)
	app.Get("/rules", controllers.GetPageController().HandleRules)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.GetAuthController().HandleLogout)
}
