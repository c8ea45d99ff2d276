package router

import (
	"blogium/app/controllers"
	"blogium/internal/pkg/middleware"
	"blogium/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Initialize controllers with repositories
	controllers.InitializeBlogController()
	controllers.InitializePostController()
	controllers.InitializeCommentController()
	controllers.InitializeAuthController()
	controllers.InitializeUserController()
	controllers.InitializePageController()

	h.registerPublicRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
