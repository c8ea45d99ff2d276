package router

import (
	"strings"
	"time"

	"blogium/app/controllers"
	"blogium/internal/pkg/env"
	"blogium/internal/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	blog := controllers.GetBlogController()
	posts := controllers.GetPostController()
	comments := controllers.GetCommentController()
	auth := controllers.GetAuthController()
	users := controllers.GetUserController()

	group := app.Group("", cors.New(), csrf.New(csrfConf))

	group.Get("/", blog.HandleIndex)
	group.Get("/category/:slug", blog.HandleCategory)

	group.Get("/login", auth.HandleLogin)
	group.Post("/login", auth.HandleLogin)
	group.Get("/register", auth.HandleRegister)
	group.Post("/register", auth.HandleRegister)

	// /posts/create must precede /posts/:id
	group.Get("/posts/create", middleware.RequireAuth, posts.HandlePostCreate)
	group.Post("/posts/create", middleware.RequireAuth, posts.HandlePostCreate)
	group.Get("/posts/:id", blog.HandlePostDetail)
	group.Get("/posts/:id/edit", middleware.RequireAuth, posts.HandlePostEdit)
	group.Post("/posts/:id/edit", middleware.RequireAuth, posts.HandlePostEdit)
	group.Get("/posts/:id/delete", middleware.RequireAuth, posts.HandlePostDelete)
	group.Post("/posts/:id/delete", middleware.RequireAuth, posts.HandlePostDelete)

	group.Post("/posts/:id/comment", middleware.RequireAuth, comments.HandleCommentCreate)
	group.Get("/posts/:id/comment/:comment_id/edit", middleware.RequireAuth, comments.HandleCommentEdit)
	group.Post("/posts/:id/comment/:comment_id/edit", middleware.RequireAuth, comments.HandleCommentEdit)
	group.Get("/posts/:id/comment/:comment_id/delete", middleware.RequireAuth, comments.HandleCommentDelete)
	group.Post("/posts/:id/comment/:comment_id/delete", middleware.RequireAuth, comments.HandleCommentDelete)

	group.Get("/profile/:username", blog.HandleProfile)
	group.Get("/profile/:username/edit", middleware.RequireAuth, users.HandleProfileEdit)
	group.Post("/profile/:username/edit", middleware.RequireAuth, users.HandleProfileEdit)
}
