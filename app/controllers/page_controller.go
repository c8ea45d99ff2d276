package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// PageController serves the static pages.
type PageController struct{}

// NewPageController creates a new page controller
func NewPageController() *PageController {
	return &PageController{}
}

// HandleAbout renders the about page
func (pg *PageController) HandleAbout(c *fiber.Ctx) error {
	return c.Render("pages/about", bind(c, "About this project", nil))
}

// HandleRules renders the community rules page
func (pg *PageController) HandleRules(c *fiber.Ctx) error {
	return c.Render("pages/rules", bind(c, "Our rules", nil))
}

// HandleError is the application-wide error handler. Known statuses get
// their own page; everything else collapses to a 500. Rendering falls
// back to plain text so the handler itself cannot fail.
func HandleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	var template string
	switch code {
	case fiber.StatusNotFound:
		template = "errors/404"
	case fiber.StatusForbidden:
		template = "errors/403"
	default:
		code = fiber.StatusInternalServerError
		template = "errors/500"
		log.Errorf("unhandled error: %v", err)
	}

	c.Status(code)
	if renderErr := c.Render(template, bind(c, "Error", nil)); renderErr != nil {
		return c.SendString(err.Error())
	}
	return nil
}

// Global page controller instance
var pageController *PageController

// InitializePageController initializes the global page controller
func InitializePageController() {
	pageController = NewPageController()
}

// GetPageController returns the global page controller instance
func GetPageController() *PageController {
	if pageController == nil {
		InitializePageController()
	}
	return pageController
}
