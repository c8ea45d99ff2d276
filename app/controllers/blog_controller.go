package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"blogium/app/repository"
	"blogium/internal/pkg/cache"
	"blogium/internal/pkg/feed"
	"blogium/internal/pkg/policy"
	"blogium/internal/pkg/usercontext"
)

// BlogController serves the read side: the global feed, category and
// profile listings, and the post detail page.
type BlogController struct {
	feed     *feed.Service
	posts    repository.PostRepository
	comments repository.CommentRepository
}

// NewBlogController creates a new blog controller with its collaborators
func NewBlogController(feedService *feed.Service, posts repository.PostRepository, comments repository.CommentRepository) *BlogController {
	return &BlogController{
		feed:     feedService,
		posts:    posts,
		comments: comments,
	}
}

// listingError maps unresolvable scopes to a generic 404 so hidden
// categories and unknown users are indistinguishable from missing ones.
func listingError(err error) error {
	if errors.Is(err, feed.ErrNotFound) {
		return fiber.ErrNotFound
	}
	return err
}

// HandleIndex renders the global feed
func (bc *BlogController) HandleIndex(c *fiber.Ctx) error {
	viewer := usercontext.GetUserContext(c).Viewer()

	page, err := bc.feed.ListPosts(feed.Global(), viewer, queryPage(c))
	if err != nil {
		return listingError(err)
	}

	return c.Render("blog/index", bind(c, "Latest posts", fiber.Map{
		"Page": page,
	}))
}

// HandleCategory renders the listing of one published category
func (bc *BlogController) HandleCategory(c *fiber.Ctx) error {
	viewer := usercontext.GetUserContext(c).Viewer()

	page, err := bc.feed.ListPosts(feed.ByCategory(c.Params("slug")), viewer, queryPage(c))
	if err != nil {
		return listingError(err)
	}

	return c.Render("blog/category", bind(c, page.Category.Title, fiber.Map{
		"Page":     page,
		"Category": page.Category,
	}))
}

// HandleProfile renders a user's post listing. Owners get the unfiltered
// view of their own posts, everyone else the public one.
func (bc *BlogController) HandleProfile(c *fiber.Ctx) error {
	viewer := usercontext.GetUserContext(c).Viewer()

	page, err := bc.feed.ListPosts(feed.ByProfile(c.Params("username")), viewer, queryPage(c))
	if err != nil {
		return listingError(err)
	}

	isOwner := viewer.IsAuthenticated && viewer.ID == page.Profile.ID

	return c.Render("blog/profile", bind(c, page.Profile.Username, fiber.Map{
		"Page":    page,
		"Profile": page.Profile,
		"IsOwner": isOwner,
	}))
}

// HandlePostDetail renders a single post with its comments and an empty
// comment form. The lookup is unfiltered; the policy decides afterwards,
// and a denied viewer gets a 404, not a 403.
func (bc *BlogController) HandlePostDetail(c *fiber.Ctx) error {
	viewer := usercontext.GetUserContext(c).Viewer()

	postID, err := parseUintParam(c, "id")
	if err != nil {
		return fiber.ErrNotFound
	}

	post, err := bc.posts.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}

	if !policy.CanViewPost(post, viewer, time.Now()) {
		return fiber.ErrNotFound
	}

	comments, err := bc.comments.ListByPost(post.ID)
	if err != nil {
		return err
	}

	// Buffer the live count for cheap display elsewhere
	_ = cache.Set(cache.CommentCountKey(post.ID), strconv.Itoa(len(comments)), time.Hour)

	return c.Render("blog/detail", bind(c, post.Title, fiber.Map{
		"Post":     post,
		"Comments": comments,
		"CanEdit":  policy.CanEditPost(post, viewer),
	}))
}

// Global blog controller instance
var blogController *BlogController

// InitializeBlogController initializes the global blog controller
func InitializeBlogController() {
	repos := repository.GetGlobalRepositories()
	blogController = NewBlogController(feed.NewService(repos), repos.Post, repos.Comment)
}

// GetBlogController returns the global blog controller instance
func GetBlogController() *BlogController {
	if blogController == nil {
		InitializeBlogController()
	}
	return blogController
}
