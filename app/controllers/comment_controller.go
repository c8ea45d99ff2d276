package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"blogium/app/models"
	"blogium/app/repository"
	"blogium/internal/pkg/cache"
	"blogium/internal/pkg/policy"
	"blogium/internal/pkg/usercontext"
)

// CommentController serves comment creation, editing and deletion. Unlike
// posts, denied comment mutations are a hard 403.
type CommentController struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
}

// NewCommentController creates a new comment controller with its repositories
func NewCommentController(posts repository.PostRepository, comments repository.CommentRepository) *CommentController {
	return &CommentController{
		posts:    posts,
		comments: comments,
	}
}

func postDetailRoute(postID uint) string {
	return "/posts/" + strconv.Itoa(int(postID))
}

// refreshCommentCount rewrites the cached counter after a mutation.
func (cc *CommentController) refreshCommentCount(postID uint) {
	count, err := cc.comments.CountByPost(postID)
	if err != nil {
		return
	}
	_ = cache.Set(cache.CommentCountKey(postID), strconv.FormatInt(count, 10), time.Hour)
}

// loadViewablePost resolves the :id parameter to a post the viewer may
// see. Hidden and missing posts both come back as 404.
func (cc *CommentController) loadViewablePost(c *fiber.Ctx) (*models.Post, error) {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		return nil, fiber.ErrNotFound
	}

	post, err := cc.posts.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.ErrNotFound
		}
		return nil, err
	}

	viewer := usercontext.GetUserContext(c).Viewer()
	if !policy.CanViewPost(post, viewer, time.Now()) {
		return nil, fiber.ErrNotFound
	}

	return post, nil
}

// loadComment resolves :comment_id and checks it belongs to the post from
// the route. A comment reached through the wrong post is a 404.
func (cc *CommentController) loadComment(c *fiber.Ctx, post *models.Post) (*models.Comment, error) {
	commentID, err := parseUintParam(c, "comment_id")
	if err != nil {
		return nil, fiber.ErrNotFound
	}

	comment, err := cc.comments.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.ErrNotFound
		}
		return nil, err
	}

	if comment.PostID != post.ID {
		return nil, fiber.ErrNotFound
	}

	return comment, nil
}

// HandleCommentCreate appends a comment to a viewable post
func (cc *CommentController) HandleCommentCreate(c *fiber.Ctx) error {
	post, err := cc.loadViewablePost(c)
	if err != nil {
		return err
	}

	userCtx := usercontext.GetUserContext(c)
	authorID := userCtx.UserID

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: &authorID,
		Text:     c.FormValue("text"),
	}

	if err := comment.Validate(); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "The comment text must not be empty",
		}
		return flash.WithError(c, fm).Redirect(postDetailRoute(post.ID))
	}

	if err := cc.comments.Create(comment); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Could not save the comment",
		}
		return flash.WithError(c, fm).Redirect(postDetailRoute(post.ID))
	}

	cc.refreshCommentCount(post.ID)

	return c.Redirect(postDetailRoute(post.ID), fiber.StatusSeeOther)
}

// HandleCommentEdit renders the edit form and updates the comment text.
// Only the comment's author may edit it, staff included.
func (cc *CommentController) HandleCommentEdit(c *fiber.Ctx) error {
	post, err := cc.loadViewablePost(c)
	if err != nil {
		return err
	}

	comment, err := cc.loadComment(c, post)
	if err != nil {
		return err
	}

	viewer := usercontext.GetUserContext(c).Viewer()
	if !policy.CanEditComment(comment, viewer) {
		return fiber.ErrForbidden
	}

	if c.Method() != fiber.MethodPost {
		return c.Render("comments/form", bind(c, "Edit comment", fiber.Map{
			"Post":    post,
			"Comment": comment,
			"Action":  postDetailRoute(post.ID) + "/comment/" + strconv.Itoa(int(comment.ID)) + "/edit",
		}))
	}

	comment.Text = c.FormValue("text")
	if err := comment.Validate(); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "The comment text must not be empty",
		}
		return flash.WithError(c, fm).Redirect(postDetailRoute(post.ID))
	}

	if err := cc.comments.Update(comment); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Could not update the comment",
		}
		return flash.WithError(c, fm).Redirect(postDetailRoute(post.ID))
	}

	return c.Redirect(postDetailRoute(post.ID), fiber.StatusSeeOther)
}

// HandleCommentDelete shows the confirmation page and removes the comment.
// The author may delete their own comment, staff may delete any.
func (cc *CommentController) HandleCommentDelete(c *fiber.Ctx) error {
	post, err := cc.loadViewablePost(c)
	if err != nil {
		return err
	}

	comment, err := cc.loadComment(c, post)
	if err != nil {
		return err
	}

	viewer := usercontext.GetUserContext(c).Viewer()
	if !policy.CanDeleteComment(comment, viewer) {
		return fiber.ErrForbidden
	}

	if c.Method() != fiber.MethodPost {
		return c.Render("comments/delete", bind(c, "Delete comment", fiber.Map{
			"Post":    post,
			"Comment": comment,
			"Action":  postDetailRoute(post.ID) + "/comment/" + strconv.Itoa(int(comment.ID)) + "/delete",
		}))
	}

	if err := cc.comments.Delete(comment.ID); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Could not delete the comment",
		}
		return flash.WithError(c, fm).Redirect(postDetailRoute(post.ID))
	}

	cc.refreshCommentCount(post.ID)

	return c.Redirect(postDetailRoute(post.ID), fiber.StatusSeeOther)
}

// Global comment controller instance
var commentController *CommentController

// InitializeCommentController initializes the global comment controller
func InitializeCommentController() {
	repos := repository.GetGlobalRepositories()
	commentController = NewCommentController(repos.Post, repos.Comment)
}

// GetCommentController returns the global comment controller instance
func GetCommentController() *CommentController {
	if commentController == nil {
		InitializeCommentController()
	}
	return commentController
}
