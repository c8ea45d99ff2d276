// Package v1 exposes a small read-only JSON API over the public blog
// content. It enforces the same visibility rules as the HTML pages.
package v1

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"blogium/app/models"
	"blogium/app/repository"
	"blogium/internal/pkg/feed"
	"blogium/internal/pkg/policy"
	"blogium/internal/pkg/usercontext"
)

// APIServer holds the collaborators of the v1 handlers.
type APIServer struct {
	feed  *feed.Service
	posts repository.PostRepository
}

// NewAPIServer creates the v1 server backed by the global repositories
func NewAPIServer() *APIServer {
	repos := repository.GetGlobalRepositories()
	return &APIServer{
		feed:  feed.NewService(repos),
		posts: repos.Post,
	}
}

// RegisterHandlers wires the v1 routes onto the given router group
func RegisterHandlers(router fiber.Router, server *APIServer) {
	router.Get("/ping", server.HandlePing)
	router.Get("/posts", server.HandleListPosts)
	router.Get("/posts/:id", server.HandleGetPost)
}

// postResponse is the JSON shape of a single post.
type postResponse struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Text         string     `json:"text"`
	PubDate      time.Time  `json:"pub_date"`
	Author       *string    `json:"author"`
	Category     *string    `json:"category"`
	Location     *string    `json:"location"`
	ImagePath    string     `json:"image_path,omitempty"`
	CommentCount int64      `json:"comment_count"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toPostResponse(post *models.Post) postResponse {
	resp := postResponse{
		ID:           post.ID,
		Title:        post.Title,
		Text:         post.Text,
		PubDate:      post.PubDate,
		ImagePath:    post.ImagePath,
		CommentCount: post.CommentCount,
		CreatedAt:    post.CreatedAt,
	}
	if post.Author != nil {
		resp.Author = &post.Author.Username
	}
	if post.Category != nil {
		resp.Category = &post.Category.Title
	}
	if post.Location != nil {
		resp.Location = &post.Location.Name
	}
	return resp
}

// HandlePing answers a liveness probe
func (s *APIServer) HandlePing(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "pong",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleListPosts returns one page of the public feed
func (s *APIServer) HandleListPosts(c *fiber.Ctx) error {
	viewer := usercontext.GetUserContext(c).Viewer()

	page, err := s.feed.ListPosts(feed.Global(), viewer, c.QueryInt("page", 1))
	if err != nil {
		return errorJSON(c, err)
	}

	posts := make([]postResponse, 0, len(page.Posts))
	for i := range page.Posts {
		posts = append(posts, toPostResponse(&page.Posts[i]))
	}

	return c.JSON(fiber.Map{
		"posts":       posts,
		"page":        page.Number,
		"total_pages": page.TotalPages,
		"total_posts": page.TotalPosts,
	})
}

// HandleGetPost returns one post, subject to the usual visibility rules
func (s *APIServer) HandleGetPost(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil || postID < 1 {
		return notFoundJSON(c)
	}

	post, err := s.posts.GetByID(uint(postID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundJSON(c)
		}
		return errorJSON(c, err)
	}

	viewer := usercontext.GetUserContext(c).Viewer()
	if !policy.CanViewPost(post, viewer, time.Now()) {
		return notFoundJSON(c)
	}

	return c.JSON(toPostResponse(post))
}

func notFoundJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "post not found",
	})
}

func errorJSON(c *fiber.Ctx, err error) error {
	if errors.Is(err, feed.ErrNotFound) {
		return notFoundJSON(c)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
	})
}
