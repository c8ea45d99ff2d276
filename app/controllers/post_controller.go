package controllers

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
	"gorm.io/gorm"

	"blogium/app/models"
	"blogium/app/repository"
	"blogium/internal/pkg/cache"
	"blogium/internal/pkg/imageprocessor"
	"blogium/internal/pkg/policy"
	"blogium/internal/pkg/s3backup"
	"blogium/internal/pkg/upload"
	"blogium/internal/pkg/usercontext"
)

// pubDateLayout matches the datetime-local input format.
const pubDateLayout = "2006-01-02T15:04"

// PostController serves the mutation side of posts: create, edit, delete.
type PostController struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
	locations  repository.LocationRepository
}

// NewPostController creates a new post controller with its repositories
func NewPostController(posts repository.PostRepository, categories repository.CategoryRepository, locations repository.LocationRepository) *PostController {
	return &PostController{
		posts:      posts,
		categories: categories,
		locations:  locations,
	}
}

// postForm carries the parsed create/edit submission. PubDateSet records
// whether the submitter picked a date or left the field blank.
type postForm struct {
	Title       string
	Text        string
	PubDate     time.Time
	PubDateSet  bool
	CategoryID  *uint
	LocationID  *uint
	IsPublished bool
}

// parsePostForm reads the submission; a malformed pub_date becomes a field
// error rather than a request failure.
func parsePostForm(c *fiber.Ctx) (postForm, map[string]string) {
	fieldErrors := map[string]string{}

	form := postForm{
		Title:       c.FormValue("title"),
		Text:        c.FormValue("text"),
		IsPublished: c.FormValue("is_published") == "on",
	}

	if raw := c.FormValue("pub_date"); raw != "" {
		pubDate, err := time.ParseInLocation(pubDateLayout, raw, time.Local)
		if err != nil {
			fieldErrors["pub_date"] = "enter a valid publication date"
		} else {
			form.PubDate = pubDate
			form.PubDateSet = true
		}
	} else {
		form.PubDate = time.Now()
	}

	form.CategoryID = parseOptionalID(c.FormValue("category_id"))
	form.LocationID = parseOptionalID(c.FormValue("location_id"))

	return form, fieldErrors
}

func parseOptionalID(raw string) *uint {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	id := uint(value)
	return &id
}

// validationErrors flattens validator output into field messages for the
// re-rendered form.
func validationErrors(err error) map[string]string {
	fieldErrors := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fieldErrors[fe.Field()] = "this field is " + fe.Tag()
		}
		return fieldErrors
	}
	fieldErrors["form"] = err.Error()
	return fieldErrors
}

// applyCaptureTime backdates an unscheduled post to the moment its image
// was taken. An explicit pub_date always wins over the EXIF timestamp.
func applyCaptureTime(post *models.Post, form postForm, result *imageprocessor.Result) {
	if form.PubDateSet || result == nil || result.TakenAt == nil {
		return
	}
	post.PubDate = *result.TakenAt
}

// storeUploadedImage validates and stores an optional multipart image.
// Returns the stored result, or a field error message.
func (pc *PostController) storeUploadedImage(c *fiber.Ctx) (*imageprocessor.Result, string) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		// No file attached
		return nil, ""
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "could not read the uploaded file"
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "could not read the uploaded file"
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if _, err := upload.ValidateImageBySniff(fileHeader.Filename, head); err != nil {
		return nil, err.Error()
	}

	result, err := imageprocessor.StorePostImage(data, fileHeader.Filename)
	if err != nil {
		return nil, "could not store the uploaded image"
	}

	s3backup.BackupPostImage(result.Path)
	return result, ""
}

// renderPostForm re-renders the create/edit form with entered values and
// field errors; no partial write has happened at this point.
func (pc *PostController) renderPostForm(c *fiber.Ctx, title string, form postForm, fieldErrors map[string]string, postID uint) error {
	categories, err := pc.categories.GetPublished()
	if err != nil {
		return err
	}
	locations, err := pc.locations.GetPublished()
	if err != nil {
		return err
	}

	var selectedCategory, selectedLocation uint
	if form.CategoryID != nil {
		selectedCategory = *form.CategoryID
	}
	if form.LocationID != nil {
		selectedLocation = *form.LocationID
	}

	return c.Render("posts/form", bind(c, title, fiber.Map{
		"Form":             form,
		"Errors":           fieldErrors,
		"Categories":       categories,
		"Locations":        locations,
		"PostID":           postID,
		"PubDateStr":       form.PubDate.Format(pubDateLayout),
		"SelectedCategory": selectedCategory,
		"SelectedLocation": selectedLocation,
	}))
}

// HandlePostCreate renders the form and creates a post owned by the viewer
func (pc *PostController) HandlePostCreate(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	if c.Method() != fiber.MethodPost {
		return pc.renderPostForm(c, "New post", postForm{PubDate: time.Now(), IsPublished: true}, nil, 0)
	}

	form, fieldErrors := parsePostForm(c)

	authorID := userCtx.UserID
	post := &models.Post{
		Title:       form.Title,
		Text:        form.Text,
		PubDate:     form.PubDate,
		IsPublished: form.IsPublished,
		AuthorID:    &authorID,
		CategoryID:  form.CategoryID,
		LocationID:  form.LocationID,
	}

	if err := post.Validate(); err != nil {
		for field, msg := range validationErrors(err) {
			fieldErrors[field] = msg
		}
	}
	if len(fieldErrors) > 0 {
		return pc.renderPostForm(c, "New post", form, fieldErrors, 0)
	}

	if result, uploadErr := pc.storeUploadedImage(c); uploadErr != "" {
		fieldErrors["image"] = uploadErr
		return pc.renderPostForm(c, "New post", form, fieldErrors, 0)
	} else if result != nil {
		post.ImagePath = result.Path
		applyCaptureTime(post, form, result)
	}

	if err := pc.posts.Create(post); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Could not create the post",
		}
		return flash.WithError(c, fm).Redirect("/posts/create")
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Post created",
	}
	return flash.WithSuccess(c, fm).Redirect("/profile/" + userCtx.Username)
}

// loadOwnedPost fetches the post and applies the soft-denial rule: a
// missing post is a 404, a foreign post bounces the viewer to its detail
// page with nothing changed.
func (pc *PostController) loadOwnedPost(c *fiber.Ctx) (*models.Post, error, bool) {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		return nil, fiber.ErrNotFound, false
	}

	post, err := pc.posts.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.ErrNotFound, false
		}
		return nil, err, false
	}

	viewer := usercontext.GetUserContext(c).Viewer()
	if !policy.CanEditPost(post, viewer) {
		return post, c.Redirect("/posts/"+strconv.Itoa(int(post.ID)), fiber.StatusSeeOther), false
	}

	return post, nil, true
}

// HandlePostEdit renders the edit form and updates the post
func (pc *PostController) HandlePostEdit(c *fiber.Ctx) error {
	post, result, owned := pc.loadOwnedPost(c)
	if !owned {
		return result
	}

	if c.Method() != fiber.MethodPost {
		form := postForm{
			Title:       post.Title,
			Text:        post.Text,
			PubDate:     post.PubDate,
			CategoryID:  post.CategoryID,
			LocationID:  post.LocationID,
			IsPublished: post.IsPublished,
		}
		return pc.renderPostForm(c, "Edit post", form, nil, post.ID)
	}

	form, fieldErrors := parsePostForm(c)

	post.Title = form.Title
	post.Text = form.Text
	post.PubDate = form.PubDate
	post.IsPublished = form.IsPublished
	post.CategoryID = form.CategoryID
	post.LocationID = form.LocationID

	if err := post.Validate(); err != nil {
		for field, msg := range validationErrors(err) {
			fieldErrors[field] = msg
		}
	}
	if len(fieldErrors) > 0 {
		return pc.renderPostForm(c, "Edit post", form, fieldErrors, post.ID)
	}

	if result, uploadErr := pc.storeUploadedImage(c); uploadErr != "" {
		fieldErrors["image"] = uploadErr
		return pc.renderPostForm(c, "Edit post", form, fieldErrors, post.ID)
	} else if result != nil {
		if post.ImagePath != "" {
			imageprocessor.DeletePostImage(post.ImagePath)
			s3backup.RemoveBackup(post.ImagePath)
		}
		post.ImagePath = result.Path
	}

	if err := pc.posts.Update(post); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Could not update the post",
		}
		return flash.WithError(c, fm).Redirect("/posts/" + strconv.Itoa(int(post.ID)))
	}

	fm := fiber.Map{
		"type":    "success",
		"message": "Post updated",
	}
	return flash.WithSuccess(c, fm).Redirect("/posts/" + strconv.Itoa(int(post.ID)))
}

// HandlePostDelete shows the confirmation page and deletes the post with
// all of its comments
func (pc *PostController) HandlePostDelete(c *fiber.Ctx) error {
	post, result, owned := pc.loadOwnedPost(c)
	if !owned {
		return result
	}

	if c.Method() != fiber.MethodPost {
		return c.Render("posts/delete", bind(c, "Delete post", fiber.Map{
			"Post": post,
		}))
	}

	if err := pc.posts.Delete(post.ID); err != nil {
		fm := fiber.Map{
			"type":    "error",
			"message": "Could not delete the post",
		}
		return flash.WithError(c, fm).Redirect("/posts/" + strconv.Itoa(int(post.ID)))
	}

	if post.ImagePath != "" {
		imageprocessor.DeletePostImage(post.ImagePath)
		s3backup.RemoveBackup(post.ImagePath)
	}
	_ = cache.Delete(cache.CommentCountKey(post.ID))

	userCtx := usercontext.GetUserContext(c)
	fm := fiber.Map{
		"type":    "success",
		"message": "Post deleted",
	}
	return flash.WithSuccess(c, fm).Redirect("/profile/" + userCtx.Username)
}

// Global post controller instance
var postController *PostController

// InitializePostController initializes the global post controller
func InitializePostController() {
	repos := repository.GetGlobalRepositories()
	postController = NewPostController(repos.Post, repos.Category, repos.Location)
}

// GetPostController returns the global post controller instance
func GetPostController() *PostController {
	if postController == nil {
		InitializePostController()
	}
	return postController
}
