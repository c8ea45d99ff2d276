package controllers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"gorm.io/gorm"

	"blogium/app/models"
	"blogium/app/repository"
	"blogium/internal/pkg/usercontext"
)

// newTestApp builds a fiber app with the real templates and the given
// request identity injected, so handlers run exactly as in production.
func newTestApp(uc usercontext.UserContext, register func(app *fiber.App)) *fiber.App {
	engine := html.New("../../views", ".html")
	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: HandleError,
	})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(usercontext.KeyUserContext, uc)
		return c.Next()
	})
	register(app)
	return app
}

func loggedIn(id uint, username string) usercontext.UserContext {
	return usercontext.UserContext{UserID: id, Username: username, IsLoggedIn: true}
}

func staffUser(id uint, username string) usercontext.UserContext {
	return usercontext.UserContext{UserID: id, Username: username, IsLoggedIn: true, IsStaff: true}
}

type stubPostRepo struct {
	posts   map[uint]*models.Post
	deleted []uint
	updated []uint
}

func newStubPostRepo(posts ...*models.Post) *stubPostRepo {
	repo := &stubPostRepo{posts: map[uint]*models.Post{}}
	for _, p := range posts {
		repo.posts[p.ID] = p
	}
	return repo
}

func (r *stubPostRepo) Create(post *models.Post) error {
	post.ID = uint(len(r.posts) + 1)
	r.posts[post.ID] = post
	return nil
}

func (r *stubPostRepo) GetByID(id uint) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return post, nil
}

func (r *stubPostRepo) List(filter repository.PostFilter, offset, limit int) ([]models.Post, error) {
	var out []models.Post
	for _, p := range r.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PubDate.After(out[j].PubDate) })
	return out, nil
}

func (r *stubPostRepo) Count(filter repository.PostFilter) (int64, error) {
	return int64(len(r.posts)), nil
}

func (r *stubPostRepo) Update(post *models.Post) error {
	r.posts[post.ID] = post
	r.updated = append(r.updated, post.ID)
	return nil
}

func (r *stubPostRepo) Delete(id uint) error {
	delete(r.posts, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubCommentRepo struct {
	comments map[uint]*models.Comment
	deleted  []uint
	created  []uint
}

func newStubCommentRepo(comments ...*models.Comment) *stubCommentRepo {
	repo := &stubCommentRepo{comments: map[uint]*models.Comment{}}
	for _, c := range comments {
		repo.comments[c.ID] = c
	}
	return repo
}

func (r *stubCommentRepo) Create(comment *models.Comment) error {
	comment.ID = uint(len(r.comments) + 1)
	r.comments[comment.ID] = comment
	r.created = append(r.created, comment.ID)
	return nil
}

func (r *stubCommentRepo) GetByID(id uint) (*models.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return comment, nil
}

func (r *stubCommentRepo) ListByPost(postID uint) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCommentRepo) CountByPost(postID uint) (int64, error) {
	list, _ := r.ListByPost(postID)
	return int64(len(list)), nil
}

func (r *stubCommentRepo) Update(comment *models.Comment) error {
	r.comments[comment.ID] = comment
	return nil
}

func (r *stubCommentRepo) Delete(id uint) error {
	delete(r.comments, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubCategoryRepo struct {
	categories []models.Category
}

func (r *stubCategoryRepo) Create(category *models.Category) error { return nil }

func (r *stubCategoryRepo) GetByID(id uint) (*models.Category, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) GetBySlug(slug string) (*models.Category, error) {
	for i := range r.categories {
		if r.categories[i].Slug == slug {
			return &r.categories[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) GetPublished() ([]models.Category, error) {
	return r.categories, nil
}

func (r *stubCategoryRepo) SlugExists(slug string) (bool, error) { return false, nil }

func (r *stubCategoryRepo) Update(category *models.Category) error { return nil }

func (r *stubCategoryRepo) Delete(id uint) error { return nil }

type stubLocationRepo struct {
	locations []models.Location
}

func (r *stubLocationRepo) Create(location *models.Location) error { return nil }

func (r *stubLocationRepo) GetByID(id uint) (*models.Location, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubLocationRepo) GetPublished() ([]models.Location, error) {
	return r.locations, nil
}

func (r *stubLocationRepo) Update(location *models.Location) error { return nil }

func (r *stubLocationRepo) Delete(id uint) error { return nil }

type stubUserRepo struct {
	users     map[uint]*models.User
	createErr error
}

func newStubUserRepo(users ...*models.User) *stubUserRepo {
	repo := &stubUserRepo{users: map[uint]*models.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *stubUserRepo) Create(user *models.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	user.ID = uint(len(r.users) + 1)
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) Delete(id uint) error {
	delete(r.users, id)
	return nil
}

func uintPtr(v uint) *uint {
	return &v
}
