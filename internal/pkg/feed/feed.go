// Package feed assembles filtered, sorted, paginated post listings. It owns
// the three listing scopes (global, by category slug, by author username)
// and the clamped 1-indexed pagination every listing page shares.
package feed

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"blogium/app/models"
	"blogium/app/repository"
	"blogium/internal/pkg/policy"
)

// ErrNotFound signals an unresolvable scope: unknown or unpublished
// category slug, or unknown username. Handlers turn it into a 404.
var ErrNotFound = errors.New("feed: scope not found")

// DefaultPageSize is the fixed page size for all listings.
const DefaultPageSize = 10

type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeCategory
	ScopeProfile
)

// Scope is the axis a listing is filtered along.
type Scope struct {
	Kind         ScopeKind
	CategorySlug string
	Username     string
}

func Global() Scope                   { return Scope{Kind: ScopeGlobal} }
func ByCategory(slug string) Scope    { return Scope{Kind: ScopeCategory, CategorySlug: slug} }
func ByProfile(username string) Scope { return Scope{Kind: ScopeProfile, Username: username} }

// PostPage is one page of a listing, plus the resolved scope context the
// templates render (category header, profile header).
type PostPage struct {
	Posts      []models.Post
	Number     int
	Size       int
	TotalPosts int64
	TotalPages int
	Category   *models.Category
	Profile    *models.User
}

func (p *PostPage) HasPrev() bool { return p.Number > 1 }
func (p *PostPage) HasNext() bool { return p.Number < p.TotalPages }
func (p *PostPage) PrevNumber() int {
	if p.HasPrev() {
		return p.Number - 1
	}
	return p.Number
}
func (p *PostPage) NextNumber() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.Number
}

// Service builds post listings on top of the repositories. The viewer is
// always passed in explicitly; the service never inspects request state.
type Service struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
	pageSize   int
	now        func() time.Time
}

// NewService creates a feed service with the default page size.
func NewService(repos *repository.Repositories) *Service {
	return &Service{
		posts:      repos.Post,
		categories: repos.Category,
		users:      repos.User,
		pageSize:   DefaultPageSize,
		now:        time.Now,
	}
}

// ListPosts returns one page of the listing described by scope, as seen by
// viewer. Global and category listings are anonymous-safe: the public
// visibility conjunction applies no matter who asks. The profile listing
// drops the filter when the owner views their own page (draft self-preview).
func (s *Service) ListPosts(scope Scope, viewer policy.Viewer, page int) (*PostPage, error) {
	filter := repository.PostFilter{PublicOnly: true, Now: s.now()}
	result := &PostPage{Size: s.pageSize}

	switch scope.Kind {
	case ScopeCategory:
		category, err := s.categories.GetBySlug(scope.CategorySlug)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if !policy.CanViewCategory(category) {
			return nil, ErrNotFound
		}
		filter.CategoryID = &category.ID
		result.Category = category

	case ScopeProfile:
		owner, err := s.users.GetByUsername(scope.Username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		filter.AuthorID = &owner.ID
		// Owners see their unpublished and future-dated posts
		if viewer.IsAuthenticated && viewer.ID == owner.ID {
			filter.PublicOnly = false
		}
		result.Profile = owner
	}

	total, err := s.posts.Count(filter)
	if err != nil {
		return nil, err
	}

	result.TotalPosts = total
	result.TotalPages = totalPages(total, s.pageSize)
	result.Number = clampPage(page, result.TotalPages)

	offset := (result.Number - 1) * s.pageSize
	posts, err := s.posts.List(filter, offset, s.pageSize)
	if err != nil {
		return nil, err
	}
	result.Posts = posts

	return result, nil
}

// totalPages rounds up; an empty listing still has one (empty) page.
func totalPages(total int64, size int) int {
	if total <= 0 {
		return 1
	}
	pages := int((total + int64(size) - 1) / int64(size))
	return pages
}

// clampPage keeps page numbers 1-indexed and clamps overshoot to the last
// page instead of erroring.
func clampPage(page, pages int) int {
	if page < 1 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}
