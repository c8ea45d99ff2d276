// Package policy decides whether a viewer may see or change a piece of
// content. Every function is pure: the viewer is passed in explicitly and
// nothing is read from request state, so the rules stay unit-testable.
package policy

import (
	"time"

	"blogium/app/models"
)

// Viewer is the identity a request acts as. The zero value is anonymous.
type Viewer struct {
	ID              uint
	Username        string
	IsAuthenticated bool
	IsStaff         bool
}

// Anonymous is the viewer used for requests without a session.
var Anonymous = Viewer{}

// IsOwnerOf reports whether the viewer is the (still attached) author.
func (v Viewer) IsOwnerOf(authorID *uint) bool {
	return v.IsAuthenticated && authorID != nil && *authorID == v.ID
}

// PubliclyVisible is the three-way conjunction that gates every anonymous
// read path: the post is published, its pub_date is not in the future
// (pub_date == now counts as visible), and its category - if it has one -
// is itself published.
func PubliclyVisible(post *models.Post, now time.Time) bool {
	if !post.IsPublished {
		return false
	}
	if post.PubDate.After(now) {
		return false
	}
	if post.CategoryID != nil && post.Category != nil && !post.Category.IsPublished {
		return false
	}
	return true
}

// CanViewPost reports whether viewer may open the post's detail page.
// Authors always see their own posts (draft preview). Callers translate a
// false result into "not found", never "forbidden", so hidden posts are
// indistinguishable from missing ones.
func CanViewPost(post *models.Post, viewer Viewer, now time.Time) bool {
	if viewer.IsOwnerOf(post.AuthorID) {
		return true
	}
	return PubliclyVisible(post, now)
}

// CanViewCategory gates category pages. Categories have no owner, so there
// is no override: an unpublished category is gone for everybody.
func CanViewCategory(category *models.Category) bool {
	return category.IsPublished
}

// CanEditPost allows only the authenticated author to change a post.
func CanEditPost(post *models.Post, viewer Viewer) bool {
	return viewer.IsOwnerOf(post.AuthorID)
}

// CanDeletePost mirrors CanEditPost; there is no staff override for posts.
func CanDeletePost(post *models.Post, viewer Viewer) bool {
	return viewer.IsOwnerOf(post.AuthorID)
}

// CanEditComment allows only the authenticated comment author.
func CanEditComment(comment *models.Comment, viewer Viewer) bool {
	return viewer.IsOwnerOf(comment.AuthorID)
}

// CanDeleteComment additionally lets staff moderate other users' comments.
func CanDeleteComment(comment *models.Comment, viewer Viewer) bool {
	if viewer.IsOwnerOf(comment.AuthorID) {
		return true
	}
	return viewer.IsAuthenticated && viewer.IsStaff
}
