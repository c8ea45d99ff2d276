package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"blogium/app/models"
)

func uintPtr(v uint) *uint { return &v }

func publishedCategory() *models.Category {
	return &models.Category{ID: 7, Slug: "travel", IsPublished: true}
}

func hiddenCategory() *models.Category {
	return &models.Category{ID: 8, Slug: "drafts", IsPublished: false}
}

func TestCanViewPost(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	author := Viewer{ID: 1, Username: "ann", IsAuthenticated: true}
	stranger := Viewer{ID: 2, Username: "bob", IsAuthenticated: true}

	tests := []struct {
		name   string
		post   models.Post
		viewer Viewer
		want   bool
	}{
		{
			name: "published past post with published category is public",
			post: models.Post{
				IsPublished: true,
				PubDate:     now.Add(-24 * time.Hour),
				AuthorID:    uintPtr(1),
				CategoryID:  uintPtr(7),
				Category:    publishedCategory(),
			},
			viewer: Anonymous,
			want:   true,
		},
		{
			name: "pub_date exactly now is visible",
			post: models.Post{
				IsPublished: true,
				PubDate:     now,
				AuthorID:    uintPtr(1),
			},
			viewer: Anonymous,
			want:   true,
		},
		{
			name: "future-dated post hidden from strangers",
			post: models.Post{
				IsPublished: true,
				PubDate:     now.Add(24 * time.Hour),
				AuthorID:    uintPtr(1),
				CategoryID:  uintPtr(7),
				Category:    publishedCategory(),
			},
			viewer: stranger,
			want:   false,
		},
		{
			name: "future-dated post visible to its author",
			post: models.Post{
				IsPublished: true,
				PubDate:     now.Add(24 * time.Hour),
				AuthorID:    uintPtr(1),
			},
			viewer: author,
			want:   true,
		},
		{
			name: "unpublished post hidden from anonymous",
			post: models.Post{
				IsPublished: false,
				PubDate:     now.Add(-time.Hour),
				AuthorID:    uintPtr(1),
			},
			viewer: Anonymous,
			want:   false,
		},
		{
			name: "unpublished post visible to its author",
			post: models.Post{
				IsPublished: false,
				PubDate:     now.Add(-time.Hour),
				AuthorID:    uintPtr(1),
			},
			viewer: author,
			want:   true,
		},
		{
			name: "hidden category hides the post from non-authors",
			post: models.Post{
				IsPublished: true,
				PubDate:     now.Add(-time.Hour),
				AuthorID:    uintPtr(1),
				CategoryID:  uintPtr(8),
				Category:    hiddenCategory(),
			},
			viewer: stranger,
			want:   false,
		},
		{
			name: "hidden category still shows the post to its author",
			post: models.Post{
				IsPublished: true,
				PubDate:     now.Add(-time.Hour),
				AuthorID:    uintPtr(1),
				CategoryID:  uintPtr(8),
				Category:    hiddenCategory(),
			},
			viewer: author,
			want:   true,
		},
		{
			name: "no category counts as published",
			post: models.Post{
				IsPublished: true,
				PubDate:     now.Add(-time.Hour),
				AuthorID:    uintPtr(1),
			},
			viewer: Anonymous,
			want:   true,
		},
		{
			name: "severed author matches nobody",
			post: models.Post{
				IsPublished: false,
				PubDate:     now.Add(-time.Hour),
				AuthorID:    nil,
			},
			viewer: author,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewPost(&tt.post, tt.viewer, now))
		})
	}
}

func TestCanViewCategory(t *testing.T) {
	assert.True(t, CanViewCategory(publishedCategory()))
	assert.False(t, CanViewCategory(hiddenCategory()))
}

func TestCanMutatePost(t *testing.T) {
	post := &models.Post{AuthorID: uintPtr(1)}

	owner := Viewer{ID: 1, IsAuthenticated: true}
	other := Viewer{ID: 2, IsAuthenticated: true}
	staff := Viewer{ID: 3, IsAuthenticated: true, IsStaff: true}

	assert.True(t, CanEditPost(post, owner))
	assert.True(t, CanDeletePost(post, owner))

	assert.False(t, CanEditPost(post, other))
	assert.False(t, CanDeletePost(post, other))

	// No staff override for posts
	assert.False(t, CanEditPost(post, staff))
	assert.False(t, CanDeletePost(post, staff))

	// Anonymous viewer with a matching ID must still be denied
	assert.False(t, CanEditPost(post, Viewer{ID: 1}))
}

func TestCanMutateComment(t *testing.T) {
	comment := &models.Comment{AuthorID: uintPtr(1)}

	owner := Viewer{ID: 1, IsAuthenticated: true}
	other := Viewer{ID: 2, IsAuthenticated: true}
	staff := Viewer{ID: 3, IsAuthenticated: true, IsStaff: true}

	assert.True(t, CanEditComment(comment, owner))
	assert.False(t, CanEditComment(comment, other))

	// Staff may delete but not edit foreign comments
	assert.False(t, CanEditComment(comment, staff))
	assert.True(t, CanDeleteComment(comment, staff))

	assert.True(t, CanDeleteComment(comment, owner))
	assert.False(t, CanDeleteComment(comment, other))
	assert.False(t, CanDeleteComment(comment, Anonymous))
}
