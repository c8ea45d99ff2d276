package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGlobalFactoryBoots(t *testing.T) {
	// Before initialization the global accessor must fail loudly instead
	// of handing out a factory with a nil database
	assert.Panics(t, func() { GetGlobalFactory() })

	InitializeFactory(&gorm.DB{})

	repos := GetGlobalRepositories()
	require.NotNil(t, repos)
	assert.NotNil(t, repos.Post)
	assert.NotNil(t, repos.Category)
	assert.NotNil(t, repos.Location)
	assert.NotNil(t, repos.Comment)
	assert.NotNil(t, repos.User)

	// The singleton hands out the same set on every call
	assert.Same(t, repos, GetGlobalRepositories())
}

func TestFactoryRepositoriesAreSingletons(t *testing.T) {
	factory := NewFactory(&gorm.DB{})

	first := factory.GetRepositories()
	second := factory.GetRepositories()
	assert.Same(t, first, second)

	assert.NotNil(t, factory.GetPostRepository())
	assert.NotNil(t, factory.GetCommentRepository())
}
