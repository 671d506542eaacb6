package services_test

import (
	"testing"

	"chirp/internal/models"
	"chirp/internal/repositories"
	"chirp/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// postFixture wires a PostService over the in-memory repositories.
type postFixture struct {
	users   *repositories.MockUserRepository
	posts   *repositories.MockPostRepository
	service *services.PostService
	mq      *MockPublisher
}

func newPostFixture() *postFixture {
	users := repositories.NewMockUserRepository()
	posts := repositories.NewMockPostRepository()
	mq := new(MockPublisher)
	return &postFixture{
		users:   users,
		posts:   posts,
		service: services.NewPostService(posts, users, mq),
		mq:      mq,
	}
}

func TestPostService_CreatePost(t *testing.T) {
	f := newPostFixture()
	author := &models.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, f.users.Create(author))
	f.mq.On("PublishEvent", "post.created", mock.Anything).Return(nil).Once()

	post, err := f.service.CreatePost(author.ID, "  hello world  ")
	assert.NoError(t, err)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.Equal(t, "hello world", post.Content, "surrounding whitespace is trimmed")
	assert.NotEmpty(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())
	f.mq.AssertExpectations(t)
}

func TestPostService_CreatePost_EmptyContent(t *testing.T) {
	f := newPostFixture()
	author := &models.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, f.users.Create(author))

	for _, content := range []string{"", "   ", "\n\t "} {
		post, err := f.service.CreatePost(author.ID, content)
		assert.ErrorIs(t, err, models.ErrEmptyContent)
		assert.Nil(t, post)
	}

	// No blank post was persisted.
	stored, err := f.posts.ListByAuthor(author.ID, 100)
	assert.NoError(t, err)
	assert.Empty(t, stored)
	f.mq.AssertNotCalled(t, "PublishEvent", mock.Anything, mock.Anything)
}

func TestPostService_CreatePost_AuthorNotFound(t *testing.T) {
	f := newPostFixture()

	post, err := f.service.CreatePost("ghost-id", "hello")
	assert.ErrorIs(t, err, models.ErrAuthorNotFound)
	assert.Nil(t, post)
	f.mq.AssertNotCalled(t, "PublishEvent", mock.Anything, mock.Anything)
}

func TestPostService_CreatePost_PublishFailureDoesNotFailWrite(t *testing.T) {
	f := newPostFixture()
	author := &models.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, f.users.Create(author))
	f.mq.On("PublishEvent", "post.created", mock.Anything).Return(assert.AnError).Once()

	// The post committed; a broker hiccup must not undo or fail it.
	post, err := f.service.CreatePost(author.ID, "hello")
	assert.NoError(t, err)
	assert.NotNil(t, post)
	f.mq.AssertExpectations(t)
}

func TestPostService_GetPostByID(t *testing.T) {
	f := newPostFixture()
	author := &models.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, f.users.Create(author))
	f.mq.On("PublishEvent", "post.created", mock.Anything).Return(nil).Once()

	created, err := f.service.CreatePost(author.ID, "hello")
	require.NoError(t, err)

	post, err := f.service.GetPostByID(created.ID)
	assert.NoError(t, err)
	assert.Equal(t, created.ID, post.ID)

	_, err = f.service.GetPostByID("no-such-post")
	assert.ErrorIs(t, err, models.ErrPostNotFound)
}
