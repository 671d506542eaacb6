package services_test

import (
	"fmt"
	"testing"
	"time"

	"chirp/internal/models"
	"chirp/internal/repositories"
	"chirp/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedFixture wires a FeedService over the in-memory repositories.
type feedFixture struct {
	users *repositories.MockUserRepository
	posts *repositories.MockPostRepository
	rels  *repositories.MockRelationshipRepository
	feed  *services.FeedService
}

func newFeedFixture() *feedFixture {
	users := repositories.NewMockUserRepository()
	posts := repositories.NewMockPostRepository()
	rels := repositories.NewMockRelationshipRepository(users)
	return &feedFixture{
		users: users,
		posts: posts,
		rels:  rels,
		feed:  services.NewFeedService(posts, rels, users),
	}
}

func (f *feedFixture) addUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, f.users.Create(user))
	return user
}

func (f *feedFixture) addPost(t *testing.T, authorID, content string, at time.Time) *models.Post {
	t.Helper()
	post := &models.Post{AuthorID: authorID, Content: content, CreatedAt: at}
	require.NoError(t, f.posts.Create(post))
	return post
}

func TestFeedService_GetStream_Composition(t *testing.T) {
	f := newFeedFixture()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	// A has posts at t1 and t3 and follows B, who posted at t2.
	userA := f.addUser(t, "alice")
	userB := f.addUser(t, "bob")
	p1 := f.addPost(t, userA.ID, "first", base.Add(1*time.Minute))
	p3 := f.addPost(t, userB.ID, "from bob", base.Add(2*time.Minute))
	p2 := f.addPost(t, userA.ID, "second", base.Add(3*time.Minute))
	require.NoError(t, f.rels.Create(userA.ID, userB.ID))

	stream, err := f.feed.GetStream(userA.ID, 100)
	assert.NoError(t, err)
	require.Len(t, stream, 3)
	// Descending timestamp: p2 (t3) > p3 (t2) > p1 (t1).
	assert.Equal(t, p2.ID, stream[0].ID)
	assert.Equal(t, p3.ID, stream[1].ID)
	assert.Equal(t, p1.ID, stream[2].ID)
}

func TestFeedService_GetStream_Isolation(t *testing.T) {
	f := newFeedFixture()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	userA := f.addUser(t, "alice")
	userB := f.addUser(t, "bob")
	stranger := f.addUser(t, "stranger")
	f.addPost(t, userA.ID, "mine", base.Add(1*time.Minute))
	f.addPost(t, userB.ID, "followed", base.Add(2*time.Minute))
	f.addPost(t, stranger.ID, "unrelated", base.Add(3*time.Minute))
	require.NoError(t, f.rels.Create(userA.ID, userB.ID))

	stream, err := f.feed.GetStream(userA.ID, 100)
	assert.NoError(t, err)
	require.Len(t, stream, 2)
	for _, post := range stream {
		assert.NotEqual(t, stranger.ID, post.AuthorID, "posts of a non-followed user must never appear")
	}
}

func TestFeedService_GetStream_LimitEnforcement(t *testing.T) {
	f := newFeedFixture()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	userA := f.addUser(t, "alice")
	for i := 0; i < 150; i++ {
		f.addPost(t, userA.ID, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	stream, err := f.feed.GetStream(userA.ID, 100)
	assert.NoError(t, err)
	require.Len(t, stream, 100)
	// The 100 most recent: the newest first, the cutoff at post 50.
	assert.Equal(t, "post 149", stream[0].Content)
	assert.Equal(t, "post 50", stream[99].Content)
}

func TestFeedService_GetStream_DefaultLimit(t *testing.T) {
	f := newFeedFixture()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	userA := f.addUser(t, "alice")
	for i := 0; i < services.DefaultStreamLimit+20; i++ {
		f.addPost(t, userA.ID, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	// limit <= 0 falls back to the default of 100.
	stream, err := f.feed.GetStream(userA.ID, 0)
	assert.NoError(t, err)
	assert.Len(t, stream, services.DefaultStreamLimit)
}

func TestFeedService_GetStream_TimestampTieBreak(t *testing.T) {
	f := newFeedFixture()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	userA := f.addUser(t, "alice")
	f.addPost(t, userA.ID, "tied one", at)
	f.addPost(t, userA.ID, "tied two", at)

	first, err := f.feed.GetStream(userA.ID, 100)
	assert.NoError(t, err)
	second, err := f.feed.GetStream(userA.ID, 100)
	assert.NoError(t, err)

	// Equal timestamps order by id descending, so repeated reads agree.
	require.Len(t, first, 2)
	assert.Greater(t, first[0].ID, first[1].ID)
	assert.Equal(t, first, second)
}

func TestFeedService_GetUserStream(t *testing.T) {
	f := newFeedFixture()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	userA := f.addUser(t, "alice")
	userB := f.addUser(t, "bob")
	own := f.addPost(t, userA.ID, "alice post", base.Add(1*time.Minute))
	f.addPost(t, userB.ID, "bob post", base.Add(2*time.Minute))
	// Even though alice follows bob, her user stream is her own posts only.
	require.NoError(t, f.rels.Create(userA.ID, userB.ID))

	stream, err := f.feed.GetUserStream("alice", 100)
	assert.NoError(t, err)
	require.Len(t, stream, 1)
	assert.Equal(t, own.ID, stream[0].ID)
}

func TestFeedService_GetUserStream_UnknownUser(t *testing.T) {
	f := newFeedFixture()

	// An unknown username is a distinct not-found outcome, never just an
	// empty list.
	stream, err := f.feed.GetUserStream("nonexistent-handle", 100)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	assert.Nil(t, stream)
}

func TestFeedService_GetGlobalStream(t *testing.T) {
	f := newFeedFixture()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	userA := f.addUser(t, "alice")
	userB := f.addUser(t, "bob")
	f.addPost(t, userA.ID, "older", base.Add(1*time.Minute))
	newest := f.addPost(t, userB.ID, "newest", base.Add(2*time.Minute))

	stream, err := f.feed.GetGlobalStream(100)
	assert.NoError(t, err)
	require.Len(t, stream, 2)
	assert.Equal(t, newest.ID, stream[0].ID)
}
