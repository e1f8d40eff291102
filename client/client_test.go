package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog-api/config"
	"blog-api/handlers"
	"blog-api/internal/testutil"
	"blog-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	server *handlers.Server
	url    string
}

func newFixture(t *testing.T) *fixture {
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.SigninBurst = 100
	server := handlers.NewServer(cfg, testutil.NewDB(t), testutil.TestLogger())

	ts := httptest.NewServer(server.Router)
	t.Cleanup(ts.Close)
	return &fixture{server: server, url: ts.URL}
}

func (f *fixture) client(t *testing.T) *Client {
	c, err := New(f.url)
	require.NoError(t, err)
	return c
}

func TestClientSessionLifecycle(t *testing.T) {
	f := newFixture(t)
	c := f.client(t)
	ctx := context.Background()

	require.NoError(t, c.SignUp(ctx, "ana", "ana@x.com", "secret123"))
	assert.Nil(t, c.Session())

	_, err := c.SignIn(ctx, "ana", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Nil(t, c.Session())

	profile, err := c.SignIn(ctx, "ana@x.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "ana", profile.Username)
	assert.False(t, profile.IsAdmin)

	email := "ana2@x.com"
	updated, err := c.UpdateProfile(ctx, ProfileUpdate{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "ana2@x.com", updated.Email)
	assert.Equal(t, "ana2@x.com", c.Session().Email)

	require.NoError(t, c.SignOut(ctx))
	assert.Nil(t, c.Session())

	_, err = c.UpdateProfile(ctx, ProfileUpdate{Email: &email})
	assert.ErrorIs(t, err, ErrNotSignedIn)
}

func TestClientSessionIsACopy(t *testing.T) {
	f := newFixture(t)
	c := f.client(t)
	ctx := context.Background()

	require.NoError(t, c.SignUp(ctx, "ana", "ana@x.com", "secret123"))
	_, err := c.SignIn(ctx, "ana", "secret123")
	require.NoError(t, err)

	c.Session().Username = "mallory"
	assert.Equal(t, "ana", c.Session().Username)
}

func TestClientPostsAndComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.server.UserService.EnsureAdmin(ctx, models.SignUpRequest{Username: "root", Email: "root@x.com", Password: "rootpass"})
	require.NoError(t, err)

	admin := f.client(t)
	_, err = admin.SignIn(ctx, "root", "rootpass")
	require.NoError(t, err)
	assert.True(t, admin.Session().IsAdmin)

	post, err := admin.CreatePost(ctx, NewPost{Title: "Hello World", Content: "<p>hi</p>"})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", post.Slug)

	reader := f.client(t)
	require.NoError(t, reader.SignUp(ctx, "ana", "ana@x.com", "secret123"))
	_, err = reader.SignIn(ctx, "ana", "secret123")
	require.NoError(t, err)

	_, err = reader.CreatePost(ctx, NewPost{Title: "Mine", Content: "x"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	comment, err := reader.CreateComment(ctx, post.ID, "nice")
	require.NoError(t, err)
	assert.Equal(t, reader.Session().ID, comment.UserID)

	page, err := reader.GetPosts(ctx, PostQuery{SearchTerm: "hello"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalPosts)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, post.ID, page.Posts[0].ID)
}

func TestClientDeleteAccount(t *testing.T) {
	f := newFixture(t)
	c := f.client(t)
	ctx := context.Background()

	require.NoError(t, c.SignUp(ctx, "ana", "ana@x.com", "secret123"))
	_, err := c.SignIn(ctx, "ana", "secret123")
	require.NoError(t, err)

	require.NoError(t, c.DeleteAccount(ctx))
	assert.Nil(t, c.Session())
	assert.ErrorIs(t, c.DeleteAccount(ctx), ErrNotSignedIn)
}

func TestClientValidationErrorFields(t *testing.T) {
	f := newFixture(t)
	c := f.client(t)

	err := c.SignUp(context.Background(), "", "not-an-email", "secret123")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Fields, "email")
}
