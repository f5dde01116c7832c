package blog

import (
	"net/http"
	"testing"

	"personalhub/model"
	"personalhub/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogPublishing(t *testing.T) {
	deps := testutil.NewDeps(t)
	router := testutil.NewRouter(t)
	BlogController(router, deps)
	admin := testutil.Token(t, deps, testutil.Admin(t, deps, "admin@example.com"))
	reader := testutil.Token(t, deps, testutil.CreateUser(t, deps.DB, "reader@example.com"))

	post := gin.H{"title": "Hello Go", "content": "Channels and goroutines", "category": "web", "published": true}
	assert.Equal(t, http.StatusForbidden, testutil.Do(t, router, http.MethodPost, "/api/blog", reader, post).Code)
	assert.Equal(t, http.StatusUnauthorized, testutil.Do(t, router, http.MethodPost, "/api/blog", "", post).Code)

	w := testutil.Do(t, router, http.MethodPost, "/api/blog", admin, post)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created model.BlogPost
	testutil.Decode(t, w, &created)
	assert.Equal(t, "hello-go", created.Slug)
	assert.NotNil(t, created.PublishedDate)

	w = testutil.Do(t, router, http.MethodPost, "/api/blog", admin, gin.H{"title": "Draft", "content": "wip"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = testutil.Do(t, router, http.MethodPost, "/api/blog", admin, gin.H{"title": "Hello, Go!", "content": "dup"})
	assert.Equal(t, http.StatusConflict, w.Code)

	var posts []model.BlogPost
	testutil.Decode(t, testutil.Do(t, router, http.MethodGet, "/api/blog", "", nil), &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, "hello-go", posts[0].Slug)

	testutil.Decode(t, testutil.Do(t, router, http.MethodGet, "/api/blog?q=goroutines", "", nil), &posts)
	assert.Len(t, posts, 1)
	testutil.Decode(t, testutil.Do(t, router, http.MethodGet, "/api/blog?category=ai", "", nil), &posts)
	assert.Empty(t, posts)

	assert.Equal(t, http.StatusOK, testutil.Do(t, router, http.MethodGet, "/api/blog/hello-go", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, testutil.Do(t, router, http.MethodGet, "/api/blog/draft", "", nil).Code)

	w = testutil.Do(t, router, http.MethodPost, "/api/snippets", admin, gin.H{"post_id": created.ID, "title": "select", "code": "select {}"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = testutil.Do(t, router, http.MethodPost, "/api/snippets", admin, gin.H{"post_id": 999, "title": "orphan", "code": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	require.Equal(t, http.StatusOK, testutil.Do(t, router, http.MethodDelete, "/api/blog/hello-go", admin, nil).Code)
	var snippets int64
	require.NoError(t, deps.DB.Model(&model.CodeSnippet{}).Count(&snippets).Error)
	assert.Zero(t, snippets)
}
