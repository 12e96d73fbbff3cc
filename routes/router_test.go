package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/enricothe3rd/CMS-BLOG-LATEST/config"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/models"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/routes"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/utils"
)

func TestMain(m *testing.M) {
	cfg := config.AppConfig{
		JWTSecret:          "router-test-secret",
		AccessTokenMinutes: 60,
		RefreshTokenHours:  24,
		RateLimitPerMinute: 100000,
		AllowedOrigins:     []string{"*"},
		GinMode:            "test",
		LogLevel:           "error",
	}
	config.SetForTesting(cfg)
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type api struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
}

func newAPI(t *testing.T) *api {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
	))
	return &api{t: t, router: routes.SetupRouter(db), db: db}
}

func (a *api) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *api) decode(w *httptest.ResponseRecorder, out interface{}) {
	a.t.Helper()
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), out))
}

func (a *api) register(username, email, password string) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, "/api/register", "", gin.H{
		"username":         username,
		"email":            email,
		"password":         password,
		"confirm_password": password,
	})
}

func (a *api) token(username, password string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/token", "", gin.H{"username": username, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	a.decode(w, &resp)
	require.NotEmpty(a.t, resp.Access)
	return resp.Access
}

func (a *api) signup(username, email string) string {
	a.t.Helper()
	w := a.register(username, email, "Abcd1234!")
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return a.token(username, "Abcd1234!")
}

func (a *api) userCount() int64 {
	var n int64
	require.NoError(a.t, a.db.Model(&models.User{}).Count(&n).Error)
	return n
}

func (a *api) createPost(token string, body gin.H) uint {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/posts", token, body)
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var post models.Post
	a.decode(w, &post)
	require.NotZero(a.t, post.ID)
	return post.ID
}

func TestRegistration(t *testing.T) {
	a := newAPI(t)

	w := a.register("u1", "u1@x.com", "Abcd1234!")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, int64(1), a.userCount())
	assert.NotContains(t, w.Body.String(), "password")

	var resp struct {
		Message string `json:"message"`
		User    struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	a.decode(w, &resp)
	assert.Equal(t, "User registered successfully", resp.Message)
	assert.Equal(t, "u1", resp.User.Username)
	assert.Equal(t, "u1@x.com", resp.User.Email)

	// Same username with a different email: only the username error.
	w = a.register("u1", "other@x.com", "Abcd1234!")
	require.Equal(t, http.StatusBadRequest, w.Code)
	var fields map[string][]string
	a.decode(w, &fields)
	assert.Contains(t, fields, "username")
	assert.NotContains(t, fields, "email")
	assert.Equal(t, int64(1), a.userCount())

	// Same email under a new username.
	w = a.register("u2", "u1@x.com", "Abcd1234!")
	require.Equal(t, http.StatusBadRequest, w.Code)
	a.decode(w, &fields)
	assert.Contains(t, fields, "email")
	assert.Equal(t, int64(1), a.userCount())
}

func TestRegistrationPasswordMismatch(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/api/register", "", gin.H{
		"username":         "u1",
		"email":            "u1@x.com",
		"password":         "Abcd1234!",
		"confirm_password": "Different1!",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var fields map[string][]string
	a.decode(w, &fields)
	assert.Contains(t, fields, "password")
	assert.Equal(t, int64(0), a.userCount())
}

func TestTokenAndProfile(t *testing.T) {
	a := newAPI(t)
	a.register("u1", "u1@x.com", "Abcd1234!")

	// Wrong password is rejected without leaking which part was wrong.
	w := a.do(http.MethodPost, "/api/token", "", gin.H{"username": "u1", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := a.token("u1", "Abcd1234!")

	w = a.do(http.MethodGet, "/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	a.decode(w, &profile)
	assert.Equal(t, "u1", profile.Username)
	assert.Equal(t, "u1@x.com", profile.Email)

	w = a.do(http.MethodGet, "/api/user/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenRefresh(t *testing.T) {
	a := newAPI(t)
	a.register("u1", "u1@x.com", "Abcd1234!")

	w := a.do(http.MethodPost, "/api/token", "", gin.H{"username": "u1", "password": "Abcd1234!"})
	require.Equal(t, http.StatusOK, w.Code)
	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	a.decode(w, &pair)

	w = a.do(http.MethodPost, "/api/token/refresh", "", gin.H{"refresh": pair.Refresh})
	require.Equal(t, http.StatusOK, w.Code)
	var refreshed struct {
		Access string `json:"access"`
	}
	a.decode(w, &refreshed)
	assert.NotEmpty(t, refreshed.Access)

	// An access token is not a refresh token.
	w = a.do(http.MethodPost, "/api/token/refresh", "", gin.H{"refresh": pair.Access})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostVisibilityFiltering(t *testing.T) {
	a := newAPI(t)
	token := a.signup("u1", "u1@x.com")

	publicID := a.createPost(token, gin.H{"title": "Public Post", "content": "c", "status": "published", "visibility": "public"})
	a.createPost(token, gin.H{"title": "Draft Post", "content": "c", "status": "draft", "visibility": "public"})
	a.createPost(token, gin.H{"title": "Private Post", "content": "c", "status": "published", "visibility": "private"})

	// Anonymous listing only carries the published public post.
	w := a.do(http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Post
	a.decode(w, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, publicID, listed[0].ID)

	// Even the author's own listing view excludes drafts and private posts.
	w = a.do(http.MethodGet, "/api/posts", token, nil)
	a.decode(w, &listed)
	assert.Len(t, listed, 1)

	// my_posts returns everything the actor owns.
	w = a.do(http.MethodGet, "/api/posts/my_posts", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	a.decode(w, &listed)
	assert.Len(t, listed, 3)

	w = a.do(http.MethodGet, "/api/posts/my_posts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPrivatePostRead(t *testing.T) {
	a := newAPI(t)
	u1 := a.signup("u1", "u1@x.com")
	u2 := a.signup("u2", "u2@x.com")

	id := a.createPost(u1, gin.H{"title": "Secret", "content": "c", "status": "published", "visibility": "private"})
	path := fmt.Sprintf("/api/posts/%d", id)

	w := a.do(http.MethodGet, path, u1, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Denial is a 403, not a 404: the post's existence is not hidden.
	w = a.do(http.MethodGet, path, u2, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = a.do(http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPostOwnershipOnWrite(t *testing.T) {
	a := newAPI(t)
	u1 := a.signup("u1", "u1@x.com")
	u2 := a.signup("u2", "u2@x.com")

	id := a.createPost(u1, gin.H{"title": "Mine", "content": "original", "status": "published", "visibility": "public"})
	path := fmt.Sprintf("/api/posts/%d", id)

	w := a.do(http.MethodPut, path, u2, gin.H{"title": "Hijacked", "content": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = a.do(http.MethodDelete, path, u2, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = a.do(http.MethodPut, path, "", gin.H{"title": "Hijacked", "content": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The record is untouched after the denials.
	w = a.do(http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var post models.Post
	a.decode(w, &post)
	assert.Equal(t, "Mine", post.Title)
	assert.Equal(t, "original", post.Content)

	w = a.do(http.MethodPut, path, u1, gin.H{"title": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	a.decode(w, &post)
	assert.Equal(t, "Renamed", post.Title)

	w = a.do(http.MethodDelete, path, u1, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = a.do(http.MethodGet, path, u1, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthorIsForcedToActor(t *testing.T) {
	a := newAPI(t)
	token := a.signup("u1", "u1@x.com")

	// A spoofed author field in the payload is ignored.
	w := a.do(http.MethodPost, "/api/posts", token, gin.H{
		"title":   "Spoof",
		"content": "c",
		"author":  gin.H{"id": 999, "username": "admin"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var post models.Post
	a.decode(w, &post)
	assert.Equal(t, "u1", post.Author.Username)
}

func TestPublishTimestamp(t *testing.T) {
	a := newAPI(t)
	token := a.signup("u1", "u1@x.com")

	id := a.createPost(token, gin.H{"title": "Draft First", "content": "c"})
	path := fmt.Sprintf("/api/posts/%d", id)

	w := a.do(http.MethodGet, path, token, nil)
	var post models.Post
	a.decode(w, &post)
	assert.Equal(t, models.StatusDraft, post.Status)
	assert.Nil(t, post.PublishedAt)
	assert.Equal(t, "draft-first", post.Slug)

	w = a.do(http.MethodPatch, path, token, gin.H{"status": "published"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	a.decode(w, &post)
	assert.Equal(t, models.StatusPublished, post.Status)
	assert.NotNil(t, post.PublishedAt)
}

func TestCommentAttachment(t *testing.T) {
	a := newAPI(t)
	token := a.signup("u1", "u1@x.com")
	id := a.createPost(token, gin.H{"title": "Commented", "content": "c", "status": "published", "visibility": "public"})

	// Nonexistent post: 404 from both the nested and the generic route.
	w := a.do(http.MethodPost, "/api/posts/9999/add_comment", token, gin.H{"content": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = a.do(http.MethodPost, "/api/comments", token, gin.H{"post": 9999, "content": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	var n int64
	require.NoError(t, a.db.Model(&models.Comment{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)

	// Authenticated comment through the nested route.
	w = a.do(http.MethodPost, fmt.Sprintf("/api/posts/%d/add_comment", id), token, gin.H{"content": "first"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var comment models.Comment
	a.decode(w, &comment)
	assert.Equal(t, id, comment.PostID)
	assert.False(t, comment.IsApproved)
	require.NotNil(t, comment.Author)
	assert.Equal(t, "u1", comment.Author.Username)

	// Anonymous comment through the generic route.
	w = a.do(http.MethodPost, "/api/comments", "", gin.H{"post": id, "content": "second"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	a.decode(w, &comment)
	assert.Nil(t, comment.Author)
}

func TestCommentMutationPolicy(t *testing.T) {
	a := newAPI(t)
	u1 := a.signup("u1", "u1@x.com")
	u2 := a.signup("u2", "u2@x.com")
	id := a.createPost(u1, gin.H{"title": "P", "content": "c", "status": "published", "visibility": "public"})

	w := a.do(http.MethodPost, fmt.Sprintf("/api/posts/%d/add_comment", id), u1, gin.H{"content": "hello"})
	require.Equal(t, http.StatusCreated, w.Code)
	var comment models.Comment
	a.decode(w, &comment)
	path := fmt.Sprintf("/api/comments/%d", comment.ID)

	// Any authenticated user may edit or approve, not just the author.
	w = a.do(http.MethodPatch, path, u2, gin.H{"is_approved": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	a.decode(w, &comment)
	assert.True(t, comment.IsApproved)

	w = a.do(http.MethodPatch, path, "", gin.H{"content": "defaced"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodDelete, path, u2, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCategoryAndTagAccess(t *testing.T) {
	a := newAPI(t)
	token := a.signup("u1", "u1@x.com")

	// Writes require authentication.
	w := a.do(http.MethodPost, "/api/categories", "", gin.H{"name": "Tech"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/api/categories", token, gin.H{"name": "Tech", "description": "Technology posts"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var cat models.Category
	a.decode(w, &cat)
	assert.Equal(t, "tech", cat.Slug)

	w = a.do(http.MethodPost, "/api/tags", token, gin.H{"name": "Go"})
	require.Equal(t, http.StatusCreated, w.Code)
	var tag models.Tag
	a.decode(w, &tag)
	assert.Equal(t, "go", tag.Slug)

	// Reads are open.
	w = a.do(http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cats []models.Category
	a.decode(w, &cats)
	assert.Len(t, cats, 1)

	// The new post can reference both.
	w = a.do(http.MethodPost, "/api/posts", token, gin.H{
		"title":    "Categorized",
		"content":  "c",
		"category": cat.ID,
		"tags":     []uint{tag.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var post models.Post
	a.decode(w, &post)
	require.NotNil(t, post.Category)
	assert.Equal(t, "Tech", post.Category.Name)
	require.Len(t, post.Tags, 1)
	assert.Equal(t, "Go", post.Tags[0].Name)

	// Unknown tag ids reject the whole request.
	w = a.do(http.MethodPost, "/api/posts", token, gin.H{
		"title":   "Bad Tags",
		"content": "c",
		"tags":    []uint{9999},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var fields map[string][]string
	a.decode(w, &fields)
	assert.Contains(t, fields, "tags")
}

func TestSlugCollisionGetsSuffix(t *testing.T) {
	a := newAPI(t)
	token := a.signup("u1", "u1@x.com")

	a.createPost(token, gin.H{"title": "Same Title", "content": "c"})
	second := a.createPost(token, gin.H{"title": "Same Title", "content": "c"})

	w := a.do(http.MethodGet, fmt.Sprintf("/api/posts/%d", second), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var post models.Post
	a.decode(w, &post)
	assert.NotEqual(t, "same-title", post.Slug)
	assert.Contains(t, post.Slug, "same-title-")
}

func TestInvalidStatusRejected(t *testing.T) {
	a := newAPI(t)
	token := a.signup("u1", "u1@x.com")

	w := a.do(http.MethodPost, "/api/posts", token, gin.H{"title": "T", "content": "c", "status": "bogus"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var fields map[string][]string
	a.decode(w, &fields)
	assert.Contains(t, fields, "status")
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
