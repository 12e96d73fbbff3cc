package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/enricothe3rd/CMS-BLOG-LATEST/models"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/policy"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/store"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/utils"
)

const (
	publicListCacheKey   = "cache:posts:list:public"
	postDetailCachePrefx = "cache:post:detail:"
)

// PostController manages post CRUD, the two list views, and nested comments.
type PostController struct {
	posts      *store.PostStore
	categories *store.CategoryStore
	tags       *store.TagStore
	comments   *store.CommentStore
}

// NewPostController creates a PostController.
func NewPostController(s *store.Store) *PostController {
	return &PostController{
		posts:      s.Posts,
		categories: s.Categories,
		tags:       s.Tags,
		comments:   s.Comments,
	}
}

// postInput is the writable field subset for posts. Author, slug and
// timestamps are never accepted from the client.
type postInput struct {
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	Excerpt       *string `json:"excerpt"`
	FeaturedImage *string `json:"featured_image"`
	Category      *uint   `json:"category"`
	Tags          *[]uint `json:"tags"`
	Status        *string `json:"status"`
	Visibility    *string `json:"visibility"`
}

// ListPosts returns the public listing: published and public posts only, for
// every caller. The payload is cached until the next post write.
func (p *PostController) ListPosts(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(publicListCacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	posts, err := p.posts.ListPublishedPublic()
	if err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to list posts")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	utils.CacheSetJSON(publicListCacheKey, posts, time.Hour)
	ctx.JSON(http.StatusOK, posts)
}

// MyPosts returns every post of the authenticated actor, drafts and private
// posts included.
func (p *PostController) MyPosts(ctx *gin.Context) {
	actor := currentActor(ctx)
	posts, err := p.posts.ListByAuthor(actor.ID)
	if err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to list posts")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	ctx.JSON(http.StatusOK, posts)
}

// GetPost returns a single post. Private posts are only readable by their
// author; everyone else gets a permission denial, not a 404.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := pathID(ctx, "post")
	if !ok {
		return
	}

	// Only public posts are ever cached, so a cache hit needs no policy check.
	cacheKey := postDetailCachePrefx + ctx.Param("id")
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	post, err := p.loadPost(ctx, id)
	if err != nil {
		return
	}

	actor := currentActor(ctx)
	if !policy.CanViewPost(actor, post) {
		permissionDenied(ctx, "You do not have permission to view this post.")
		return
	}

	if post.Visibility == models.VisibilityPublic {
		utils.CacheSetJSON(cacheKey, post, time.Hour)
	}
	ctx.JSON(http.StatusOK, post)
}

// CreatePost creates a post owned by the actor. Any author field in the
// payload is ignored.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var in postInput
	if !bindJSON(ctx, &in) {
		return
	}
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		utils.FieldError(ctx, "title", "This field is required.")
		return
	}
	if in.Content == nil || *in.Content == "" {
		utils.FieldError(ctx, "content", "This field is required.")
		return
	}

	actor := currentActor(ctx)
	post := models.Post{
		AuthorID:   actor.ID,
		Status:     models.StatusDraft,
		Visibility: models.VisibilityPublic,
	}
	if !p.applyInput(ctx, &post, in) {
		return
	}

	slug, err := utils.UniqueSlug(post.Title, p.posts.SlugExists)
	if err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to create post")
		return
	}
	post.Slug = slug

	if post.Status == models.StatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := p.posts.Create(&post); err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to create post")
		return
	}

	created, err := p.posts.FindByID(post.ID)
	if err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to load post")
		return
	}

	p.invalidateCaches(post.ID)
	utils.Sugar.Infow("post created", "post_id", post.ID, "author_id", actor.ID)
	ctx.JSON(http.StatusCreated, created)
}

// UpdatePost modifies a post. Only the authenticated author may update;
// non-authors receive a permission denial that does not hide existence.
// PUT and PATCH both apply partial semantics over the writable subset.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	id, ok := pathID(ctx, "post")
	if !ok {
		return
	}
	var in postInput
	if !bindJSON(ctx, &in) {
		return
	}

	post, err := p.loadPost(ctx, id)
	if err != nil {
		return
	}

	actor := currentActor(ctx)
	if !policy.CanModifyPost(actor, post) {
		permissionDenied(ctx, "You do not have permission to edit this post.")
		return
	}

	titleChanged := in.Title != nil && *in.Title != post.Title
	wasPublished := post.Status == models.StatusPublished

	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		utils.FieldError(ctx, "title", "This field may not be blank.")
		return
	}
	if !p.applyInput(ctx, post, in) {
		return
	}

	if titleChanged {
		slug, err := utils.UniqueSlug(post.Title, p.posts.SlugExists)
		if err != nil {
			utils.Detail(ctx, http.StatusInternalServerError, "failed to update post")
			return
		}
		post.Slug = slug
	}
	if !wasPublished && post.Status == models.StatusPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := p.posts.Update(post, post.Tags); err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to update post")
		return
	}

	updated, err := p.posts.FindByID(post.ID)
	if err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to load post")
		return
	}

	p.invalidateCaches(post.ID)
	ctx.JSON(http.StatusOK, updated)
}

// DeletePost removes a post, author only.
func (p *PostController) DeletePost(ctx *gin.Context) {
	id, ok := pathID(ctx, "post")
	if !ok {
		return
	}
	post, err := p.loadPost(ctx, id)
	if err != nil {
		return
	}

	actor := currentActor(ctx)
	if !policy.CanModifyPost(actor, post) {
		permissionDenied(ctx, "You do not have permission to delete this post.")
		return
	}

	if err := p.posts.Delete(post); err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to delete post")
		return
	}

	p.invalidateCaches(post.ID)
	utils.Sugar.Infow("post deleted", "post_id", post.ID, "author_id", actor.ID)
	ctx.Status(http.StatusNoContent)
}

// AddComment attaches a comment to the post in the path. Anonymous actors
// may comment; the author association is set only when authenticated. The
// post's visibility policy applies the same way as a direct read.
func (p *PostController) AddComment(ctx *gin.Context) {
	id, ok := pathID(ctx, "post")
	if !ok {
		return
	}
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	post, err := p.loadPost(ctx, id)
	if err != nil {
		return
	}

	actor := currentActor(ctx)
	if !policy.CanViewPost(actor, post) {
		permissionDenied(ctx, "You do not have permission to view this post.")
		return
	}

	content := utils.Sanitize(req.Content)
	if strings.TrimSpace(content) == "" {
		utils.FieldError(ctx, "content", "This field may not be blank.")
		return
	}

	comment := models.Comment{
		PostID:  post.ID,
		Content: content,
	}
	if actor.Authenticated {
		authorID := actor.ID
		comment.AuthorID = &authorID
	}

	if err := p.comments.Create(&comment); err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to create comment")
		return
	}

	p.invalidateCaches(post.ID)
	ctx.JSON(http.StatusCreated, comment)
}

// loadPost fetches the post or writes the proper 404/500 response.
func (p *PostController) loadPost(ctx *gin.Context, id uint) (*models.Post, error) {
	post, err := p.posts.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "post")
		} else {
			utils.Detail(ctx, http.StatusInternalServerError, "failed to load post")
		}
		return nil, err
	}
	return post, nil
}

// applyInput copies the writable fields onto the post, resolving category and
// tag references. Returns false after writing an error response.
func (p *PostController) applyInput(ctx *gin.Context, post *models.Post, in postInput) bool {
	if in.Title != nil {
		post.Title = utils.Sanitize(strings.TrimSpace(*in.Title))
	}
	if in.Content != nil {
		post.Content = utils.Sanitize(*in.Content)
	}
	if in.Excerpt != nil {
		post.Excerpt = utils.Sanitize(*in.Excerpt)
	}
	if in.FeaturedImage != nil {
		post.FeaturedImage = strings.TrimSpace(*in.FeaturedImage)
	}
	if in.Status != nil {
		if !models.ValidStatus(*in.Status) {
			utils.FieldError(ctx, "status", "\""+*in.Status+"\" is not a valid choice.")
			return false
		}
		post.Status = *in.Status
	}
	if in.Visibility != nil {
		if !models.ValidVisibility(*in.Visibility) {
			utils.FieldError(ctx, "visibility", "\""+*in.Visibility+"\" is not a valid choice.")
			return false
		}
		post.Visibility = *in.Visibility
	}
	if in.Category != nil {
		if *in.Category == 0 {
			post.CategoryID = nil
			post.Category = nil
		} else {
			cat, err := p.categories.FindByID(*in.Category)
			if err != nil {
				utils.FieldError(ctx, "category", "Invalid pk \""+strconv.Itoa(int(*in.Category))+"\" - object does not exist.")
				return false
			}
			post.CategoryID = &cat.ID
			post.Category = cat
		}
	}
	if in.Tags != nil {
		tags, err := p.tags.FindByIDs(*in.Tags)
		if err != nil {
			utils.FieldError(ctx, "tags", "One or more tags do not exist.")
			return false
		}
		if tags == nil {
			tags = []models.Tag{}
		}
		post.Tags = tags
	}
	return true
}

func (p *PostController) invalidateCaches(postID uint) {
	utils.InvalidateByPrefix(publicListCacheKey)
	utils.InvalidateByPrefix(postDetailCachePrefx + strconv.Itoa(int(postID)))
}
