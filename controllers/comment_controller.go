package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/enricothe3rd/CMS-BLOG-LATEST/models"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/policy"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/store"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/utils"
)

// CommentController exposes comments as independently addressable resources.
// The generic create here and PostController.AddComment enforce the same
// rules; only the source of the post id differs.
type CommentController struct {
	comments *store.CommentStore
	posts    *store.PostStore
}

// NewCommentController creates a CommentController.
func NewCommentController(s *store.Store) *CommentController {
	return &CommentController{comments: s.Comments, posts: s.Posts}
}

func (c *CommentController) List(ctx *gin.Context) {
	comments, err := c.comments.List()
	if err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to list comments")
		return
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	ctx.JSON(http.StatusOK, comments)
}

func (c *CommentController) Get(ctx *gin.Context) {
	comment, ok := c.load(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, comment)
}

// Create attaches a comment to the post named in the payload. 404 when the
// post does not exist, identical to the nested route.
func (c *CommentController) Create(ctx *gin.Context) {
	var req struct {
		Post    uint   `json:"post" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	post, err := c.posts.FindByID(req.Post)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "post")
		} else {
			utils.Detail(ctx, http.StatusInternalServerError, "failed to load post")
		}
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

	if err := c.comments.Create(&comment); err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to create comment")
		return
	}

	utils.InvalidateByPrefix(postDetailCachePrefx + strconv.Itoa(int(post.ID)))
	ctx.JSON(http.StatusCreated, comment)
}

// Update edits a comment. Authentication is required but authorship is not
// checked; see the policy package note before changing this.
func (c *CommentController) Update(ctx *gin.Context) {
	var req struct {
		Content    *string `json:"content"`
		IsApproved *bool   `json:"is_approved"`
	}
	if !bindJSON(ctx, &req) {
		return
	}
	comment, ok := c.load(ctx)
	if !ok {
		return
	}

	actor := currentActor(ctx)
	if !policy.CanModifyComment(actor, comment) {
		permissionDenied(ctx, "You do not have permission to edit this comment.")
		return
	}

	if req.Content != nil {
		content := utils.Sanitize(*req.Content)
		if strings.TrimSpace(content) == "" {
			utils.FieldError(ctx, "content", "This field may not be blank.")
			return
		}
		comment.Content = content
	}
	if req.IsApproved != nil {
		comment.IsApproved = *req.IsApproved
	}

	if err := c.comments.Save(comment); err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to update comment")
		return
	}

	utils.InvalidateByPrefix(postDetailCachePrefx + strconv.Itoa(int(comment.PostID)))
	ctx.JSON(http.StatusOK, comment)
}

// Delete removes a comment; authentication only, same policy as Update.
func (c *CommentController) Delete(ctx *gin.Context) {
	comment, ok := c.load(ctx)
	if !ok {
		return
	}

	actor := currentActor(ctx)
	if !policy.CanModifyComment(actor, comment) {
		permissionDenied(ctx, "You do not have permission to delete this comment.")
		return
	}

	if err := c.comments.Delete(comment); err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to delete comment")
		return
	}

	utils.InvalidateByPrefix(postDetailCachePrefx + strconv.Itoa(int(comment.PostID)))
	ctx.Status(http.StatusNoContent)
}

func (c *CommentController) load(ctx *gin.Context) (*models.Comment, bool) {
	id, ok := pathID(ctx, "comment")
	if !ok {
		return nil, false
	}
	comment, err := c.comments.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "comment")
		} else {
			utils.Detail(ctx, http.StatusInternalServerError, "failed to load comment")
		}
		return nil, false
	}
	return comment, true
}
