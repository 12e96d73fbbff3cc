package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/enricothe3rd/CMS-BLOG-LATEST/models"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/store"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/utils"
)

// TagController exposes tag CRUD. Reads are open; writes require
// authentication (enforced in the router).
type TagController struct {
	tags *store.TagStore
}

// NewTagController creates a TagController.
func NewTagController(s *store.Store) *TagController {
	return &TagController{tags: s.Tags}
}

type tagInput struct {
	Name string `json:"name" binding:"required,max=100"`
	Slug string `json:"slug" binding:"max=120"`
}

func (t *TagController) List(ctx *gin.Context) {
	tags, err := t.tags.List()
	if err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to list tags")
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	ctx.JSON(http.StatusOK, tags)
}

func (t *TagController) Get(ctx *gin.Context) {
	tag, ok := t.load(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, tag)
}

func (t *TagController) Create(ctx *gin.Context) {
	var in tagInput
	if !bindJSON(ctx, &in) {
		return
	}

	slug := strings.TrimSpace(in.Slug)
	if slug != "" {
		slug = utils.Slugify(slug)
	} else {
		var err error
		slug, err = utils.UniqueSlug(in.Name, t.tags.SlugExists)
		if err != nil {
			utils.Detail(ctx, http.StatusInternalServerError, "failed to create tag")
			return
		}
	}

	tag := models.Tag{Name: strings.TrimSpace(in.Name), Slug: slug}
	if err := t.tags.Create(&tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.FieldError(ctx, "slug", "Tag with this slug already exists.")
			return
		}
		utils.Detail(ctx, http.StatusInternalServerError, "failed to create tag")
		return
	}
	ctx.JSON(http.StatusCreated, tag)
}

func (t *TagController) Update(ctx *gin.Context) {
	var in tagInput
	if !bindJSON(ctx, &in) {
		return
	}
	tag, ok := t.load(ctx)
	if !ok {
		return
	}

	tag.Name = strings.TrimSpace(in.Name)
	if slug := strings.TrimSpace(in.Slug); slug != "" && slug != tag.Slug {
		tag.Slug = utils.Slugify(slug)
	}

	if err := t.tags.Save(tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.FieldError(ctx, "slug", "Tag with this slug already exists.")
			return
		}
		utils.Detail(ctx, http.StatusInternalServerError, "failed to update tag")
		return
	}
	ctx.JSON(http.StatusOK, tag)
}

func (t *TagController) Delete(ctx *gin.Context) {
	tag, ok := t.load(ctx)
	if !ok {
		return
	}
	if err := t.tags.Delete(tag); err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to delete tag")
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (t *TagController) load(ctx *gin.Context) (*models.Tag, bool) {
	id, ok := pathID(ctx, "tag")
	if !ok {
		return nil, false
	}
	tag, err := t.tags.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "tag")
		} else {
			utils.Detail(ctx, http.StatusInternalServerError, "failed to load tag")
		}
		return nil, false
	}
	return tag, true
}
