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

// CategoryController exposes category CRUD. Reads are open; writes require
// authentication (enforced in the router).
type CategoryController struct {
	categories *store.CategoryStore
}

// NewCategoryController creates a CategoryController.
func NewCategoryController(s *store.Store) *CategoryController {
	return &CategoryController{categories: s.Categories}
}

type categoryInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Slug        string `json:"slug" binding:"max=120"`
	Description string `json:"description"`
}

func (c *CategoryController) List(ctx *gin.Context) {
	cats, err := c.categories.List()
	if err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if cats == nil {
		cats = []models.Category{}
	}
	ctx.JSON(http.StatusOK, cats)
}

func (c *CategoryController) Get(ctx *gin.Context) {
	cat, ok := c.load(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, cat)
}

func (c *CategoryController) Create(ctx *gin.Context) {
	var in categoryInput
	if !bindJSON(ctx, &in) {
		return
	}

	slug, ok := c.resolveSlug(ctx, in)
	if !ok {
		return
	}

	cat := models.Category{
		Name:        strings.TrimSpace(in.Name),
		Slug:        slug,
		Description: utils.Sanitize(in.Description),
	}
	if err := c.categories.Create(&cat); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.FieldError(ctx, "slug", "Category with this slug already exists.")
			return
		}
		utils.Detail(ctx, http.StatusInternalServerError, "failed to create category")
		return
	}
	ctx.JSON(http.StatusCreated, cat)
}

func (c *CategoryController) Update(ctx *gin.Context) {
	var in categoryInput
	if !bindJSON(ctx, &in) {
		return
	}
	cat, ok := c.load(ctx)
	if !ok {
		return
	}

	cat.Name = strings.TrimSpace(in.Name)
	cat.Description = utils.Sanitize(in.Description)
	if slug := strings.TrimSpace(in.Slug); slug != "" && slug != cat.Slug {
		cat.Slug = utils.Slugify(slug)
	}

	if err := c.categories.Save(cat); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.FieldError(ctx, "slug", "Category with this slug already exists.")
			return
		}
		utils.Detail(ctx, http.StatusInternalServerError, "failed to update category")
		return
	}
	ctx.JSON(http.StatusOK, cat)
}

func (c *CategoryController) Delete(ctx *gin.Context) {
	cat, ok := c.load(ctx)
	if !ok {
		return
	}
	if err := c.categories.Delete(cat); err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to delete category")
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *CategoryController) load(ctx *gin.Context) (*models.Category, bool) {
	id, ok := pathID(ctx, "category")
	if !ok {
		return nil, false
	}
	cat, err := c.categories.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(ctx, "category")
		} else {
			utils.Detail(ctx, http.StatusInternalServerError, "failed to load category")
		}
		return nil, false
	}
	return cat, true
}

// resolveSlug uses the supplied slug or derives a unique one from the name.
func (c *CategoryController) resolveSlug(ctx *gin.Context, in categoryInput) (string, bool) {
	if slug := strings.TrimSpace(in.Slug); slug != "" {
		return utils.Slugify(slug), true
	}
	slug, err := utils.UniqueSlug(in.Name, c.categories.SlugExists)
	if err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to create category")
		return "", false
	}
	return slug, true
}
