package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/enricothe3rd/CMS-BLOG-LATEST/config"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/controllers"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/middleware"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/store"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if utils.Logger != nil {
		r.Use(utils.RequestLogger(utils.Logger))
		r.Use(utils.Recovery(utils.Logger))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s := store.New(db)
	authController := controllers.NewAuthController(s)
	postController := controllers.NewPostController(s)
	categoryController := controllers.NewCategoryController(s)
	tagController := controllers.NewTagController(s)
	commentController := controllers.NewCommentController(s)

	api := r.Group("/api")

	authRoutes := api.Group("")
	authRoutes.Use(middleware.RateLimitMiddleware())
	authRoutes.POST("/register", authController.Register)
	authRoutes.POST("/token", authController.Token)
	authRoutes.POST("/token/refresh", authController.TokenRefresh)

	api.GET("/user/profile", middleware.AuthRequired(), authController.Profile)

	posts := api.Group("/posts")
	posts.GET("", postController.ListPosts)
	posts.GET("/my_posts", middleware.AuthRequired(), postController.MyPosts)
	posts.GET("/:id", middleware.AuthOptional(), postController.GetPost)
	posts.POST("", middleware.AuthRequired(), postController.CreatePost)
	posts.PUT("/:id", middleware.AuthRequired(), postController.UpdatePost)
	posts.PATCH("/:id", middleware.AuthRequired(), postController.UpdatePost)
	posts.DELETE("/:id", middleware.AuthRequired(), postController.DeletePost)
	posts.POST("/:id/add_comment", middleware.AuthOptional(), postController.AddComment)

	categories := api.Group("/categories")
	categories.GET("", categoryController.List)
	categories.GET("/:id", categoryController.Get)
	categories.POST("", middleware.AuthRequired(), categoryController.Create)
	categories.PUT("/:id", middleware.AuthRequired(), categoryController.Update)
	categories.PATCH("/:id", middleware.AuthRequired(), categoryController.Update)
	categories.DELETE("/:id", middleware.AuthRequired(), categoryController.Delete)

	tags := api.Group("/tags")
	tags.GET("", tagController.List)
	tags.GET("/:id", tagController.Get)
	tags.POST("", middleware.AuthRequired(), tagController.Create)
	tags.PUT("/:id", middleware.AuthRequired(), tagController.Update)
	tags.PATCH("/:id", middleware.AuthRequired(), tagController.Update)
	tags.DELETE("/:id", middleware.AuthRequired(), tagController.Delete)

	comments := api.Group("/comments")
	comments.GET("", commentController.List)
	comments.GET("/:id", commentController.Get)
	comments.POST("", middleware.AuthOptional(), commentController.Create)
	comments.PUT("/:id", middleware.AuthRequired(), commentController.Update)
	comments.PATCH("/:id", middleware.AuthRequired(), commentController.Update)
	comments.DELETE("/:id", middleware.AuthRequired(), commentController.Delete)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Detail(ctx, http.StatusNotFound, "not found")
	})

	return r
}
