package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/enricothe3rd/CMS-BLOG-LATEST/models"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/store"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/utils"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/validation"
)

// AuthController handles registration, token issuance and the profile view.
type AuthController struct {
	users *store.UserStore
}

// NewAuthController creates an AuthController.
func NewAuthController(s *store.Store) *AuthController {
	return &AuthController{users: s.Users}
}

// Register creates a new user account. A duplicate username is reported
// before anything else; email and password problems are aggregated.
func (a *AuthController) Register(ctx *gin.Context) {
	var in validation.RegisterInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.FieldError(ctx, "non_field_errors", "invalid request payload")
		return
	}

	fieldErrs, err := validation.ValidateRegistration(in, a.users)
	if err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "registration failed")
		return
	}
	if fieldErrs != nil {
		utils.FieldErrors(ctx, fieldErrs)
		return
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "registration failed")
		return
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := a.users.Create(&user); err != nil {
		// A concurrent registration can slip past the pre-checks; the unique
		// constraints catch it and the caller gets a correctable 400.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.FieldError(ctx, "username", "A user with that username or email already exists.")
			return
		}
		utils.Detail(ctx, http.StatusInternalServerError, "registration failed")
		return
	}

	utils.Sugar.Infow("user registered", "user_id", user.ID, "username", user.Username)

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Token verifies credentials and issues an access/refresh pair.
func (a *AuthController) Token(ctx *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := a.users.FindByUsername(req.Username)
	if err != nil {
		utils.Detail(ctx, http.StatusUnauthorized, "no active account found with the given credentials")
		return
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Detail(ctx, http.StatusUnauthorized, "no active account found with the given credentials")
		return
	}

	access, refresh, err := utils.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to generate token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}

// TokenRefresh exchanges a valid refresh token for a new access token.
func (a *AuthController) TokenRefresh(ctx *gin.Context) {
	var req struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if !bindJSON(ctx, &req) {
		return
	}

	claims, err := utils.ParseToken(req.Refresh, utils.TokenTypeRefresh)
	if err != nil {
		utils.Detail(ctx, http.StatusUnauthorized, "token is invalid or expired")
		return
	}

	access, err := utils.GenerateAccessToken(claims.UserID, claims.Username)
	if err != nil {
		utils.Detail(ctx, http.StatusInternalServerError, "failed to generate token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"access": access})
}

// Profile returns the authenticated user's own record.
func (a *AuthController) Profile(ctx *gin.Context) {
	actor := currentActor(ctx)
	user, err := a.users.FindByID(actor.ID)
	if err != nil {
		utils.Detail(ctx, http.StatusUnauthorized, "user no longer exists")
		return
	}
	ctx.JSON(http.StatusOK, user)
}
