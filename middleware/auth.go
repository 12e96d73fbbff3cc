package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/enricothe3rd/CMS-BLOG-LATEST/utils"
)

const (
	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextUsernameKey stores the username inside Gin context.
	ContextUsernameKey = "username"
)

// bearerToken extracts the bearer token from the Authorization header.
// The second return is false when no Authorization header is present at all;
// a present but malformed header returns ok with an empty token.
func bearerToken(ctx *gin.Context) (string, bool) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", true
	}
	return strings.TrimSpace(parts[1]), true
}

// AuthRequired ensures the request carries a valid access token.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, present := bearerToken(ctx)
		if !present {
			utils.Detail(ctx, http.StatusUnauthorized, "authentication credentials were not provided")
			ctx.Abort()
			return
		}
		if token == "" {
			utils.Detail(ctx, http.StatusUnauthorized, "invalid authorization header format")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(token, utils.TokenTypeAccess)
		if err != nil {
			utils.Detail(ctx, http.StatusUnauthorized, "token is invalid or expired")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUsernameKey, claims.Username)
		ctx.Next()
	}
}

// AuthOptional resolves the actor when credentials are supplied but lets
// anonymous requests through. A supplied-but-invalid token is still rejected
// so a caller never silently downgrades to anonymous.
func AuthOptional() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, present := bearerToken(ctx)
		if !present {
			ctx.Next()
			return
		}
		if token == "" {
			utils.Detail(ctx, http.StatusUnauthorized, "invalid authorization header format")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(token, utils.TokenTypeAccess)
		if err != nil {
			utils.Detail(ctx, http.StatusUnauthorized, "token is invalid or expired")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUsernameKey, claims.Username)
		ctx.Next()
	}
}
