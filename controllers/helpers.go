package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/enricothe3rd/CMS-BLOG-LATEST/middleware"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/policy"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/utils"
)

// currentActor resolves the requester identity set by the auth middleware.
// Routes without AuthRequired/AuthOptional yield the anonymous actor.
func currentActor(ctx *gin.Context) policy.Actor {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return policy.Anonymous
	}
	id, ok := value.(uint)
	if !ok {
		return policy.Anonymous
	}
	return policy.Actor{ID: id, Authenticated: true}
}

// bindJSON binds the request body into req and, on failure, writes a
// field-keyed 400 response. Returns false when the request was rejected.
func bindJSON(ctx *gin.Context, req interface{}) bool {
	err := ctx.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := map[string][]string{}
		for _, fe := range verrs {
			name := strings.ToLower(fe.Field())
			fields[name] = append(fields[name], bindingMessage(fe))
		}
		utils.FieldErrors(ctx, fields)
		return false
	}

	utils.FieldError(ctx, "non_field_errors", "invalid request payload")
	return false
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return "Ensure this field has no more than " + fe.Param() + " characters."
	default:
		return "This field is invalid."
	}
}

// pathID parses the numeric id path parameter. Writes a 404 and returns
// false for non-numeric ids, matching lookups against never-existing rows.
func pathID(ctx *gin.Context, what string) (uint, bool) {
	raw := ctx.Param("id")
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		utils.NotFound(ctx, what)
		return 0, false
	}
	return uint(n), true
}

func permissionDenied(ctx *gin.Context, msg string) {
	utils.Detail(ctx, http.StatusForbidden, msg)
}
