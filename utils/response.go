package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Detail writes an error response in the shape {"detail": message}, used for
// authentication, permission and not-found failures.
func Detail(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"detail": message})
}

// FieldErrors writes a 400 response whose body is a field-keyed map of
// messages, the shape clients correct and resubmit.
func FieldErrors(ctx *gin.Context, errs map[string][]string) {
	ctx.JSON(http.StatusBadRequest, errs)
}

// FieldError writes a 400 response carrying a single message for one field.
func FieldError(ctx *gin.Context, field, message string) {
	FieldErrors(ctx, map[string][]string{field: {message}})
}

// NotFound writes the standard 404 body.
func NotFound(ctx *gin.Context, what string) {
	Detail(ctx, http.StatusNotFound, what+" not found")
}
