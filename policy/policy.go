// Package policy holds the access-control rules for posts and comments.
// Every function takes the acting identity explicitly; there is no ambient
// request state.
package policy

import "github.com/enricothe3rd/CMS-BLOG-LATEST/models"

// Actor identifies the requester. The zero value is the anonymous actor.
type Actor struct {
	ID            uint
	Authenticated bool
}

// Anonymous is the unauthenticated actor.
var Anonymous = Actor{}

// IsAuthor reports whether the actor is the authenticated owner of the post.
func (a Actor) IsAuthor(post *models.Post) bool {
	return a.Authenticated && a.ID == post.AuthorID
}

// CanViewPost allows reading a post when it is public, or when the actor is
// its author. Status does not gate direct reads; a draft is readable through
// its id as long as visibility allows it.
func CanViewPost(actor Actor, post *models.Post) bool {
	if post.Visibility == models.VisibilityPublic {
		return true
	}
	return actor.IsAuthor(post)
}

// CanModifyPost allows update and delete only for the authenticated author.
// The caller must not mask a denial as not-found: unauthorized actors learn
// the post exists and get a permission error.
func CanModifyPost(actor Actor, post *models.Post) bool {
	return actor.IsAuthor(post)
}

// CanModifyComment requires authentication but deliberately no ownership
// check. This mirrors the original product behavior; see DESIGN.md before
// tightening it.
func CanModifyComment(actor Actor, _ *models.Comment) bool {
	return actor.Authenticated
}

// PubliclyListed reports whether a post belongs in the anonymous listing:
// published and public only, for every actor including the author.
func PubliclyListed(post *models.Post) bool {
	return post.Status == models.StatusPublished && post.Visibility == models.VisibilityPublic
}
