package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/enricothe3rd/CMS-BLOG-LATEST/models"
	"github.com/enricothe3rd/CMS-BLOG-LATEST/policy"
)

var (
	author   = policy.Actor{ID: 1, Authenticated: true}
	stranger = policy.Actor{ID: 2, Authenticated: true}
)

func post(authorID uint, status, visibility string) *models.Post {
	return &models.Post{AuthorID: authorID, Status: status, Visibility: visibility}
}

func TestCanViewPost(t *testing.T) {
	tests := []struct {
		name  string
		actor policy.Actor
		post  *models.Post
		want  bool
	}{
		{"anonymous reads public", policy.Anonymous, post(1, models.StatusPublished, models.VisibilityPublic), true},
		{"anonymous reads public draft", policy.Anonymous, post(1, models.StatusDraft, models.VisibilityPublic), true},
		{"anonymous denied private", policy.Anonymous, post(1, models.StatusPublished, models.VisibilityPrivate), false},
		{"stranger denied private", stranger, post(1, models.StatusPublished, models.VisibilityPrivate), false},
		{"author reads own private", author, post(1, models.StatusPublished, models.VisibilityPrivate), true},
		{"author reads own private draft", author, post(1, models.StatusDraft, models.VisibilityPrivate), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanViewPost(tt.actor, tt.post))
		})
	}
}

func TestCanModifyPost(t *testing.T) {
	p := post(1, models.StatusPublished, models.VisibilityPublic)

	assert.True(t, policy.CanModifyPost(author, p))
	assert.False(t, policy.CanModifyPost(stranger, p))
	assert.False(t, policy.CanModifyPost(policy.Anonymous, p))

	// An unauthenticated actor carrying the author's ID still may not write.
	assert.False(t, policy.CanModifyPost(policy.Actor{ID: 1}, p))
}

func TestCanModifyComment(t *testing.T) {
	// Comments require authentication but not ownership.
	ownerID := uint(1)
	c := &models.Comment{AuthorID: &ownerID}

	assert.True(t, policy.CanModifyComment(author, c))
	assert.True(t, policy.CanModifyComment(stranger, c))
	assert.False(t, policy.CanModifyComment(policy.Anonymous, c))
}

func TestPubliclyListed(t *testing.T) {
	assert.True(t, policy.PubliclyListed(post(1, models.StatusPublished, models.VisibilityPublic)))
	assert.False(t, policy.PubliclyListed(post(1, models.StatusDraft, models.VisibilityPublic)))
	assert.False(t, policy.PubliclyListed(post(1, models.StatusPublished, models.VisibilityPrivate)))
	assert.False(t, policy.PubliclyListed(post(1, models.StatusArchived, models.VisibilityPublic)))
}
