package models

import "time"

// Post status values. Draft posts only surface through my_posts.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Post visibility values. Private posts are readable by their author only.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Post is a blog entry. The author is fixed at creation time and the slug is
// derived from the title server-side.
type Post struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Slug          string     `gorm:"size:280;uniqueIndex;not null" json:"slug"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	Excerpt       string     `gorm:"type:text" json:"excerpt"`
	FeaturedImage string     `gorm:"size:512" json:"featured_image"`
	AuthorID      uint       `gorm:"index;not null" json:"-"`
	Author        User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	CategoryID    *uint      `gorm:"index" json:"-"`
	Category      *Category  `json:"category"`
	Tags          []Tag      `gorm:"many2many:post_tags;" json:"tags"`
	Status        string     `gorm:"size:16;not null;default:'draft'" json:"status"`
	Visibility    string     `gorm:"size:16;not null;default:'public'" json:"visibility"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PublishedAt   *time.Time `json:"published_at"`
	Comments      []Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments"`
}

// ValidStatus reports whether s is a known post status.
func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

// ValidVisibility reports whether v is a known post visibility.
func ValidVisibility(v string) bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}
