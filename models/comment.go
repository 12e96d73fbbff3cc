package models

import "time"

// Comment is a reply to a post. The post and author associations are fixed at
// creation. Author is nil for anonymous comments. New comments start
// unapproved and wait for moderation.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"index;not null" json:"post_id"`
	AuthorID   *uint     `gorm:"index" json:"-"`
	Author     *User     `json:"author"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsApproved bool      `gorm:"not null;default:false" json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
