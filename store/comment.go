package store

import (
	"gorm.io/gorm"

	"github.com/enricothe3rd/CMS-BLOG-LATEST/models"
)

// CommentStore persists comments independently of their posts.
type CommentStore struct {
	db *gorm.DB
}

func (s *CommentStore) List() ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Preload("Author").Order("created_at DESC").Find(&comments).Error
	return comments, err
}

func (s *CommentStore) FindByID(id uint) (*models.Comment, error) {
	var c models.Comment
	if err := s.db.Preload("Author").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts the comment and reloads it with its author association.
func (s *CommentStore) Create(c *models.Comment) error {
	if err := s.db.Create(c).Error; err != nil {
		return err
	}
	return s.db.Preload("Author").First(c, c.ID).Error
}

func (s *CommentStore) Save(c *models.Comment) error {
	return s.db.Save(c).Error
}

func (s *CommentStore) Delete(c *models.Comment) error {
	return s.db.Delete(c).Error
}

// CountForPost reports how many comments a post has.
func (s *CommentStore) CountForPost(postID uint) (int64, error) {
	var n int64
	err := s.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&n).Error
	return n, err
}
