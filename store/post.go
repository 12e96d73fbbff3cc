package store

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/enricothe3rd/CMS-BLOG-LATEST/models"
)

// PostStore persists posts together with their associations.
type PostStore struct {
	db *gorm.DB
}

func (s *PostStore) preloaded() *gorm.DB {
	return s.db.
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author")
}

// Create inserts a post; tags set on the model are attached through the join
// table in the same operation.
func (s *PostStore) Create(p *models.Post) error {
	return s.db.Create(p).Error
}

// FindByID loads a post with author, category, tags and ordered comments.
func (s *PostStore) FindByID(id uint) (*models.Post, error) {
	var p models.Post
	if err := s.preloaded().First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPublishedPublic returns the public listing: published, public posts,
// newest first. This is the only anonymous list view.
func (s *PostStore) ListPublishedPublic() ([]models.Post, error) {
	var posts []models.Post
	err := s.preloaded().
		Where("status = ? AND visibility = ?", models.StatusPublished, models.VisibilityPublic).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// ListByAuthor returns every post of one author regardless of status or
// visibility, newest first.
func (s *PostStore) ListByAuthor(authorID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.preloaded().
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// Update saves scalar columns and replaces the tag set.
func (s *PostStore) Update(p *models.Post, tags []models.Tag) error {
	if tags == nil {
		tags = []models.Tag{}
	}
	if err := s.db.Model(p).Association("Tags").Replace(tags); err != nil {
		return err
	}
	return s.db.Save(p).Error
}

// Delete removes a post with its comments and tag join rows.
func (s *PostStore) Delete(p *models.Post) error {
	return s.db.Select(clause.Associations).Delete(p).Error
}

// SlugExists reports whether a post already uses this slug.
func (s *PostStore) SlugExists(slug string) (bool, error) {
	var n int64
	if err := s.db.Model(&models.Post{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
